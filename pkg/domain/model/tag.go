package model

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TagEntry 是聚合后的标签信息
type TagEntry struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// TagLanding 标签落地页需要的数据
type TagLanding struct {
	Tag             TagEntry         `json:"tag"`
	MetaDescription string           `json:"meta_description"`
	RelatedTags     []TagEntry       `json:"related_tags"`
	Articles        []ArticleSummary `json:"articles"`
}

// TagList 兼容两种 front matter 写法：
//
//	tags: [RAG, Security]
//	tags: "RAG, Security"
type TagList []string

// UnmarshalYAML 实现 yaml.Unmarshaler
func (t *TagList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*t = list
	case yaml.ScalarNode:
		var raw string
		if err := node.Decode(&raw); err != nil {
			return err
		}
		raw = strings.Trim(strings.TrimSpace(raw), "[]")
		var list []string
		for _, part := range strings.Split(raw, ",") {
			part = strings.Trim(strings.TrimSpace(part), `"'`)
			if part != "" {
				list = append(list, part)
			}
		}
		*t = list
	default:
		return fmt.Errorf("tags 字段格式无效 (line %d)", node.Line)
	}
	return nil
}
