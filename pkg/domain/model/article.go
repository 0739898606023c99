package model

import (
	"strings"
	"time"
)

// DefaultArticleType 是 front matter 中未填写 type 时使用的类型
const DefaultArticleType = "Article"

// DateLayout 文章日期使用的日历日期格式
const DateLayout = "2006-01-02"

// --- 核心领域对象 (Domain Object) ---

// ArticleSummary 是文章的摘要信息，加载后只读。
// Slug 同时作为路由键和去重键。
type ArticleSummary struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Article 是渲染完成的完整文章
type Article struct {
	ArticleSummary
	ContentHTML string     `json:"content"`
	UpdatedAt   string     `json:"updated_at"`
	WordCount   int        `json:"word_count"`
	ReadingTime int        `json:"reading_time"`
	TOC         []TOCEntry `json:"toc"`
}

// TOCEntry 目录条目（h2/h3）
type TOCEntry struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

// ArticleSource 是从内容目录读取到的原始文章
type ArticleSource struct {
	Summary  ArticleSummary
	Markdown string
	ModTime  time.Time
}

// FrontMatter 对应 markdown 文件头部的 YAML 元数据。
// Tags 既可以是列表也可以是逗号分隔的字符串。
type FrontMatter struct {
	Title       string  `yaml:"title"`
	Date        string  `yaml:"date"`
	Type        string  `yaml:"type"`
	Description string  `yaml:"description"`
	Tags        TagList `yaml:"tags"`
}

// ToSummary 将 front matter 转换为摘要，slug 取自文件名
func (fm *FrontMatter) ToSummary(slug string) ArticleSummary {
	return NormalizeSummary(ArticleSummary{
		Slug:        slug,
		Title:       fm.Title,
		Date:        fm.Date,
		Type:        fm.Type,
		Description: fm.Description,
		Tags:        []string(fm.Tags),
	})
}

// NormalizeSummary 在数据加载边界补全缺省值，
// 之后的搜索逻辑可以假设所有字段都非 nil。
func NormalizeSummary(s ArticleSummary) ArticleSummary {
	s.Slug = strings.TrimSpace(s.Slug)
	s.Title = strings.TrimSpace(s.Title)
	s.Date = strings.TrimSpace(s.Date)
	s.Type = strings.TrimSpace(s.Type)
	s.Description = strings.TrimSpace(s.Description)
	if s.Type == "" {
		s.Type = DefaultArticleType
	}

	tags := make([]string, 0, len(s.Tags))
	for _, tag := range s.Tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	s.Tags = tags
	return s
}

// PublishedAt 解析文章的发布日期，支持 2006-01-02 和 RFC3339 两种格式
func (s *ArticleSummary) PublishedAt() (time.Time, bool) {
	if t, err := time.Parse(DateLayout, s.Date); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s.Date); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// HasTag 判断文章是否带有指定标签（区分大小写）
func (s *ArticleSummary) HasTag(name string) bool {
	for _, tag := range s.Tags {
		if tag == name {
			return true
		}
	}
	return false
}

// ArticleDetail 文章详情接口的返回数据
type ArticleDetail struct {
	*Article
	Related []ArticleSummary `json:"related"`
}
