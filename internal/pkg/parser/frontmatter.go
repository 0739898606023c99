package parser

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/deniskimskku/writing-hub/pkg/domain/model"
)

var frontMatterDelimiter = []byte("---")

// ErrNoFrontMatter 文件没有以 --- 开头的元数据块
var ErrNoFrontMatter = errors.New("缺少 front matter")

// SplitFrontMatter 拆分 markdown 文件头部的 YAML 元数据和正文。
//
//	---
//	title: ...
//	tags: [a, b]
//	---
//	正文
func SplitFrontMatter(src []byte) (*model.FrontMatter, string, error) {
	src = bytes.TrimPrefix(src, []byte("\xef\xbb\xbf"))
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))

	firstLine, rest, found := bytes.Cut(src, []byte("\n"))
	if !found || !bytes.Equal(bytes.TrimSpace(firstLine), frontMatterDelimiter) {
		return nil, string(src), ErrNoFrontMatter
	}

	var metaLines [][]byte
	for {
		line, remaining, more := bytes.Cut(rest, []byte("\n"))
		if bytes.Equal(bytes.TrimSpace(line), frontMatterDelimiter) {
			rest = remaining
			break
		}
		if !more {
			return nil, string(src), fmt.Errorf("front matter 没有结束标记: %w", ErrNoFrontMatter)
		}
		metaLines = append(metaLines, line)
		rest = remaining
	}

	var fm model.FrontMatter
	if err := yaml.Unmarshal(bytes.Join(metaLines, []byte("\n")), &fm); err != nil {
		return nil, string(rest), fmt.Errorf("解析 front matter 失败: %w", err)
	}
	return &fm, string(rest), nil
}
