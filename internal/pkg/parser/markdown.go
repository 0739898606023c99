package parser

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	articleMarkdown = newArticleMarkdown()
	articlePolicy   = newArticlePolicy()
	plainPolicy     = bluemonday.StrictPolicy()
)

// newArticleMarkdown 文章渲染用的 goldmark 实例
func newArticleMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.Typographer,
			extension.Linkify,
			extension.Strikethrough,
			extension.Table,
			extension.TaskList,
		),
		goldmark.WithParserOptions(
			// 目录依赖标题 id
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			html.WithUnsafe(),
		),
	)
}

// newArticlePolicy 在 UGC 策略上放开标题锚点、代码 class 和图片尺寸
func newArticlePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span", "div", "pre")
	p.AllowElements("table", "thead", "tbody", "tr", "th", "td", "figure", "figcaption")
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")
	return p
}

// MarkdownToHTML 渲染 Markdown，输出经过清理的 HTML
func MarkdownToHTML(mdContent string) (string, error) {
	var buf bytes.Buffer
	if err := articleMarkdown.Convert([]byte(mdContent), &buf); err != nil {
		return "", fmt.Errorf("渲染 Markdown 失败: %w", err)
	}
	return articlePolicy.Sanitize(buf.String()), nil
}

// StripHTML 去掉全部标签，只留文本
func StripHTML(htmlContent string) string {
	return plainPolicy.Sanitize(htmlContent)
}
