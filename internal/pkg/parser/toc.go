package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/deniskimskku/writing-hub/internal/pkg/strutil"
	"github.com/deniskimskku/writing-hub/pkg/domain/model"
)

// ExtractTOC 从渲染后的 HTML 中提取 h2/h3 作为目录。
// 标题没有 id 属性时使用文本生成的 slug。
func ExtractTOC(htmlContent string) ([]model.TOCEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	toc := make([]model.TOCEntry, 0)
	doc.Find("h2, h3").Each(func(_ int, s *goquery.Selection) {
		level := 2
		if goquery.NodeName(s) == "h3" {
			level = 3
		}
		text := strings.TrimSpace(s.Text())
		id, ok := s.Attr("id")
		if !ok || id == "" {
			id = strutil.Slugify(text)
		}
		toc = append(toc, model.TOCEntry{Level: level, Text: text, ID: id})
	})
	return toc, nil
}
