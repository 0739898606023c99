package search

import (
	"strings"
	"unicode/utf8"

	"github.com/deniskimskku/writing-hub/pkg/domain/model"
)

// 模糊匹配的默认阈值。
// 这两个值是经验值，可以通过配置调整。
const (
	DefaultFuzzyMinTermLength = 3
	DefaultFuzzyMaxDistance   = 2
)

// Options 控制文本过滤中的模糊匹配
type Options struct {
	// FuzzyMinTermLength 关键词长度（码点数）必须严格大于该值才会尝试模糊匹配
	FuzzyMinTermLength int
	// FuzzyMaxDistance 允许的最大编辑距离
	FuzzyMaxDistance int
}

// DefaultOptions 返回默认阈值
func DefaultOptions() Options {
	return Options{
		FuzzyMinTermLength: DefaultFuzzyMinTermLength,
		FuzzyMaxDistance:   DefaultFuzzyMaxDistance,
	}
}

// Filter 使用默认阈值过滤文章，见 Options.Filter
func Filter(articles []model.ArticleSummary, query string, activeTags []string) []model.ArticleSummary {
	return DefaultOptions().Filter(articles, query, activeTags)
}

// Filter 先按标签过滤（任一标签命中即可），再按关键词过滤（所有关键词都要命中）。
// 输出保持输入顺序；关键词和标签都为空时原样返回输入。
func (o Options) Filter(articles []model.ArticleSummary, query string, activeTags []string) []model.ArticleSummary {
	terms := SplitTerms(query)
	if len(activeTags) == 0 && len(terms) == 0 {
		return articles
	}

	tagSet := make(map[string]struct{}, len(activeTags))
	for _, tag := range activeTags {
		tagSet[tag] = struct{}{}
	}

	filtered := make([]model.ArticleSummary, 0, len(articles))
	for _, article := range articles {
		if len(tagSet) > 0 && !hasAnyTag(article, tagSet) {
			continue
		}
		if len(terms) > 0 && !o.MatchAll(article, terms) {
			continue
		}
		filtered = append(filtered, article)
	}
	return filtered
}

// MatchAll 判断文章是否命中所有关键词
func (o Options) MatchAll(article model.ArticleSummary, terms []string) bool {
	text := SearchableText(article)
	var words []string
	for _, term := range terms {
		if strings.Contains(text, term) {
			continue
		}
		// 只有子串匹配失败时才计算编辑距离
		if words == nil {
			words = strings.Fields(text)
		}
		if !o.fuzzyMatch(term, words) {
			return false
		}
	}
	return true
}

// fuzzyMatch 容忍较长关键词中的少量拼写错误，短词（如 "the"）不参与
func (o Options) fuzzyMatch(term string, words []string) bool {
	if utf8.RuneCountInString(term) <= o.FuzzyMinTermLength {
		return false
	}
	for _, word := range words {
		if Levenshtein(term, word) <= o.FuzzyMaxDistance {
			return true
		}
	}
	return false
}

// SplitTerms 将查询转为小写并按空白切分，丢弃空词
func SplitTerms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// SearchableText 拼接标题、描述、类型和全部标签，用单个空格连接并转为小写
func SearchableText(article model.ArticleSummary) string {
	parts := make([]string, 0, 3+len(article.Tags))
	parts = append(parts, article.Title, article.Description, article.Type)
	parts = append(parts, article.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

func hasAnyTag(article model.ArticleSummary, tagSet map[string]struct{}) bool {
	for _, tag := range article.Tags {
		if _, ok := tagSet[tag]; ok {
			return true
		}
	}
	return false
}
