package search

import (
	"regexp"
	"strings"

	"github.com/deniskimskku/writing-hub/pkg/domain/model"
)

// Highlight 将 text 切分为命中/未命中交替的片段。
// 所有关键词组成一个不区分大小写的正则（term1|term2|...），
// 只有与某个关键词（忽略大小写）完全相等的片段才标记为命中。
func Highlight(text string, terms []string) []model.Segment {
	pattern := highlightPattern(terms)
	if pattern == nil {
		return []model.Segment{{Text: text}}
	}

	segments := make([]model.Segment, 0, 4)
	last := 0
	for _, loc := range pattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			segments = append(segments, model.Segment{Text: text[last:loc[0]]})
		}
		part := text[loc[0]:loc[1]]
		segments = append(segments, model.Segment{Text: part, Match: equalsAnyTerm(part, terms)})
		last = loc[1]
	}
	if last < len(text) {
		segments = append(segments, model.Segment{Text: text[last:]})
	}
	if len(segments) == 0 {
		return []model.Segment{{Text: text}}
	}
	return segments
}

func highlightPattern(terms []string) *regexp.Regexp {
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		if term == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(term))
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile("(?i)(" + strings.Join(quoted, "|") + ")")
}

func equalsAnyTerm(part string, terms []string) bool {
	lower := strings.ToLower(part)
	for _, term := range terms {
		if term != "" && lower == strings.ToLower(term) {
			return true
		}
	}
	return false
}
