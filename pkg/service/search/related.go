package search

import (
	"sort"

	"github.com/deniskimskku/writing-hub/pkg/domain/model"
)

// RelatedArticles 推荐与指定文章共享标签的其它文章。
// 按共享标签数降序排列，数量相同时保持输入顺序（即日期倒序）。
// limit <= 0 表示不限制数量。
func RelatedArticles(articles []model.ArticleSummary, slug string, limit int) []model.ArticleSummary {
	var current *model.ArticleSummary
	for i := range articles {
		if articles[i].Slug == slug {
			current = &articles[i]
			break
		}
	}
	if current == nil || len(current.Tags) == 0 {
		return []model.ArticleSummary{}
	}

	own := make(map[string]struct{}, len(current.Tags))
	for _, tag := range current.Tags {
		own[tag] = struct{}{}
	}

	type scored struct {
		article model.ArticleSummary
		shared  int
	}
	candidates := make([]scored, 0)
	for _, article := range articles {
		if article.Slug == slug {
			continue
		}
		shared := 0
		seen := make(map[string]struct{}, len(article.Tags))
		for _, tag := range article.Tags {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			if _, ok := own[tag]; ok {
				shared++
			}
		}
		if shared > 0 {
			candidates = append(candidates, scored{article: article, shared: shared})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].shared > candidates[j].shared
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	related := make([]model.ArticleSummary, len(candidates))
	for i, c := range candidates {
		related[i] = c.article
	}
	return related
}

// RelatedTags 返回与 tag 同时出现过的其它标签。
// Count 为共同出现的文章数；按 Count 降序、名称升序排列。
func RelatedTags(articles []model.ArticleSummary, tag string, limit int) []model.TagEntry {
	entries := TagEntries(articles)
	counts := make(map[string]int)
	for _, article := range articles {
		if !article.HasTag(tag) {
			continue
		}
		seen := make(map[string]struct{}, len(article.Tags))
		for _, other := range article.Tags {
			if other == tag {
				continue
			}
			if _, dup := seen[other]; dup {
				continue
			}
			seen[other] = struct{}{}
			counts[other]++
		}
	}

	related := make([]model.TagEntry, 0, len(counts))
	for name, count := range counts {
		related = append(related, model.TagEntry{
			Name:  name,
			Slug:  TagSlugByName(entries, name),
			Count: count,
		})
	}
	sort.Slice(related, func(i, j int) bool {
		if related[i].Count != related[j].Count {
			return related[i].Count > related[j].Count
		}
		return related[i].Name < related[j].Name
	})

	if limit > 0 && len(related) > limit {
		related = related[:limit]
	}
	return related
}
