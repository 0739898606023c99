package search

import (
	"sort"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/deniskimskku/writing-hub/internal/pkg/strutil"
	"github.com/deniskimskku/writing-hub/pkg/domain/model"
)

// fallbackTagSlug 标签名无法生成 slug（例如全是符号）时使用
const fallbackTagSlug = "tag"

// SlugifyTag 生成标签的 URL slug
func SlugifyTag(name string) string {
	return strutil.Slugify(name)
}

// TagEntries 统计每个标签被多少篇文章使用，按名称的自然语言顺序返回。
// 同一篇文章内重复的标签只计一次。
// slug 冲突时按名称顺序依次追加 -2、-3 ...
func TagEntries(articles []model.ArticleSummary) []model.TagEntry {
	counts := make(map[string]int)
	for _, article := range articles {
		seen := make(map[string]struct{}, len(article.Tags))
		for _, tag := range article.Tags {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			counts[tag]++
		}
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sortTagNames(names)

	used := make(map[string]struct{}, len(names))
	entries := make([]model.TagEntry, 0, len(names))
	for _, name := range names {
		base := SlugifyTag(name)
		if base == "" {
			base = fallbackTagSlug
		}
		slug := base
		for suffix := 2; ; suffix++ {
			if _, taken := used[slug]; !taken {
				break
			}
			slug = base + "-" + strconv.Itoa(suffix)
		}
		used[slug] = struct{}{}
		entries = append(entries, model.TagEntry{Name: name, Slug: slug, Count: counts[name]})
	}
	return entries
}

// sortTagNames 按英文排序规则排列标签名，小写在大写之前；比较结果相同时按字节序
func sortTagNames(names []string) {
	// Collator 不是并发安全的，每次排序单独创建
	c := collate.New(language.English)
	sort.Slice(names, func(i, j int) bool {
		if r := c.CompareString(names[i], names[j]); r != 0 {
			return r < 0
		}
		return names[i] < names[j]
	})
}

// AllTags 返回去重后按字节序排列的标签名，用于标签筛选列表
func AllTags(articles []model.ArticleSummary) []string {
	set := make(map[string]struct{})
	for _, article := range articles {
		for _, tag := range article.Tags {
			set[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// TagBySlug 根据 slug 查找标签名
func TagBySlug(entries []model.TagEntry, slug string) (string, bool) {
	for _, entry := range entries {
		if entry.Slug == slug {
			return entry.Name, true
		}
	}
	return "", false
}

// TagSlugByName 根据标签名查找 slug，找不到时直接生成
func TagSlugByName(entries []model.TagEntry, name string) string {
	for _, entry := range entries {
		if entry.Name == name {
			return entry.Slug
		}
	}
	if slug := SlugifyTag(name); slug != "" {
		return slug
	}
	return fallbackTagSlug
}

// ArticlesByTag 返回带有指定标签的文章，保持输入顺序
func ArticlesByTag(articles []model.ArticleSummary, name string) []model.ArticleSummary {
	matched := make([]model.ArticleSummary, 0)
	for _, article := range articles {
		if article.HasTag(name) {
			matched = append(matched, article)
		}
	}
	return matched
}
