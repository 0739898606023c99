package model

// SearchQuery 是一次检索的输入（关键词 + 选中的标签）。
// 它属于展示层的临时状态，不做持久化。
type SearchQuery struct {
	Query string   `form:"q" json:"q"`
	Tags  []string `form:"tags" json:"tags"`
}

// Segment 高亮片段
type Segment struct {
	Text  string `json:"text"`
	Match bool   `json:"match"`
}

// SearchHit 单篇命中的文章及其高亮信息
type SearchHit struct {
	Article             ArticleSummary `json:"article"`
	TitleSegments       []Segment      `json:"title_segments"`
	DescriptionSegments []Segment      `json:"description_segments"`
	TagSegments         [][]Segment    `json:"tag_segments"`
}

// SearchResult 检索结果
type SearchResult struct {
	Total   int          `json:"total"`
	Matched int          `json:"matched"`
	Terms   []string     `json:"terms"`
	Hits    []*SearchHit `json:"hits"`
}
