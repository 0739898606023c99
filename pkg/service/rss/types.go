package rss

import "time"

// RSSItem RSS 条目结构
type RSSItem struct {
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Description string   `json:"description"`
	PubDate     string   `json:"pub_date"`
	GUID        string   `json:"guid"`
	Categories  []string `json:"categories"`
}

// RSSFeed RSS Feed 结构
type RSSFeed struct {
	Title         string    `json:"title"`
	Link          string    `json:"link"`
	SelfLink      string    `json:"self_link"`
	Description   string    `json:"description"`
	Language      string    `json:"language"`
	LastBuildDate string    `json:"last_build_date"`
	Items         []RSSItem `json:"items"`
}

// SiteInfo 生成 Feed 需要的站点信息
type SiteInfo struct {
	// URL 站点根地址，不带结尾斜杠
	URL         string
	Title       string
	Description string
}

// RSSOptions RSS 生成选项
type RSSOptions struct {
	// ItemCount 返回的文章数量，<= 0 表示全部
	ItemCount int
	// BuildTime 日期无法解析时使用的时间
	BuildTime time.Time
}
