package sitemap

import (
	"encoding/xml"
	"time"
)

// SitemapNamespace sitemaps.org 协议命名空间
const SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// URLSet 站点地图根元素
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// URL 站点地图URL条目
type URL struct {
	Location     string  `xml:"loc"`
	LastModified string  `xml:"lastmod,omitempty"`
	ChangeFreq   string  `xml:"changefreq,omitempty"`
	Priority     float32 `xml:"priority"`
}

// ChangeFrequency 更新频率枚举
type ChangeFrequency string

const (
	ChangeFreqWeekly  ChangeFrequency = "weekly"
	ChangeFreqMonthly ChangeFrequency = "monthly"
	ChangeFreqYearly  ChangeFrequency = "yearly"
)

// SitemapItem 站点地图条目
type SitemapItem struct {
	URL          string
	LastModified time.Time
	ChangeFreq   ChangeFrequency
	Priority     float32
}

// ToURL 转换为URL结构
func (s *SitemapItem) ToURL() URL {
	return URL{
		Location:     s.URL,
		LastModified: s.LastModified.UTC().Format(time.RFC3339),
		ChangeFreq:   string(s.ChangeFreq),
		Priority:     s.Priority,
	}
}

// StaticPage 固定页面
type StaticPage struct {
	Route      string
	ChangeFreq ChangeFrequency
	Priority   float32
}

// DefaultStaticPages 站点的固定页面
var DefaultStaticPages = []StaticPage{
	{Route: "", ChangeFreq: ChangeFreqWeekly, Priority: 1.0},
	{Route: "/writing", ChangeFreq: ChangeFreqWeekly, Priority: 0.9},
	{Route: "/papers", ChangeFreq: ChangeFreqMonthly, Priority: 0.8},
	{Route: "/code", ChangeFreq: ChangeFreqMonthly, Priority: 0.8},
	{Route: "/calendar-plus-plus", ChangeFreq: ChangeFreqMonthly, Priority: 0.7},
	{Route: "/calendar-plus-plus/privacy", ChangeFreq: ChangeFreqYearly, Priority: 0.4},
	{Route: "/calendar-plus-plus/terms", ChangeFreq: ChangeFreqYearly, Priority: 0.4},
}
