// Package metrics 定义 Prometheus 指标，注册到默认 registry，由 /metrics 暴露。
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "writing"

var (
	// SearchTotal 检索次数，cache 标签为 hit/miss
	SearchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_total",
			Help:      "Total number of article searches",
		},
		[]string{"cache"},
	)

	// SearchDuration 检索耗时
	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Duration of article searches in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
	)

	// ArticleRenderTotal 文章读取次数，result 为 hit/rendered/not_found/error
	ArticleRenderTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "article_render_total",
			Help:      "Total number of article loads by result",
		},
		[]string{"result"},
	)

	// ContentReloadTotal 内容重新加载次数
	ContentReloadTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_reload_total",
			Help:      "Total number of content reloads",
		},
		[]string{"status"},
	)

	// ArticlesLoaded 当前快照中的文章数量
	ArticlesLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "articles_loaded",
			Help:      "Number of articles in the current search snapshot",
		},
	)
)

// RecordSearch 记录一次检索
func RecordSearch(cacheHit bool, duration time.Duration) {
	label := "miss"
	if cacheHit {
		label = "hit"
	}
	SearchTotal.WithLabelValues(label).Inc()
	SearchDuration.Observe(duration.Seconds())
}

// RecordRender 记录一次文章读取
func RecordRender(result string) {
	ArticleRenderTotal.WithLabelValues(result).Inc()
}

// RecordReload 记录一次内容重新加载
func RecordReload(err error, articles int) {
	if err != nil {
		ContentReloadTotal.WithLabelValues("error").Inc()
		return
	}
	ContentReloadTotal.WithLabelValues("ok").Inc()
	ArticlesLoaded.Set(float64(articles))
}
