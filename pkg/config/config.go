package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-ini/ini"
	"github.com/spf13/viper"
)

// DefaultConfigPath 默认配置文件位置
const DefaultConfigPath = "data/conf.ini"

// EnvPrefix 环境变量前缀，例如 WRITING_SYSTEM_PORT
const EnvPrefix = "WRITING"

const (
	KeyServerPort  = "System.Port"
	KeyServerDebug = "System.Debug"

	KeySiteURL         = "Site.URL"
	KeySiteName        = "Site.Name"
	KeySiteAuthor      = "Site.Author"
	KeySiteTitle       = "Site.Title"
	KeySiteDescription = "Site.Description"

	KeyContentArticlesDir = "Content.ArticlesDir"
	KeyContentIndexFile   = "Content.IndexFile"
	KeyContentWatch       = "Content.Watch"
	KeyContentReloadCron  = "Content.ReloadCron"

	KeyCacheCapacity = "Cache.Capacity"
	KeyCacheTTL      = "Cache.TTL"

	KeyRedisAddr     = "Redis.Addr"
	KeyRedisPassword = "Redis.Password"
	KeyRedisDB       = "Redis.DB"

	KeySearchFuzzyMinTermLength = "Search.FuzzyMinTermLength"
	KeySearchFuzzyMaxDistance   = "Search.FuzzyMaxDistance"
	KeySearchRateLimit          = "Search.RateLimit"
)

// 定义所有已知的配置键，环境变量覆盖只检查这些键
var allKeys = []string{
	KeyServerPort, KeyServerDebug,
	KeySiteURL, KeySiteName, KeySiteAuthor, KeySiteTitle, KeySiteDescription,
	KeyContentArticlesDir, KeyContentIndexFile, KeyContentWatch, KeyContentReloadCron,
	KeyCacheCapacity, KeyCacheTTL,
	KeyRedisAddr, KeyRedisPassword, KeyRedisDB,
	KeySearchFuzzyMinTermLength, KeySearchFuzzyMaxDistance, KeySearchRateLimit,
}

// 内部默认值，配置文件和环境变量都没有提供时使用
var defaults = map[string]interface{}{
	KeyServerPort:               8091,
	KeyServerDebug:              false,
	KeySiteURL:                  "https://deniskim1.com",
	KeySiteName:                 "Minseok Kim Portfolio",
	KeySiteAuthor:               "Minseok (Denis) Kim",
	KeySiteTitle:                "Minseok (Denis) Kim - Writing",
	KeySiteDescription:          "Research articles and technical writings by Minseok (Denis) Kim.",
	KeyContentArticlesDir:       "src/content/articles",
	KeyContentIndexFile:         "src/data/articles-index.json",
	KeyContentWatch:             true,
	KeyContentReloadCron:        "0 */10 * * * *",
	KeyCacheCapacity:            500,
	KeyCacheTTL:                 "30m",
	KeyRedisDB:                  0,
	KeySearchFuzzyMinTermLength: 3,
	KeySearchFuzzyMaxDistance:   2,
	KeySearchRateLimit:          120,
}

type Config struct {
	vp *viper.Viper
}

// NewConfig 从默认位置加载配置
func NewConfig() (*Config, error) {
	return Load(DefaultConfigPath)
}

// Load 手动加载配置：go-ini 读取文件作为基础值，再用环境变量覆盖。
// 文件不存在时会写出一份默认配置。
func Load(filePath string) (*Config, error) {
	vp := viper.New()
	for key, value := range defaults {
		vp.SetDefault(key, value)
	}

	// --- 步骤 1: 使用 go-ini 从文件加载配置 ---
	iniCfg, err := ini.Load(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("提示: 未找到 %s，将创建默认配置文件。", filePath)
			if err := createDefaultConfigFile(filePath); err != nil {
				log.Printf("警告: 创建默认配置文件失败: %v，将仅依赖环境变量或内部默认值。", err)
			} else {
				log.Printf("✅ 已创建默认配置文件: %s", filePath)
				iniCfg, err = ini.Load(filePath)
				if err != nil {
					log.Printf("警告: 重新加载配置文件失败: %v", err)
				}
			}
		} else {
			return nil, fmt.Errorf("解析配置文件 '%s' 失败: %w", filePath, err)
		}
	}

	if iniCfg != nil {
		for _, section := range iniCfg.Sections() {
			for _, key := range section.Keys() {
				viperKey := fmt.Sprintf("%s.%s", section.Name(), key.Name())
				if section.Name() == ini.DefaultSection {
					viperKey = key.Name()
				}
				// 空值不覆盖内部默认值
				if key.Value() == "" {
					continue
				}
				vp.Set(viperKey, key.Value())
			}
		}
		log.Printf("从 %s 文件加载了配置。", filePath)
	}

	// --- 步骤 2: 手动检查并覆盖环境变量 ---
	envReplacer := strings.NewReplacer(".", "_")
	for _, key := range allKeys {
		envVarName := fmt.Sprintf("%s_%s", EnvPrefix, envReplacer.Replace(strings.ToUpper(key)))
		if value, found := os.LookupEnv(envVarName); found {
			vp.Set(key, value)
			log.Printf("发现环境变量: %s, 已覆盖配置 '%s'。", envVarName, key)
		}
	}

	return &Config{vp: vp}, nil
}

func (c *Config) GetString(key string) string {
	return c.vp.GetString(key)
}

func (c *Config) GetInt(key string) int {
	return c.vp.GetInt(key)
}

func (c *Config) GetBool(key string) bool {
	return c.vp.GetBool(key)
}

func (c *Config) GetDuration(key string) time.Duration {
	return c.vp.GetDuration(key)
}

// Set 覆盖单个配置项（命令行参数使用）
func (c *Config) Set(key string, value interface{}) {
	c.vp.Set(key, value)
}

// createDefaultConfigFile 创建默认的配置文件
func createDefaultConfigFile(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	defaultConfig := `[System]
Port = 8091
Debug = false

[Site]
URL = https://deniskim1.com
Name = Minseok Kim Portfolio
Author = Minseok (Denis) Kim

[Content]
ArticlesDir = src/content/articles
IndexFile = src/data/articles-index.json
Watch = true
# 秒 分 时 日 月 周
ReloadCron = 0 */10 * * * *

[Cache]
Capacity = 500
TTL = 30m

# Redis 配置（可选）
# 如果不配置或留空 Addr，系统将自动使用内存缓存
[Redis]
Addr =
Password =
DB = 0

# 模糊匹配阈值：关键词长度必须大于 FuzzyMinTermLength，编辑距离不超过 FuzzyMaxDistance
[Search]
FuzzyMinTermLength = 3
FuzzyMaxDistance = 2
RateLimit = 120
`

	if err := os.WriteFile(filePath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	return nil
}
