package strutil

import (
	"strings"
	"unicode/utf8"
)

// DefaultMetaLength 是 meta description 的默认最大长度
const DefaultMetaLength = 158

// Truncate 安全地将UTF-8字符串截断到指定的长度，并在需要时添加省略号。
func Truncate(s string, maxLength int) string {
	// 如果原字符串没有超出最大长度，直接返回
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}

	runes := []rune(s)
	return string(runes[:maxLength]) + "..."
}

// TruncateForMeta 截断用于 meta description 的文本。
// 尽量在最后一个空格处断开，结尾追加 "…"，总长度不超过 maxLength。
func TruncateForMeta(s string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMetaLength
	}
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}

	truncated := string([]rune(s)[:maxLength-1])
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > 0 {
		truncated = truncated[:lastSpace]
	}
	return strings.TrimSpace(truncated) + "…"
}
