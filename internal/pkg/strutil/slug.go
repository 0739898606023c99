package strutil

import "strings"

// Slugify 生成 URL 安全的标识：ASCII 小写，
// 连续的非 [a-z0-9] 字符折叠成一个 "-"，并去掉首尾的 "-"。
// 非 ASCII 字符同样视为分隔符。
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteByte(c)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
