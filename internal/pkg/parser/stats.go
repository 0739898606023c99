package parser

import "strings"

// WordsPerMinute 估算阅读时间使用的阅读速度
const WordsPerMinute = 200

// WordCount 按空白切分统计单词数
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ReadingTime 返回以分钟计的阅读时间（向上取整），非空文本至少 1 分钟
func ReadingTime(text string) int {
	words := WordCount(text)
	if words == 0 {
		return 0
	}
	return (words + WordsPerMinute - 1) / WordsPerMinute
}
