package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deniskimskku/writing-hub/pkg/domain/model"
)

func TestHighlight(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		terms    []string
		expected []model.Segment
	}{
		{
			name:     "没有关键词",
			text:     "RAG Poisoning Attacks",
			terms:    nil,
			expected: []model.Segment{{Text: "RAG Poisoning Attacks"}},
		},
		{
			name:     "只有空关键词",
			text:     "RAG",
			terms:    []string{""},
			expected: []model.Segment{{Text: "RAG"}},
		},
		{
			name:  "忽略大小写并保留原文",
			text:  "RAG Poisoning Attacks",
			terms: []string{"rag"},
			expected: []model.Segment{
				{Text: "RAG", Match: true},
				{Text: " Poisoning Attacks"},
			},
		},
		{
			name:  "多个关键词",
			text:  "RAG Poisoning Attacks",
			terms: []string{"poisoning", "attacks"},
			expected: []model.Segment{
				{Text: "RAG "},
				{Text: "Poisoning", Match: true},
				{Text: " "},
				{Text: "Attacks", Match: true},
			},
		},
		{
			name:  "重复出现",
			text:  "llm vs LLM",
			terms: []string{"llm"},
			expected: []model.Segment{
				{Text: "llm", Match: true},
				{Text: " vs "},
				{Text: "LLM", Match: true},
			},
		},
		{
			name:  "正则元字符按字面匹配",
			text:  "C++ and C#",
			terms: []string{"c++"},
			expected: []model.Segment{
				{Text: "C++", Match: true},
				{Text: " and C#"},
			},
		},
		{
			name:     "没有命中",
			text:     "Differential Privacy",
			terms:    []string{"poisning"},
			expected: []model.Segment{{Text: "Differential Privacy"}},
		},
		{
			name:     "空文本",
			text:     "",
			terms:    []string{"rag"},
			expected: []model.Segment{{Text: ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Highlight(tt.text, tt.terms))
		})
	}
}

func TestHighlight_ConcatenationEqualsInput(t *testing.T) {
	texts := []string{
		"Prompt Injection in Retrieval-Augmented Generation",
		"检索增强生成中的投毒攻击",
		"aaa",
	}
	terms := []string{"in", "检索", "a"}
	for _, text := range texts {
		var sb strings.Builder
		for _, seg := range Highlight(text, terms) {
			sb.WriteString(seg.Text)
		}
		assert.Equal(t, text, sb.String())
	}
}
