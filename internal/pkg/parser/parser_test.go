package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deniskimskku/writing-hub/pkg/domain/model"
)

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		title    string
		tags     []string
		body     string
		wantErr  bool
		noFrontM bool
	}{
		{
			name:  "列表形式的标签",
			input: "---\ntitle: RAG Poisoning\ndate: 2024-05-01\ntags: [RAG, Security]\n---\n# Hello\n",
			title: "RAG Poisoning",
			tags:  []string{"RAG", "Security"},
			body:  "# Hello\n",
		},
		{
			name:  "逗号分隔的标签",
			input: "---\ntitle: Jailbreaks\ntags: \"LLM, Security\"\n---\nbody",
			title: "Jailbreaks",
			tags:  []string{"LLM", "Security"},
			body:  "body",
		},
		{
			name:  "BOM 和 CRLF",
			input: "\xef\xbb\xbf---\r\ntitle: Windows\r\ntags:\r\n  - Privacy\r\n---\r\ntext\r\n",
			title: "Windows",
			tags:  []string{"Privacy"},
			body:  "text\n",
		},
		{
			name:     "没有 front matter",
			input:    "# Just markdown\n",
			wantErr:  true,
			noFrontM: true,
		},
		{
			name:     "没有结束标记",
			input:    "---\ntitle: broken\n",
			wantErr:  true,
			noFrontM: true,
		},
		{
			name:    "YAML 格式错误",
			input:   "---\ntitle: [unclosed\n---\nbody",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body, err := SplitFrontMatter([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.noFrontM, errors.Is(err, ErrNoFrontMatter))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.title, fm.Title)
			assert.Equal(t, tt.tags, []string(fm.Tags))
			assert.Equal(t, tt.body, body)
		})
	}
}

func TestSplitFrontMatter_ToSummary(t *testing.T) {
	fm, _, err := SplitFrontMatter([]byte("---\ntitle: \"  Spaced  \"\ndate: 2024-01-02\n---\n"))
	require.NoError(t, err)

	summary := fm.ToSummary("spaced")
	assert.Equal(t, model.ArticleSummary{
		Slug:  "spaced",
		Title: "Spaced",
		Date:  "2024-01-02",
		Type:  model.DefaultArticleType,
		Tags:  []string{},
	}, summary)
}

func TestMarkdownToHTML(t *testing.T) {
	html, err := MarkdownToHTML("## Threat Model\n\nSome **bold** text.\n\n<script>alert(1)</script>\n")
	require.NoError(t, err)

	assert.Contains(t, html, `<h2 id="threat-model">Threat Model</h2>`)
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.NotContains(t, html, "<script>")
}

func TestMarkdownToHTML_Table(t *testing.T) {
	html, err := MarkdownToHTML("| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<td>1</td>")
}

func TestExtractTOC(t *testing.T) {
	html := `<h1>Title</h1><h2 id="intro">Intro</h2><p>x</p><h3>Sub Section</h3><h4>deep</h4><h2 id="">  Results  </h2>`

	toc, err := ExtractTOC(html)
	require.NoError(t, err)
	assert.Equal(t, []model.TOCEntry{
		{Level: 2, Text: "Intro", ID: "intro"},
		{Level: 3, Text: "Sub Section", ID: "sub-section"},
		{Level: 2, Text: "Results", ID: "results"},
	}, toc)
}

func TestExtractTOC_Empty(t *testing.T) {
	toc, err := ExtractTOC("<p>no headings</p>")
	require.NoError(t, err)
	assert.NotNil(t, toc)
	assert.Empty(t, toc)
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "Hello world", StripHTML("<p>Hello <em>world</em></p>"))
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		name     string
		words    int
		expected int
	}{
		{"空文本", 0, 0},
		{"一个词", 1, 1},
		{"恰好一分钟", 200, 1},
		{"多一个词", 201, 2},
		{"长文", 1000, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.TrimSpace(strings.Repeat("word ", tt.words))
			assert.Equal(t, tt.words, WordCount(text))
			assert.Equal(t, tt.expected, ReadingTime(text))
		})
	}
}
