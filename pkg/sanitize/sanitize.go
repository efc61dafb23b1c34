package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	richPolicy   = bluemonday.UGCPolicy()
)

// PlainText 去除全部HTML标签，用于评论和私信
func PlainText(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")
	return strings.TrimSpace(strictPolicy.Sanitize(input))
}

// RichText 保留安全的排版标签，用于文章正文
func RichText(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")
	return richPolicy.Sanitize(input)
}
