package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainTextStripsTags(t *testing.T) {
	assert.Equal(t, "你好", PlainText("  <script>alert(1)</script><b>你好</b> "))
	assert.Equal(t, "abc", PlainText("a\x00bc"))
}

func TestRichTextKeepsFormatting(t *testing.T) {
	out := RichText(`<p onclick="x()">今天<strong>很好</strong></p><script>alert(1)</script>`)
	assert.Equal(t, "<p>今天<strong>很好</strong></p>", out)
}
