package canvasrenderer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// 当第一行宽度与容器宽度恰好相等且后面紧跟一个显式换行时，不应产生额外的空行。
func TestNoBlankLineWhenEqualWidthThenNewline(t *testing.T) {
	r := NewRenderer("")

	first := "SAMPLE-A"
	// 用极大宽度先测量第一行宽度（mm）
	measured, err := r.LayoutLines(first, 1e6, 400, fontSizeMM, lineHeightMM, "")
	require.NoError(t, err)
	require.Len(t, measured, 1)
	limit := measured[0].Width
	require.Greater(t, limit, 0.0)

	lines, err := r.LayoutLines(first+"\n"+"SAMPLE-B", limit, 400, fontSizeMM, lineHeightMM, "")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, first, lines[0].Content)
	require.Equal(t, "SAMPLE-B", lines[1].Content)
}
