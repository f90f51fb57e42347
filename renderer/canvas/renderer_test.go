package canvasrenderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/perfpoc/content"
	"github.com/ByLCY/perfpoc/layout"
	"github.com/ByLCY/perfpoc/primitive"
)

// 这里的宽度/字号/行高均为 mm
var (
	fontSizeMM   = 12 * layout.PtToMm
	lineHeightMM = fontSizeMM * 1.2
)

func TestLayoutLinesGreedyWrapsText(t *testing.T) {
	r := NewRenderer("")
	lines, err := r.LayoutLines("hello world again", 10, 400, fontSizeMM, lineHeightMM, "")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(lines), 2)
}

func TestGreedyWrapHonorsNewlines(t *testing.T) {
	r := NewRenderer("")
	lines, err := r.LayoutLines("foo\n\nbar", 100, 400, fontSizeMM, lineHeightMM, "")
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "", lines[1].Content)
}

// TestLineHeightsInvariant 验证：
// 1) 首行 GapBefore == 0；
// 2) 其余行 GapBefore ≈ max(lineHeight - textHeight, 0)；
// 3) 各行的 Height 与 textHeight 一致（渲染器会用字体度量回填）。
func TestLineHeightsInvariant(t *testing.T) {
	r := NewRenderer("")
	lh := fontSizeMM * 1.3
	content := "longlonglong longlonglong longlonglong longlonglong longlonglong"
	lines, err := r.LayoutLines(content, 40, 700, fontSizeMM, lh, "")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(lines), 2)

	textHeight := lines[0].Height
	require.Greater(t, textHeight, 0.0)
	wantLeading := math.Max(lh-textHeight, 0)

	assert.Zero(t, lines[0].GapBefore)
	for i := 1; i < len(lines); i++ {
		assert.InDelta(t, wantLeading, lines[i].GapBefore, 1e-6, "line %d", i)
		assert.InDelta(t, textHeight, lines[i].Height, 1e-6, "line %d", i)
	}
}

// TestGreedyWrapWidthLimit 验证每行宽度不超过限制（mm）。
func TestGreedyWrapWidthLimit(t *testing.T) {
	r := NewRenderer("")
	limit := 30.0
	for _, wrap := range []string{"anywhere", "break-word"} {
		lines, err := r.LayoutLines("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", limit, 400, fontSizeMM, lineHeightMM, wrap)
		require.NoError(t, err)
		require.NotEmpty(t, lines)
		for i, ln := range lines {
			assert.LessOrEqual(t, ln.Width-limit, 1e-6, "%s line %d", wrap, i)
		}
	}
}

func TestNowrapKeepsSingleLine(t *testing.T) {
	r := NewRenderer("")
	lines, err := r.LayoutLines("a very long sentence that would normally wrap", 5, 400, fontSizeMM, lineHeightMM, "nowrap")
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

// fixedWidth 让每个字符宽 1mm，便于精确断言折行结果。
type fixedWidth struct{}

func (fixedWidth) TextWidth(s string) float64 { return float64(len([]rune(s))) }

func TestGreedyWrapDropsBoundarySpaces(t *testing.T) {
	lines := greedyWrapTokens("ab cd ef", 5, fixedWidth{}, "anywhere")
	require.Len(t, lines, 2)
	assert.Equal(t, "ab cd", lines[0].Content)
	assert.Equal(t, "ef", lines[1].Content)
}

func buildPage(t *testing.T) *layout.Result {
	t.Helper()
	res, err := layout.Build(content.Default(), layout.BuildOptions{
		Images: primitive.Image{},
		Fonts:  primitive.GoogleFonts{},
	})
	require.NoError(t, err)
	return res
}

func TestRenderProducesPDF(t *testing.T) {
	out, err := NewRenderer(t.TempDir()).Render(buildPage(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderWithAsset(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 8, 10))
	for x := 0; x < 8; x++ {
		for y := 0; y < 10; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, "no-optimized-cat.jpg"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	r := NewRenderer(dir)
	decoded, err := r.loadImage("/no-optimized-cat.jpg")
	require.NoError(t, err)
	require.NotNil(t, decoded)
	assert.Equal(t, 8, decoded.Bounds().Dx())

	out, err := r.Render(buildPage(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestMissingAssetIsPlaceholder(t *testing.T) {
	r := NewRenderer(t.TempDir())
	img, err := r.loadImage("/missing.jpg")
	require.NoError(t, err)
	assert.Nil(t, img)
}

func TestCorruptAssetFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.jpg"), []byte("not an image"), 0o644))
	_, err := NewRenderer(dir).loadImage("/broken.jpg")
	assert.Error(t, err)
}

func TestRenderPaginates(t *testing.T) {
	body := layout.Element("main")
	for i := 0; i < 80; i++ {
		body.Append(layout.Element("p", layout.Text("A paragraph long enough to take a line or two on an A4 page.")))
	}
	r := NewRenderer("")
	p := newPager(r)
	require.NoError(t, r.drawBlock(p, body, layout.DefaultContext(p.contentWidth())))
	assert.Greater(t, len(p.pages), 1)
}

func TestDimensionedImageReservesAspectRatio(t *testing.T) {
	r := NewRenderer(t.TempDir())
	p := newPager(r)
	start := p.cursorY

	node := layout.Element("img").
		SetAttr("src", "/absent.jpg").
		SetAttr("width", "2558").
		SetAttr("height", "3158")
	require.NoError(t, r.drawImage(p, node))

	height := p.cursorY - start
	// 宽度受内容区限制，高度按 3158/2558 的比例预留
	want := p.contentWidth() * 3158 / 2558
	maxH := r.pageHeight - 2*r.margin
	if want > maxH {
		want = maxH
	}
	assert.InDelta(t, want, height, 1e-6)
}

func TestUnsizedMissingImageGetsStub(t *testing.T) {
	r := NewRenderer(t.TempDir())
	p := newPager(r)
	start := p.cursorY
	require.NoError(t, r.drawImage(p, layout.Element("img").SetAttr("src", "/absent.jpg")))
	assert.InDelta(t, stubHeight, p.cursorY-start, 1e-6)
}

func TestRenderRejectsUnsupportedElement(t *testing.T) {
	res := &layout.Result{Body: layout.Element("main", layout.Element("table"))}
	_, err := NewRenderer("").Render(res)
	assert.Error(t, err)
}
