package canvasrenderer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/perfpoc/fonts"
	"github.com/ByLCY/perfpoc/layout"
	"github.com/ByLCY/perfpoc/renderer"
)

const (
	a4Width       = 210.0
	a4Height      = 297.0
	defaultMargin = 18.0
	ruleWidth     = 0.2
	// stubHeight is the box drawn for an unsized image whose file is missing:
	// nothing is known about it, so no space can be reserved.
	stubHeight = 12.0
)

var (
	textColor        = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	placeholderColor = color.RGBA{R: 150, G: 150, B: 150, A: 255}
)

// Renderer draws a document tree onto A4 pages via github.com/tdewolff/canvas.
type Renderer struct {
	baseDir    string
	pageWidth  float64
	pageHeight float64
	margin     float64

	fontMu sync.Mutex
	family *canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer. Sizes are in mm.
type Options struct {
	// BaseDir resolves root-relative image sources, like a public/ directory.
	BaseDir    string
	PageWidth  float64
	PageHeight float64
	Margin     float64
}

// Line is a laid out line of text; widths and heights are in mm.
type Line struct {
	Content   string
	Width     float64
	Height    float64
	GapBefore float64
}

// NewRenderer creates an A4 renderer resolving images under baseDir.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer with explicit page geometry.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		baseDir:    opts.BaseDir,
		pageWidth:  opts.PageWidth,
		pageHeight: opts.PageHeight,
		margin:     opts.Margin,
	}
	if r.pageWidth <= 0 {
		r.pageWidth = a4Width
	}
	if r.pageHeight <= 0 {
		r.pageHeight = a4Height
	}
	if r.margin <= 0 {
		r.margin = defaultMargin
	}
	return r
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil || result.Body == nil {
		return nil, errors.New("渲染结果为空")
	}

	p := newPager(r)
	if err := r.drawBlock(p, result.Body, layout.DefaultContext(p.contentWidth())); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, r.pageWidth, r.pageHeight, nil)
	r.applyMeta(writer, result.Meta)
	for i, c := range p.pages {
		if i > 0 {
			writer.NewPage(r.pageWidth, r.pageHeight)
		}
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, "", meta.Creator)
}

// pager tracks the vertical cursor and starts a new page when content overflows.
type pager struct {
	r       *Renderer
	pages   []*canvas.Canvas
	ctx     *canvas.Context
	cursorY float64
	left    float64
	width   float64
}

func newPager(r *Renderer) *pager {
	p := &pager{r: r, left: r.margin, width: r.pageWidth - 2*r.margin}
	p.newPage()
	return p
}

func (p *pager) newPage() {
	c := canvas.New(p.r.pageWidth, p.r.pageHeight)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点
	p.pages = append(p.pages, c)
	p.ctx = ctx
	p.cursorY = p.r.margin
}

func (p *pager) contentWidth() float64 { return p.width }

func (p *pager) bottom() float64 { return p.r.pageHeight - p.r.margin }

// ensure moves to a fresh page when height no longer fits below the cursor.
func (p *pager) ensure(height float64) {
	if p.cursorY+height > p.bottom() && p.cursorY > p.r.margin {
		p.newPage()
	}
}

func (p *pager) advance(dy float64) {
	p.cursorY += dy
	if p.cursorY > p.bottom() {
		p.newPage()
	}
}

// blockDefaults mirrors the browser user-agent stylesheet for the tags the page uses.
func blockDefaults(tag string) (fontSizePx float64, weight int, marginEm float64) {
	switch tag {
	case "h1":
		return 32, 700, 0.67
	case "h2":
		return 24, 700, 0.83
	case "p":
		return 16, 400, 1
	default:
		return 16, 400, 0
	}
}

func (r *Renderer) drawBlock(p *pager, n *layout.Node, ctx layout.Context) error {
	switch n.Tag {
	case "main", "section", "div", "body":
		return r.drawContainer(p, n, ctx)
	case "h1", "h2", "h3", "p":
		return r.drawParagraph(p, n, ctx)
	case "hr":
		r.drawRule(p, ctx)
		return nil
	case "img":
		return r.drawImage(p, n)
	case "":
		return r.drawParagraph(p, &layout.Node{Tag: "p", Children: []*layout.Node{n}}, ctx)
	default:
		return fmt.Errorf("PDF 渲染不支持 <%s> 元素", n.Tag)
	}
}

func (r *Renderer) drawContainer(p *pager, n *layout.Node, ctx layout.Context) error {
	gap := lengthProp(n, "gap", ctx, 0)
	padding := lengthProp(n, "padding", ctx, 0)

	left, width := p.left, p.width
	inner := width - 2*padding
	if v, ok := n.Style.Get("max-width"); ok {
		if l, ok := layout.ParseLength(v); ok {
			inner = math.Min(inner, l.ToMM(ctx))
		}
	}
	if inner <= 0 {
		inner = width
	}
	p.left = left + (width-inner)/2
	p.width = inner
	defer func() { p.left, p.width = left, width }()

	p.advance(padding)
	child := ctx
	child.Container = inner
	for i, c := range n.Children {
		if i > 0 {
			p.advance(gap)
		}
		if err := r.drawBlock(p, c, child); err != nil {
			return err
		}
	}
	p.advance(padding)
	return nil
}

func (r *Renderer) drawParagraph(p *pager, n *layout.Node, ctx layout.Context) error {
	sizePx, weight, marginEm := blockDefaults(n.Tag)
	fontSize := sizePx * layout.PxToMm
	if v, ok := n.Style.Get("font-size"); ok {
		if l, ok := layout.ParseLength(v); ok {
			fontSize = l.ToMM(ctx)
		}
	}
	if v, ok := n.Style.Get("font-weight"); ok {
		if w, err := strconv.Atoi(v); err == nil {
			weight = w
		} else if v == "bold" {
			weight = 700
		}
	}
	local := ctx
	local.FontSize = fontSize
	marginBottom := lengthProp(n, "margin-bottom", local, marginEm*fontSize)

	lineHeight := fontSize * 1.2
	lines, err := r.LayoutLines(collapseSpace(n.TextContent()), p.width, weight, fontSize, lineHeight, wrapMode(n))
	if err != nil {
		return err
	}
	face, err := r.fontFace(weight, fontSize, textColor)
	if err != nil {
		return err
	}

	align := canvas.Left
	anchorX := p.left
	switch v, _ := n.Style.Get("text-align"); v {
	case "center":
		align, anchorX = canvas.Center, p.left+p.width/2
	case "right", "end":
		align, anchorX = canvas.Right, p.left+p.width
	}

	metrics := face.Metrics()
	for _, line := range lines {
		p.ensure(line.GapBefore + line.Height)
		p.cursorY += line.GapBefore
		// 基线位置：行顶部加上字体上升部
		p.ctx.DrawText(anchorX, p.cursorY+metrics.Ascent, canvas.NewTextLine(face, line.Content, align))
		p.cursorY += line.Height
	}
	p.advance(marginBottom)
	return nil
}

func (r *Renderer) drawRule(p *pager, ctx layout.Context) {
	gap := 0.5 * ctx.FontSize
	p.ensure(2 * gap)
	p.cursorY += gap
	p.ctx.SetStrokeColor(placeholderColor)
	p.ctx.SetStrokeWidth(ruleWidth)
	path := &canvas.Path{}
	path.MoveTo(0, 0)
	path.LineTo(p.width, 0)
	p.ctx.DrawPath(p.left, p.cursorY, path)
	p.cursorY += gap
}

func (r *Renderer) drawImage(p *pager, n *layout.Node) error {
	src, _ := n.Attr("src")
	alt, _ := n.Attr("alt")
	attrW := intAttr(n, "width")
	attrH := intAttr(n, "height")

	img, err := r.loadImage(src)
	if err != nil {
		return err
	}

	var width, height float64
	switch {
	case attrW > 0 && attrH > 0:
		// 指定了尺寸：按 max-width: 100%; height: auto 缩放，并按宽高比预留空间
		width = math.Min(float64(attrW)*layout.PxToMm, p.width)
		height = width * float64(attrH) / float64(attrW)
	case img != nil:
		b := img.Bounds()
		width = math.Min(float64(b.Dx())*layout.PxToMm, p.width)
		height = width * float64(b.Dy()) / float64(b.Dx())
	default:
		width, height = p.width, stubHeight
	}

	// 单张图片超过一页时等比缩小
	if maxH := p.bottom() - p.r.margin; height > maxH {
		width *= maxH / height
		height = maxH
	}
	p.ensure(height)

	if img == nil {
		r.drawPlaceholder(p, width, height, alt)
	} else {
		dpmm := float64(img.Bounds().Dx()) / width
		if dpmm <= 0 {
			dpmm = 1
		}
		p.ctx.DrawImage(p.left, p.cursorY, img, canvas.DPMM(dpmm))
	}
	p.cursorY += height
	return nil
}

func (r *Renderer) drawPlaceholder(p *pager, width, height float64, alt string) {
	p.ctx.SetFillColor(color.RGBA{})
	p.ctx.SetStrokeColor(placeholderColor)
	p.ctx.SetStrokeWidth(ruleWidth)
	p.ctx.DrawPath(p.left, p.cursorY, canvas.Rectangle(width, height))
	if alt == "" {
		return
	}
	face, err := r.fontFace(400, 10*layout.PtToMm, placeholderColor)
	if err != nil {
		return
	}
	metrics := face.Metrics()
	y := p.cursorY + height/2 - metrics.LineHeight/2 + metrics.Ascent
	p.ctx.DrawText(p.left+width/2, y, canvas.NewTextLine(face, alt, canvas.Center))
}

// loadImage decodes a root-relative image under baseDir. A missing file yields
// (nil, nil) so the caller can draw a placeholder.
func (r *Renderer) loadImage(src string) (image.Image, error) {
	if src == "" || r.baseDir == "" || strings.Contains(src, "://") {
		return nil, nil
	}
	path := filepath.Join(r.baseDir, filepath.FromSlash(strings.TrimPrefix(src, "/")))
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取图片 %s 失败: %w", src, err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("解码图片 %s 失败: %w", src, err)
	}
	return img, nil
}

// LayoutLines wraps content greedily. fontSize, lineHeight and width are in mm;
// the font system works in pt, converted at the boundary.
func (r *Renderer) LayoutLines(content string, width float64, weight int, fontSize, lineHeight float64, wrap string) ([]Line, error) {
	face, err := r.fontFace(weight, fontSize, textColor)
	if err != nil {
		return nil, err
	}
	if wrap == "" {
		wrap = "anywhere"
	}
	lines := greedyWrapTokens(content, width, face, wrap)
	textHeight := face.Metrics().LineHeight
	if textHeight <= 0 {
		textHeight = lineHeight
	}
	leading := math.Max(lineHeight-textHeight, 0)
	if len(lines) == 0 {
		lines = []Line{{Content: "", Width: 0, Height: textHeight}}
	}
	for i := range lines {
		if lines[i].Height <= 0 {
			lines[i].Height = textHeight
		}
		if i == 0 {
			lines[i].GapBefore = 0
		} else {
			lines[i].GapBefore = leading
		}
	}
	return lines, nil
}

// fontFace returns a face of the built-in family; size is in mm.
func (r *Renderer) fontFace(weight int, size float64, col color.Color) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily()
	if err != nil {
		return nil, err
	}
	return family.Face(toPt(size), col, fontStyle(weight), canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily() (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.family != nil {
		return r.family, nil
	}
	family := canvas.NewFontFamily("perfpoc")
	for _, w := range []int{400, 500, 700} {
		data, err := fonts.Load(w)
		if err != nil {
			return nil, err
		}
		if err := family.LoadFont(data, 0, fontStyle(w)); err != nil {
			return nil, fmt.Errorf("加载字体 %s 失败: %w", fonts.Name(w), err)
		}
	}
	r.family = family
	return family, nil
}

func fontStyle(weight int) canvas.FontStyle {
	switch {
	case weight >= 700:
		return canvas.FontBold
	case weight >= 500:
		return canvas.FontMedium
	default:
		return canvas.FontRegular
	}
}

func wrapMode(n *layout.Node) string {
	if v, ok := n.Style.Get("white-space"); ok && (v == "nowrap" || v == "pre") {
		return "nowrap"
	}
	if v, ok := n.Style.Get("word-break"); ok && v == "break-all" {
		return "break-word"
	}
	return "anywhere"
}

func lengthProp(n *layout.Node, prop string, ctx layout.Context, fallback float64) float64 {
	v, ok := n.Style.Get(prop)
	if !ok {
		return fallback
	}
	// 只取简写中的第一个值，例如 "margin: 0 auto"
	if fields := strings.Fields(v); len(fields) > 0 {
		v = fields[0]
	}
	l, ok := layout.ParseLength(v)
	if !ok {
		return fallback
	}
	return l.ToMM(ctx)
}

func intAttr(n *layout.Node, key string) int {
	v, ok := n.Attr(key)
	if !ok {
		return 0
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return i
}

func collapseSpace(s string) string { return strings.Join(strings.Fields(s), " ") }

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }
