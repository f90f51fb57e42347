package layout_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/perfpoc/content"
	"github.com/ByLCY/perfpoc/layout"
	"github.com/ByLCY/perfpoc/primitive"
	"github.com/ByLCY/perfpoc/style"
)

func defaultOptions() layout.BuildOptions {
	return layout.BuildOptions{
		Images: primitive.Image{},
		Fonts:  primitive.GoogleFonts{},
		Debug:  layout.DebugOptions{SectionIDs: true},
	}
}

func buildDefault(t *testing.T) *layout.Result {
	t.Helper()
	res, err := layout.Build(content.Default(), defaultOptions())
	require.NoError(t, err)
	return res
}

func sectionsByKind(res *layout.Result, kind content.Kind) []*layout.Node {
	return res.Body.Find(func(n *layout.Node) bool {
		v, ok := n.Attr("data-section")
		return n.Tag == "section" && ok && v == kind.String()
	})
}

func images(n *layout.Node) []*layout.Node {
	return n.Find(func(c *layout.Node) bool { return c.Tag == "img" })
}

func TestBuildSectionOrder(t *testing.T) {
	res := buildDefault(t)
	require.Equal(t, "main", res.Body.Tag)
	require.Equal(t, "h1", res.Body.Children[0].Tag)
	assert.Equal(t, "Performance Analysis and PoC in Next.js", res.Body.Children[0].TextContent())

	var kinds []string
	for _, n := range res.Body.Children {
		if n.Tag != "section" {
			continue
		}
		kind, _ := n.Attr("data-section")
		if len(kinds) == 0 || kinds[len(kinds)-1] != kind {
			kinds = append(kinds, kind)
		}
	}
	assert.Equal(t, []string{"image-dimensions", "font-display", "rendering-strategy"}, kinds)
}

func TestBuildSectionsSeparatedByRules(t *testing.T) {
	res := buildDefault(t)
	children := res.Body.Children[1:]
	require.Len(t, children, 10) // 5 个面板，每个后跟一条分隔线
	for i, n := range children {
		if i%2 == 0 {
			assert.Equal(t, "section", n.Tag)
		} else {
			assert.Equal(t, "hr", n.Tag)
		}
	}
}

func TestProblemImageHasNoDimensions(t *testing.T) {
	res := buildDefault(t)
	secs := sectionsByKind(res, content.KindImageDimensions)
	require.Len(t, secs, 2)

	imgs := images(secs[0])
	require.Len(t, imgs, 1)
	_, hasWidth := imgs[0].Attr("width")
	_, hasHeight := imgs[0].Attr("height")
	assert.False(t, hasWidth)
	assert.False(t, hasHeight)
	src, _ := imgs[0].Attr("src")
	assert.Equal(t, "/no-optimized-cat.jpg", src)
}

func TestSolutionImageHasDimensions(t *testing.T) {
	res := buildDefault(t)
	secs := sectionsByKind(res, content.KindImageDimensions)
	require.Len(t, secs, 2)

	imgs := images(secs[1])
	require.Len(t, imgs, 1)
	img := imgs[0]
	for key, want := range map[string]string{
		"src":    "/no-optimized-cat.jpg",
		"alt":    "Cat photo optimized with next/image",
		"width":  "2558",
		"height": "3158",
	} {
		got, ok := img.Attr(key)
		require.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}
	v, _ := img.Style.Get("max-width")
	assert.Equal(t, "100%", v)
}

func TestFontSolutionUsesFontClass(t *testing.T) {
	res := buildDefault(t)
	require.Len(t, res.Head.Fonts, 1)
	face := res.Head.Fonts[0]
	assert.Equal(t, []int{400, 700}, face.Weights)
	assert.Equal(t, "swap", face.Display)

	secs := sectionsByKind(res, content.KindFontDisplay)
	require.Len(t, secs, 2)

	problem := secs[0].Find(func(n *layout.Node) bool { return n.Class == "font-problem" })
	require.Len(t, problem, 1)

	styled := secs[1].Find(func(n *layout.Node) bool { return n.Class == face.ClassName })
	require.Len(t, styled, 1)
	assert.Equal(t, "This text uses @next/font with font-display: swap. It renders immediately.", styled[0].TextContent())
	size, _ := styled[0].Style.Get("font-size")
	assert.Equal(t, "2rem", size)
}

func TestTitlesInterpolated(t *testing.T) {
	res := buildDefault(t)
	titles := res.Body.Find(func(n *layout.Node) bool { return n.Tag == "h2" })
	require.Len(t, titles, 5)
	for _, h := range titles {
		assert.Equal(t, "title", h.Class)
		assert.NotContains(t, h.TextContent(), "${")
	}
	assert.Equal(t, `Solution: Use "@next/font" with "font-display: swap"`, titles[3].TextContent())
}

func TestRenderingStrategyHasThreeParagraphs(t *testing.T) {
	res := buildDefault(t)
	secs := sectionsByKind(res, content.KindRenderingStrategy)
	require.Len(t, secs, 1)
	paras := secs[0].Find(func(n *layout.Node) bool { return n.Tag == "p" })
	assert.Len(t, paras, 3)
	assert.Contains(t, paras[2].TextContent(), "Static Site Generation (SSG)")
}

func TestProblemParagraphLink(t *testing.T) {
	res := buildDefault(t)
	links := res.Body.Find(func(n *layout.Node) bool { return n.Tag == "a" })
	require.Len(t, links, 1)
	href, _ := links[0].Attr("href")
	assert.Equal(t, "/no-optimized-cat.jpg", href)
}

func TestBuildIsIdempotent(t *testing.T) {
	a := buildDefault(t)
	b := buildDefault(t)
	assert.Equal(t, a, b)

	var ja, jb bytes.Buffer
	require.NoError(t, layout.EncodeDebug(&ja, a, "json"))
	require.NoError(t, layout.EncodeDebug(&jb, b, "json"))
	assert.Equal(t, ja.String(), jb.String())
}

func TestBuildWithoutDebugStillGroupsSections(t *testing.T) {
	opts := defaultOptions()
	opts.Debug = layout.DebugOptions{}
	res, err := layout.Build(content.Default(), opts)
	require.NoError(t, err)

	var kinds []string
	for _, n := range res.Body.Children {
		if n.Tag != "section" {
			continue
		}
		kind, ok := n.Attr("data-section")
		require.True(t, ok)
		kinds = append(kinds, kind)
		_, ok = n.Attr("data-role")
		assert.False(t, ok)
	}
	assert.Equal(t, []string{
		"image-dimensions", "image-dimensions",
		"font-display", "font-display",
		"rendering-strategy",
	}, kinds)
}

func TestBuildRequiresPrimitives(t *testing.T) {
	_, err := layout.Build(content.Default(), layout.BuildOptions{Fonts: primitive.GoogleFonts{}})
	assert.Error(t, err)
	_, err = layout.Build(content.Default(), layout.BuildOptions{Images: primitive.Image{}})
	assert.Error(t, err)
}

func TestBuildRejectsInvalidPage(t *testing.T) {
	page := content.Default()
	page.Sections = page.Sections[1:]
	_, err := layout.Build(page, defaultOptions())
	assert.Error(t, err)
}

func TestBuildRejectsUnknownPlaceholder(t *testing.T) {
	page := content.Default()
	page.Sections[2].Panels[0].Paragraphs[0].Text = "delay of ${ssr.delay}"
	_, err := layout.Build(page, defaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "${ssr.delay}")
}

type failingImages struct{}

func (failingImages) Image(content.ImageDescriptor, style.Declarations) (*layout.Node, error) {
	return nil, errors.New("boom")
}

func TestBuildPropagatesPrimitiveErrors(t *testing.T) {
	opts := defaultOptions()
	opts.Images = failingImages{}
	_, err := layout.Build(content.Default(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestEncodeDebugYAML(t *testing.T) {
	res := buildDefault(t)
	var buf bytes.Buffer
	require.NoError(t, layout.EncodeDebug(&buf, res, "yaml"))
	out := buf.String()
	assert.Contains(t, out, "tag: main")
	assert.Contains(t, out, "value: \"2558\"")

	assert.Error(t, layout.EncodeDebug(&buf, res, "xml"))
}

func TestWriteDebugFiles(t *testing.T) {
	res := buildDefault(t)
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "tree.json")
	require.NoError(t, layout.WriteDebugJSON(res, jsonPath))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{"))

	yamlPath := filepath.Join(dir, "tree.yaml")
	require.NoError(t, layout.WriteDebugYAML(res, yamlPath))
	data, err = os.ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "meta:")
}
