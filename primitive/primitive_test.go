package primitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/perfpoc/content"
	"github.com/ByLCY/perfpoc/style"
)

func TestImageRequiresDimensions(t *testing.T) {
	p := Image{}
	for _, img := range []content.ImageDescriptor{
		{Src: "/a.jpg"},
		{Src: "/a.jpg", Width: 10},
		{Src: "/a.jpg", Width: 10, Height: -2},
		{Width: 10, Height: 10},
	} {
		_, err := p.Image(img, nil)
		assert.Error(t, err, "%+v", img)
	}
}

func TestImageEmitsDimensionsAndStyle(t *testing.T) {
	node, err := Image{}.Image(content.ImageDescriptor{
		Src:    "/no-optimized-cat.jpg",
		Alt:    "Cat photo optimized with next/image",
		Width:  2558,
		Height: 3158,
	}, style.MustParse("max-width: 100%; height: auto"))
	require.NoError(t, err)

	assert.Equal(t, "img", node.Tag)
	for key, want := range map[string]string{
		"src":      "/no-optimized-cat.jpg",
		"alt":      "Cat photo optimized with next/image",
		"width":    "2558",
		"height":   "3158",
		"loading":  "lazy",
		"decoding": "async",
	} {
		got, ok := node.Attr(key)
		require.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}
	assert.Equal(t, "color: transparent; max-width: 100%; height: auto", node.Style.String())
}

func TestImageEager(t *testing.T) {
	node, err := Image{Eager: true}.Image(content.ImageDescriptor{Src: "/a.jpg", Width: 1, Height: 1}, nil)
	require.NoError(t, err)
	loading, _ := node.Attr("loading")
	assert.Equal(t, "eager", loading)
}

func TestGoogleFontsLoad(t *testing.T) {
	face, err := GoogleFonts{}.Load(content.Roboto())
	require.NoError(t, err)

	assert.Equal(t, "Roboto", face.Family)
	assert.Equal(t, []int{400, 700}, face.Weights)
	assert.Equal(t, "swap", face.Display)
	assert.Equal(t, "latin", face.Subset)
	assert.Equal(t, "https://fonts.googleapis.com/css2?family=Roboto:wght@400;700&display=swap", face.Stylesheet)
	assert.Equal(t, []string{"Roboto", "Roboto Fallback", "sans-serif"}, face.Stack)
	assert.Regexp(t, `^roboto-[0-9a-f]{8}$`, face.ClassName)
}

func TestGoogleFontsCustomFallback(t *testing.T) {
	face, err := GoogleFonts{Fallback: []string{"Helvetica", "sans-serif"}}.Load(content.Roboto())
	require.NoError(t, err)
	assert.Equal(t, []string{"Roboto", "Roboto Fallback", "Helvetica", "sans-serif"}, face.Stack)

	plain, err := GoogleFonts{}.Load(content.Roboto())
	require.NoError(t, err)
	assert.Equal(t, plain.ClassName, face.ClassName)
}

func TestGoogleFontsClassNameIsStable(t *testing.T) {
	a, err := GoogleFonts{}.Load(content.Roboto())
	require.NoError(t, err)
	b, err := GoogleFonts{}.Load(content.Roboto())
	require.NoError(t, err)
	assert.Equal(t, a.ClassName, b.ClassName)

	cfg := content.Roboto()
	cfg.Display = content.DisplayBlock
	c, err := GoogleFonts{}.Load(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a.ClassName, c.ClassName)
	assert.Contains(t, c.Stylesheet, "display=block")
}

func TestGoogleFontsWeightOrderDoesNotMatter(t *testing.T) {
	cfg := content.Roboto()
	cfg.Weights = []content.Weight{content.WeightBold, content.WeightRegular}
	a, err := GoogleFonts{}.Load(cfg)
	require.NoError(t, err)
	b, err := GoogleFonts{}.Load(content.Roboto())
	require.NoError(t, err)
	assert.Equal(t, b.ClassName, a.ClassName)
	assert.Equal(t, b.Stylesheet, a.Stylesheet)
}

func TestGoogleFontsRejectsInvalidConfig(t *testing.T) {
	cfg := content.Roboto()
	cfg.Weights = nil
	_, err := GoogleFonts{}.Load(cfg)
	assert.Error(t, err)
}
