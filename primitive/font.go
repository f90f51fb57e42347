package primitive

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/ByLCY/perfpoc/content"
	"github.com/ByLCY/perfpoc/layout"
)

const (
	googleFontsCSS    = "https://fonts.googleapis.com/css2"
	googleFontsStatic = "https://fonts.gstatic.com"
)

// GoogleFonts 是默认的字体原语，通过 Google Fonts CSS2 接口加载字体。
type GoogleFonts struct {
	// Fallback 追加在字族之后的回退字体，为空时使用 sans-serif。
	Fallback []string
}

var _ layout.FontPrimitive = GoogleFonts{}

// Load 实现 layout.FontPrimitive。
func (g GoogleFonts) Load(cfg content.TextStyleConfig) (layout.FontFace, error) {
	if err := content.ValidateFont(cfg); err != nil {
		return layout.FontFace{}, err
	}
	weights := make([]int, 0, len(cfg.Weights))
	for _, w := range cfg.Weights {
		weights = append(weights, int(w))
	}
	sort.Ints(weights)

	fallback := g.Fallback
	if len(fallback) == 0 {
		fallback = []string{"sans-serif"}
	}
	stack := append([]string{cfg.Family, cfg.Family + " Fallback"}, fallback...)

	return layout.FontFace{
		Family:     cfg.Family,
		ClassName:  className(cfg.Family, weights, cfg.Subset, string(cfg.Display)),
		Stack:      stack,
		Weights:    weights,
		Subset:     cfg.Subset,
		Display:    string(cfg.Display),
		Stylesheet: stylesheetURL(cfg.Family, weights, cfg.Subset, string(cfg.Display)),
		Preconnect: []string{"https://fonts.googleapis.com", googleFontsStatic},
	}, nil
}

// className 由配置的 BLAKE3 摘要生成稳定的类名，配置不变则类名不变。
func className(family string, weights []int, subset, display string) string {
	h := blake3.New()
	h.Write([]byte(family))
	h.Write([]byte{0})
	for _, w := range weights {
		h.Write([]byte(strconv.Itoa(w)))
		h.Write([]byte{0})
	}
	h.Write([]byte(subset))
	h.Write([]byte{0})
	h.Write([]byte(display))
	sum := hex.EncodeToString(h.Sum(nil))

	slug := strings.ToLower(strings.Join(strings.Fields(family), "-"))
	return fmt.Sprintf("%s-%s", slug, sum[:8])
}

// stylesheetURL 构造 CSS2 接口地址，例如
// https://fonts.googleapis.com/css2?family=Roboto:wght@400;700&display=swap
func stylesheetURL(family string, weights []int, subset, display string) string {
	ws := make([]string, 0, len(weights))
	for _, w := range weights {
		ws = append(ws, strconv.Itoa(w))
	}
	q := "family=" + url.QueryEscape(family) + ":wght@" + strings.Join(ws, ";")
	if display != "" && display != string(content.DisplayAuto) {
		q += "&display=" + url.QueryEscape(display)
	}
	// CSS2 接口按 unicode-range 自动切分子集，latin 是默认值，无需额外参数
	if subset != "" && subset != "latin" {
		q += "&subset=" + url.QueryEscape(subset)
	}
	return googleFontsCSS + "?" + q
}
