// Package primitive 提供页面依赖的两个框架原语：带尺寸的图片与字体加载。
package primitive

import (
	"fmt"
	"strconv"

	"github.com/ByLCY/perfpoc/content"
	"github.com/ByLCY/perfpoc/layout"
	"github.com/ByLCY/perfpoc/style"
)

// 图片原语附加的默认样式：图片解码前不显示 alt 文本。
var imageBaseStyle = style.MustParse("color: transparent")

// Image 是默认的图片原语：强制要求宽高，并开启懒加载与异步解码。
type Image struct {
	// Eager 为真时关闭懒加载，适用于首屏 LCP 图片。
	Eager bool
}

var _ layout.ImagePrimitive = Image{}

// Image 实现 layout.ImagePrimitive。
func (p Image) Image(img content.ImageDescriptor, decls style.Declarations) (*layout.Node, error) {
	if img.Src == "" {
		return nil, fmt.Errorf("图片缺少 src")
	}
	if img.Width <= 0 || img.Height <= 0 {
		return nil, fmt.Errorf("图片 %s 必须指定正的宽高，实际 %dx%d", img.Src, img.Width, img.Height)
	}
	loading := "lazy"
	if p.Eager {
		loading = "eager"
	}
	node := &layout.Node{Tag: "img", Style: imageBaseStyle.Merge(decls)}
	node.SetAttr("alt", img.Alt).
		SetAttr("loading", loading).
		SetAttr("width", strconv.Itoa(img.Width)).
		SetAttr("height", strconv.Itoa(img.Height)).
		SetAttr("decoding", "async").
		SetAttr("src", img.Src)
	return node, nil
}
