package layout

import (
	"github.com/ByLCY/perfpoc/content"
	"github.com/ByLCY/perfpoc/style"
)

// BuildOptions 配置构建阶段所需的依赖，例如图片与字体原语。
type BuildOptions struct {
	Images ImagePrimitive
	Fonts  FontPrimitive
	Meta   DocumentMeta
	Debug  DebugOptions
}

// DebugOptions 控制调试相关输出。
type DebugOptions struct {
	SectionIDs bool // 在每个 section 节点上额外输出 data-role 属性
}

// ImagePrimitive 负责把带尺寸的图片描述转换为可渲染节点。
type ImagePrimitive interface {
	Image(img content.ImageDescriptor, decls style.Declarations) (*Node, error)
}

// FontPrimitive 根据字体配置加载字体，并返回可挂到文本节点上的句柄。
type FontPrimitive interface {
	Load(cfg content.TextStyleConfig) (FontFace, error)
}
