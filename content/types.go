package content

// 该文件定义页面内容模型：章节、演示元素、图片描述与字体配置。
// 所有值在进程启动时构造，之后只读。

// Kind 标识章节所演示的性能问题。
type Kind int

const (
	KindImageDimensions   Kind = iota // 图片缺少尺寸导致 CLS
	KindFontDisplay                   // 字体加载期间文本不可见（FOIT）
	KindRenderingStrategy             // SSR 与 SSG 的取舍
)

func (k Kind) String() string {
	switch k {
	case KindImageDimensions:
		return "image-dimensions"
	case KindFontDisplay:
		return "font-display"
	case KindRenderingStrategy:
		return "rendering-strategy"
	default:
		return "unknown"
	}
}

// MarshalText 让 Kind 在 JSON/YAML 中以字符串形式输出。
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Role 区分面板展示的是问题还是解决方案。
type Role string

const (
	RoleProblem  Role = "problem"
	RoleSolution Role = "solution"
)

// Weight 是枚举化的字重（100..900，步长 100）。
type Weight int

const (
	WeightThin       Weight = 100
	WeightExtraLight Weight = 200
	WeightLight      Weight = 300
	WeightRegular    Weight = 400
	WeightMedium     Weight = 500
	WeightSemiBold   Weight = 600
	WeightBold       Weight = 700
	WeightExtraBold  Weight = 800
	WeightBlack      Weight = 900
)

// Valid 判断字重是否属于枚举范围。
func (w Weight) Valid() bool { return w >= WeightThin && w <= WeightBlack && w%100 == 0 }

// Display 对应 CSS font-display 的取值。
type Display string

const (
	DisplayAuto     Display = "auto"
	DisplayBlock    Display = "block"
	DisplaySwap     Display = "swap"
	DisplayFallback Display = "fallback"
	DisplayOptional Display = "optional"
)

// Valid 判断 font-display 取值是否合法。
func (d Display) Valid() bool {
	switch d {
	case DisplayAuto, DisplayBlock, DisplaySwap, DisplayFallback, DisplayOptional:
		return true
	default:
		return false
	}
}

// TextStyleConfig 描述一次字体加载：字族、字重集合、字符子集与 font-display 行为。
type TextStyleConfig struct {
	Family  string   `json:"family" yaml:"family"`
	Weights []Weight `json:"weights" yaml:"weights"`
	Subset  string   `json:"subset" yaml:"subset"`
	Display Display  `json:"display" yaml:"display"`
}

// Swap 报告字体加载期间是否立即显示后备字体。
func (c TextStyleConfig) Swap() bool { return c.Display == DisplaySwap }

// Clone 返回不共享底层切片的副本。
func (c TextStyleConfig) Clone() TextStyleConfig {
	c.Weights = append([]Weight(nil), c.Weights...)
	return c
}

// ImageDescriptor 描述一张图片；Width/Height 为 0 表示未指定。
type ImageDescriptor struct {
	Src    string `json:"src" yaml:"src"`
	Alt    string `json:"alt" yaml:"alt"`
	Width  int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height int    `json:"height,omitempty" yaml:"height,omitempty"`
}

// Dimensioned 报告宽高是否都已给出且为正数。
func (img ImageDescriptor) Dimensioned() bool { return img.Width > 0 && img.Height > 0 }

// Unsized 报告宽高是否都未给出。
func (img ImageDescriptor) Unsized() bool { return img.Width == 0 && img.Height == 0 }

// Element 是面板中的演示元素，仅限本包定义的三种实现。
type Element interface {
	element()
}

// PlainImage 是未经处理的图片引用，用于复现布局偏移。
type PlainImage struct {
	Image ImageDescriptor
}

// OptimizedImage 交给图片原语处理，必须带有尺寸。
type OptimizedImage struct {
	Image ImageDescriptor
	Style string
}

// StyledText 是带样式的演示文本；UsePageFont 为真时套用页面字体。
type StyledText struct {
	Text        string
	Class       string
	Style       string
	UsePageFont bool
}

func (PlainImage) element()     {}
func (OptimizedImage) element() {}
func (StyledText) element()     {}

// Link 是段落末尾的内联链接。
type Link struct {
	Href string
	Text string
}

// Paragraph 是一段正文。
type Paragraph struct {
	Text  string
	Style string
	Link  *Link
}

// Panel 是章节中的一个问题或解决方案块。
type Panel struct {
	Role       Role
	Title      string
	Paragraphs []Paragraph
	Demo       Element
}

// Section 由一个问题面板与可选的解决方案面板组成。
type Section struct {
	Kind   Kind
	Panels []Panel
}

// Title 返回首个面板的标题。
func (s Section) Title() string {
	if len(s.Panels) == 0 {
		return ""
	}
	return s.Panels[0].Title
}

// Paragraphs 按顺序返回所有面板的正文。
func (s Section) Paragraphs() []Paragraph {
	var out []Paragraph
	for _, p := range s.Panels {
		out = append(out, p.Paragraphs...)
	}
	return out
}

// Demo 返回指定角色面板的演示元素，不存在时返回 nil。
func (s Section) Demo(role Role) Element {
	for _, p := range s.Panels {
		if p.Role == role {
			return p.Demo
		}
	}
	return nil
}

// Page 是整张演示页面。
type Page struct {
	Title    string
	Style    string
	Font     TextStyleConfig
	Sections []Section
}
