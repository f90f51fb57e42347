package layout

import "github.com/ByLCY/perfpoc/style"

// 该文件定义文档树与资源描述，供各渲染后端与调试输出共用。

// Result 保存构建后的文档树。
type Result struct {
	Meta DocumentMeta `json:"meta" yaml:"meta"`
	Head Head         `json:"head" yaml:"head"`
	Body *Node        `json:"body" yaml:"body"`
}

// DocumentMeta 保存文档元信息，HTML 与 PDF 后端都会用到。
type DocumentMeta struct {
	Title    string   `json:"title" yaml:"title"`
	Subject  string   `json:"subject" yaml:"subject"`
	Creator  string   `json:"creator" yaml:"creator"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Head 记录需要在文档头部声明的资源。
type Head struct {
	Title string     `json:"title" yaml:"title"`
	Fonts []FontFace `json:"fonts" yaml:"fonts"`
}

// FontFace 是字体原语返回的句柄：类名可直接挂到文本节点上。
type FontFace struct {
	Family     string   `json:"family" yaml:"family"`
	ClassName  string   `json:"className" yaml:"className"`
	Stack      []string `json:"stack" yaml:"stack"`           // font-family 回退序列，首项为 Family
	Weights    []int    `json:"weights" yaml:"weights"`       // 已加载的字重
	Subset     string   `json:"subset" yaml:"subset"`         // 字符子集
	Display    string   `json:"display" yaml:"display"`       // font-display 取值
	Stylesheet string   `json:"stylesheet" yaml:"stylesheet"` // 远程样式表地址
	Preconnect []string `json:"preconnect,omitempty" yaml:"preconnect,omitempty"`
}

// Attr 是有序的节点属性。
type Attr struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Node 是文档树中的一个元素或文本节点；Tag 为空表示纯文本。
type Node struct {
	Tag      string             `json:"tag,omitempty" yaml:"tag,omitempty"`
	Class    string             `json:"class,omitempty" yaml:"class,omitempty"`
	Attrs    []Attr             `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Style    style.Declarations `json:"style,omitempty" yaml:"style,omitempty"`
	Text     string             `json:"text,omitempty" yaml:"text,omitempty"`
	Children []*Node            `json:"children,omitempty" yaml:"children,omitempty"`
}

// Element 创建元素节点。
func Element(tag string, children ...*Node) *Node {
	return &Node{Tag: tag, Children: children}
}

// Text 创建文本节点。
func Text(s string) *Node { return &Node{Text: s} }

// IsText 报告节点是否为纯文本。
func (n *Node) IsText() bool { return n != nil && n.Tag == "" }

// Attr 返回属性值。
func (n *Node) Attr(key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr 设置属性，已存在时覆盖并保持原有顺序。
func (n *Node) SetAttr(key, value string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Value = value
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Value: value})
	return n
}

// Append 追加子节点并返回自身，便于链式构建。
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// TextContent 返回子树中所有文本按顺序拼接的结果。
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	if n.IsText() {
		return n.Text
	}
	var out string
	for _, c := range n.Children {
		out += c.TextContent()
	}
	return out
}

// Walk 先序遍历子树，fn 返回 false 时不再进入该节点的子节点。
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find 返回先序遍历中所有满足条件的节点。
func (n *Node) Find(match func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if match(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}
