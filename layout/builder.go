package layout

import (
	"errors"
	"fmt"

	"github.com/ByLCY/perfpoc/binding"
	"github.com/ByLCY/perfpoc/content"
	"github.com/ByLCY/perfpoc/style"
)

// Build 根据页面内容生成文档树：先是页面标题，随后每个面板输出一个 section 与分隔线。
// 构建过程是纯函数，相同输入得到深度相等的结果。
func Build(page content.Page, opts BuildOptions) (*Result, error) {
	if opts.Images == nil {
		return nil, errors.New("layout: 缺少图片原语 ImagePrimitive")
	}
	if opts.Fonts == nil {
		return nil, errors.New("layout: 缺少字体原语 FontPrimitive")
	}
	if err := content.Validate(page); err != nil {
		return nil, fmt.Errorf("页面内容不合法: %w", err)
	}

	face, err := opts.Fonts.Load(page.Font)
	if err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", page.Font.Family, err)
	}

	b := &builder{
		opts:     opts,
		face:     face,
		bindings: page.Bindings(),
	}

	mainStyle, err := style.Parse(page.Style)
	if err != nil {
		return nil, err
	}
	main := &Node{Tag: "main", Style: mainStyle}
	main.Append(Element("h1", Text(page.Title)))

	for _, section := range page.Sections {
		for _, panel := range section.Panels {
			node, err := b.panel(section.Kind, panel)
			if err != nil {
				return nil, fmt.Errorf("章节 %s: %w", section.Kind, err)
			}
			main.Append(node, Element("hr"))
		}
	}

	meta := opts.Meta
	if meta.Title == "" {
		meta.Title = page.Title
	}
	return &Result{
		Meta: meta,
		Head: Head{Title: page.Title, Fonts: []FontFace{face}},
		Body: main,
	}, nil
}

type builder struct {
	opts     BuildOptions
	face     FontFace
	bindings map[string]any
}

func (b *builder) panel(kind content.Kind, panel content.Panel) (*Node, error) {
	// 同一章节的两个面板共享 data-section，页面因此总能按三个章节分组。
	node := Element("section").SetAttr("data-section", kind.String())
	if b.opts.Debug.SectionIDs {
		node.SetAttr("data-role", string(panel.Role))
	}

	title, err := b.text(panel.Title)
	if err != nil {
		return nil, err
	}
	node.Append(&Node{Tag: "h2", Class: "title", Children: []*Node{Text(title)}})

	for _, para := range panel.Paragraphs {
		p, err := b.paragraph(para)
		if err != nil {
			return nil, err
		}
		node.Append(p)
	}

	if panel.Demo != nil {
		demo, err := b.demo(panel.Demo)
		if err != nil {
			return nil, fmt.Errorf("面板 %q 的演示元素: %w", panel.Title, err)
		}
		node.Append(demo)
	}
	return node, nil
}

func (b *builder) paragraph(para content.Paragraph) (*Node, error) {
	text, err := b.text(para.Text)
	if err != nil {
		return nil, err
	}
	decls, err := style.Parse(para.Style)
	if err != nil {
		return nil, err
	}
	p := &Node{Tag: "p", Style: decls, Children: []*Node{Text(text)}}
	if para.Link != nil {
		link := Element("a", Text(para.Link.Text)).SetAttr("href", para.Link.Href)
		p.Append(Text(" "), link)
	}
	return p, nil
}

func (b *builder) demo(el content.Element) (*Node, error) {
	switch d := el.(type) {
	case content.PlainImage:
		// 不经过图片原语：刻意不输出宽高，浏览器无法预留空间。
		img := Element("img").
			SetAttr("src", d.Image.Src).
			SetAttr("alt", d.Image.Alt)
		return img, nil
	case content.OptimizedImage:
		decls, err := style.Parse(d.Style)
		if err != nil {
			return nil, err
		}
		return b.opts.Images.Image(d.Image, decls)
	case content.StyledText:
		text, err := b.text(d.Text)
		if err != nil {
			return nil, err
		}
		decls, err := style.Parse(d.Style)
		if err != nil {
			return nil, err
		}
		class := d.Class
		if d.UsePageFont {
			class = joinClass(class, b.face.ClassName)
		}
		return &Node{Tag: "p", Class: class, Style: decls, Children: []*Node{Text(text)}}, nil
	default:
		return nil, fmt.Errorf("不支持的演示元素 %T", el)
	}
}

func (b *builder) text(s string) (string, error) {
	return binding.InterpolateStrict(s, b.bindings)
}

func joinClass(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
