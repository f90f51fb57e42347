package htmlrenderer

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	minhtml "github.com/tdewolff/minify/v2/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ByLCY/perfpoc/layout"
	"github.com/ByLCY/perfpoc/renderer"
)

// Renderer serializes a document tree into a static HTML5 page.
type Renderer struct {
	lang        string
	assetPrefix string
	minifier    *minify.M
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the HTML renderer.
type Options struct {
	Lang string
	// AssetPrefix is prepended to root-relative src/href values, e.g. a CDN origin.
	AssetPrefix string
	Minify      bool
}

// NewRenderer creates an HTML renderer.
func NewRenderer(opts Options) *Renderer {
	r := &Renderer{
		lang:        opts.Lang,
		assetPrefix: strings.TrimSuffix(opts.AssetPrefix, "/"),
	}
	if r.lang == "" {
		r.lang = "en"
	}
	if opts.Minify {
		m := minify.New()
		m.AddFunc("text/css", css.Minify)
		m.Add("text/html", &minhtml.Minifier{
			KeepDocumentTags: true,
			KeepEndTags:      true,
			KeepQuotes:       true,
		})
		r.minifier = m
	}
	return r
}

// Render renders the result into an HTML document.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil || result.Body == nil {
		return nil, errors.New("渲染结果为空")
	}

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element("html", html.Attribute{Key: "lang", Val: r.lang})
	root.AppendChild(r.head(result))

	body := element("body")
	main, err := r.convert(result.Body)
	if err != nil {
		return nil, err
	}
	body.AppendChild(main)
	root.AppendChild(body)
	doc.AppendChild(root)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("写入 HTML 失败: %w", err)
	}
	buf.WriteByte('\n')

	if r.minifier == nil {
		return buf.Bytes(), nil
	}
	out, err := r.minifier.Bytes("text/html", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("压缩 HTML 失败: %w", err)
	}
	return out, nil
}

func (r *Renderer) head(result *layout.Result) *html.Node {
	head := element("head")
	head.AppendChild(element("meta", html.Attribute{Key: "charset", Val: "utf-8"}))
	head.AppendChild(element("meta",
		html.Attribute{Key: "name", Val: "viewport"},
		html.Attribute{Key: "content", Val: "width=device-width, initial-scale=1"},
	))

	title := result.Head.Title
	if title == "" {
		title = result.Meta.Title
	}
	titleNode := element("title")
	titleNode.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	head.AppendChild(titleNode)

	if result.Meta.Subject != "" {
		head.AppendChild(element("meta",
			html.Attribute{Key: "name", Val: "description"},
			html.Attribute{Key: "content", Val: result.Meta.Subject},
		))
	}
	if len(result.Meta.Keywords) > 0 {
		head.AppendChild(element("meta",
			html.Attribute{Key: "name", Val: "keywords"},
			html.Attribute{Key: "content", Val: strings.Join(result.Meta.Keywords, ", ")},
		))
	}
	if result.Meta.Creator != "" {
		head.AppendChild(element("meta",
			html.Attribute{Key: "name", Val: "generator"},
			html.Attribute{Key: "content", Val: result.Meta.Creator},
		))
	}

	var rules []string
	for _, face := range result.Head.Fonts {
		for _, origin := range face.Preconnect {
			attrs := []html.Attribute{{Key: "rel", Val: "preconnect"}, {Key: "href", Val: origin}}
			if !strings.Contains(origin, "googleapis") {
				attrs = append(attrs, html.Attribute{Key: "crossorigin", Val: ""})
			}
			head.AppendChild(element("link", attrs...))
		}
		if face.Stylesheet != "" {
			head.AppendChild(element("link",
				html.Attribute{Key: "rel", Val: "stylesheet"},
				html.Attribute{Key: "href", Val: face.Stylesheet},
			))
		}
		rules = append(rules, fontRules(face)...)
	}
	if len(rules) > 0 {
		styleNode := element("style")
		styleNode.AppendChild(&html.Node{Type: html.TextNode, Data: strings.Join(rules, "\n")})
		head.AppendChild(styleNode)
	}
	return head
}

func (r *Renderer) convert(n *layout.Node) (*html.Node, error) {
	if n == nil {
		return nil, errors.New("文档树中存在空节点")
	}
	if n.IsText() {
		return &html.Node{Type: html.TextNode, Data: n.Text}, nil
	}

	var attrs []html.Attribute
	if n.Class != "" {
		attrs = append(attrs, html.Attribute{Key: "class", Val: n.Class})
	}
	for _, a := range n.Attrs {
		val := a.Value
		if a.Key == "src" || a.Key == "href" {
			val = r.resolveAsset(val)
		}
		attrs = append(attrs, html.Attribute{Key: a.Key, Val: val})
	}
	if len(n.Style) > 0 {
		attrs = append(attrs, html.Attribute{Key: "style", Val: n.Style.String()})
	}

	out := element(n.Tag, attrs...)
	if isVoid(out) && len(n.Children) > 0 {
		return nil, fmt.Errorf("空元素 <%s> 不能包含子节点", n.Tag)
	}
	for _, c := range n.Children {
		child, err := r.convert(c)
		if err != nil {
			return nil, err
		}
		out.AppendChild(child)
	}
	return out, nil
}

func (r *Renderer) resolveAsset(v string) string {
	if r.assetPrefix == "" || !strings.HasPrefix(v, "/") || strings.HasPrefix(v, "//") {
		return v
	}
	return r.assetPrefix + v
}

// fontRules 生成字体句柄对应的 CSS：回退字体声明与可复用的类规则。
func fontRules(face layout.FontFace) []string {
	var rules []string
	for _, family := range face.Stack {
		if strings.HasSuffix(family, " Fallback") {
			rules = append(rules, fmt.Sprintf("@font-face { font-family: %s; src: local(\"Arial\"); }", quoteFamily(family)))
		}
	}
	if face.ClassName != "" {
		families := make([]string, 0, len(face.Stack))
		for _, f := range face.Stack {
			families = append(families, quoteFamily(f))
		}
		rules = append(rules, fmt.Sprintf(".%s { font-family: %s; font-style: normal; }", face.ClassName, strings.Join(families, ", ")))
	}
	return rules
}

var genericFamilies = map[string]bool{
	"serif": true, "sans-serif": true, "monospace": true, "cursive": true,
	"fantasy": true, "system-ui": true, "ui-sans-serif": true, "ui-serif": true,
}

func quoteFamily(f string) string {
	if genericFamilies[f] {
		return f
	}
	return "'" + strings.ReplaceAll(f, "'", "\\'") + "'"
}

func element(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

func isVoid(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Area, atom.Br, atom.Col, atom.Embed, atom.Hr, atom.Img, atom.Input,
		atom.Link, atom.Meta, atom.Source, atom.Track, atom.Wbr:
		return true
	default:
		return false
	}
}
