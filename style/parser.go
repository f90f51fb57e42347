package style

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	styleLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Comment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.\d+|\.\d+|\d+)(?:px|rem|em|pt|mm|cm|in|vh|vw|ms|s|%)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"|'(?:\\.|[^'])*'`},
		// url(...) 作为整体，允许其中出现 : / . 等字符
		{Name: "URL", Pattern: `(?i:url)\(\s*(?:"(?:\\.|[^"])*"|'(?:\\.|[^'])*'|[^)"'\s]*)\s*\)`},
		{Name: "Ident", Pattern: `-?[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[:;,()/!*+-]`},
	})

	blockParser = participle.MustBuild[block](
		participle.Lexer(styleLexer),
		participle.Elide("Whitespace", "Comment"),
	)
)

// block 是内联样式字符串的根节点。
type block struct {
	Declarations []*declaration `parser:"';'* ( @@ ';'* )*"`
}

type declaration struct {
	Property string   `parser:"@Ident ':'"`
	Terms    []string `parser:"@( URL | Number | Ident | Color | String | ',' | '/' | '(' | ')' | '!' | '*' | '+' | '-' )+"`
}

// Declaration 是一条 CSS 声明，属性名统一为小写。
type Declaration struct {
	Property string `json:"property" yaml:"property"`
	Value    string `json:"value" yaml:"value"`
}

// Declarations 保持作者书写顺序。
type Declarations []Declaration

// Parse 解析形如 "max-width: 100%; height: auto" 的内联样式。
// 值中的冒号只能出现在字符串或 url(...) 之内。
func Parse(input string) (Declarations, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	b, err := blockParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("解析样式 %q 失败: %w", input, err)
	}
	out := make(Declarations, 0, len(b.Declarations))
	for _, d := range b.Declarations {
		out = out.Set(strings.ToLower(d.Property), joinTerms(d.Terms))
	}
	return out, nil
}

// MustParse 用于解析编译期固定的样式，失败时 panic。
func MustParse(input string) Declarations {
	d, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return d
}

// Get 返回属性值，属性不存在时 ok 为 false。
func (d Declarations) Get(property string) (string, bool) {
	property = strings.ToLower(property)
	for _, decl := range d {
		if decl.Property == property {
			return decl.Value, true
		}
	}
	return "", false
}

// Set 返回设置后的新声明列表；已存在的属性原位覆盖，否则追加到末尾。
func (d Declarations) Set(property, value string) Declarations {
	property = strings.ToLower(property)
	out := make(Declarations, len(d), len(d)+1)
	copy(out, d)
	for i := range out {
		if out[i].Property == property {
			out[i].Value = value
			return out
		}
	}
	return append(out, Declaration{Property: property, Value: value})
}

// Merge 将 other 叠加在 d 之上，后者优先。
func (d Declarations) Merge(other Declarations) Declarations {
	out := d
	for _, decl := range other {
		out = out.Set(decl.Property, decl.Value)
	}
	return out
}

// String 输出规范形式 "prop: value; prop: value"。
func (d Declarations) String() string {
	parts := make([]string, 0, len(d))
	for _, decl := range d {
		parts = append(parts, decl.Property+": "+decl.Value)
	}
	return strings.Join(parts, "; ")
}

func joinTerms(terms []string) string {
	var b strings.Builder
	for i, t := range terms {
		switch {
		case i == 0, t == ",", t == "(", t == ")", terms[i-1] == "(":
		default:
			b.WriteByte(' ')
		}
		b.WriteString(t)
	}
	return b.String()
}
