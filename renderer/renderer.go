package renderer

import "github.com/ByLCY/perfpoc/layout"

// Renderer 将文档树输出为最终文件，例如 HTML 或 PDF。
// Render 返回生成的二进制数据以及可能的错误；相同输入必须得到相同输出。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// Func 让普通函数满足 Renderer 接口。
type Func func(result *layout.Result) ([]byte, error)

// Render 实现 Renderer。
func (f Func) Render(result *layout.Result) ([]byte, error) { return f(result) }
