package fonts

import (
	"fmt"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

// Load 返回与字重最接近的内置 Go 字体数据（TTF）。
// 400 及以下使用 Regular，500/600 使用 Medium，700 及以上使用 Bold。
func Load(weight int) ([]byte, error) {
	switch {
	case weight <= 0:
		return nil, fmt.Errorf("字重 %d 不合法", weight)
	case weight <= 400:
		return goregular.TTF, nil
	case weight < 700:
		return gomedium.TTF, nil
	case weight <= 900:
		return gobold.TTF, nil
	default:
		return nil, fmt.Errorf("字重 %d 超出范围", weight)
	}
}

// Name 返回字重对应的内置字体名称，用于缓存键与调试输出。
func Name(weight int) string {
	switch {
	case weight <= 400:
		return "Go Regular"
	case weight < 700:
		return "Go Medium"
	default:
		return "Go Bold"
	}
}
