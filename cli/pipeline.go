package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/perfpoc/config"
	"github.com/ByLCY/perfpoc/content"
	"github.com/ByLCY/perfpoc/layout"
	"github.com/ByLCY/perfpoc/logger"
	"github.com/ByLCY/perfpoc/primitive"
	"github.com/ByLCY/perfpoc/renderer"
)

var documentMeta = layout.DocumentMeta{
	Subject:  "Image dimensions, font display and rendering strategy in Next.js",
	Creator:  "perfpoc",
	Keywords: []string{"next.js", "performance", "cls", "font-display", "ssr"},
}

// buildPage 串联内容、布局与原语，得到文档树。
func buildPage(cfg config.Config, debug bool) (*layout.Result, error) {
	result, err := layout.Build(content.Default(), layout.BuildOptions{
		Images: primitive.Image{},
		Fonts:  primitive.GoogleFonts{Fallback: cfg.FontFallback},
		Meta:   documentMeta,
		Debug:  layout.DebugOptions{SectionIDs: debug},
	})
	if err != nil {
		return nil, fmt.Errorf("布局计算失败: %w", err)
	}
	return result, nil
}

// renderTo 渲染并写入文件，必要时创建父目录。渲染失败会同时记录错误日志。
func renderTo(r renderer.Renderer, result *layout.Result, path string, log *logger.Logger) error {
	data, err := r.Render(result)
	if err != nil {
		log.Error("render failed", "path", path, "err", err)
		return fmt.Errorf("渲染失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入文件 %s 失败: %w", path, err)
	}
	return nil
}

// referencedAssets 返回文档树中以 / 开头的本地资源路径，去重且保持出现顺序。
func referencedAssets(result *layout.Result) []string {
	var out []string
	seen := map[string]bool{}
	result.Body.Walk(func(n *layout.Node) bool {
		for _, key := range []string{"src", "href"} {
			v, ok := n.Attr(key)
			if !ok || !strings.HasPrefix(v, "/") || strings.HasPrefix(v, "//") || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
		return true
	})
	return out
}

// copyAssets 将引用到的资源从 assets 目录复制到输出目录。缺失的资源只记录警告。
func copyAssets(cfg config.Config, result *layout.Result, log *logger.Logger) (int, error) {
	copied := 0
	for _, ref := range referencedAssets(result) {
		rel := filepath.FromSlash(strings.TrimPrefix(ref, "/"))
		src := filepath.Join(cfg.AssetsDir, rel)
		dst := filepath.Join(cfg.OutputDir, rel)
		same, err := sameFile(src, dst)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return copied, fmt.Errorf("检查资源 %s 失败: %w", ref, err)
		}
		if same {
			// assets 与输出目录重合时，资源已在原位
			log.Debug("asset already in place", "src", ref, "path", dst)
			continue
		}
		if err := copyFile(src, dst); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Warn("asset missing, page will reference a broken path", "src", ref, "path", src)
				continue
			}
			return copied, fmt.Errorf("复制资源 %s 失败: %w", ref, err)
		}
		log.Debug("asset copied", "src", ref, "to", dst)
		copied++
	}
	return copied, nil
}

// sameFile 判断 src 与 dst 是否指向同一文件；dst 不存在时返回 false。
func sameFile(src, dst string) (bool, error) {
	si, err := os.Stat(src)
	if err != nil {
		return false, err
	}
	di, err := os.Stat(dst)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return os.SameFile(si, di), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
