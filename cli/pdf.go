package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ByLCY/perfpoc/layout"
	canvasrenderer "github.com/ByLCY/perfpoc/renderer/canvas"
)

func newPDFCmd() *cobra.Command {
	var (
		out      string
		debugOut string
	)
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Render the page to an A4 PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			target := out
			if target == "" {
				target = a.cfg.PDFOut
			}
			result, err := buildPage(a.cfg, false)
			if err != nil {
				return err
			}

			if debugOut != "" {
				if err := os.MkdirAll(filepath.Dir(debugOut), 0o755); err != nil {
					return fmt.Errorf("创建调试目录失败: %w", err)
				}
				if err := layout.WriteDebugJSON(result, debugOut); err != nil {
					return fmt.Errorf("输出调试 JSON 失败: %w", err)
				}
			}

			r := canvasrenderer.NewRenderer(a.cfg.AssetsDir)
			if err := renderTo(r, result, target, a.log); err != nil {
				return err
			}
			a.log.Info("pdf generated", "path", target, "assets", a.cfg.AssetsDir)
			fmt.Fprintf(cmd.OutOrStdout(), "已生成 PDF：%s\n", target)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "PDF output path (defaults to pdf.out)")
	cmd.Flags().StringVar(&debugOut, "debug", "", "also write the document tree as JSON to this path")
	return cmd
}
