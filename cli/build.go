package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ByLCY/perfpoc/layout"
	htmlrenderer "github.com/ByLCY/perfpoc/renderer/html"
)

func newBuildCmd() *cobra.Command {
	var (
		debug       bool
		assetPrefix string
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate index.html and copy referenced assets into the output dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			result, err := buildPage(a.cfg, debug)
			if err != nil {
				return err
			}

			r := htmlrenderer.NewRenderer(htmlrenderer.Options{
				Lang:        a.cfg.Lang,
				AssetPrefix: assetPrefix,
				Minify:      a.cfg.Minify,
			})
			index := filepath.Join(a.cfg.OutputDir, "index.html")
			if err := renderTo(r, result, index, a.log); err != nil {
				return err
			}

			copied, err := copyAssets(a.cfg, result, a.log)
			if err != nil {
				return err
			}

			if debug {
				tree := filepath.Join(a.cfg.OutputDir, "tree.yaml")
				if err := layout.WriteDebugYAML(result, tree); err != nil {
					return fmt.Errorf("输出调试 YAML 失败: %w", err)
				}
				a.log.Debug("debug tree written", "path", tree)
			}

			a.log.Info("site generated", "index", index, "assets", copied, "minify", a.cfg.Minify)
			fmt.Fprintf(cmd.OutOrStdout(), "已生成页面：%s\n", index)
			return nil
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "tag sections with data-role and write tree.yaml next to index.html")
	cmd.Flags().StringVar(&assetPrefix, "asset-prefix", "", "origin prepended to root-relative asset URLs, e.g. a CDN")
	return cmd
}
