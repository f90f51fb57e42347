package cli

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/ByLCY/perfpoc/layout"
	"github.com/ByLCY/perfpoc/renderer"
)

// debugRenderer 把文档树编码为 json/yaml，与 HTML、PDF 渲染器走同一接口。
func debugRenderer(format string) renderer.Renderer {
	return renderer.Func(func(result *layout.Result) ([]byte, error) {
		var buf bytes.Buffer
		if err := layout.EncodeDebug(&buf, result, format); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
}

func newTreeCmd() *cobra.Command {
	var (
		format string
		debug  bool
	)
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the document tree as JSON or YAML",
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
			data, err := debugRenderer(format).Render(result)
			if err != nil {
				a.log.Error("tree encoding failed", "format", format, "err", err)
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	cmd.Flags().BoolVar(&debug, "debug", false, "include data-role attributes")
	return cmd
}
