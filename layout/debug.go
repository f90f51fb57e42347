package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EncodeDebug 以 json 或 yaml 格式输出文档树，便于调试或比对。
func EncodeDebug(w io.Writer, res *Result, format string) error {
	if res == nil {
		return nil
	}
	switch strings.ToLower(format) {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("不支持的调试输出格式 %q", format)
	}
}

// WriteDebugJSON 将文档树输出为 JSON 文件。
func WriteDebugJSON(res *Result, path string) error {
	return writeDebugFile(res, path, "json")
}

// WriteDebugYAML 将文档树输出为 YAML 文件。
func WriteDebugYAML(res *Result, path string) error {
	return writeDebugFile(res, path, "yaml")
}

func writeDebugFile(res *Result, path, format string) error {
	if res == nil {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeDebug(f, res, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
