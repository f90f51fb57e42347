package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config 是合并默认值、配置文件与环境变量之后的最终配置。
type Config struct {
	OutputDir string
	Minify    bool
	AssetsDir string
	PDFOut    string
	Lang      string
	LogMode   string
	// FontFallback 追加在页面字体之后的回退字族
	FontFallback []string
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the configuration keys, their defaults and meanings.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "output.dir", Default: "out", Comment: "Directory that receives index.html and copied assets"},
		{Key: "output.minify", Default: true, Comment: "Minify the generated HTML and inline CSS"},
		{Key: "assets.dir", Default: "public", Comment: "Directory that static assets such as /no-optimized-cat.jpg are resolved against"},
		{Key: "pdf.out", Default: filepath.Join("out", "page.pdf"), Comment: "Output path of the pdf command"},
		{Key: "site.lang", Default: "en", Comment: "Value of the <html lang> attribute"},
		{Key: "font.fallback", Default: []string{"sans-serif"}, Comment: "Generic families appended after the page font and its metric fallback (comma-separated in env)"},
		{Key: "log.mode", Default: "dev", Comment: "Logger mode: dev (console) or prod (JSON)"},
	}
}

func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// A config file set upstream via SetConfigFile must exist; the search paths are optional.
func Load(_ context.Context, v *viper.Viper) error {
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("perfpoc")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "perfpoc"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "perfpoc"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	// PERFPOC_OUTPUT_DIR 覆盖 output.dir，依此类推
	v.SetEnvPrefix("perfpoc")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return nil
}

// FromViper 读取类型化配置并校验。
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		OutputDir: strings.TrimSpace(v.GetString("output.dir")),
		Minify:    v.GetBool("output.minify"),
		AssetsDir: strings.TrimSpace(v.GetString("assets.dir")),
		PDFOut:    strings.TrimSpace(v.GetString("pdf.out")),
		Lang:      strings.TrimSpace(v.GetString("site.lang")),
		LogMode:   strings.ToLower(strings.TrimSpace(v.GetString("log.mode"))),

		FontFallback: splitList(v.GetStringSlice("font.fallback")),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate 汇总所有问题后一次性返回。
func (c Config) Validate() error {
	var problems []string
	if c.OutputDir == "" {
		problems = append(problems, "output.dir is required")
	}
	if len(c.FontFallback) == 0 {
		problems = append(problems, "font.fallback must name at least one family")
	}
	if c.PDFOut == "" {
		problems = append(problems, "pdf.out is required")
	}
	if c.Lang == "" {
		problems = append(problems, "site.lang is required")
	}
	switch c.LogMode {
	case "dev", "development", "prod", "production":
	default:
		problems = append(problems, fmt.Sprintf("log.mode %q is not one of dev, prod", c.LogMode))
	}
	if len(problems) > 0 {
		return fmt.Errorf("配置无效: %s", strings.Join(problems, "; "))
	}
	return nil
}

// splitList 展开逗号分隔的取值，便于用 PERFPOC_FONT_FALLBACK="Arial,sans-serif" 覆盖。
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
