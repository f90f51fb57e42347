package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ByLCY/perfpoc/config"
	"github.com/ByLCY/perfpoc/logger"
)

type ctxKey string

const appKey ctxKey = "app"

// app 保存一次命令执行所需的依赖。
type app struct {
	cfg config.Config
	log *logger.Logger
}

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the cobra root command and wires config and logging.
func NewRootCmd() *cobra.Command {
	var (
		cfgPath string
		logMode string
	)

	cmd := &cobra.Command{
		Use:           "perfpoc",
		Short:         "Render the Next.js performance analysis page as static HTML or PDF",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}
			if logMode != "" {
				v.Set("log.mode", logMode)
			}
			cfg, err := config.FromViper(v)
			if err != nil {
				return err
			}
			log, err := logger.NewWithWriter(cfg.LogMode, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx := context.WithValue(cmd.Context(), appKey, &app{cfg: cfg, log: log.With("cmd", cmd.Name())})
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a, err := getApp(cmd); err == nil {
				a.log.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (yaml|toml)")
	cmd.PersistentFlags().StringVar(&logMode, "log-mode", "", "logger mode: dev or prod (overrides log.mode)")

	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newPDFCmd())
	cmd.AddCommand(newTreeCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

func getApp(cmd *cobra.Command) (*app, error) {
	if cmd.Context() == nil {
		return nil, errors.New("命令上下文未初始化")
	}
	a, ok := cmd.Context().Value(appKey).(*app)
	if !ok {
		return nil, errors.New("命令上下文未初始化")
	}
	return a, nil
}
