// Package commands implements the CLI command structure using Cobra.
package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/petal-labs/calla/cli/config"
)

// ConfigLoader loads CLI config from a path.
type ConfigLoader func(path string) (*config.Config, error)

// AppOption customizes App dependencies.
type AppOption func(*App)

// App holds CLI state and runtime dependencies.
type App struct {
	root *cobra.Command

	loadConfig ConfigLoader
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer

	cfgFile     string
	profileName string
	jsonOutput  bool
	verbose     bool

	cfg    *config.Config
	logger *zap.Logger
}

// WithConfigLoader injects a config loader dependency.
func WithConfigLoader(loader ConfigLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.loadConfig = loader
		}
	}
}

// WithIO injects process I/O streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

// NewApp creates a new CLI app with default dependencies.
func NewApp(opts ...AppOption) *App {
	a := &App{
		loadConfig: config.LoadConfig,
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.root = a.newRootCommand()
	return a
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "calla",
		Short: "Calla - streaming tool-call assembly debugger",
		Long: `Calla assembles and validates tool calls emitted incrementally by LLM
providers during response streaming.

Use Calla to replay captured delta streams through the assembly pipeline and
inspect which calls validate under a given capability profile.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		SilenceUsage: true,
	}

	// Global flags available to all commands.
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.calla/config.yaml)")
	root.PersistentFlags().StringVar(&a.profileName, "profile", "", "capability profile (built-in or from config)")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "emit JSON output")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(a.newReplayCommand())
	root.AddCommand(a.newProfilesCommand())
	root.AddCommand(a.newVersionCommand())

	return root
}

// Execute runs the root command.
func (a *App) Execute() error {
	return a.root.Execute()
}

func (a *App) initConfig() error {
	path := a.cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := a.loadConfig(path)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.profileName == "" && cfg.DefaultProfile != "" {
		a.profileName = cfg.DefaultProfile
	}

	a.logger = zap.NewNop()
	if a.verbose {
		sink := zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(a.stderr),
			zapcore.DebugLevel,
		)
		a.logger = zap.New(sink)
	}

	return nil
}

// Execute runs the default app root command.
func Execute() error {
	return NewApp().Execute()
}
