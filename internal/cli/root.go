package cli

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"conche/internal/app"
	"conche/internal/core"
	"conche/internal/types"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "CONCHE"

type RootConfig struct {
	ConfigFile    string
	LogLevel      string
	WorkDir       string
	BuildDir      string
	SourcesDir    string
	Jobs          int
	Compiler      string
	CompilerFlags []string
	IndexURI      string
	IndexBranch   string
	MetricsFile   string
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	root := newRootCommand()
	root.SilenceErrors = true
	root.SilenceUsage = true
	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg(errorMessage(err))
		return exitCodeForError(err)
	}
	return 0
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:     "conche",
		Short:   "Swift package dependency resolver and build tool",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			logger := setupLogging(viper.GetString("log_level"))
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	flags.StringVar(&cfg.WorkDir, "work-dir", ".", "Project directory holding the root podspec")
	flags.StringVar(&cfg.BuildDir, "build-dir", types.DefaultBuildDir, "Build output directory")
	flags.StringVar(&cfg.SourcesDir, "sources-dir", "", "Directory for specification index checkouts")
	flags.IntVarP(&cfg.Jobs, "jobs", "j", 1, "Number of build tasks to run concurrently")
	flags.StringVar(&cfg.Compiler, "compiler", types.DefaultCompiler, "Swift compiler binary")
	flags.StringSliceVar(&cfg.CompilerFlags, "compiler-flag", nil, "Extra flag passed to every compiler invocation")
	flags.StringVar(&cfg.IndexURI, "index-uri", types.DefaultIndexURI, "Specification index git repository")
	flags.StringVar(&cfg.IndexBranch, "index-branch", types.DefaultIndexBranch, "Specification index branch")
	flags.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file after each run")

	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("work_dir", flags.Lookup("work-dir"))
	_ = viper.BindPFlag("build_dir", flags.Lookup("build-dir"))
	_ = viper.BindPFlag("sources_dir", flags.Lookup("sources-dir"))
	_ = viper.BindPFlag("jobs", flags.Lookup("jobs"))
	_ = viper.BindPFlag("compiler", flags.Lookup("compiler"))
	_ = viper.BindPFlag("compiler_flags", flags.Lookup("compiler-flag"))
	_ = viper.BindPFlag("index_uri", flags.Lookup("index-uri"))
	_ = viper.BindPFlag("index_branch", flags.Lookup("index-branch"))
	_ = viper.BindPFlag("metrics_file", flags.Lookup("metrics-file"))

	cmd.AddCommand(newBuildCommand())
	cmd.AddCommand(newTestCommand())
	cmd.AddCommand(newResolveCommand())
	cmd.AddCommand(newLockCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newInspectCommand())
	cmd.AddCommand(newPruneCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("conche")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/conche")
	// A missing default config file is not an error.
	_ = viper.ReadInConfig()
	return nil
}

func setupLogging(level string) zerolog.Logger {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	return log.Logger
}

// loadConfig assembles the service configuration from viper, which already
// merges flags, CONCHE_* variables and the config file.
func loadConfig() types.Config {
	return types.Config{
		WorkDir:       viper.GetString("work_dir"),
		BuildDir:      viper.GetString("build_dir"),
		SourcesDir:    viper.GetString("sources_dir"),
		IndexURI:      viper.GetString("index_uri"),
		IndexBranch:   viper.GetString("index_branch"),
		Compiler:      viper.GetString("compiler"),
		CompilerFlags: viper.GetStringSlice("compiler_flags"),
		Jobs:          viper.GetInt("jobs"),
		MetricsFile:   viper.GetString("metrics_file"),
	}
}

func newAppService() app.Service {
	return app.NewService(loadConfig())
}

func exitCodeForError(err error) int {
	var resolution *core.ResolutionError
	if errors.As(err, &resolution) {
		switch resolution.Kind {
		case core.ResolutionConflict, core.ResolutionCircularDependency:
			return 3
		default:
			return 4
		}
	}
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists, errbuilder.CodeFailedPrecondition:
		return 2
	case errbuilder.CodeNotFound:
		return 4
	case errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
