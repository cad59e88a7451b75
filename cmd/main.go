package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ngld/ktbind/pkg"
	"github.com/ngld/ktbind/pkg/config"
	"github.com/ngld/ktbind/pkg/fetch"
	"github.com/ngld/ktbind/pkg/pipeline"
	"github.com/ngld/ktbind/pkg/runner"
)

const configFile = "ktbind.toml"

var rootCmd = &cobra.Command{
	Use:   "ktbind",
	Short: "Builds the Kotlin bindings for rpc_example",
	Long: `Builds the native library with cargo, generates Kotlin bindings with uniffi-bindgen,
fetches the vendored jars, compiles the bindings into a jar and runs the test scripts.

Every command is printed before it runs. Use --dry to only print them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.stop()

		p := s.pipeline()
		err = p.Run(s.ctx)
		if err != nil {
			pkg.PrintError(fmt.Sprintf("%s failed", p.State().Title()))
			return err
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolP("dry", "n", false, "dry run; only print the commands, don't execute anything")
	flags.String("log-level", "", "log level (debug, info, warn, error); overrides KTBIND_LOG_LEVEL")
	flags.Bool("log-json", false, "print log events as JSON lines")
	flags.String("downloader", "", "how vendored jars are fetched (curl or http); overrides KTBIND_DOWNLOADER")
}

// session bundles everything a command needs for one invocation
type session struct {
	ctx    context.Context
	stop   context.CancelFunc
	cfg    *config.Config
	root   string
	dryRun bool
	runner *runner.ExecRunner
}

// newSession loads the configuration, applies the command line flags on top of it and
// attaches a logger to a context that is canceled on SIGINT.
func newSession(cmd *cobra.Command) (*session, error) {
	dryRun, err := cmd.Flags().GetBool("dry")
	if err != nil {
		return nil, err
	}

	root, err := pkg.GetProjectRoot()
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(cmd, filepath.Join(root, configFile))
	if err != nil {
		return nil, err
	}

	logger := newLogger(os.Stderr, cfg)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	ctx = runner.WithLogger(ctx, &logger)

	return &session{
		ctx:    ctx,
		stop:   stop,
		cfg:    cfg,
		root:   root,
		dryRun: dryRun,
		runner: runner.NewExecRunner(dryRun),
	}, nil
}

// downloader returns nil for curl; the pipeline then runs the curl named in the manifest
func (s *session) downloader() fetch.Downloader {
	if s.cfg.Downloader == config.DownloaderHTTP {
		return &fetch.HTTPDownloader{Progress: os.Stderr, DryRun: s.dryRun}
	}
	return nil
}

func (s *session) pipeline() *pipeline.Pipeline {
	return pipeline.New(pipeline.Options{
		Root:       s.root,
		Classpath:  s.cfg.Classpath,
		Runner:     s.runner,
		Downloader: s.downloader(),
		DryRun:     s.dryRun,
		OnStep: func(state pipeline.State) {
			pkg.PrintTask(state.Title())
		},
	})
}

func loadConfig(cmd *cobra.Command, files ...string) (*config.Config, error) {
	cfg, loader := config.Loader(files...)
	if err := loader.Load(); err != nil {
		return nil, eris.Wrap(err, "Failed to load configuration")
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-json") {
		cfg.LogJSON, _ = flags.GetBool("log-json")
	}
	if flags.Changed("downloader") {
		cfg.Downloader, _ = flags.GetString("downloader")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(out io.Writer, cfg *config.Config) zerolog.Logger {
	var logger zerolog.Logger
	if cfg.LogJSON {
		logger = zerolog.New(out).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(NewConsoleWriter(out))
	}
	return logger.Level(cfg.ZerologLevel())
}

// Execute runs the root command and exits with code 1 on failure
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

func formatError(err error) string {
	return pkg.NewColorize().Color("[red][bold][ERROR][reset] ") + eris.ToString(err, os.Getenv("KTBIND_DEBUG") != "")
}
