// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ManuGH/xmltv-new/internal/config"
	"github.com/ManuGH/xmltv-new/internal/jobs"
	xglog "github.com/ManuGH/xmltv-new/internal/log"
	"github.com/ManuGH/xmltv-new/internal/validate"
	"github.com/ManuGH/xmltv-new/internal/version"
)

const (
	exitOK    = 0
	exitRun   = 1
	exitUsage = 2
)

// usageError marks command line mistakes (exit status 2).
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

type runFlags struct {
	config   string
	base     string
	output   string
	logLevel string
}

// execute runs the command line and maps the outcome to an exit status.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)

	var uerr usageError
	if errors.As(err, &uerr) {
		fmt.Fprintln(stderr, "Run 'xmltv-new --help' for usage.")
		return exitUsage
	}
	return exitRun
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &runFlags{}

	root := &cobra.Command{
		Use:   "xmltv-new",
		Short: "List upcoming new programmes from XMLTV snapshots",
		Long: `Scans a directory of daily XMLTV snapshots (tv-YYYYMMDD.xmltv), picks the
programmes marked <new/> on the configured channels and prints them as a
grid table (default) or an Atom feed.`,
		Args:          noArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMode(cmd, flags, jobs.ModeTable)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&flags.config, "config", config.DefaultConfigName, "configuration file, relative to --base")
	pf.StringVar(&flags.base, "base", "", "base directory for --config (default: working directory)")
	pf.StringVarP(&flags.output, "output", "o", "", "write the document atomically to `FILE` instead of stdout")
	pf.StringVar(&flags.logLevel, "log-level", "", "override the configured log level (debug|info|warn|error)")

	root.AddCommand(
		newModeCmd("table", "Print new programmes as a grid table, earliest first", flags, jobs.ModeTable),
		newModeCmd("feed", "Print new programmes as an Atom feed, latest first", flags, jobs.ModeFeed),
		newVersionCmd(),
	)

	return root
}

// noArgs rejects positional arguments such as "xmltv-new tabel" as usage errors.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return usageError{err: err}
	}
	return nil
}

func newModeCmd(name, short string, flags *runFlags, mode jobs.Mode) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMode(cmd, flags, mode)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  noArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func runMode(cmd *cobra.Command, flags *runFlags, mode jobs.Mode) error {
	ctx := cmd.Context()

	if flags.logLevel != "" {
		if _, err := validate.ParseLogLevel(flags.logLevel); err != nil {
			return usageError{err: fmt.Errorf("--log-level %q: %w", flags.logLevel, err)}
		}
	}

	// Safe defaults until the configuration is loaded.
	xglog.Configure(xglog.Config{
		Level:   flags.logLevel,
		Output:  cmd.ErrOrStderr(),
		Version: version.Version,
	})

	base := flags.base
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determine working directory: %w", err)
		}
		base = wd
	}
	configPath := config.ResolvePath(base, flags.config)

	cfg, err := config.NewLoader(configPath, version.Version).Load()
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	xglog.Configure(xglog.Config{
		Level:   level,
		Output:  cmd.ErrOrStderr(),
		Version: cfg.Version,
	})
	logger := xglog.WithComponent("cli")
	logger.Debug().
		Str(xglog.FieldConfig, configPath).
		Str(xglog.FieldDataDir, cfg.DataDir).
		Str(xglog.FieldMode, mode.String()).
		Msg("configuration loaded")

	return jobs.Run(ctx, cfg, mode, jobs.Deps{
		Stdout:     cmd.OutOrStdout(),
		OutputPath: flags.output,
	})
}
