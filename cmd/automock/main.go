package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KimMachineGun/automock/internal/automock"
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "automock [flags] FILE...",
		Short: "Generate mocks for declarations annotated with #[automock]",
		Long: `automock reads declaration files and generates a mock for every trait,
impl block, module and extern block annotated with #[automock].

A bare #[automock] takes its directives from the attr setting.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			color := useColor(cfg.Color, os.Stderr)

			return run(cmd.Context(), cfg, args, cmd.OutOrStdout(), cmd.ErrOrStderr(), color)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./"+defaultConfigFile+")")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("header", defaultHeader, "header written before the mocks")
	flags.IntP("jobs", "j", 4, "number of files expanded concurrently")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.String("color", "auto", "colorize diagnostics (auto|always|never)")
	flags.String("attr", "", "directives for declarations annotated with a bare #[automock]")

	_ = cmd.RegisterFlagCompletionFunc("color", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "always", "never"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func run(ctx context.Context, cfg *Config, paths []string, stdout, stderr io.Writer, color bool) error {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	e, err := newExpander(automock.New(automock.WithLogger(logger)), cfg.Attr, logger)
	if err != nil {
		return err
	}

	results, err := e.expandFiles(ctx, paths, cfg.Jobs)
	if err != nil {
		return fmt.Errorf("%w: %w", errExpansionFailed, err)
	}

	styles := newDiagnosticStyles(stderr, color)
	failed := 0
	for _, r := range results {
		if r.err == nil {
			continue
		}
		fmt.Fprint(stderr, r.err.Render(styles))
		failed++
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files failed", errExpansionFailed, failed, len(paths))
	}

	out, n := joinMocks(cfg.Header, results)
	if cfg.Output == "" {
		_, err = io.WriteString(stdout, out)
		if err != nil {
			return fmt.Errorf("cannot write mocks: %w", err)
		}
		return nil
	}

	err = os.WriteFile(cfg.Output, []byte(out), 0o644)
	if err != nil {
		return fmt.Errorf("cannot write %s: %w", cfg.Output, err)
	}

	logger.Info("generated", "path", cfg.Output, "mocks", n)

	return nil
}
