package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/madib-from-georgia/checklistgen/internal/config"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// usageError marks a bad invocation; it is reported together with usage.
type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// app carries what every command needs.
type app struct {
	cfg    config.Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	a := &app{cfg: cfg, stdin: stdin, stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteC()
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprint(stderr, cmd.UsageString())
		}
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	var (
		baseDepth int
		dedupe    bool
		logLevel  string
	)

	root := &cobra.Command{
		Use:   "checklistgen <input-path> <output-path>",
		Short: "Convert a Markdown portrait checklist into structured JSON",
		Long: `checklistgen reads a Markdown checklist document and writes the
Portrait tree (sections, subsections, question groups, questions and
answers) as pretty-printed JSON.

Use "-" as input-path to read standard input, or as output-path to
write the JSON to standard output.`,
		Example: `  checklistgen portrait.md portrait.json
  checklistgen --base-depth 3 portrait.md portrait.json
  cat portrait.md | checklistgen - - > portrait.json`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("log-level") {
				a.cfg.LogLevel = logLevel
			}
			if cmd == cmd.Root() && len(args) == 0 {
				// Bare invocation only prints help.
				return nil
			}
			return a.cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			if len(args) != 2 {
				return usageError{fmt.Sprintf("expected <input-path> and <output-path>, got %d argument(s)", len(args))}
			}
			if cmd.Flags().Changed("base-depth") {
				a.cfg.BaseDepth = baseDepth
			}
			if cmd.Flags().Changed("dedupe-ids") {
				a.cfg.DedupeIDs = dedupe
			}
			if err := a.cfg.Validate(); err != nil {
				return usageError{err.Error()}
			}
			return a.convert(args[0], args[1])
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err.Error()}
	})

	root.Flags().IntVar(&baseDepth, "base-depth", a.cfg.BaseDepth, "heading level of sections: 2, 3, 4, or 0 to detect")
	root.Flags().BoolVar(&dedupe, "dedupe-ids", a.cfg.DedupeIDs, "suffix repeated sibling IDs with -2, -3, ...")
	root.PersistentFlags().StringVar(&logLevel, "log-level", a.cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(a.serveCmd())
	root.AddCommand(a.outlineCmd())
	return root
}

// logger writes structured logs to standard error.
func (a *app) logger() *slog.Logger {
	level, err := a.cfg.Level()
	if err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(a.cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(a.stderr, opts))
	}
	return slog.New(slog.NewTextHandler(a.stderr, opts))
}
