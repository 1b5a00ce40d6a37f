package main

import (
	"fmt"
	"strings"

	"github.com/madib-from-georgia/checklistgen/internal/parser"
	"github.com/spf13/cobra"
)

func (a *app) outlineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outline <input-path>",
		Short: "Print the heading outline and how each heading is classified",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError{fmt.Sprintf("expected <input-path>, got %d argument(s)", len(args))}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			base := a.cfg.BaseDepth
			detected := "configured"
			if base == 0 {
				base = parser.DetectBaseDepth(src)
				detected = "detected"
			}
			layout, err := parser.NewLayout(base)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "base depth: %d (%s)\n", base, detected)
			for _, h := range parser.Outline(src) {
				marker := strings.Repeat("#", h.Level)
				role := layout.Classify(marker + " " + h.Text)
				fmt.Fprintf(out, "%5d  %s%s %s", h.Line, strings.Repeat("  ", h.Level-1), marker, h.Text)
				if role != parser.KindNone {
					fmt.Fprintf(out, "  [%s]", role)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
