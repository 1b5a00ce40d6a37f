package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/madib-from-georgia/checklistgen/internal/checklist"
	"github.com/madib-from-georgia/checklistgen/internal/parser"
)

const stdStream = "-"

func (a *app) newParser(log *slog.Logger) (*parser.Parser, error) {
	opts := []parser.Option{parser.WithLogger(log)}
	if a.cfg.BaseDepth != 0 {
		layout, err := parser.NewLayout(a.cfg.BaseDepth)
		if err != nil {
			return nil, err
		}
		opts = append(opts, parser.WithLayout(layout))
	}
	return parser.New(opts...), nil
}

// convert reads input, converts it and writes the JSON tree to output. The
// output file is replaced atomically, so a failed run leaves it untouched.
func (a *app) convert(input, output string) error {
	log := a.logger()

	src, err := a.readInput(input)
	if err != nil {
		return err
	}

	p, err := a.newParser(log)
	if err != nil {
		return err
	}
	start := time.Now()
	portrait, report := p.Convert(src)
	if a.cfg.DedupeIDs {
		checklist.DedupeIDs(portrait)
	}
	log.Debug("converted document",
		"input", input,
		"bytes", len(src),
		"base_depth", report.BaseDepth,
		"fallback_ids", report.FallbackIDs,
		"duration", time.Since(start),
	)

	data, err := encodeJSON(portrait)
	if err != nil {
		return fmt.Errorf("encode portrait: %w", err)
	}

	summaryOut := a.stdout
	if output == stdStream {
		summaryOut = a.stderr
		if _, err := a.stdout.Write(data); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	} else if err := writeFileAtomic(output, data); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	log.Info("wrote portrait", "output", output, "bytes", len(data))

	fmt.Fprintf(summaryOut, "Converted %s -> %s\n", input, output)
	if _, err := checklist.Summarize(portrait).WriteTo(summaryOut); err != nil {
		return err
	}
	a.warnDiscarded(report.Discarded)
	return nil
}

// warnDiscarded tells the operator about questions missing from the tree,
// since they make the printed counts lower than the document suggests.
func (a *app) warnDiscarded(discarded []parser.Discarded) {
	for _, d := range discarded {
		fmt.Fprintf(a.stderr, "warning: line %d: question outside any group in %q ignored: %s\n",
			d.Line, d.Subsection, d.Question)
	}
}

func (a *app) readInput(path string) ([]byte, error) {
	if path == stdStream {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, fmt.Errorf("read standard input: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

// encodeJSON renders v with two-space indentation and without HTML escaping.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
