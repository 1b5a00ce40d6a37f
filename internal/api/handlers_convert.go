package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/madib-from-georgia/checklistgen/internal/checklist"
	"github.com/madib-from-georgia/checklistgen/internal/parser"
)

type convertResponse struct {
	Portrait *checklist.Portrait `json:"portrait"`
	Summary  checklist.Summary   `json:"summary"`
	Report   parser.Report       `json:"report"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	opts := []parser.Option{parser.WithSlugs(s.slugs), parser.WithLogger(s.log)}
	base := s.cfg.BaseDepth
	if v := r.URL.Query().Get("base_depth"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			jsonError(w, "invalid base_depth: "+v, http.StatusBadRequest)
			return
		}
		base = n
	}
	if base != 0 {
		layout, err := parser.NewLayout(base)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		opts = append(opts, parser.WithLayout(layout))
	}

	dedupe := s.cfg.DedupeIDs
	if v := r.URL.Query().Get("dedupe"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			jsonError(w, "invalid dedupe: "+v, http.StatusBadRequest)
			return
		}
		dedupe = b
	}

	src, err := readDocument(r)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			jsonError(w, fmt.Sprintf("document exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	portrait, report := parser.New(opts...).Convert(src)
	if dedupe {
		checklist.DedupeIDs(portrait)
	}
	elapsed := time.Since(start)

	summary := checklist.Summarize(portrait)
	s.stats.Record(elapsed, len(src), summary, report)
	s.log.Debug("converted document",
		"bytes", len(src),
		"base_depth", report.BaseDepth,
		"sections", summary.Sections,
		"questions", summary.Questions,
		"fallback_ids", report.FallbackIDs,
		"discarded", len(report.Discarded),
	)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(convertResponse{Portrait: portrait, Summary: summary, Report: report})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.stats.Snapshot())
}

// readDocument returns the Markdown source from a multipart "file" field or
// from the raw body.
func readDocument(r *http.Request) ([]byte, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if r.MultipartForm != nil {
			defer r.MultipartForm.RemoveAll()
		}
		if err != nil {
			return nil, fmt.Errorf("file is required: %w", err)
		}
		defer file.Close()
		return io.ReadAll(file)
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
