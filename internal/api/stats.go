package api

import (
	"slices"
	"sync"
	"time"

	"github.com/madib-from-georgia/checklistgen/internal/checklist"
	"github.com/madib-from-georgia/checklistgen/internal/parser"
)

// conversion is what one /api/convert call produced.
type conversion struct {
	at          time.Time
	duration    time.Duration
	bytes       int
	summary     checklist.Summary
	fallbackIDs int
	discarded   int
}

// LatencySnapshot aggregates conversion latencies in microseconds.
type LatencySnapshot struct {
	MinUs int64   `json:"min_us"`
	MaxUs int64   `json:"max_us"`
	AvgUs float64 `json:"avg_us"`
	P50Us float64 `json:"p50_us"`
	P95Us float64 `json:"p95_us"`
	P99Us float64 `json:"p99_us"`
}

// StatsSnapshot describes the conversions inside the window. Operators watch
// FallbackIDs, DiscardedQuestions and EmptyDocuments: they rise when source
// documents drift from the expected layout.
type StatsSnapshot struct {
	Conversions        int               `json:"conversions"`
	Bytes              int               `json:"bytes"`
	Totals             checklist.Summary `json:"totals"`
	FallbackIDs        int               `json:"fallbackIds"`
	DiscardedQuestions int               `json:"discardedQuestions"`
	EmptyDocuments     int               `json:"emptyDocuments"`
	Latency            LatencySnapshot   `json:"latency"`
}

// ConversionStats keeps recent conversions within a rolling window.
type ConversionStats struct {
	mu          sync.Mutex
	conversions []conversion
	maxAge      time.Duration
}

func NewConversionStats(maxAge time.Duration) *ConversionStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &ConversionStats{
		conversions: make([]conversion, 0, 256),
		maxAge:      maxAge,
	}
}

// Record adds one conversion of size bytes that took d.
func (s *ConversionStats) Record(d time.Duration, size int, summary checklist.Summary, report parser.Report) {
	if d < 0 {
		d = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.conversions = append(s.conversions, conversion{
		at:          now,
		duration:    d,
		bytes:       size,
		summary:     summary,
		fallbackIDs: report.FallbackIDs,
		discarded:   len(report.Discarded),
	})
}

func (s *ConversionStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	snap := StatsSnapshot{Conversions: len(s.conversions)}
	if snap.Conversions == 0 {
		return snap
	}

	latencies := make([]int64, 0, len(s.conversions))
	var sum int64
	for _, c := range s.conversions {
		us := c.duration.Microseconds()
		latencies = append(latencies, us)
		sum += us

		snap.Bytes += c.bytes
		snap.Totals.Sections += c.summary.Sections
		snap.Totals.Subsections += c.summary.Subsections
		snap.Totals.Groups += c.summary.Groups
		snap.Totals.Questions += c.summary.Questions
		snap.Totals.Answers += c.summary.Answers
		snap.FallbackIDs += c.fallbackIDs
		snap.DiscardedQuestions += c.discarded
		if c.summary.Questions == 0 {
			snap.EmptyDocuments++
		}
	}
	slices.Sort(latencies)

	snap.Latency = LatencySnapshot{
		MinUs: latencies[0],
		MaxUs: latencies[len(latencies)-1],
		AvgUs: float64(sum) / float64(len(latencies)),
		P50Us: percentile(latencies, 50),
		P95Us: percentile(latencies, 95),
		P99Us: percentile(latencies, 99),
	}
	return snap
}

func (s *ConversionStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	keep := s.conversions[:0]
	for _, c := range s.conversions {
		if !c.at.Before(cutoff) {
			keep = append(keep, c)
		}
	}
	s.conversions = keep
}

// percentile interpolates linearly between the two nearest ranks.
func percentile(sorted []int64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sorted[0])
	}
	if pct >= 100 {
		return float64(sorted[len(sorted)-1])
	}

	index := (float64(len(sorted)-1) * pct) / 100.0
	lower := int(index)
	weight := index - float64(lower)
	if lower+1 >= len(sorted) {
		return float64(sorted[lower])
	}
	lo, hi := float64(sorted[lower]), float64(sorted[lower+1])
	return lo + (hi-lo)*weight
}
