package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/guimove/placer/internal/placement"
)

// Reporter formats and writes a scheduling result to an output destination.
type Reporter interface {
	Report(ctx context.Context, result placement.Result, meta ReportMeta) error
}

// ReportMeta contains contextual metadata for the report.
type ReportMeta struct {
	Policy      string
	Backend     string
	ScheduledAt time.Time
	BundleSize  int
}

// NewReporter creates a reporter for the given format writing to w.
func NewReporter(format string, w io.Writer) Reporter {
	switch format {
	case "json":
		return &JSONReporter{w: w}
	default:
		return &TableReporter{w: w}
	}
}

// errWriter accumulates the first error from a run of writes so callers can
// fire off a sequence of Fprintf calls and check one error at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
