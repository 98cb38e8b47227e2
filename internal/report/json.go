package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/guimove/placer/internal/placement"
)

// JSONReporter outputs a scheduling result as JSON.
type JSONReporter struct {
	w io.Writer
}

type jsonOutput struct {
	Meta   ReportMeta       `json:"meta"`
	Result placement.Result `json:"result"`
}

func (r *JSONReporter) Report(_ context.Context, result placement.Result, meta ReportMeta) error {
	output := jsonOutput{
		Meta:   meta,
		Result: result,
	}

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}
