// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"vkbridge/pkg/api"
)

// Summary writers (format → handler). Register in init() blocks from the
// summary writer files.
var summaryWriters = map[string]func(w io.Writer, s api.SummaryV1) error{}

// RegisterSummary is idempotent, last registration wins.
func RegisterSummary(format string, fn func(io.Writer, api.SummaryV1) error) {
	summaryWriters[format] = fn
}

// WriteSummary dispatches a project summary to the writer for format.
func WriteSummary(format string, w io.Writer, s api.SummaryV1) error {
	fn, ok := summaryWriters[format]
	if !ok {
		return fmt.Errorf("unknown summary format %q (no writer registered)", format)
	}
	return fn(w, s)
}

// SummaryFormats lists the registered formats, sorted, for usage text.
func SummaryFormats() []string {
	out := make([]string, 0, len(summaryWriters))
	for k := range summaryWriters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
