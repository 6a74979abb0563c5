package formats

import (
	"bytes"
	"fmt"

	"typeonly/internal/core/app"
	"typeonly/internal/core/config"
	"typeonly/internal/data/history"
)

// Options selects and tunes a report renderer.
type Options struct {
	Format      string
	ProjectRoot string
	BanEnums    bool
	Color       bool
	// Trend, when set, adds a line comparing against the previous run to
	// text output.
	Trend *history.Delta
}

// Render produces the report for result in the requested format.
func Render(opts Options, result app.RunResult) ([]byte, error) {
	switch opts.Format {
	case config.FormatText, "":
		var buf bytes.Buffer
		if err := WriteText(&buf, opts, result); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case config.FormatJSON:
		return GenerateJSON(opts.ProjectRoot, result)
	case config.FormatSARIF:
		return GenerateSARIF(opts.ProjectRoot, result, opts.BanEnums)
	default:
		return nil, fmt.Errorf("unsupported output format %q", opts.Format)
	}
}
