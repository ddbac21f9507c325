// Package export serializes chat transcripts to JSON, plain text, and a
// print-ready single-page PDF.
//
// JSON and text exports are lossless: every entity appears regardless of any
// visibility policy. The PDF export applies the same policy as the live view,
// so entities suppressed on screen are also absent from the printed page.
// That asymmetry is intentional.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avencia/chatframe/chat"
)

// Exporter converts a transcript snapshot into one output format.
type Exporter interface {
	// Export renders the transcript. A nil transcript is an error; all
	// other failures are local to the exporter and produce (nil, err)
	// with no partial output.
	Export(c *chat.Chat) ([]byte, error)

	// FileExtension returns the extension for the format (e.g. ".json").
	FileExtension() string

	// MimeType returns the MIME type of the exported format.
	MimeType() string
}

// Options configures export behavior.
type Options struct {
	// OutputDir is where ExportToFile writes. Default: current directory.
	OutputDir string

	// Policy is applied by the PDF exporter only; JSON and text always
	// include the full transcript.
	Policy chat.VisibilityPolicy

	// DateFormat overrides the timestamp layout in text export and PDF
	// captions. Default: "Jan 2, 2006 3:04 PM".
	DateFormat string
}

const defaultDateFormat = "Jan 2, 2006 3:04 PM"

// DefaultOptions returns default export options: current directory, every
// hidden entity visible.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:  ".",
		Policy:     chat.HideSubtypes(),
		DateFormat: defaultDateFormat,
	}
}

func (o *Options) dateFormat() string {
	if o == nil || o.DateFormat == "" {
		return defaultDateFormat
	}
	return o.DateFormat
}

// ForFormat returns the exporter for a format name: "json", "text" or "pdf".
func ForFormat(format string, opts *Options) (Exporter, error) {
	switch format {
	case "json":
		return NewJSONExporter(opts), nil
	case "text", "txt":
		return NewTextExporter(opts), nil
	case "pdf":
		return NewPDFExporter(opts), nil
	}
	return nil, fmt.Errorf("unknown export format %q", format)
}

// ExportToFile exports the transcript and writes it under opts.OutputDir with
// a timestamped filename. Returns the output path.
func ExportToFile(c *chat.Chat, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(c)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	filename := fmt.Sprintf("chat_%s%s", time.Now().Format("20060102_150405"), exporter.FileExtension())
	outputPath := filepath.Join(opts.OutputDir, filename)
	if err := os.WriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return outputPath, nil
}
