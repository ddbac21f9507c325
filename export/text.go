package export

import (
	"fmt"
	"strings"

	"github.com/avencia/chatframe/chat"
)

// TextExporter exports the complete transcript as UTF-8 plain text, one line
// per entity: "<Role> (<date>): <content>". Like JSON export it never
// filters, and the role shown is the capitalized display name without any
// hidden-subtype tag.
type TextExporter struct {
	options *Options
}

// NewTextExporter creates a plain-text exporter.
func NewTextExporter(opts *Options) *TextExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &TextExporter{options: opts}
}

// Export renders every entity, visible or not.
func (e *TextExporter) Export(c *chat.Chat) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("chat is nil")
	}

	layout := e.options.dateFormat()
	lines := make([]string, 0, c.Len())
	for _, ent := range c.Entities() {
		lines = append(lines, fmt.Sprintf("%s (%s): %s",
			ent.Role.DisplayName(),
			ent.Timestamp.Format(layout),
			ent.Content,
		))
	}

	return []byte(strings.Join(lines, "\n")), nil
}

// FileExtension returns ".txt".
func (e *TextExporter) FileExtension() string { return ".txt" }

// MimeType returns "text/plain; charset=utf-8".
func (e *TextExporter) MimeType() string { return "text/plain; charset=utf-8" }
