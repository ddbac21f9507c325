package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/avencia/chatframe/chat"
)

// entityRecord is the stable wire shape of one entity. The role travels as
// its raw-value string; the hidden subtype rides in its own optional field so
// it survives a round trip without complicating the role value.
type entityRecord struct {
	Role     string `json:"role"`
	Subtype  string `json:"subtype,omitempty"`
	Content  string `json:"content"`
	Date     string `json:"date"`
	Complete bool   `json:"complete"`
}

// JSONExporter exports the complete transcript as a pretty-printed JSON
// array. It never filters: the output is a faithful representation that can
// be decoded back with DecodeJSON.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a JSON exporter. Options are accepted for symmetry
// with the other exporters; JSON output is always complete.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// Export serializes every entity, visible or not.
func (e *JSONExporter) Export(c *chat.Chat) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("chat is nil")
	}

	entities := c.Entities()
	records := make([]entityRecord, len(entities))
	for i, ent := range entities {
		records[i] = entityRecord{
			Role:     ent.Role.RawValue(),
			Subtype:  string(ent.Role.Subtype()),
			Content:  ent.Content,
			Date:     ent.Timestamp.Format(time.RFC3339),
			Complete: ent.Complete,
		}
	}

	return json.MarshalIndent(records, "", "  ")
}

// FileExtension returns ".json".
func (e *JSONExporter) FileExtension() string { return ".json" }

// MimeType returns "application/json".
func (e *JSONExporter) MimeType() string { return "application/json" }

// DecodeJSON parses a JSON export back into an ordered entity slice. Decoded
// entities carry fresh IDs; role, content, timestamp and completion flag are
// restored exactly.
func DecodeJSON(data []byte) ([]chat.Entity, error) {
	var records []entityRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}

	entities := make([]chat.Entity, len(records))
	for i, rec := range records {
		ts, err := time.Parse(time.RFC3339, rec.Date)
		if err != nil {
			return nil, fmt.Errorf("entity %d: bad date %q: %w", i, rec.Date, err)
		}
		e := chat.NewEntity(chat.ParseRole(rec.Role, chat.HiddenType(rec.Subtype)), rec.Content)
		e.Timestamp = ts
		e.Complete = rec.Complete
		entities[i] = e
	}
	return entities, nil
}
