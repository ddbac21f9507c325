package export

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avencia/chatframe/chat"
)

func sampleChat(t *testing.T) *chat.Chat {
	t.Helper()
	c := chat.New()
	c.Append(chat.NewHiddenEntity("scaffold", "prompt preamble"))
	c.Append(chat.NewUserEntity("what's the weather?"))
	c.Append(chat.NewEntity(chat.ToolCall, `weather({"city":"Oslo"})`))
	c.Append(chat.NewEntity(chat.ToolResponse, "4 degrees, raining"))
	c.Append(chat.NewAssistantEntity("It's 4 degrees and raining in Oslo."))
	return c
}

func TestJSONExporter_RoundTripLossless(t *testing.T) {
	c := sampleChat(t)
	streaming := chat.NewStreamingEntity(chat.Assistant).WithContent("still typ")
	c.Append(streaming)

	// The policy must not matter: JSON export is complete even when the
	// live view suppresses hidden entities.
	opts := DefaultOptions()
	opts.Policy = chat.HideAllHidden()
	data, err := NewJSONExporter(opts).Export(c)
	require.NoError(t, err)

	decoded, err := DecodeJSON(data)
	require.NoError(t, err)
	require.Len(t, decoded, c.Len())

	for i, got := range decoded {
		want := c.At(i)
		assert.Equal(t, want.Role, got.Role, "entity %d role", i)
		assert.Equal(t, want.Content, got.Content, "entity %d content", i)
		assert.Equal(t, want.Complete, got.Complete, "entity %d complete flag", i)
		assert.True(t, got.Timestamp.Equal(want.Timestamp.Truncate(time.Second)),
			"entity %d timestamp should survive at second precision", i)
	}
}

func TestJSONExporter_WireShape(t *testing.T) {
	c := chat.New()
	c.Append(chat.NewHiddenEntity("debug", "trace line"))
	c.Append(chat.NewUserEntity("hi"))

	data, err := NewJSONExporter(nil).Export(c)
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)

	hidden := records[0]
	assert.Equal(t, "hidden", hidden["role"])
	assert.Equal(t, "debug", hidden["subtype"], "hidden subtype must round-trip through export")
	assert.Equal(t, "trace line", hidden["content"])
	assert.Equal(t, true, hidden["complete"])
	_, err = time.Parse(time.RFC3339, hidden["date"].(string))
	assert.NoError(t, err, "date must be ISO-8601")

	user := records[1]
	assert.Equal(t, "user", user["role"])
	_, hasSubtype := user["subtype"]
	assert.False(t, hasSubtype, "non-hidden roles carry no subtype field")

	assert.True(t, json.Valid(data))
	assert.Contains(t, string(data), "\n  ", "output should be pretty-printed")
}

func TestJSONExporter_NilChat(t *testing.T) {
	_, err := NewJSONExporter(nil).Export(nil)
	assert.Error(t, err)
}

func TestDecodeJSON_BadInput(t *testing.T) {
	_, err := DecodeJSON([]byte("{not json"))
	assert.Error(t, err)

	_, err = DecodeJSON([]byte(`[{"role":"user","content":"x","date":"yesterday","complete":true}]`))
	assert.Error(t, err, "unparseable dates should fail the decode")
}
