package export

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avencia/chatframe/chat"
)

func TestTextExporter_LineFormat(t *testing.T) {
	c := chat.New()
	c.Append(chat.NewUserEntity("hello there"))
	c.Append(chat.NewAssistantEntity("hi!"))

	data, err := NewTextExporter(nil).Export(c)
	require.NoError(t, err)

	lines := strings.Split(string(data), "\n")
	require.Len(t, lines, 2)

	wantUser := fmt.Sprintf("User (%s): hello there", c.At(0).Timestamp.Format("Jan 2, 2006 3:04 PM"))
	assert.Equal(t, wantUser, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Assistant ("))
	assert.True(t, strings.HasSuffix(lines[1], "): hi!"))
}

func TestTextExporter_CompleteRegardlessOfPolicy(t *testing.T) {
	c := sampleChat(t)

	opts := DefaultOptions()
	opts.Policy = chat.HideAllHidden()
	data, err := NewTextExporter(opts).Export(c)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "prompt preamble", "suppressed hidden content still appears in text export")
	assert.Contains(t, text, "Hidden (", "hidden role renders as its display name, no subtype tag")
	assert.NotContains(t, text, "scaffold", "the subtype itself is not part of the line format")
	assert.Equal(t, c.Len(), len(strings.Split(text, "\n")))
}

func TestTextExporter_CustomDateFormat(t *testing.T) {
	c := chat.New()
	c.Append(chat.NewUserEntity("hi"))

	opts := DefaultOptions()
	opts.DateFormat = "2006-01-02"
	data, err := NewTextExporter(opts).Export(c)
	require.NoError(t, err)

	want := fmt.Sprintf("User (%s): hi", c.At(0).Timestamp.Format("2006-01-02"))
	assert.Equal(t, want, string(data))
}

func TestTextExporter_NilChat(t *testing.T) {
	_, err := NewTextExporter(nil).Export(nil)
	assert.Error(t, err)
}
