package chat

// Line is one renderable row of the derived view: the entity plus the
// precomputed display attributes the render layer needs.
type Line struct {
	Entity          Entity
	Alignment       Alignment
	ToolInteraction bool
}

// DeriveView computes the filtered, ordered render list for a transcript
// under a visibility policy. Order is preserved; suppressed hidden entities
// are dropped; each surviving entity carries its alignment and whether it
// takes the tool-interaction render path.
func DeriveView(c *Chat, policy VisibilityPolicy) []Line {
	lines := make([]Line, 0, c.Len())
	for _, e := range c.entities {
		if !policy.ShouldDisplay(e) {
			continue
		}
		lines = append(lines, Line{
			Entity:          e,
			Alignment:       e.Role.Alignment(),
			ToolInteraction: IsToolInteraction(e.Role),
		})
	}
	return lines
}

// IndicatorMode selects how typing/pending indicator visibility is decided.
type IndicatorMode int

const (
	// IndicatorNone never shows the indicator.
	IndicatorNone IndicatorMode = iota
	// IndicatorAutomatic infers visibility from the transcript: the
	// indicator shows after a user turn with no assistant reply yet.
	IndicatorAutomatic
	// IndicatorManual shows exactly what the host's flag says, independent
	// of transcript content.
	IndicatorManual
)

// Indicator is the typing-indicator configuration. Flag is consulted only in
// manual mode.
type Indicator struct {
	Mode IndicatorMode
	Flag bool
}

// ShouldShowIndicator decides typing-indicator visibility for the transcript.
//
// Automatic mode is a heuristic for "assistant is composing a reply": it
// fires when the last entity is the user's, and stays on through trailing
// hidden bookkeeping as long as the transcript contains real user/assistant
// activity. A transcript holding only hidden entities never shows the
// indicator.
func ShouldShowIndicator(c *Chat, ind Indicator) bool {
	switch ind.Mode {
	case IndicatorManual:
		return ind.Flag
	case IndicatorAutomatic:
		last, ok := c.Last()
		if !ok {
			return false
		}
		if last.Role == User {
			return true
		}
		if last.Role.IsHidden() {
			return c.ContainsActivity()
		}
		return false
	}
	return false
}
