// Package chat holds the transcript data model: roles, entities, the ordered
// Chat sequence, and the rules that derive what a host should render from it.
package chat

// HiddenType tags a hidden message with a caller-defined category.
// It is an open-ended name, not a closed enum: hosts introduce new subtypes
// (for bookkeeping notes, debug traces, prompt scaffolding) without touching
// this package. Equality is plain string equality.
type HiddenType string

// HiddenUnknown is the fallback subtype for hidden messages without a
// meaningful category.
const HiddenUnknown HiddenType = "unknown"

type roleKind int

const (
	kindSystem roleKind = iota
	kindAssistant
	kindUser
	kindToolCall
	kindToolResponse
	kindHidden
)

// Role identifies the originator/kind of a message. Hidden is the only role
// carrying extra data (its subtype); all other roles are singletons. Role is
// comparable: two roles are equal iff same kind and, for hidden, same subtype.
type Role struct {
	kind    roleKind
	subtype HiddenType
}

var (
	System       = Role{kind: kindSystem}
	Assistant    = Role{kind: kindAssistant}
	User         = Role{kind: kindUser}
	ToolCall     = Role{kind: kindToolCall}
	ToolResponse = Role{kind: kindToolResponse}
)

// Hidden returns the hidden role with the given subtype.
func Hidden(subtype HiddenType) Role {
	return Role{kind: kindHidden, subtype: subtype}
}

// IsHidden reports whether the role is a hidden role of any subtype.
func (r Role) IsHidden() bool {
	return r.kind == kindHidden
}

// Subtype returns the hidden subtype, or "" for non-hidden roles.
func (r Role) Subtype() HiddenType {
	if r.kind != kindHidden {
		return ""
	}
	return r.subtype
}

// RawValue returns the stable serialization name of the role. The hidden
// subtype is intentionally not part of the raw value; it travels in its own
// field during export.
func (r Role) RawValue() string {
	switch r.kind {
	case kindSystem:
		return "system"
	case kindAssistant:
		return "assistant"
	case kindUser:
		return "user"
	case kindToolCall:
		return "assistantToolCall"
	case kindToolResponse:
		return "assistantToolResponse"
	case kindHidden:
		return "hidden"
	}
	return "unknown"
}

// DisplayName returns the capitalized human-readable role name used in text
// export and captions. It never includes a hidden subtype tag.
func (r Role) DisplayName() string {
	switch r.kind {
	case kindSystem:
		return "System"
	case kindAssistant:
		return "Assistant"
	case kindUser:
		return "User"
	case kindToolCall:
		return "Tool Call"
	case kindToolResponse:
		return "Tool Response"
	case kindHidden:
		return "Hidden"
	}
	return "Unknown"
}

func (r Role) String() string {
	if r.kind == kindHidden {
		return "hidden(" + string(r.subtype) + ")"
	}
	return r.RawValue()
}

// ParseRole maps a raw value (plus the optional hidden subtype) back to a
// Role. Unrecognized raw values come back as hidden(unknown) so decoded
// transcripts stay renderable instead of failing.
func ParseRole(raw string, subtype HiddenType) Role {
	switch raw {
	case "system":
		return System
	case "assistant":
		return Assistant
	case "user":
		return User
	case "assistantToolCall":
		return ToolCall
	case "assistantToolResponse":
		return ToolResponse
	case "hidden":
		if subtype == "" {
			subtype = HiddenUnknown
		}
		return Hidden(subtype)
	}
	return Hidden(HiddenUnknown)
}

// Alignment is the horizontal placement of a rendered message.
type Alignment int

const (
	AlignLeading  Alignment = iota // left edge: assistant, system, tool, hidden
	AlignTrailing                  // right edge: the user's own messages
)

// Alignment maps a role to its display alignment. The mapping is total and
// pure: user messages trail (own-message convention), everything else leads.
func (r Role) Alignment() Alignment {
	if r.kind == kindUser {
		return AlignTrailing
	}
	return AlignLeading
}

// IsToolInteraction reports whether the role is one half of a tool
// call/response pair. Tool interactions take the collapsed/expandable render
// path instead of the standard bubble path.
func IsToolInteraction(r Role) bool {
	return r.kind == kindToolCall || r.kind == kindToolResponse
}
