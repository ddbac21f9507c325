package chat

import (
	"time"

	"github.com/google/uuid"
)

// Entity is one immutable message in a transcript. Content is opaque text
// and may carry lightweight markdown; this package never interprets it.
// Complete is false while a message is still being streamed; "updating" a
// streaming entity means replacing it at its position with a new value
// carrying the same ID.
type Entity struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
	Complete  bool
}

// NewEntity creates a complete entity with a generated ID and the current
// time as its timestamp.
func NewEntity(role Role, content string) Entity {
	return Entity{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
		Complete:  true,
	}
}

// NewUserEntity creates a complete user entity.
func NewUserEntity(content string) Entity {
	return NewEntity(User, content)
}

// NewAssistantEntity creates a complete assistant entity.
func NewAssistantEntity(content string) Entity {
	return NewEntity(Assistant, content)
}

// NewHiddenEntity creates a hidden entity with the given subtype.
func NewHiddenEntity(subtype HiddenType, content string) Entity {
	return NewEntity(Hidden(subtype), content)
}

// NewStreamingEntity creates an incomplete entity whose content the host
// fills in incrementally via WithContent/Completed replacements.
func NewStreamingEntity(role Role) Entity {
	e := NewEntity(role, "")
	e.Complete = false
	return e
}

// WithContent returns a copy of the entity with new content. ID, role and
// timestamp are preserved so the copy keeps the original's identity when it
// replaces it in a Chat.
func (e Entity) WithContent(content string) Entity {
	e.Content = content
	return e
}

// Completed returns a copy of the entity marked complete.
func (e Entity) Completed() Entity {
	e.Complete = true
	return e
}

// IsEmpty reports whether the entity has no content.
func (e Entity) IsEmpty() bool {
	return e.Content == ""
}
