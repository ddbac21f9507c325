package chat

// Chat is an ordered, append-oriented transcript. Insertion order is display
// order is conversation order; entities are distinguished by position, not
// content. The host application owns the value and is the single writer —
// Chat itself takes no locks. Concurrent readers (derivation, export) should
// work from Snapshot.
type Chat struct {
	entities []Entity
}

// New returns an empty transcript.
func New() *Chat {
	return &Chat{entities: make([]Entity, 0)}
}

// FromEntities builds a transcript from an existing ordered slice, copying it.
func FromEntities(entities []Entity) *Chat {
	c := &Chat{entities: make([]Entity, len(entities))}
	copy(c.entities, entities)
	return c
}

// Append adds an entity at the end of the transcript.
func (c *Chat) Append(e Entity) {
	c.entities = append(c.entities, e)
}

// ReplaceAt swaps the entity at position i for a new value. This is the only
// edit primitive: streaming updates replace the incomplete entity in place.
// Returns false if i is out of range.
func (c *Chat) ReplaceAt(i int, e Entity) bool {
	if i < 0 || i >= len(c.entities) {
		return false
	}
	c.entities[i] = e
	return true
}

// ReplaceLast swaps the final entity. Returns false on an empty transcript.
func (c *Chat) ReplaceLast(e Entity) bool {
	return c.ReplaceAt(len(c.entities)-1, e)
}

// Len returns the number of entities.
func (c *Chat) Len() int {
	return len(c.entities)
}

// IsEmpty reports whether the transcript has no entities.
func (c *Chat) IsEmpty() bool {
	return len(c.entities) == 0
}

// At returns the entity at position i. It panics on out-of-range access like
// a slice would.
func (c *Chat) At(i int) Entity {
	return c.entities[i]
}

// Last returns the final entity, or false on an empty transcript.
func (c *Chat) Last() (Entity, bool) {
	if len(c.entities) == 0 {
		return Entity{}, false
	}
	return c.entities[len(c.entities)-1], true
}

// Entities returns a copy of the ordered entity slice.
func (c *Chat) Entities() []Entity {
	out := make([]Entity, len(c.entities))
	copy(out, c.entities)
	return out
}

// Snapshot returns an independent copy of the transcript for readers that
// run while the writer keeps appending.
func (c *Chat) Snapshot() *Chat {
	return FromEntities(c.entities)
}

// ContainsActivity reports whether any user or assistant entity exists.
// Trailing hidden bookkeeping in an otherwise empty transcript does not
// count as conversation activity.
func (c *Chat) ContainsActivity() bool {
	for _, e := range c.entities {
		if e.Role == User || e.Role == Assistant {
			return true
		}
	}
	return false
}
