package chat

// VisibilityPolicy decides which hidden entities are suppressed from display.
// Only hidden roles are ever suppressible; user, assistant and tool entities
// are always shown regardless of policy.
//
// The zero value behaves like HideSubtypes() with an empty set: every entity,
// hidden ones included, is visible. That is the explicit "show everything"
// configuration used by debug and preview surfaces.
type VisibilityPolicy struct {
	hideAll  bool
	subtypes map[HiddenType]struct{}
}

// HideAllHidden suppresses every hidden entity, regardless of subtype.
func HideAllHidden() VisibilityPolicy {
	return VisibilityPolicy{hideAll: true}
}

// HideSubtypes suppresses hidden entities whose subtype is in the given set.
func HideSubtypes(subtypes ...HiddenType) VisibilityPolicy {
	set := make(map[HiddenType]struct{}, len(subtypes))
	for _, s := range subtypes {
		set[s] = struct{}{}
	}
	return VisibilityPolicy{subtypes: set}
}

// ShouldDisplay reports whether the entity is rendered under this policy.
// Pure function over entity + policy.
func (p VisibilityPolicy) ShouldDisplay(e Entity) bool {
	if !e.Role.IsHidden() {
		return true
	}
	if p.hideAll {
		return false
	}
	_, suppressed := p.subtypes[e.Role.Subtype()]
	return !suppressed
}
