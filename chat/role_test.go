package chat

import "testing"

func allRoles() []Role {
	return []Role{System, Assistant, User, ToolCall, ToolResponse, Hidden("x"), Hidden(HiddenUnknown)}
}

func TestRole_AlignmentTotality(t *testing.T) {
	for _, r := range allRoles() {
		got := r.Alignment()
		if got != AlignLeading && got != AlignTrailing {
			t.Errorf("Alignment(%v) = %d, not a defined alignment", r, got)
		}
		want := AlignLeading
		if r == User {
			want = AlignTrailing
		}
		if got != want {
			t.Errorf("Alignment(%v) = %d, want %d", r, got, want)
		}
	}
}

func TestIsToolInteraction(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{System, false},
		{Assistant, false},
		{User, false},
		{ToolCall, true},
		{ToolResponse, true},
		{Hidden("trace"), false},
	}
	for _, tc := range tests {
		if got := IsToolInteraction(tc.role); got != tc.want {
			t.Errorf("IsToolInteraction(%v) = %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestRole_Equality(t *testing.T) {
	if Hidden("a") != Hidden("a") {
		t.Error("hidden roles with equal subtypes should be equal")
	}
	if Hidden("a") == Hidden("b") {
		t.Error("hidden roles with different subtypes should not be equal")
	}
	if Hidden("system") == System {
		t.Error("hidden(system) must not equal the system role")
	}
	if Assistant != Assistant {
		t.Error("singleton roles should be equal to themselves")
	}
}

func TestRole_RawValueRoundTrip(t *testing.T) {
	for _, r := range allRoles() {
		back := ParseRole(r.RawValue(), r.Subtype())
		if back != r {
			t.Errorf("ParseRole(%q, %q) = %v, want %v", r.RawValue(), r.Subtype(), back, r)
		}
	}
}

func TestParseRole_Unrecognized(t *testing.T) {
	r := ParseRole("mystery", "")
	if !r.IsHidden() || r.Subtype() != HiddenUnknown {
		t.Errorf("ParseRole(mystery) = %v, want hidden(unknown)", r)
	}
	if r := ParseRole("hidden", ""); r.Subtype() != HiddenUnknown {
		t.Errorf("ParseRole(hidden, \"\") = %v, want hidden(unknown)", r)
	}
}

func TestRole_DisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{System, "System"},
		{Assistant, "Assistant"},
		{User, "User"},
		{ToolCall, "Tool Call"},
		{ToolResponse, "Tool Response"},
		{Hidden("debug"), "Hidden"}, // display name never carries the subtype
	}
	for _, tc := range tests {
		if got := tc.role.DisplayName(); got != tc.want {
			t.Errorf("DisplayName(%v) = %q, want %q", tc.role, got, tc.want)
		}
	}
}
