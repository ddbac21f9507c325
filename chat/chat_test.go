package chat

import "testing"

func TestChat_AppendOrder(t *testing.T) {
	c := New()
	if !c.IsEmpty() {
		t.Fatal("new chat should be empty")
	}

	c.Append(NewUserEntity("one"))
	c.Append(NewAssistantEntity("two"))
	c.Append(NewUserEntity("three"))

	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	for i, want := range []string{"one", "two", "three"} {
		if got := c.At(i).Content; got != want {
			t.Errorf("At(%d).Content = %q, want %q", i, got, want)
		}
	}
	last, ok := c.Last()
	if !ok || last.Content != "three" {
		t.Errorf("Last = %q, %v; want \"three\", true", last.Content, ok)
	}
}

func TestChat_ReplaceKeepsIdentity(t *testing.T) {
	c := New()
	c.Append(NewUserEntity("hi"))
	streaming := NewStreamingEntity(Assistant)
	c.Append(streaming)

	updated := streaming.WithContent("partial answ")
	if !c.ReplaceLast(updated) {
		t.Fatal("ReplaceLast failed on non-empty chat")
	}
	final := updated.WithContent("partial answer.").Completed()
	if !c.ReplaceAt(1, final) {
		t.Fatal("ReplaceAt(1) failed")
	}

	got := c.At(1)
	if got.ID != streaming.ID {
		t.Error("replacement should preserve the entity ID")
	}
	if !got.Timestamp.Equal(streaming.Timestamp) {
		t.Error("replacement should preserve the original timestamp")
	}
	if !got.Complete || got.Content != "partial answer." {
		t.Errorf("final entity = %+v, want complete with final content", got)
	}
}

func TestChat_ReplaceOutOfRange(t *testing.T) {
	c := New()
	if c.ReplaceAt(0, NewUserEntity("x")) {
		t.Error("ReplaceAt on empty chat should report false")
	}
	if c.ReplaceLast(NewUserEntity("x")) {
		t.Error("ReplaceLast on empty chat should report false")
	}
	c.Append(NewUserEntity("hi"))
	if c.ReplaceAt(-1, NewUserEntity("x")) || c.ReplaceAt(1, NewUserEntity("x")) {
		t.Error("ReplaceAt outside [0, len) should report false")
	}
}

func TestChat_SnapshotIsolation(t *testing.T) {
	c := New()
	c.Append(NewUserEntity("hi"))

	snap := c.Snapshot()
	c.Append(NewAssistantEntity("hello"))
	c.ReplaceAt(0, c.At(0).WithContent("edited"))

	if snap.Len() != 1 {
		t.Errorf("snapshot Len = %d, want 1", snap.Len())
	}
	if snap.At(0).Content != "hi" {
		t.Errorf("snapshot content = %q, want original %q", snap.At(0).Content, "hi")
	}
}

func TestChat_ContainsActivity(t *testing.T) {
	hiddenOnly := FromEntities([]Entity{NewHiddenEntity("x", "a"), NewEntity(System, "b")})
	if hiddenOnly.ContainsActivity() {
		t.Error("hidden/system-only transcript has no activity")
	}
	withUser := FromEntities([]Entity{NewHiddenEntity("x", "a"), NewUserEntity("hi")})
	if !withUser.ContainsActivity() {
		t.Error("transcript with a user entity has activity")
	}
	withAssistant := FromEntities([]Entity{NewAssistantEntity("welcome")})
	if !withAssistant.ContainsActivity() {
		t.Error("transcript with an assistant entity has activity")
	}
}
