package auth

import "testing"

func TestIssueAndParseToken(t *testing.T) {
	a, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	token, err := a.IssueToken("user-1", "Ezren")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	userID, username, err := a.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if userID != "user-1" || username != "Ezren" {
		t.Errorf("parsed %q/%q, want user-1/Ezren", userID, username)
	}
}

func TestParseToken_Rejects(t *testing.T) {
	a, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, _, err := a.ParseToken(""); err == nil {
		t.Error("empty token should be rejected")
	}
	if _, _, err := a.ParseToken("not-a-token"); err == nil {
		t.Error("garbage token should be rejected")
	}

	other, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	token, _ := other.IssueToken("user-1", "Ezren")
	if _, _, err := a.ParseToken(token); err == nil {
		t.Error("token signed with a different key should be rejected")
	}
}

func TestNew_KeyPersistsAcrossRestarts(t *testing.T) {
	dir := t.TempDir()
	first, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	token, _ := first.IssueToken("user-1", "Ezren")

	second, err := New(dir)
	if err != nil {
		t.Fatalf("New again: %v", err)
	}
	if _, _, err := second.ParseToken(token); err != nil {
		t.Errorf("token should verify after restart with same data dir: %v", err)
	}
}
