package state

import (
	"database/sql"
	"testing"
	"time"

	"golang.org/x/oauth2"
	_ "modernc.org/sqlite"

	"github.com/mixcrew/mixcrew/internal/auth"
)

// setupTestDB creates an in-memory SQLite database with the schema initialized.
func setupTestDB(t *testing.T) *Manager {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := initSchema(db); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}

	return &Manager{db: db}
}

func TestGetAuthFlow_Empty(t *testing.T) {
	m := setupTestDB(t)

	flow, err := m.GetAuthFlow()
	if err != nil {
		t.Fatalf("GetAuthFlow failed: %v", err)
	}
	if flow.Stage != auth.StageFirstVisit {
		t.Errorf("empty db flow stage = %v, want FirstVisit", flow.Stage)
	}
}

func TestSaveAndGetAuthFlow_Verifier(t *testing.T) {
	m := setupTestDB(t)

	if err := m.SaveAuthFlow(auth.RequestAuthorization("verifier-abc")); err != nil {
		t.Fatalf("SaveAuthFlow failed: %v", err)
	}

	flow, err := m.GetAuthFlow()
	if err != nil {
		t.Fatalf("GetAuthFlow failed: %v", err)
	}
	if flow.Stage != auth.StageRequestedAuthorization {
		t.Errorf("stage = %v, want RequestedAuthorization", flow.Stage)
	}
	if flow.Verifier != "verifier-abc" {
		t.Errorf("verifier = %q, want verifier-abc", flow.Verifier)
	}
}

func TestSaveAndGetAuthFlow_Token(t *testing.T) {
	m := setupTestDB(t)

	token := &oauth2.Token{
		AccessToken:  "access-123",
		RefreshToken: "refresh-456",
		TokenType:    "Bearer",
		Expiry:       time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := m.SaveAuthFlow(auth.GotToken(token)); err != nil {
		t.Fatalf("SaveAuthFlow failed: %v", err)
	}

	flow, err := m.GetAuthFlow()
	if err != nil {
		t.Fatalf("GetAuthFlow failed: %v", err)
	}
	if !flow.Authenticated() {
		t.Fatal("restored flow is not authenticated")
	}
	if flow.Token.AccessToken != "access-123" {
		t.Errorf("access token = %q", flow.Token.AccessToken)
	}
	if flow.Token.RefreshToken != "refresh-456" {
		t.Errorf("refresh token = %q", flow.Token.RefreshToken)
	}
	if !flow.Token.Expiry.Equal(token.Expiry) {
		t.Errorf("expiry = %v, want %v", flow.Token.Expiry, token.Expiry)
	}
}

func TestSaveAuthFlow_Overwrites(t *testing.T) {
	m := setupTestDB(t)

	if err := m.SaveAuthFlow(auth.RequestAuthorization("old-verifier")); err != nil {
		t.Fatalf("SaveAuthFlow failed: %v", err)
	}
	if err := m.SaveAuthFlow(auth.FirstVisit()); err != nil {
		t.Fatalf("SaveAuthFlow failed: %v", err)
	}

	flow, err := m.GetAuthFlow()
	if err != nil {
		t.Fatalf("GetAuthFlow failed: %v", err)
	}
	if flow.Stage != auth.StageFirstVisit {
		t.Errorf("stage = %v, want FirstVisit", flow.Stage)
	}
	if flow.Verifier != "" {
		t.Errorf("verifier = %q, want empty", flow.Verifier)
	}
}

func TestLastPlaylist(t *testing.T) {
	m := setupTestDB(t)

	id, err := m.GetLastPlaylist()
	if err != nil {
		t.Fatalf("GetLastPlaylist failed: %v", err)
	}
	if id != "" {
		t.Errorf("empty db playlist id = %q, want empty", id)
	}

	if err := m.SaveLastPlaylist("pl-123"); err != nil {
		t.Fatalf("SaveLastPlaylist failed: %v", err)
	}
	if err := m.SaveLastPlaylist("pl-456"); err != nil {
		t.Fatalf("SaveLastPlaylist failed: %v", err)
	}

	id, err = m.GetLastPlaylist()
	if err != nil {
		t.Fatalf("GetLastPlaylist failed: %v", err)
	}
	if id != "pl-456" {
		t.Errorf("playlist id = %q, want pl-456", id)
	}
}

func TestOpenPath(t *testing.T) {
	dir := t.TempDir()
	m, err := OpenPath(dir + "/sub/test.db")
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	defer m.Close()

	if err := m.SaveLastPlaylist("pl-1"); err != nil {
		t.Fatalf("SaveLastPlaylist failed: %v", err)
	}
}
