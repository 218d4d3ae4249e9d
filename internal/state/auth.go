package state

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/mixcrew/mixcrew/internal/auth"
	dbutil "github.com/mixcrew/mixcrew/internal/db"
)

// GetAuthFlow loads the persisted login flow. A database without a stored
// flow is a first visit, not an error.
func (m *Manager) GetAuthFlow() (auth.Flow, error) {
	return getAuthFlow(m.db)
}

// SaveAuthFlow persists the login flow, replacing whatever was stored.
func (m *Manager) SaveAuthFlow(flow auth.Flow) error {
	return saveAuthFlow(m.db, flow)
}

func getAuthFlow(db *sql.DB) (auth.Flow, error) {
	row := db.QueryRow(`SELECT stage, verifier, token_json FROM auth_flow WHERE id = 1`)

	var stage int
	var verifier, tokenJSON sql.NullString
	err := row.Scan(&stage, &verifier, &tokenJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.FirstVisit(), nil
	}
	if err != nil {
		return auth.FirstVisit(), err
	}

	switch auth.Stage(stage) {
	case auth.StageRequestedAuthorization:
		return auth.RequestAuthorization(dbutil.NullStringValue(verifier)), nil
	case auth.StageGotToken:
		var token oauth2.Token
		if err := json.Unmarshal([]byte(dbutil.NullStringValue(tokenJSON)), &token); err != nil {
			// A corrupt token is unrecoverable; start over.
			return auth.FirstVisit(), nil
		}
		return auth.GotToken(&token), nil
	default:
		return auth.FirstVisit(), nil
	}
}

func saveAuthFlow(db *sql.DB, flow auth.Flow) error {
	var tokenJSON string
	if flow.Token != nil {
		raw, err := json.Marshal(flow.Token)
		if err != nil {
			return fmt.Errorf("marshal token: %w", err)
		}
		tokenJSON = string(raw)
	}

	_, err := db.Exec(`
		INSERT INTO auth_flow (id, stage, verifier, token_json)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			stage = excluded.stage,
			verifier = excluded.verifier,
			token_json = excluded.token_json
	`, int(flow.Stage), flow.Verifier, tokenJSON)

	return err
}
