// Package auth implements the Spotify OAuth PKCE login and its persisted
// three-stage state machine.
package auth

import "golang.org/x/oauth2"

// Stage identifies where the login flow currently is.
type Stage int

const (
	// StageFirstVisit means the user never logged in; nothing is stored.
	StageFirstVisit Stage = iota
	// StageRequestedAuthorization means the browser was sent to Spotify;
	// the PKCE verifier is kept until the callback returns.
	StageRequestedAuthorization
	// StageGotToken means a token was exchanged and stored.
	StageGotToken
)

// Flow is the persisted login state. Exactly one payload field is set,
// matching the stage. Transitions happen only on an explicit login action
// and on the outcome of a token exchange.
type Flow struct {
	Stage    Stage
	Verifier string        // set for StageRequestedAuthorization
	Token    *oauth2.Token // set for StageGotToken
}

// FirstVisit is the zero state, also used after a failed exchange.
func FirstVisit() Flow {
	return Flow{Stage: StageFirstVisit}
}

// RequestAuthorization advances the flow when the user starts a login.
func RequestAuthorization(verifier string) Flow {
	return Flow{Stage: StageRequestedAuthorization, Verifier: verifier}
}

// GotToken advances the flow after a successful token exchange.
func GotToken(token *oauth2.Token) Flow {
	return Flow{Stage: StageGotToken, Token: token}
}

// Authenticated reports whether the flow holds a usable token.
func (f Flow) Authenticated() bool {
	return f.Stage == StageGotToken && f.Token != nil
}
