package auth

import (
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
)

// NewAuthenticator builds the Spotify authenticator for the PKCE flow.
// There is no client secret; the app authenticates with PKCE only, so the
// client id is safe to ship in a config file.
func NewAuthenticator(clientID, redirectURL string) *spotifyauth.Authenticator {
	return spotifyauth.New(
		spotifyauth.WithClientID(clientID),
		spotifyauth.WithRedirectURL(redirectURL),
		spotifyauth.WithScopes(
			spotifyauth.ScopePlaylistReadCollaborative,
			spotifyauth.ScopePlaylistReadPrivate,
		),
	)
}

// ChallengeOptions returns the query parameters that attach a PKCE challenge
// to the authorize URL.
func ChallengeOptions(pair PKCEPair) []oauth2.AuthCodeOption {
	return []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
		oauth2.SetAuthURLParam("code_challenge", pair.Challenge),
	}
}

// VerifierOption returns the query parameter that proves possession of the
// verifier during the token exchange.
func VerifierOption(verifier string) oauth2.AuthCodeOption {
	return oauth2.SetAuthURLParam("code_verifier", verifier)
}
