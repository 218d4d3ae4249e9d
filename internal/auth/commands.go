package auth

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
)

// BrowserOpenedMsg reports whether the authorize URL could be opened.
type BrowserOpenedMsg struct {
	URL string
	Err error
}

// CallbackMsg is sent when the authorization redirect arrives, or when
// waiting for it timed out.
type CallbackMsg struct {
	Code  string
	State string
	Err   error
}

// TokenExchangedMsg contains the result of exchanging the code for a token.
type TokenExchangedMsg struct {
	Token *oauth2.Token
	Err   error
}

// OpenBrowserCmd opens the authorize URL in the user's browser.
func OpenBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return BrowserOpenedMsg{URL: url, Err: OpenBrowser(url)}
	}
}

// WaitForCallbackCmd waits for the authorization redirect to land on the
// local callback server.
func WaitForCallbackCmd(results <-chan CallbackResult) tea.Cmd {
	return func() tea.Msg {
		select {
		case r := <-results:
			return CallbackMsg{Code: r.Code, State: r.State, Err: r.Err}
		case <-time.After(5 * time.Minute):
			return CallbackMsg{} // timeout, empty code
		}
	}
}

// ExchangeTokenCmd exchanges the authorization code for a token, proving
// possession of the PKCE verifier.
func ExchangeTokenCmd(a *spotifyauth.Authenticator, code, verifier string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		token, err := a.Exchange(ctx, code, VerifierOption(verifier))
		return TokenExchangedMsg{Token: token, Err: err}
	}
}
