package auth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// CallbackResult is what the authorization redirect delivered.
type CallbackResult struct {
	Code  string // authorization code, empty on failure
	State string // echoed state parameter
	Err   error  // set when Spotify reported an error (e.g. access_denied)
}

// CallbackServer is a local HTTP server that receives the authorization
// redirect from the browser.
type CallbackServer struct {
	server     *http.Server
	listener   net.Listener
	resultChan chan CallbackResult
	done       chan struct{}
}

// StartCallbackServer listens on the given port and serves the /callback
// route once. The result is delivered on ResultChan.
func StartCallbackServer(port int) (*CallbackServer, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", port, err)
	}

	resultChan := make(chan CallbackResult, 1)
	done := make(chan struct{})

	mux := http.NewServeMux()
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	cs := &CallbackServer{
		server:     server,
		listener:   listener,
		resultChan: resultChan,
		done:       done,
	}

	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		result := CallbackResult{
			Code:  q.Get("code"),
			State: q.Get("state"),
		}
		if errParam := q.Get("error"); errParam != "" {
			result.Err = fmt.Errorf("authorization refused: %s", errParam)
		}

		w.Header().Set("Content-Type", "text/html")
		if result.Code != "" && result.Err == nil {
			fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head><title>mixcrew - Spotify Login</title></head>
<body style="font-family: sans-serif; text-align: center; padding: 50px;">
<h1>Login Successful!</h1>
<p>You can close this window and return to mixcrew.</p>
</body>
</html>`)
		} else {
			fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head><title>mixcrew - Spotify Login</title></head>
<body style="font-family: sans-serif; text-align: center; padding: 50px;">
<h1>Login Failed</h1>
<p>No authorization code received. Please try again.</p>
</body>
</html>`)
		}

		select {
		case resultChan <- result:
		default:
		}
	})

	go func() {
		_ = server.Serve(listener)
		close(done)
	}()

	return cs, nil
}

// ResultChan returns the channel that receives the redirect result.
func (cs *CallbackServer) ResultChan() <-chan CallbackResult {
	return cs.resultChan
}

// Shutdown stops the callback server.
func (cs *CallbackServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = cs.server.Shutdown(ctx)
	<-cs.done
}
