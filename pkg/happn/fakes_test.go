package happn

import (
	"context"
	"sync"
	"testing"

	"github.com/samvad-hq/happn-client/pkg/httpclient"
)

type fakeResponse struct {
	code int
	body []byte
}

func (r fakeResponse) Body() []byte    { return r.body }
func (r fakeResponse) StatusCode() int { return r.code }

// fakeTransport records requests and answers every one with the same reply.
type fakeTransport struct {
	mu       sync.Mutex
	requests []httpclient.Request
	status   int
	body     string
	err      error
}

func (f *fakeTransport) Do(_ context.Context, req httpclient.Request) (httpclient.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return fakeResponse{code: f.status, body: []byte(f.body)}, nil
}

func (f *fakeTransport) last(t *testing.T) httpclient.Request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		t.Fatal("no request was sent")
	}
	return f.requests[len(f.requests)-1]
}

// recordingLogger captures warnings so tests can assert on them.
type recordingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) DebugObj(string, string, interface{}) {}
func (l *recordingLogger) InfoObj(string, string, interface{})  {}
func (l *recordingLogger) WarnObj(msg, _ string, _ interface{}) {
	l.mu.Lock()
	l.warns = append(l.warns, msg)
	l.mu.Unlock()
}

func newTestClient(t *testing.T, ft *fakeTransport) *Client {
	t.Helper()
	c, err := New(Config{Credentials: Credentials{ClientID: "cid", ClientSecret: "secret"}}, ft, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

// newSessionClient returns a client that already holds token "T" for user "U".
func newSessionClient(t *testing.T, ft *fakeTransport) *Client {
	t.Helper()
	c := newTestClient(t, ft)
	c.session = Session{Token: "T", UserID: "U"}
	return c
}
