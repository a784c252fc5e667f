package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRestyClientDoSendsMethodHeadersAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if got := r.Header.Get("X-Test"); got != "1" {
			t.Errorf("missing header, got %q", got)
		}
		if got := r.URL.RawQuery; got != "a%3Ab" {
			t.Errorf("raw query rewritten: %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "k=v" {
			t.Errorf("unexpected body %q", body)
		}
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewRestyClient(2 * time.Second)
	resp, err := c.Do(context.Background(), Request{
		Method:  "put",
		URL:     srv.URL + "/x?a%3Ab",
		Headers: map[string]string{"X-Test": "1"},
		Body:    []byte("k=v"),
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.StatusCode() != http.StatusAccepted {
		t.Fatalf("StatusCode = %d", resp.StatusCode())
	}
	if string(resp.Body()) != "ok" {
		t.Fatalf("Body = %q", resp.Body())
	}
}

func TestRestyClientDoRejectsEmptyMethod(t *testing.T) {
	c := NewRestyClient(0)
	if _, err := c.Do(context.Background(), Request{URL: "http://127.0.0.1"}); err == nil {
		t.Fatal("expected error for empty method")
	}
}

func TestRestyClientDoConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewRestyClient(time.Second)
	if _, err := c.Do(context.Background(), Request{Method: http.MethodGet, URL: url}); err == nil {
		t.Fatal("expected connection error")
	}
}
