package netx

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestPostJSON(t *testing.T) {
	payload := []byte(`{"record":{"nome":"Ana"}}`)

	t.Run("success 200 OK", func(t *testing.T) {
		var gotBody []byte
		var gotCT, gotAuth, gotMethod string

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotCT = r.Header.Get("Content-Type")
			gotAuth = r.Header.Get("Authorization")
			body, _ := io.ReadAll(r.Body)
			_ = r.Body.Close()
			gotBody = body
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		err := PostJSON(context.Background(), nil, ts.URL, map[string]string{"Authorization": "Bearer k"}, payload)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotMethod != http.MethodPost {
			t.Fatalf("method = %q, want POST", gotMethod)
		}
		if gotCT != "application/json" {
			t.Fatalf("Content-Type = %q, want application/json", gotCT)
		}
		if gotAuth != "Bearer k" {
			t.Fatalf("Authorization = %q", gotAuth)
		}
		if !bytes.Equal(gotBody, payload) {
			t.Fatalf("body = %q, want %q", string(gotBody), string(payload))
		}
	})

	t.Run("non-2xx -> error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("no key"))
		}))
		defer ts.Close()

		err := PostJSON(context.Background(), ts.Client(), ts.URL, nil, payload)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "request failed: 403") || !strings.Contains(err.Error(), "no key") {
			t.Fatalf("error = %q, want status and body", err.Error())
		}
	})

	t.Run("bad url -> error", func(t *testing.T) {
		if err := PostJSON(context.Background(), nil, "://bad-url", nil, payload); err == nil {
			t.Fatal("expected error for bad URL, got nil")
		}
	})

	t.Run("timeout -> error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer ts.Close()

		client := &http.Client{Timeout: 20 * time.Millisecond}
		if err := PostJSON(context.Background(), client, ts.URL, nil, payload); err == nil {
			t.Fatal("expected timeout error, got nil")
		}
	})
}
