package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNotifyPostsText(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	s := NewSlack(srv.URL, srv.Client())
	if err := s.Notify(context.Background(), "published: https://example.com/post/123"); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if got["text"] != "published: https://example.com/post/123" {
		t.Errorf("text = %q", got["text"])
	}
}

func TestNotifyWithoutWebhookIsNoop(t *testing.T) {
	s := NewSlack("", nil)
	if err := s.Notify(context.Background(), "ignored"); err != nil {
		t.Fatalf("Notify() error = %v, want nil", err)
	}
}

func TestNotifyRejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("no_service"))
	}))
	defer srv.Close()

	s := NewSlack(srv.URL, srv.Client())
	if err := s.Notify(context.Background(), "msg"); err == nil {
		t.Fatal("Notify() error = nil, want non-2xx error")
	}
}
