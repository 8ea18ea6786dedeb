package slugapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/slugs" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.State != "abc12345XY" || req.ID != "tok" {
			t.Errorf("request = %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(CreateResponse{
			SlugID:    "slug1234567890",
			SlugURL:   "https://link.example.com/slug1234567890",
			ExpiresAt: "2026-08-30T12:00:00Z",
		})
	}))
	defer srv.Close()

	c := New(srv.URL+"/", 2*time.Second) // trailing slash must be tolerated
	resp, err := c.Create(context.Background(), CreateRequest{State: "abc12345XY", ID: "tok"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.SlugURL != "https://link.example.com/slug1234567890" {
		t.Errorf("SlugURL = %q", resp.SlugURL)
	}
}

func TestCreateAccepts200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(CreateResponse{
			SlugID:  "slug1234567890",
			SlugURL: "https://link.example.com/slug1234567890",
		})
	}))
	defer srv.Close()

	resp, err := New(srv.URL, 2*time.Second).Create(context.Background(), CreateRequest{State: "s", ID: "i"})
	if err != nil {
		t.Fatalf("Create must accept a 200 response: %v", err)
	}
	if resp.SlugURL != "https://link.example.com/slug1234567890" {
		t.Errorf("SlugURL = %q", resp.SlugURL)
	}
}

func TestCreateNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"state and id are required"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := New(srv.URL, 2*time.Second).Create(context.Background(), CreateRequest{})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if !strings.Contains(err.Error(), "400") {
		t.Errorf("error %q does not mention status", err)
	}
}

func TestCreateEmptySlugURLIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"slugId":"x"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, 2*time.Second).Create(context.Background(), CreateRequest{State: "s", ID: "i"})
	if err == nil {
		t.Fatal("expected error for empty slug URL")
	}
}

func TestCreateContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Consume the body first: the server only notices the client going
		// away once the request has been fully read.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := New(srv.URL, 5*time.Second).Create(ctx, CreateRequest{State: "s", ID: "i"})
	if err == nil {
		t.Fatal("expected error on canceled context")
	}
}
