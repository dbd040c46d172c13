package bgg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/openmeeple/meeplevault-backend/pkg/config"
	pkgerrors "github.com/openmeeple/meeplevault-backend/pkg/errors"
)

func TestClientSearchBuildsQuery(t *testing.T) {
	var gotPath, gotQuery, gotType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		gotType = r.URL.Query().Get("type")
		w.Write([]byte(`<items></items>`))
	}))
	defer server.Close()

	client := NewClient(config.BGGConfig{BaseURL: server.URL, Timeout: time.Second}, nil)
	raw, err := client.Search(context.Background(), "catan")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if string(raw) != `<items></items>` {
		t.Fatalf("unexpected payload: %s", raw)
	}
	if gotPath != "/search" {
		t.Fatalf("expected /search, got %s", gotPath)
	}
	if gotQuery != "catan" || gotType != "boardgame" {
		t.Fatalf("unexpected query params: query=%q type=%q", gotQuery, gotType)
	}
}

func TestClientThingRequestsStats(t *testing.T) {
	var gotID, gotStats string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.URL.Query().Get("id")
		gotStats = r.URL.Query().Get("stats")
		w.Write([]byte(`<items><item id="13"/></items>`))
	}))
	defer server.Close()

	client := NewClient(config.BGGConfig{BaseURL: server.URL, Timeout: time.Second}, nil)
	if _, err := client.Thing(context.Background(), "13"); err != nil {
		t.Fatalf("thing: %v", err)
	}
	if gotID != "13" || gotStats != "1" {
		t.Fatalf("unexpected query params: id=%q stats=%q", gotID, gotStats)
	}
}

func TestClientErrorStatusIsDependencyError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(config.BGGConfig{BaseURL: server.URL, Timeout: time.Second}, nil)
	_, err := client.Search(context.Background(), "catan")
	if !pkgerrors.Is(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestClientTransportFailureIsDependencyError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(config.BGGConfig{BaseURL: server.URL, Timeout: time.Second}, nil)
	_, err := client.Search(context.Background(), "catan")
	if !pkgerrors.Is(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
