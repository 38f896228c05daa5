package storage

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

func newListServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}
		*hits++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"asl-a.png"},{"name":"asl-b.png"},{"name":""}]`))
	}))
}

func TestPublicURL(t *testing.T) {
	client, err := NewClient("https://project.example.co", "key", "sign images", zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	got := client.PublicURL("asl-signs.png")
	want := "https://project.example.co/storage/v1/object/public/sign%20images/asl-signs.png"
	if got != want {
		t.Fatalf("invalid url: %s, expected %s", got, want)
	}
}

func TestListImagesCachesListing(t *testing.T) {
	hits := 0
	server := newListServer(t, &hits)
	defer server.Close()

	client, err := NewClient(server.URL, "key", "signs", zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	want := []string{"asl-a.png", "asl-b.png"}
	for i := 0; i < 3; i++ {
		names, err := client.ListImages()
		if err != nil {
			t.Fatalf("ListImages failed: %v", err)
		}
		if diff := cmp.Diff(want, names); diff != "" {
			t.Fatalf("unexpected listing (-want +got):\n%s", diff)
		}
	}
	if hits != 1 {
		t.Fatalf("expected a single upstream request, got %d", hits)
	}

	found, err := client.HasImage("asl-b.png")
	if err != nil || !found {
		t.Fatalf("expected asl-b.png to be present, found=%v err=%v", found, err)
	}
	missing, err := client.HasImage("nope.png")
	if err != nil || missing {
		t.Fatalf("expected nope.png to be absent, found=%v err=%v", missing, err)
	}
	if hits != 1 {
		t.Fatalf("HasImage should reuse the cached listing, got %d hits", hits)
	}
}

func TestListImagesSurfacesUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "key", "signs", zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if _, err := client.ListImages(); err == nil {
		t.Fatal("expected error for upstream failure")
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "key", "signs", zap.NewNop()); err == nil {
		t.Fatal("expected error for empty base URL")
	}
	if _, err := NewClient("https://x", "key", "", zap.NewNop()); err == nil {
		t.Fatal("expected error for empty bucket")
	}
}
