package archive_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"pitwall/internal/archive"
)

func newClient(t *testing.T, base, mirror string) *archive.Client {
	t.Helper()
	client, err := archive.New(base, mirror,
		archive.WithLimiter(rate.NewLimiter(rate.Inf, 1)),
		archive.WithRetryPolicy(3, time.Millisecond),
	)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client
}

func TestFetchNotFoundReturnsAbsent(t *testing.T) {
	var mirrorHits atomic.Int32
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(primary.Close)
	mirror := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mirrorHits.Add(1)
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(mirror.Close)

	client := newClient(t, primary.URL, mirror.URL)
	_, err := client.Fetch(context.Background(), "2024/Index.json")
	if !errors.Is(err, archive.ErrAbsent) {
		t.Fatalf("expected ErrAbsent, got %v", err)
	}
	if mirrorHits.Load() != 0 {
		t.Fatal("404 must not fall through to the mirror")
	}
}

func TestFetchRetriesServerErrorsThenFallsBackToMirror(t *testing.T) {
	var primaryHits atomic.Int32
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		primaryHits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(primary.Close)
	mirror := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Year":2022}`))
	}))
	t.Cleanup(mirror.Close)

	client := newClient(t, primary.URL, mirror.URL)
	payload, err := client.Fetch(context.Background(), "2022/Index.json")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if string(payload) != `{"Year":2022}` {
		t.Fatalf("unexpected payload: %q", payload)
	}
	if got := primaryHits.Load(); got != 4 {
		t.Fatalf("expected 1 attempt + 3 retries against primary, got %d", got)
	}
}

func TestFetchAccessDeniedSkipsRetryAndUsesMirror(t *testing.T) {
	var primaryHits atomic.Int32
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		primaryHits.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(primary.Close)
	mirror := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2022/Index.json" {
			t.Errorf("mirror got unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"Year":2022}`))
	}))
	t.Cleanup(mirror.Close)

	client := newClient(t, primary.URL, mirror.URL)
	payload, err := client.Fetch(context.Background(), "2022/Index.json")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(payload) == 0 {
		t.Fatal("expected mirror payload")
	}
	if got := primaryHits.Load(); got != 1 {
		t.Fatalf("403 must not be retried on the primary, got %d attempts", got)
	}
}

func TestFetchBothHostsExhaustedIsSoftAbsence(t *testing.T) {
	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	primary := httptest.NewServer(failing)
	t.Cleanup(primary.Close)
	mirror := httptest.NewServer(failing)
	t.Cleanup(mirror.Close)

	client := newClient(t, primary.URL, mirror.URL)
	_, err := client.Fetch(context.Background(), "2024/Index.json")
	if !errors.Is(err, archive.ErrAbsent) {
		t.Fatalf("expected soft absence, got %v", err)
	}
}

func TestDocumentStripsBOMAndDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("\xef\xbb\xbf{\"TotalLaps\":58,\"CurrentLap\":58}"))
	}))
	t.Cleanup(server.Close)

	client := newClient(t, server.URL, "")
	var lapCount archive.RawLapCount
	if err := client.Document(context.Background(), "x/LapCount.json", &lapCount); err != nil {
		t.Fatalf("Document returned error: %v", err)
	}
	if lapCount.TotalLaps == nil || *lapCount.TotalLaps != 58 {
		t.Fatalf("unexpected total laps: %v", lapCount.TotalLaps)
	}
}

func TestDocumentCorruptPayloadIsHardError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	t.Cleanup(server.Close)

	client := newClient(t, server.URL, "")
	var index archive.RawSeasonIndex
	err := client.Document(context.Background(), "2024/Index.json", &index)
	if !errors.Is(err, archive.ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestSessionDocumentNormalizesTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2024/race/DriverList.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	client := newClient(t, server.URL, "")
	var roster archive.RawDriverList
	if err := client.SessionDocument(context.Background(), "2024/race", archive.DocDriverList, &roster); err != nil {
		t.Fatalf("SessionDocument returned error: %v", err)
	}
}

func TestLimiterSpacesRequests(t *testing.T) {
	var stamps []time.Time
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stamps = append(stamps, time.Now())
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	client, err := archive.New(server.URL, "",
		archive.WithLimiter(rate.NewLimiter(rate.Every(50*time.Millisecond), 1)))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := client.Fetch(context.Background(), "2024/Index.json"); err != nil {
			t.Fatalf("Fetch returned error: %v", err)
		}
	}
	for i := 1; i < len(stamps); i++ {
		if gap := stamps[i].Sub(stamps[i-1]); gap < 40*time.Millisecond {
			t.Fatalf("requests not throttled: gap %v", gap)
		}
	}
}
