package testsupport

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// FakeArchive serves canned documents keyed by request path. Paths not in the
// map return 404, matching how the real archive reports absent documents.
func FakeArchive(t testing.TB, documents map[string]string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := documents[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}
