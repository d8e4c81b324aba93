// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	dash "github.com/leapstack-labs/launchdash/internal/dashboard"
	"github.com/leapstack-labs/launchdash/internal/launch"
	"github.com/leapstack-labs/launchdash/internal/ui/notifier"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Store        *dash.Store
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore

	// DataPath is the CSV the store was loaded from, when loaded from disk.
	DataPath string
}

// SetupTestFixture builds a fixture around an in-memory dataset made of
// records. With no records the bundled sample launches are loaded.
func SetupTestFixture(t *testing.T, opts []dash.Option, records ...launch.Record) *TestFixture {
	t.Helper()

	var (
		ds   *launch.Dataset
		err  error
		path string
	)
	if len(records) == 0 {
		path = SampleDataPath(t)
		ds, err = launch.Load(context.Background(), launch.Config{Path: path})
	} else {
		ds, err = launch.NewDataset(launch.NewTableFromRecords(records...))
	}
	require.NoError(t, err)

	return &TestFixture{
		Store:        dash.NewStore(dash.NewData(ds, opts...)),
		Notifier:     notifier.New(),
		SessionStore: NewTestSessionStore(),
		DataPath:     path,
	}
}

// SampleDataPath returns the absolute path of the sample launch CSV.
func SampleDataPath(t *testing.T) string {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "cannot locate test helper source")
	path := filepath.Join(filepath.Dir(filename), "..", "..", "launch", "testdata", "spacex_launch_dash.csv")
	_, err := os.Stat(path)
	require.NoError(t, err)
	return path
}

// CopySampleData copies the sample CSV into a temp dir and returns the copy.
func CopySampleData(t *testing.T) string {
	t.Helper()

	content, err := os.ReadFile(SampleDataPath(t))
	require.NoError(t, err)
	dst := filepath.Join(t.TempDir(), "spacex_launch_dash.csv")
	require.NoError(t, os.WriteFile(dst, content, 0600))
	return dst
}

// SignalsRequest builds a datastar GET request carrying signals JSON in
// the datastar query parameter.
func SignalsRequest(path, signalsJSON string) *http.Request {
	return httptest.NewRequest(http.MethodGet, path+"?datastar="+url.QueryEscape(signalsJSON), nil)
}

// WithCookies copies the cookies set on rec onto req.
func WithCookies(req *http.Request, rec *httptest.ResponseRecorder) *http.Request {
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

// RequestWithTimeout wraps a request with a context timeout.
func RequestWithTimeout(t *testing.T, r *http.Request, timeout time.Duration) *http.Request {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	t.Cleanup(cancel)
	return r.WithContext(ctx)
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}
