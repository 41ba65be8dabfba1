package resolver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const startPage = `<html><head><title> Start Page </title></head><body>
<h1>Heading</h1>
<a href="/wiki/A">A</a>
<a href="/wiki/B#section">B</a>
<a href="/wiki/A">A again</a>
<a href="https://other.example.com/x">offsite</a>
<a href="/img/photo.png">photo</a>
<a href="/wiki/1998">1998</a>
<a href="/wiki/Kategori:Kota">cities</a>
<a href="mailto:someone@example.com">mail</a>
<a href="/wiki/C">C</a>
</body></html>`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, startPage)
	})
	mux.HandleFunc("/heading", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, `<html><body><h1> Only Heading </h1></body></html>`)
	})
	mux.HandleFunc("/bare", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, `<html><body><p>nothing here</p></body></html>`)
	})
	mux.HandleFunc("/json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"title":"nope"}`)
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestResolver() *Resolver {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(Config{
		UserAgent: "pathfinder-test",
		Timeout:   2 * time.Second,
	}, logrus.NewEntry(log))
}

func TestResolveExtractsTitleAndLinks(t *testing.T) {
	srv := newTestServer(t)
	r := newTestResolver()

	page, err := r.Resolve(context.Background(), srv.URL+"/start")
	require.NoError(t, err)

	assert.Equal(t, "Start Page", page.Title)
	assert.Equal(t, []string{
		srv.URL + "/wiki/A",
		srv.URL + "/wiki/B",
		srv.URL + "/wiki/C",
	}, page.Links)
}

func TestResolveTitleFallbacks(t *testing.T) {
	srv := newTestServer(t)
	r := newTestResolver()

	page, err := r.Resolve(context.Background(), srv.URL+"/heading")
	require.NoError(t, err)
	assert.Equal(t, "Only Heading", page.Title)

	page, err = r.Resolve(context.Background(), srv.URL+"/bare")
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, page.Title)
	assert.Empty(t, page.Links)
}

func TestResolveRevisitsSameURL(t *testing.T) {
	srv := newTestServer(t)
	r := newTestResolver()

	for i := 0; i < 2; i++ {
		page, err := r.Resolve(context.Background(), srv.URL+"/start")
		require.NoError(t, err)
		assert.Len(t, page.Links, 3)
	}
}

func TestResolveFailures(t *testing.T) {
	srv := newTestServer(t)

	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	tests := []struct {
		name   string
		url    string
		reason error
		status int
	}{
		{"not found", srv.URL + "/gone", ErrBadStatus, http.StatusNotFound},
		{"not html", srv.URL + "/json", ErrNotHTML, http.StatusOK},
		{"connection refused", closedURL + "/start", ErrUnreachable, 0},
		{"bad scheme", "ftp://example.com/file", ErrUnreachable, 0},
		{"garbage", "://nope", ErrUnreachable, 0},
	}

	r := newTestResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(context.Background(), tt.url)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.reason)

			var rerr *Error
			require.True(t, errors.As(err, &rerr))
			assert.Equal(t, tt.url, rerr.URL)
			assert.Equal(t, tt.status, rerr.Status)
		})
	}
}

func TestResolveCancelledContext(t *testing.T) {
	srv := newTestServer(t)
	r := newTestResolver()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, srv.URL+"/start")
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestErrorMessage(t *testing.T) {
	err := &Error{URL: "https://example.com", Status: 500, Reason: ErrBadStatus}
	assert.Equal(t, "resolve https://example.com: unexpected status (status 500)", err.Error())

	wrapped := &Error{URL: "https://example.com", Reason: ErrUnreachable, Err: context.DeadlineExceeded}
	assert.ErrorIs(t, wrapped, context.DeadlineExceeded)
	assert.ErrorIs(t, wrapped, ErrUnreachable)
}
