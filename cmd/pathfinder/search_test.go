package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alvmarrod/web-pathfinder/internal/search"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSite(t *testing.T) *httptest.Server {
	t.Helper()

	pages := map[string]string{
		"/wiki/Start":  `<html><head><title>Start</title></head><body><a href="/wiki/Middle">Middle</a></body></html>`,
		"/wiki/Middle": `<html><head><title>Middle</title></head><body><a href="/wiki/Start">back</a><a href="/wiki/Goal">Goal</a></body></html>`,
		"/wiki/Goal":   `<html><head><title>Goal</title></head><body></body></html>`,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSearchCommand(t *testing.T) {
	logrus.SetOutput(io.Discard)
	srv := newSite(t)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"search", srv.URL + "/wiki/Start", srv.URL + "/wiki/Goal", "--algorithm", "dfs", "-n", "10"})

	require.NoError(t, cmd.Execute())

	var found *search.Event
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		var e search.Event
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		if e.Type == search.EventPathFound {
			found = &e
		}
	}

	require.NotNil(t, found, "output: %s", out.String())
	assert.Equal(t, []string{srv.URL + "/wiki/Start", srv.URL + "/wiki/Middle", srv.URL + "/wiki/Goal"}, found.Path)
	assert.NotNil(t, found.Time, "extended profile reports elapsed time")
}

func TestSearchCommandRejectsUnknownAlgorithm(t *testing.T) {
	logrus.SetOutput(io.Discard)

	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"search", "https://example.com/a", "https://example.com/b", "-a", "astar"})

	err := cmd.Execute()
	assert.ErrorIs(t, err, search.ErrInvalidRequest)
}

func TestSearchCommandNeedsTwoURLs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"search", "https://example.com/a"})

	assert.Error(t, cmd.Execute())
}
