package testserver

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mergington/activities/internal/catalog"
	"github.com/mergington/activities/internal/domain/activity"
	"github.com/mergington/activities/internal/mcp"
	"github.com/mergington/activities/internal/memstore"
	"github.com/mergington/activities/internal/metrics"
	"github.com/mergington/activities/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// IndexHTML is the landing page served from the test static directory.
const IndexHTML = "<!doctype html><title>Mergington High School Activities</title>"

type TestServer struct {
	Server    *httptest.Server
	Store     *memstore.Store
	Service   *activity.Service
	Metrics   *metrics.Metrics
	MCP       *sdkmcp.Server
	StaticDir string
}

// New starts the full HTTP stack over the built-in catalog.
func New(t *testing.T) *TestServer {
	t.Helper()

	seed, err := catalog.Default()
	require.NoError(t, err)
	return NewWithSeed(t, seed)
}

// NewWithSeed starts the full HTTP stack over the given activities.
func NewWithSeed(t *testing.T, seed []activity.Activity) *TestServer {
	t.Helper()

	store, err := memstore.New(seed)
	require.NoError(t, err)

	m := metrics.New()
	for _, a := range seed {
		m.SetRosterSize(a.Name, len(a.Participants))
	}
	svc := activity.NewService(store, m, nil)
	mcpServer := mcp.NewServer(mcp.Config{Activities: svc, Version: "test"})

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte(IndexHTML), 0o600))

	router := transport.NewServer(svc, transport.Options{
		StaticDir: staticDir,
		Metrics:   m.Handler(),
		Observer:  m,
		MCP: sdkmcp.NewStreamableHTTPHandler(
			func(*http.Request) *sdkmcp.Server { return mcpServer },
			nil,
		),
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server:    server,
		Store:     store,
		Service:   svc,
		Metrics:   m,
		MCP:       mcpServer,
		StaticDir: staticDir,
	}
}

// URL joins path onto the server's base URL. path must already be escaped.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}
