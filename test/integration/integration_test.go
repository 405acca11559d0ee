//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/cograph/internal/config"
	"github.com/agenthands/cograph/internal/debounce"
	"github.com/agenthands/cograph/internal/ingest"
	"github.com/agenthands/cograph/internal/server"
)

const header = "theoretical,methodological,cross,rao_stirling_theoretical,rao_stirling_methodological,rao_stirling_cross,publication_year,citation_5years\n"

type graphResponse struct {
	Nodes []struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	} `json:"nodes"`
	Edges []struct {
		Source string `json:"source"`
		Target string `json:"target"`
		Type   string `json:"type"`
	} `json:"edges"`
	Band string `json:"band"`
	Meta struct {
		Version string `json:"version"`
		Cached  bool   `json:"cached"`
	} `json:"meta"`
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func getGraph(t *testing.T, base, query string) graphResponse {
	t.Helper()
	resp, err := http.Get(base + "/graph" + query)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out graphResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCSVToHTTP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	recordsPath := filepath.Join(dir, "records.csv")
	catalogPath := filepath.Join(dir, "catalog.csv")

	writeFile(t, recordsPath, header+
		`"['G13', 'G12']","['C21']","[('C21', 'G12')]",0.5,0.1,-0.2,2009,40`+"\n"+
		`"['E44', 'G12']",[],[],0.36,0,0,2010,25`+"\n")
	writeFile(t, catalogPath, "code,description\nG12,Insurance\n")

	cfg := config.Default()
	cfg.Data.RecordsPath = recordsPath
	cfg.Data.CatalogPath = catalogPath

	dataset := ingest.NewDataset(recordsPath)
	_, err := dataset.Load()
	require.NoError(t, err)
	catalog, err := ingest.LoadCatalog(catalogPath)
	require.NoError(t, err)

	srv, err := server.NewServer(cfg, dataset, catalog)
	require.NoError(t, err)

	watcher, err := ingest.NewWatcher(dataset, debounce.New(20*time.Millisecond))
	require.NoError(t, err)
	watcher.OnReload(srv.Invalidate)
	watcher.Start()
	defer watcher.Stop()

	ts := httptest.NewServer(srv.SetupRouter())
	defer ts.Close()

	first := getGraph(t, ts.URL, "")
	assert.Len(t, first.Nodes, 4)
	assert.Len(t, first.Edges, 3)
	for _, n := range first.Nodes {
		if n.ID == "G12" {
			assert.Equal(t, "Insurance", n.Label)
		}
	}
	assert.True(t, getGraph(t, ts.URL, "").Meta.Cached)

	writeFile(t, recordsPath, header+
		`"['G13', 'G12']","['C21']","[('C21', 'G12')]",0.5,0.1,-0.2,2009,40`+"\n"+
		`"['E44', 'G12']",[],[],0.36,0,0,2010,25`+"\n"+
		`"['F31', 'G12']",[],[],0.2,0,0,2011,7`+"\n")

	require.Eventually(t, func() bool {
		return dataset.Current().Version != first.Meta.Version
	}, 3*time.Second, 20*time.Millisecond)

	second := getGraph(t, ts.URL, "")
	assert.False(t, second.Meta.Cached)
	assert.Len(t, second.Nodes, 5)

	theo := getGraph(t, ts.URL, "?types=theoretical")
	for _, e := range theo.Edges {
		assert.Equal(t, "theoretical", e.Type)
	}
}
