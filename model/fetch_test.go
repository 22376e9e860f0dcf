package model

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_LocalPath(t *testing.T) {
	src, err := Resolve(context.Background(), "testdata/ultralight.yaml")
	require.NoError(t, err)
	defer src.Cleanup()

	assert.False(t, src.Fetched)
	assert.True(t, filepath.IsAbs(src.Path))
	assert.FileExists(t, src.Path)
}

func TestResolve_Empty(t *testing.T) {
	_, err := Resolve(context.Background(), "")
	assert.Error(t, err)
}

func TestResolve_HTTP(t *testing.T) {
	body, err := os.ReadFile("testdata/ultralight.yaml")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	src, err := Resolve(context.Background(), srv.URL+"/ultralight.yaml")
	require.NoError(t, err)

	assert.True(t, src.Fetched)
	assert.Equal(t, ".yaml", filepath.Ext(src.Path))
	fetched, err := os.ReadFile(src.Path)
	require.NoError(t, err)
	assert.Equal(t, body, fetched)

	src.Cleanup()
	_, err = os.Stat(filepath.Dir(src.Path))
	assert.True(t, os.IsNotExist(err), "fetched model directory should be removed")

	// Cleanup is idempotent
	src.Cleanup()
}

func TestLoad(t *testing.T) {
	m, err := Load(context.Background(), "testdata/ultralight.yaml")
	require.NoError(t, err)
	assert.Len(t, m.Declarations, 17)
}

func TestModelExt(t *testing.T) {
	assert.Equal(t, ".json", modelExt("https://example.com/models/ultralight.json"))
	assert.Equal(t, ".yml", modelExt("git::https://example.com/repo.git//models/api.yml"))
	assert.Equal(t, ".yaml", modelExt("https://example.com/model"))
}
