package comicmono

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
)

func TestParseOpenTypeFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comicmono")
	defer teardown()
	//
	f, err := ParseOpenTypeFont(gomono.TTF)
	require.NoError(t, err)
	assert.Equal(t, "Go Mono", f.Fontname)
	assert.NotNil(t, f.SFNT)
	_, err = ParseOpenTypeFont([]byte("no font"))
	assert.Error(t, err)
}

func TestLoadOpenTypeFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comicmono")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "gomono.ttf")
	require.NoError(t, os.WriteFile(path, gomono.TTF, 0o644))
	f, err := LoadOpenTypeFont(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Filepath)
	_, err = LoadOpenTypeFont(filepath.Join(t.TempDir(), "missing.ttf"))
	assert.Error(t, err)
}
