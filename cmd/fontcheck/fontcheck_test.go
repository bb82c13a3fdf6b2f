package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func testIntp(t *testing.T, data []byte) *Intp {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ttf")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	intp, err := loadFont(path)
	require.NoError(t, err)
	return intp
}

func TestParseCommand(t *testing.T) {
	ops := parseCommand("glyph:U+0041  metrics bogus quit help")
	require.Len(t, ops, 4)
	assert.Equal(t, GLYPH, ops[0].code)
	assert.Equal(t, "U+0041", ops[0].arg)
	assert.Equal(t, METRICS, ops[1].code)
	assert.True(t, ops[1].noArg())
	assert.Equal(t, HELP, ops[2].code, "unknown commands ask for help")
	assert.Equal(t, QUIT, ops[3].code)
}

func TestParseCodePoint(t *testing.T) {
	for in, want := range map[string]rune{"A": 'A', "U+0041": 'A', "u+1f600": 0x1F600, "ä": 'ä'} {
		r, err := parseCodePoint(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, r, in)
	}
	for _, in := range []string{"", "AB", "U+", "U+110000", "U+XYZ"} {
		_, err := parseCodePoint(in)
		assert.Error(t, err, in)
	}
}

func TestCellWidth(t *testing.T) {
	assert.Equal(t, 3, cellWidth("abc"))
	assert.Equal(t, 4, cellWidth("中文"))
}

func TestInspectGoMono(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comicmono")
	defer teardown()
	//
	intp := testIntp(t, gomono.TTF)
	rows, err := glyphRows(intp, 'm')
	require.NoError(t, err)
	assert.Equal(t, []string{"code point", "U+006D Ll"}, rows[1])
	assert.Equal(t, []string{"terminal cells", "1"}, rows[6])
	_, err = glyphRows(intp, 0x1F600)
	assert.Error(t, err)
	//
	hist := advances(intp.font)
	m := intp.font.Glyph('m')
	require.NotNil(t, m)
	assert.Equal(t, intp.font.Glyph('i').Width, m.Width)
	assert.Greater(t, hist[m.Width], 90)
	//
	quit := intp.execute(parseCommand("metrics names tables mono glyph:A cells:ab help:glyph"))
	assert.False(t, quit)
	assert.True(t, intp.execute(parseCommand("names quit metrics")))
}

func TestAdvancesProportional(t *testing.T) {
	intp := testIntp(t, goregular.TTF)
	assert.Greater(t, len(advances(intp.font)), 1)
	assert.NotEqual(t, intp.font.Glyph('m').Width, intp.font.Glyph('i').Width)
}

func TestNoFont(t *testing.T) {
	intp := &Intp{}
	err, stop := metricsOp(intp, &Op{code: METRICS})
	assert.ErrorIs(t, err, errNoFont)
	assert.False(t, stop)
	_, err = loadFont(filepath.Join(t.TempDir(), "missing.ttf"))
	assert.Error(t, err)
}
