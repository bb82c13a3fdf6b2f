package build

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/npillmayer/schuko"
)

// Identity holds the names a generated font is labelled with.
type Identity struct {
	FamilyName string
	Version    string
	Comment    string
	Copyright  string
	FontName   string // PostScript name
	FullName   string
}

// Config holds the parameters of a build.
type Config struct {
	Source     string  // outline font
	Reference  string  // font to take vertical metrics from
	OutDir     string  // directory for the generated fonts
	Width      int     // target advance width
	Cosmetic   float64 // scale applied after matching cap heights
	BoldStroke float64 // stem thickening of the bold variant
	Regular    Identity
	Bold       Identity
	Verify     bool // re-read the generated fonts
}

// Output file names.
const (
	RegularFile = "ComicMono.ttf"
	BoldFile    = "ComicMono-Bold.ttf"
)

// DefaultConfig returns the configuration for building Comic Mono from the
// fonts in directory 'vendor'.
func DefaultConfig() Config {
	regular := Identity{
		FamilyName: "Comic Mono",
		Version:    "0.1.1",
		Comment:    "https://github.com/dtinth/comic-mono-font",
		Copyright:  "https://github.com/dtinth/comic-mono-font/blob/master/LICENSE",
		FontName:   "ComicMono",
		FullName:   "Comic Mono",
	}
	bold := regular
	bold.FontName = "ComicMono-Bold"
	bold.FullName = "Comic Mono Bold"
	return Config{
		Source:     filepath.Join("vendor", "comic-shanns.otf"),
		Reference:  filepath.Join("vendor", "Cousine-Regular.ttf"),
		OutDir:     ".",
		Width:      510,
		Cosmetic:   0.875,
		BoldStroke: 32,
		Regular:    regular,
		Bold:       bold,
	}
}

// Configuration keys understood by ConfigFrom. All values are strings.
const (
	KeyVendor = "comicmono.vendor" // directory containing both input fonts
	KeyOutDir = "comicmono.out"
	KeyWidth  = "comicmono.width"
	KeyScale  = "comicmono.scale"
	KeyStroke = "comicmono.stroke"
	KeyVerify = "comicmono.verify"
)

// ConfigFrom returns the default configuration, overridden by the keys set
// in conf. Invalid numbers are reported as errors.
func ConfigFrom(conf schuko.Configuration) (Config, error) {
	c := DefaultConfig()
	if conf == nil {
		return c, nil
	}
	if dir := conf.GetString(KeyVendor); dir != "" {
		c.Source = filepath.Join(dir, filepath.Base(c.Source))
		c.Reference = filepath.Join(dir, filepath.Base(c.Reference))
	}
	if dir := conf.GetString(KeyOutDir); dir != "" {
		c.OutDir = dir
	}
	var err error
	if s := conf.GetString(KeyWidth); s != "" {
		if c.Width, err = strconv.Atoi(s); err != nil || c.Width <= 0 {
			return c, fmt.Errorf("invalid target width %q", s)
		}
	}
	if s := conf.GetString(KeyScale); s != "" {
		if c.Cosmetic, err = strconv.ParseFloat(s, 64); err != nil || c.Cosmetic <= 0 {
			return c, fmt.Errorf("invalid scale %q", s)
		}
	}
	if s := conf.GetString(KeyStroke); s != "" {
		if c.BoldStroke, err = strconv.ParseFloat(s, 64); err != nil {
			return c, fmt.Errorf("invalid stroke %q", s)
		}
	}
	if s := conf.GetString(KeyVerify); s != "" {
		if c.Verify, err = strconv.ParseBool(s); err != nil {
			return c, fmt.Errorf("invalid verify flag %q", s)
		}
	}
	return c, nil
}
