// Copyright 2026 The Mddoc Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/lazytanuki/mddoc/markup"
)

// ImageMode selects how image nodes are compiled.
type ImageMode int

const (
	// ImageIgnore drops images entirely: no node, no diagnostic.
	ImageIgnore ImageMode = iota

	// ImageFromPath emits an image block referencing the source URL
	// as a filesystem path. This is the default.
	ImageFromPath

	// ImageEmbed would inline image bytes into the document. It is
	// not implemented; compiling any image under this mode fails with
	// ErrEmbeddedImages.
	ImageEmbed
)

func (m ImageMode) String() string {
	switch m {
	case ImageIgnore:
		return "ignore"
	case ImageFromPath:
		return "from-path"
	case ImageEmbed:
		return "embed"
	default:
		return fmt.Sprintf("ImageMode(%d)", int(m))
	}
}

// ParseImageMode maps the config/flag spelling of an image mode.
func ParseImageMode(value string) (ImageMode, error) {
	switch value {
	case "ignore":
		return ImageIgnore, nil
	case "from-path":
		return ImageFromPath, nil
	case "embed":
		return ImageEmbed, nil
	default:
		return 0, fmt.Errorf("unknown image mode %q (want ignore, from-path, or embed)", value)
	}
}

// DefaultHighlightTheme is the code highlighting theme used when the
// configuration does not name one.
const DefaultHighlightTheme = "monokai"

// Config holds the per-compilation settings. The zero value is not
// usable directly; start from DefaultConfig or leave fields zero and
// let the compiler apply the same defaults.
//
// A Config is immutable for the duration of one compilation and may be
// shared between sequential compilations.
type Config struct {
	// ImageMode selects image handling. Zero value is ImageIgnore;
	// DefaultConfig selects ImageFromPath.
	ImageMode ImageMode

	// HighlightTheme names the chroma style used for fenced code
	// blocks. Validity is only checked when a code block is actually
	// highlighted; an unknown name degrades that block to plain text
	// with a diagnostic. Empty selects DefaultHighlightTheme.
	HighlightTheme string

	// Sink selects the markup dialect of the compiled labels. Nil
	// selects markup.Pango.
	Sink markup.Sink

	// Logger receives a Warn record per diagnostic. If nil,
	// slog.Default() is used.
	Logger *slog.Logger
}

// DefaultConfig mirrors the historical defaults: images rendered from
// their paths, Pango markup, the default highlight theme.
func DefaultConfig() Config {
	return Config{
		ImageMode:      ImageFromPath,
		HighlightTheme: DefaultHighlightTheme,
	}
}

// withDefaults fills unset fields so the compiler never branches on
// missing configuration.
func (c Config) withDefaults() Config {
	if c.HighlightTheme == "" {
		c.HighlightTheme = DefaultHighlightTheme
	}
	if c.Sink == nil {
		c.Sink = markup.Pango{}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// fileConfig is the on-disk shape of a config file. Files are JSONC:
// JSON extended with comments and trailing commas.
type fileConfig struct {
	Images         string `json:"images"`
	HighlightTheme string `json:"highlight_theme"`
}

// ParseConfig parses JSONC configuration data. Absent fields keep the
// defaults from DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	stripped := jsonc.ToJSON(data)

	var file fileConfig
	if err := json.Unmarshal(stripped, &file); err != nil {
		return Config{}, fmt.Errorf("parsing render config: %w", err)
	}

	config := DefaultConfig()
	if file.Images != "" {
		mode, err := ParseImageMode(file.Images)
		if err != nil {
			return Config{}, err
		}
		config.ImageMode = mode
	}
	if file.HighlightTheme != "" {
		config.HighlightTheme = file.HighlightTheme
	}
	return config, nil
}

// LoadConfig reads and parses a JSONC config file from disk.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}
	config, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}
