// Copyright 2026 The Mddoc Authors
// SPDX-License-Identifier: Apache-2.0

// Command mddoc compiles CommonMark to a styled document tree and
// renders it for the terminal.
//
// Usage:
//
//	mddoc [flags] [file]
//
// With no file argument, markdown is read from stdin. By default the
// compiled tree is laid out as ANSI terminal text; --dump prints the
// tree itself as YAML (with Pango markup labels, which read better
// than raw escape sequences), and --pager opens the rendered output
// in a full-screen scrollable view.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/lazytanuki/mddoc/document"
	"github.com/lazytanuki/mddoc/markup"
	"github.com/lazytanuki/mddoc/render"
	"github.com/lazytanuki/mddoc/termrender"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("mddoc", pflag.ContinueOnError)
	theme := flags.String("theme", "", "code highlight theme (default: "+render.DefaultHighlightTheme+")")
	images := flags.String("images", "", "image handling: ignore, from-path, or embed")
	width := flags.Int("width", 0, "output width (0 = detect terminal width, fallback 80)")
	configPath := flags.String("config", "", "path to a JSONC config file")
	dump := flags.Bool("dump", false, "print the compiled document tree as YAML")
	pager := flags.Bool("pager", false, "view rendered output in a full-screen pager")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	input, err := readInput(flags.Args())
	if err != nil {
		return err
	}

	config := render.DefaultConfig()
	if *configPath != "" {
		config, err = render.LoadConfig(*configPath)
		if err != nil {
			return err
		}
	}
	if *theme != "" {
		config.HighlightTheme = *theme
	}
	if *images != "" {
		mode, err := render.ParseImageMode(*images)
		if err != nil {
			return err
		}
		config.ImageMode = mode
	}
	config.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *dump {
		config.Sink = markup.Pango{}
		doc, _, err := render.Markdown(input, config)
		if err != nil {
			return err
		}
		encoded, err := yaml.Marshal(document.Dump(doc))
		if err != nil {
			return fmt.Errorf("encoding document tree: %w", err)
		}
		_, err = os.Stdout.Write(encoded)
		return err
	}

	config.Sink = markup.ANSI{}
	doc, _, err := render.Markdown(input, config)
	if err != nil {
		return err
	}
	output := termrender.Render(doc, termrender.DefaultTheme, outputWidth(*width))

	if *pager {
		return runPager(output)
	}
	fmt.Println(output)
	return nil
}

// readInput reads the markdown source from the file argument, or from
// stdin when no file is given.
func readInput(args []string) (string, error) {
	switch len(args) {
	case 0:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	case 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unexpected argument: %s", args[1])
	}
}

// outputWidth resolves the rendering width: the flag if set, else the
// terminal width, else 80.
func outputWidth(flagWidth int) int {
	if flagWidth > 0 {
		return flagWidth
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}
