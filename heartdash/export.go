// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/aclements/heartdash/dashboard"
	"golang.org/x/sync/errgroup"
)

var (
	cmdStatsFlags  = flag.NewFlagSet(os.Args[0]+" stats", flag.ExitOnError)
	cmdPlotFlags   = flag.NewFlagSet(os.Args[0]+" plot", flag.ExitOnError)
	cmdReplayFlags = flag.NewFlagSet(os.Args[0]+" replay", flag.ExitOnError)
)

var (
	statsSession  sessionFlags
	statsJSON     bool
	plotSession   sessionFlags
	plotDir       string
	replaySession sessionFlags
)

func init() {
	f := cmdStatsFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s stats [flags]\n", os.Args[0])
		f.PrintDefaults()
	}
	statsSession.register(f, true)
	f.BoolVar(&statsJSON, "json", false, "print the session state as JSON")
	registerSubcommand("stats", "- print summary statistics of the displayed patients", cmdStats, f)

	f = cmdPlotFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s plot [flags]\n", os.Args[0])
		f.PrintDefaults()
	}
	plotSession.register(f, true)
	f.StringVar(&plotDir, "o", ".", "write SVG files to `dir`")
	registerSubcommand("plot", "- write every view as SVG", cmdPlot, f)

	f = cmdReplayFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s replay [flags] [script...]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "With no script, replay reads standard input.\n")
		f.PrintDefaults()
	}
	replaySession.register(f, false)
	registerSubcommand("replay", "[flags] [script...] - apply session scripts", cmdReplay, f)
}

func cmdStats() {
	s := statsSession.mustLoad()
	if statsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "\t")
		if err := enc.Encode(s.Status()); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := s.Stats().WriteText(os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func cmdPlot() {
	s := plotSession.mustLoad()
	if err := os.MkdirAll(plotDir, 0777); err != nil {
		log.Fatal(err)
	}
	if err := writeViews(s, plotDir); err != nil {
		log.Fatal(err)
	}
}

// writeViews writes every panel of s to dir as name.svg. The panels
// all hold the same snapshot, so they are written concurrently.
func writeViews(s *dashboard.Session, dir string) error {
	var g errgroup.Group
	for _, p := range s.Panels() {
		svg, err := p.SVG()
		if err != nil {
			return fmt.Errorf("view %s: %w", p.Name, err)
		}
		path := filepath.Join(dir, p.Name+".svg")
		g.Go(func() error {
			return os.WriteFile(path, svg, 0666)
		})
	}
	return g.Wait()
}

func cmdReplay() {
	s := replaySession.mustLoad()
	if cmdReplayFlags.NArg() == 0 {
		replay(s, "<stdin>", os.Stdin)
		return
	}
	for _, path := range cmdReplayFlags.Args() {
		f, err := os.Open(path)
		if err != nil {
			log.Fatal(err)
		}
		replay(s, path, f)
		f.Close()
	}
}

func replay(s *dashboard.Session, name string, r io.Reader) {
	if err := s.RunScript(r, os.Stdout); err != nil {
		log.Fatalf("%s: %v", name, err)
	}
}
