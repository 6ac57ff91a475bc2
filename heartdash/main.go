// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Heartdash is a linked, multi-view dashboard over a heart-disease
// dataset.
//
// Usage:
//
//	heartdash <subcommand> [flags]
//
// The data file is a CSV file with a header naming the columns age,
// sex, cp, trestbps, chol, fbs, restecg, thalach, exang, oldpeak,
// slope, ca, thal, and target. Rows with missing values are dropped.
//
// "heartdash serve" serves the dashboard over HTTP. Selecting points
// in the scatter plot with the lasso, the marquee, or by dragging
// along an axis highlights the same patients in every other view and
// recomputes the summary statistics; the dropdown filters narrow the
// dataset all views draw from.
//
// "heartdash replay" applies a session script and prints its output.
// A script has one command per line:
//
//	mode none|lasso|marquee|axis
//	down|move|up [plot|x|y] <x> <y>
//	clear [plot|x|y]
//	filter gender|chestpain|outcome <value>
//	where <expression>
//	brush x|y <lo> <hi>
//	reset
//	stats
//	status
//
// "heartdash stats" and "heartdash plot" print the statistics or
// write every view as SVG after an optional script, and "heartdash
// png" captures the served dashboard with a headless browser.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aclements/heartdash/dashboard"
	"github.com/aclements/heartdash/dataset"
)

type subcommand struct {
	name, desc string
	cmd        func()
	flags      *flag.FlagSet
}

var subcommands []*subcommand

func registerSubcommand(name, desc string, cmd func(), flags *flag.FlagSet) {
	subcommands = append(subcommands, &subcommand{name, desc, cmd, flags})
}

// sessionFlags are the flags every subcommand takes.
type sessionFlags struct {
	data, config, script string
}

func (sf *sessionFlags) register(f *flag.FlagSet, script bool) {
	f.StringVar(&sf.data, "data", "heart.csv", "read patient records from `file`")
	f.StringVar(&sf.config, "config", "", "read dashboard layout from YAML `file`")
	if script {
		f.StringVar(&sf.script, "script", "", "apply session script `file` first")
	}
}

// load reads the dataset and builds a session. Dropped rows are
// logged.
func (sf *sessionFlags) load() (*dashboard.Session, error) {
	cfg, err := dashboard.ReadConfig(sf.config)
	if err != nil {
		return nil, err
	}
	ds, dropped, err := dataset.LoadFile(sf.data)
	if dropped > 0 {
		log.Printf("%s: dropped %d rows with missing values", sf.data, dropped)
	}
	if err != nil {
		return nil, err
	}
	return dashboard.NewSession(ds, cfg)
}

// runScript applies the -script file, if any, to s. Script output
// goes to stdout.
func (sf *sessionFlags) runScript(s *dashboard.Session) error {
	if sf.script == "" {
		return nil
	}
	f, err := os.Open(sf.script)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := s.RunScript(f, os.Stdout); err != nil {
		return fmt.Errorf("%s: %w", sf.script, err)
	}
	return nil
}

// mustLoad is load followed by runScript. It exits on failure.
func (sf *sessionFlags) mustLoad() *dashboard.Session {
	s, err := sf.load()
	if err != nil {
		var empty *dataset.EmptyDatasetError
		if errors.As(err, &empty) {
			log.Fatalf("no usable records: %v", err)
		}
		log.Fatal(err)
	}
	if err := sf.runScript(s); err != nil {
		log.Fatal(err)
	}
	return s
}

func main() {
	log.SetPrefix("heartdash: ")
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <subcommand> [flags]\n\nSubcommands:\n", os.Args[0])
		for _, sub := range subcommands {
			fmt.Fprintf(os.Stderr, "  %-8s %s\n", sub.name, sub.desc)
		}
		fmt.Fprintf(os.Stderr, "\nRun %s <subcommand> -h for subcommand flags.\n", os.Args[0])
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	name := strings.ToLower(flag.Arg(0))
	for _, sub := range subcommands {
		if sub.name == name {
			sub.flags.Parse(flag.Args()[1:])
			sub.cmd()
			return
		}
	}
	fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", name)
	flag.Usage()
	os.Exit(2)
}
