// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dashboard

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aclements/heartdash/interact"
	"github.com/kballard/go-shellquote"
)

// A ScriptError is a failed line of a session script.
type ScriptError struct {
	Line int
	Text string
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Text, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// RunScript applies each line of r to s as a command, in order.
// Blank lines and lines starting with # are skipped. Output of the
// stats and status commands is written to w. RunScript stops at the
// first failing line.
func (s *Session) RunScript(r io.Reader, w io.Writer) error {
	scan := bufio.NewScanner(r)
	for n := 1; scan.Scan(); n++ {
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args, err := shellquote.Split(line)
		if err == nil {
			err = s.Exec(args, w)
		}
		if err != nil {
			return &ScriptError{n, line, err}
		}
	}
	return scan.Err()
}

// Exec applies one command. The commands are
//
//	mode none|lasso|marquee|axis
//	down|move|up [plot|x|y] <x> <y>
//	clear [plot|x|y]
//	filter <name> <value>
//	where <expression>
//	brush x|y <lo> <hi>
//	reset
//	stats
//	status
//
// Pointer positions are in scatter document pixels; brush ranges are
// in data units.
func (s *Session) Exec(args []string, w io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("empty command")
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "mode":
		if len(args) != 1 {
			return fmt.Errorf("usage: mode none|lasso|marquee|axis")
		}
		m, err := interact.ParseMode(args[0])
		if err != nil {
			return err
		}
		s.SwitchMode(m)

	case "down", "move", "up":
		kind, _ := interact.ParseEventKind(cmd)
		ev := interact.Event{Kind: kind, Target: interact.Plot}
		if len(args) == 3 {
			t, err := interact.ParseTarget(args[0])
			if err != nil {
				return err
			}
			ev.Target, args = t, args[1:]
		}
		if len(args) != 2 {
			return fmt.Errorf("usage: %s [plot|x|y] x y", cmd)
		}
		var err error
		if ev.X, err = strconv.ParseFloat(args[0], 64); err != nil {
			return err
		}
		if ev.Y, err = strconv.ParseFloat(args[1], 64); err != nil {
			return err
		}
		s.Handle(ev)

	case "clear":
		ev := interact.Event{Kind: interact.Clear, Target: interact.Plot}
		if len(args) > 1 {
			return fmt.Errorf("usage: clear [plot|x|y]")
		}
		if len(args) == 1 {
			t, err := interact.ParseTarget(args[0])
			if err != nil {
				return err
			}
			ev.Target = t
		}
		s.Handle(ev)

	case "filter":
		if len(args) != 2 {
			return fmt.Errorf("usage: filter name value")
		}
		return s.SetFilter(args[0], args[1])

	case "where":
		return s.SetWhere(strings.Join(args, " "))

	case "brush":
		if len(args) != 3 {
			return fmt.Errorf("usage: brush x|y lo hi")
		}
		t, err := interact.ParseTarget(args[0])
		if err != nil {
			return err
		}
		lo, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return err
		}
		hi, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return err
		}
		return s.Brush(t, lo, hi)

	case "reset":
		s.Reset()

	case "stats":
		return s.stats.WriteText(w)

	case "status":
		st := s.Status()
		_, err := fmt.Fprintf(w, "mode %s, predicate %s, %d base, %d selected, %d displayed\n",
			st.Mode, st.Predicate, st.Base, st.Selected, st.Displayed)
		return err

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}
