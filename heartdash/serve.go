// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/aclements/heartdash/dashboard"
	"github.com/aclements/heartdash/dataset"
	"github.com/aclements/heartdash/interact"
	"github.com/aclements/heartdash/query"
	"github.com/aclements/heartdash/views"
)

var cmdServeFlags = flag.NewFlagSet(os.Args[0]+" serve", flag.ExitOnError)

var (
	serveSession sessionFlags
	serveAddr    string
)

func init() {
	f := cmdServeFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s serve [flags]\n", os.Args[0])
		f.PrintDefaults()
	}
	serveSession.register(f, true)
	f.StringVar(&serveAddr, "http", "localhost:8080", "serve on `addr`")
	registerSubcommand("serve", "- serve the interactive dashboard", cmdServe, f)
}

func cmdServe() {
	srv, err := loadServer(&serveSession)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("serving on http://%s/", serveAddr)
	log.Fatal(http.ListenAndServe(serveAddr, srv))
}

// loadServer builds a server for sf. An empty dataset is not an
// error: the server reports it in place of the dashboard.
func loadServer(sf *sessionFlags) (*server, error) {
	s, err := sf.load()
	if err != nil {
		var empty *dataset.EmptyDatasetError
		if !errors.As(err, &empty) {
			return nil, err
		}
		log.Print(err)
		return newServer(nil, err), nil
	}
	if err := sf.runScript(s); err != nil {
		return nil, err
	}
	return newServer(s, nil), nil
}

// A server serves one dashboard session. Requests are applied one at
// a time, in the order they acquire mu.
type server struct {
	mu      sync.Mutex
	s       *dashboard.Session
	loadErr error
	mux     *http.ServeMux
}

func newServer(s *dashboard.Session, loadErr error) *server {
	srv := &server{s: s, loadErr: loadErr, mux: http.NewServeMux()}
	srv.mux.HandleFunc("GET /{$}", srv.index)
	srv.mux.HandleFunc("GET /view/{name}", srv.view)
	srv.mux.HandleFunc("GET /api/state", srv.state)
	srv.mux.HandleFunc("POST /api/mode", srv.api(func(req *request) error {
		m, err := interact.ParseMode(req.Mode)
		if err != nil {
			return err
		}
		srv.s.SwitchMode(m)
		return nil
	}))
	srv.mux.HandleFunc("POST /api/filter", srv.api(func(req *request) error {
		return srv.s.SetFilter(req.Name, req.Value)
	}))
	srv.mux.HandleFunc("POST /api/where", srv.api(func(req *request) error {
		return srv.s.SetWhere(req.Where)
	}))
	srv.mux.HandleFunc("POST /api/event", srv.api(func(req *request) error {
		kind, err := interact.ParseEventKind(req.Kind)
		if err != nil {
			return err
		}
		target, err := interact.ParseTarget(req.Target)
		if err != nil {
			return err
		}
		srv.s.Handle(interact.Event{Kind: kind, Target: target, X: req.X, Y: req.Y})
		return nil
	}))
	srv.mux.HandleFunc("POST /api/clear", srv.api(func(*request) error {
		srv.s.ClearSelection()
		return nil
	}))
	srv.mux.HandleFunc("POST /api/reset", srv.api(func(*request) error {
		srv.s.Reset()
		return nil
	}))
	return srv
}

func (srv *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if srv.loadErr != nil && r.URL.Path != "/" {
		http.Error(w, srv.loadErr.Error(), http.StatusServiceUnavailable)
		return
	}
	srv.mux.ServeHTTP(w, r)
}

// A request is the JSON body of a POST to /api/. Each endpoint reads
// only its own fields.
type request struct {
	Mode   string  `json:"mode"`
	Name   string  `json:"name"`
	Value  string  `json:"value"`
	Where  string  `json:"where"`
	Kind   string  `json:"kind"`
	Target string  `json:"target"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// stateResponse is the reply to every /api/ request.
type stateResponse struct {
	dashboard.Status
	Fields [][2]string `json:"fields"`
}

func (srv *server) stateLocked() stateResponse {
	st := srv.s.Status()
	return stateResponse{st, st.Stats.Fields()}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writing response: %v", err)
	}
}

// api returns a handler that decodes a request, applies fn to it, and
// replies with the resulting state. If fn fails, the state is
// unchanged and the reply is the error.
func (srv *server) api(fn func(req *request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad request: " + err.Error()})
				return
			}
		}
		srv.mu.Lock()
		defer srv.mu.Unlock()
		if err := fn(&req); err != nil {
			log.Printf("%s: %v", r.URL.Path, err)
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, srv.stateLocked())
	}
}

func (srv *server) state(w http.ResponseWriter, r *http.Request) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	writeJSON(w, http.StatusOK, srv.stateLocked())
}

// view serves one panel as SVG. With ?refresh, the panel is redrawn
// from the current snapshot first, which drops an expired lasso
// trail.
func (srv *server) view(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(r.PathValue("name"), ".svg")
	srv.mu.Lock()
	defer srv.mu.Unlock()
	p, ok := srv.s.Panel(name)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if r.URL.Query().Has("refresh") {
		p.Render(srv.s.Snapshot())
	}
	svg, err := p.SVG()
	if err != nil {
		log.Printf("rendering %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(svg)
}

type pageData struct {
	Error      string
	Modes      []string
	Dimensions []*query.Dimension
	Panels     []string
	Scatter    string
	Layout     views.Layout
	State      stateResponse
	TrailDelay int64
}

func (srv *server) index(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Modes:      []string{"none", "lasso", "marquee", "axis"},
		Dimensions: query.Dimensions,
		Scatter:    "scatter",
		TrailDelay: interact.TrailDelay.Milliseconds(),
	}
	code := http.StatusOK
	if srv.loadErr != nil {
		data.Error = srv.loadErr.Error()
		code = http.StatusServiceUnavailable
	} else {
		srv.mu.Lock()
		for _, p := range srv.s.Panels() {
			data.Panels = append(data.Panels, p.Name)
		}
		data.Layout = srv.s.Config().Layout
		data.State = srv.stateLocked()
		srv.mu.Unlock()
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		log.Printf("rendering page: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	w.Write(buf.Bytes())
}
