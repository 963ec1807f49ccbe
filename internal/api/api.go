// Package api provides HTTP handlers and the main API server logic for NoteFlow.
//
// It exposes RESTful endpoints for inserting flow outcomes into the encounter
// registry, browsing the completed-run list, filtering the psychiatry toolkit
// library, and the optional assistant draft side-channel. The API integrates with
// the outcome, library, store and genai modules.
package api

import (
	"log/slog"
	"net/http"

	"github.com/ClinScribe/NoteFlow/internal/genai"
	"github.com/ClinScribe/NoteFlow/internal/library"
	"github.com/ClinScribe/NoteFlow/internal/store"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// Opts holds configuration options for the API server.
type Opts struct {
	Addr string
}

// Option defines a configuration option for the API server.
type Option func(*Opts)

// WithAddr sets the server listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) {
		o.Addr = addr
	}
}

// Server wires the registry, library engine, navigation state and the optional
// genai client behind the HTTP surface.
type Server struct {
	store    store.Store
	engine   *library.Engine
	nav      *library.NavState
	gaClient *genai.Client
	addr     string
}

// NewServer creates an API server. gaClient may be nil; the draft endpoint then
// reports the assistant as unconfigured.
func NewServer(st store.Store, engine *library.Engine, nav *library.NavState, gaClient *genai.Client, opts ...Option) *Server {
	cfg := Opts{Addr: DefaultAddr}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{store: st, engine: engine, nav: nav, gaClient: gaClient, addr: cfg.Addr}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/patients", s.patientsHandler)
	mux.HandleFunc("/encounters", s.encountersHandler)
	mux.HandleFunc("/flows/insert", s.insertOutcomeHandler)
	mux.HandleFunc("/runs", s.runsHandler)
	mux.HandleFunc("/library/cards", s.cardsHandler)
	mux.HandleFunc("/library/view", s.viewHandler)
	mux.HandleFunc("/library/favorites", s.favoritesHandler)
	mux.HandleFunc("/nav", s.navHandler)
	mux.HandleFunc("/nav/query", s.queryHandler)
	mux.HandleFunc("/nav/state", s.navStateHandler)
	mux.HandleFunc("/assistant/draft", s.draftHandler)
	return mux
}

// Run starts the HTTP server and blocks until it exits.
func (s *Server) Run() error {
	slog.Info("Server.Run: NoteFlow API running", "addr", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}
