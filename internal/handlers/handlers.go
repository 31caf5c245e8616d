package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/akehoe/bracketlab/internal/auth"
	"github.com/akehoe/bracketlab/internal/services"
	"github.com/akehoe/bracketlab/internal/websocket"
)

// NewStaticServer creates a static file server from an fs.FS
func NewStaticServer(staticFS fs.FS) http.Handler {
	return http.FileServer(http.FS(staticFS))
}

// Templates holds all parsed HTML templates
type Templates struct {
	Index   *template.Template
	Bracket *template.Template
	Login   *template.Template
}

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	User         services.UserServicer
	Tournament   services.TournamentServicer
	Bracket      services.BracketServicer
	Scores       services.ScoreServicer
	Sessions     *auth.Sessions
	Hub          *websocket.Hub
	Log          HTTPLogger
	templates    *Templates
	staticServer http.Handler
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// New creates a new Handlers instance with all dependencies
func New(
	user services.UserServicer,
	tournament services.TournamentServicer,
	bracketSvc services.BracketServicer,
	scores services.ScoreServicer,
	templatesFS fs.FS,
	staticServer http.Handler,
	sessions *auth.Sessions,
	hub *websocket.Hub,
	log HTTPLogger,
) (*Handlers, error) {
	templates, err := loadTemplates(templatesFS)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return &Handlers{
		User:         user,
		Tournament:   tournament,
		Bracket:      bracketSvc,
		Scores:       scores,
		Sessions:     sessions,
		Hub:          hub,
		Log:          log,
		templates:    templates,
		staticServer: staticServer,
	}, nil
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

// NewForTesting creates a Handlers instance without loading templates (for testing API endpoints)
func NewForTesting(
	user services.UserServicer,
	tournament services.TournamentServicer,
	bracketSvc services.BracketServicer,
	scores services.ScoreServicer,
) *Handlers {
	return &Handlers{
		User:       user,
		Tournament: tournament,
		Bracket:    bracketSvc,
		Scores:     scores,
		Sessions:   auth.New(),
		Log:        NoopHTTPLogger{},
		// templates left nil - API endpoints don't use templates
	}
}

// loadTemplates parses all templates once at startup
func loadTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{}
	var err error

	if t.Index, err = template.ParseFS(templatesFS, "index.html"); err != nil {
		return nil, fmt.Errorf("index template: %w", err)
	}
	if t.Bracket, err = template.ParseFS(templatesFS, "bracket.html"); err != nil {
		return nil, fmt.Errorf("bracket template: %w", err)
	}
	if t.Login, err = template.ParseFS(templatesFS, "login.html"); err != nil {
		return nil, fmt.Errorf("login template: %w", err)
	}

	return t, nil
}
