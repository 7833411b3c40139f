package server

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hiphop_lyrics_generator/config"
	"hiphop_lyrics_generator/generator"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const sessionCookie = "lyrics_session"

// SessionTTL is how long an idle session is kept.
const SessionTTL = 2 * time.Hour

type Server struct {
	llm    generator.LLMClient
	cred   config.Credential
	logger zerolog.Logger
	tmpl   *template.Template
	store  *sessionStore
}

type session struct {
	ctrl     *generator.Controller
	lastSeen time.Time
}

// sessionStore keeps one controller per browser. Sessions idle for longer
// than ttl are dropped on the next insert unless a request is in flight.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

func newStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *sessionStore) set(id string, c *generator.Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl && !sess.ctrl.Snapshot().InFlight {
			delete(s.sessions, k)
		}
	}
	s.sessions[id] = &session{ctrl: c, lastSeen: now}
}

func (s *sessionStore) get(id string) (*generator.Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.now().Sub(sess.lastSeen) > s.ttl && !sess.ctrl.Snapshot().InFlight {
		delete(s.sessions, id)
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.ctrl, true
}

func (s *sessionStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// New builds the HTTP server. llm may be nil when cred is not configured.
func New(llm generator.LLMClient, cred config.Credential, logger zerolog.Logger) (*Server, error) {
	if llm == nil && cred.Configured() {
		return nil, errors.New("llm client required")
	}
	tmpl, err := template.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &Server{
		llm:    llm,
		cred:   cred,
		logger: logger,
		tmpl:   tmpl,
		store:  newStore(SessionTTL),
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/generate", s.handleGenerateForm)
	mux.HandleFunc("/api/generate", s.handleGenerateAPI)
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/healthz", s.handleHealth)
	return s.logMiddleware(mux)
}

func (s *Server) newController(id string) (*generator.Controller, error) {
	return generator.NewController(s.llm, s.cred, s.logger.With().Str("session", id).Logger())
}

// viewController returns the caller's controller for read-only requests. A
// caller without a session gets a fresh, unstored controller.
func (s *Server) viewController(r *http.Request) (*generator.Controller, error) {
	if ck, err := r.Cookie(sessionCookie); err == nil {
		if c, ok := s.store.get(ck.Value); ok {
			return c, nil
		}
	}
	return s.newController("")
}

// submitController returns the caller's controller, creating and storing a
// session when the request carries no known cookie.
func (s *Server) submitController(w http.ResponseWriter, r *http.Request) (*generator.Controller, error) {
	if ck, err := r.Cookie(sessionCookie); err == nil {
		if c, ok := s.store.get(ck.Value); ok {
			return c, nil
		}
	}
	id := uuid.NewString()
	c, err := s.newController(id)
	if err != nil {
		return nil, err
	}
	s.store.set(id, c)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c, nil
}

// --- Views ---

type pageView struct {
	Configured bool
	KeyURL     string
	Prompt     string
	CanSubmit  bool
	InFlight   bool
	Error      string
	Result     string
	ResultHTML template.HTML
}

func newPageView(c *generator.Controller) pageView {
	st := c.Snapshot()
	return pageView{
		Configured: c.Configured(),
		KeyURL:     config.KeyURL,
		Prompt:     st.Prompt,
		CanSubmit:  c.CanSubmit(st.Prompt),
		InFlight:   st.InFlight,
		Error:      st.Error,
		Result:     st.Result,
		ResultHTML: st.ResultHTML,
	}
}

type stateResp struct {
	Outcome  string `json:"outcome,omitempty"`
	Prompt   string `json:"prompt"`
	Result   string `json:"result"`
	Error    string `json:"error"`
	InFlight bool   `json:"in_flight"`
}

func newStateResp(st generator.State) stateResp {
	return stateResp{
		Prompt:   st.Prompt,
		Result:   st.Result,
		Error:    st.Error,
		InFlight: st.InFlight,
	}
}

type generateReq struct {
	Prompt string `json:"prompt"`
}

// --- Handlers ---

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	c, err := s.viewController(r)
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.renderPage(w, http.StatusOK, c)
}

func (s *Server) handleGenerateForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	c, err := s.submitController(w, r)
	if err != nil {
		s.internalError(w, err)
		return
	}
	_, err = c.Submit(r.Context(), r.FormValue("prompt"))
	s.renderPage(w, submitStatus(err), c)
}

func (s *Server) handleGenerateAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c, err := s.submitController(w, r)
	if err != nil {
		s.internalError(w, err)
		return
	}
	out, err := c.Submit(r.Context(), req.Prompt)
	resp := newStateResp(c.Snapshot())
	resp.Outcome = out.String()
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, submitStatus(err), resp)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	c, err := s.viewController(r)
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateResp(c.Snapshot()))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"configured": s.cred.Configured(),
	})
}

// --- Helpers ---

// submitStatus maps a rejected submission to its HTTP status. Every accepted
// submission is 200, including blocked, empty and failed attempts.
func submitStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, generator.ErrPromptEmpty):
		return http.StatusBadRequest
	case errors.Is(err, generator.ErrInFlight):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) renderPage(w http.ResponseWriter, status int, c *generator.Controller) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, "index.tmpl", newPageView(c)); err != nil {
		s.logger.Error().Err(err).Msg("render page")
	}
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Error().Err(err).Msg("request failed")
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()
		w.Header().Set("X-Request-ID", reqID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info().
			Str("request_id", reqID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}
