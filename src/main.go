package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/prometheus/client_golang/prometheus"

	"crosswarped.com/wrd"
	"crosswarped.com/wrd/internal/logging"
	"crosswarped.com/wrd/pkg/dictionary"
	"crosswarped.com/wrd/pkg/primitives"
)

var errEmptyGuess = errors.New("guess must not be empty")

// wordsRequest selects the words a request searches. Explicit words and the words of a scope
// are searched together; without either the named bundled dictionary is used.
type wordsRequest struct {
	Dictionary     string   `json:"dictionary"`
	Words          []string `json:"words"`
	WordScope      string   `json:"wordScope"`
	IncludeObscure bool     `json:"includeObscure"`
}

type MatchWordsRequest struct {
	Pattern string `json:"pattern"`
	Include string `json:"include"`
	Exclude string `json:"exclude"`
	Within  string `json:"within"`
	wordsRequest
}

type MatchWordsResponse struct {
	Success bool     `json:"success"`
	Words   []string `json:"words"`
	Count   int      `json:"count"`
	Error   string   `json:"error,omitempty"`
}

type RegisterGuessRequest struct {
	// SessionID continues a session. When empty a new one is started.
	SessionID string `json:"sessionId"`
	// Guess holds one or more comma separated guess results.
	Guess string `json:"guess"`
	wordsRequest
}

type GuessOutcome struct {
	Letter  string `json:"letter"`
	Outcome string `json:"outcome"`
}

type RegisterGuessResponse struct {
	Success   bool             `json:"success"`
	SessionID string           `json:"sessionId,omitempty"`
	Words     []string         `json:"words"`
	Count     int              `json:"count"`
	Outcomes  [][]GuessOutcome `json:"outcomes"`
	Error     string           `json:"error,omitempty"`
}

type serverConfig struct {
	MaxSessions int
	SessionTTL  time.Duration
	LoadTimeout time.Duration
}

type server struct {
	config   serverConfig
	logger   *logging.Logger
	metrics  *metrics
	sessions *sessionStore

	// loadScope reads the words of a BigQuery scope.
	loadScope func(ctx context.Context, scope string, includeObscure bool) ([]string, error)
}

func newServer(config serverConfig, logger *logging.Logger, reg *prometheus.Registry) *server {
	m := newMetrics(reg)
	return &server{
		config:   config,
		logger:   logger,
		metrics:  m,
		sessions: newSessionStore(config.MaxSessions, config.SessionTTL, m.sessions),
		loadScope: func(ctx context.Context, scope string, includeObscure bool) ([]string, error) {
			return dictionary.LoadBigQuery(ctx, dictionary.BigQueryConfig{Scope: scope, IncludeObscure: includeObscure})
		},
	}
}

type route struct {
	path    string
	handler http.HandlerFunc
}

func (s *server) routes() []route {
	return []route{
		{"/match-words", s.metrics.instrument("match-words", s.matchWords)},
		{"/register-guess", s.metrics.instrument("register-guess", s.registerGuess)},
		{"/metrics", s.metrics.handler().ServeHTTP},
	}
}

// wordSource is either an explicit word list or a bundled dictionary.
type wordSource struct {
	name  dictionary.Name
	words []string
}

func (ws wordSource) matcher() *wrd.Matcher {
	if ws.words != nil {
		return wrd.NewMatcher(ws.words)
	}
	return wrd.NewDictionaryMatcher(ws.name)
}

func (ws wordSource) sessionOption() wrd.SessionOption {
	if ws.words != nil {
		return wrd.WithWords(ws.words)
	}
	return wrd.WithDictionary(ws.name)
}

func (s *server) resolveWords(ctx context.Context, req wordsRequest) (wordSource, error) {
	var words []string
	for _, word := range req.Words {
		if word = strings.ToLower(strings.TrimSpace(word)); word != "" {
			words = append(words, word)
		}
	}

	if req.WordScope != "" {
		if s.config.LoadTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.config.LoadTimeout)
			defer cancel()
		}
		scoped, err := s.loadScope(ctx, req.WordScope, req.IncludeObscure)
		if err != nil {
			return wordSource{}, fmt.Errorf("loading scope %q: %w", req.WordScope, err)
		}
		s.logger.Info("loaded scope", "scope", req.WordScope, "words", len(scoped))
		words = append(words, scoped...)
	}
	if words != nil {
		return wordSource{words: words}, nil
	}

	name := dictionary.DefaultName
	if req.Dictionary != "" {
		var err error
		if name, err = dictionary.ParseName(req.Dictionary); err != nil {
			return wordSource{}, err
		}
	}
	return wordSource{name: name}, nil
}

func (s *server) matchWords(w http.ResponseWriter, r *http.Request) {
	var req MatchWordsRequest
	if !s.decode(w, r, &req) {
		return
	}

	resp, err := s.executeMatch(r.Context(), req)
	if err != nil {
		s.logger.Warn("match failed", "pattern", req.Pattern, "error", err)
		resp.Error = err.Error()
		writeJSON(w, statusFor(err), resp)
		return
	}
	s.logger.Debug("matched", "pattern", req.Pattern, "count", resp.Count)
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) executeMatch(ctx context.Context, req MatchWordsRequest) (MatchWordsResponse, error) {
	source, err := s.resolveWords(ctx, req.wordsRequest)
	if err != nil {
		return MatchWordsResponse{}, err
	}
	matches, err := source.matcher().Match(req.Pattern, wrd.Options{
		Include: req.Include,
		Exclude: req.Exclude,
		Within:  req.Within,
	})
	if err != nil {
		return MatchWordsResponse{}, err
	}
	return MatchWordsResponse{Success: true, Words: matches, Count: len(matches)}, nil
}

func (s *server) registerGuess(w http.ResponseWriter, r *http.Request) {
	var req RegisterGuessRequest
	if !s.decode(w, r, &req) {
		return
	}

	resp, err := s.executeGuess(r.Context(), req)
	if err != nil {
		s.logger.Warn("guess failed", "session", resp.SessionID, "guess", req.Guess, "error", err)
		resp.Success = false
		resp.Error = err.Error()
		writeJSON(w, statusFor(err), resp)
		return
	}
	s.logger.Debug("registered guess", "session", resp.SessionID, "remaining", resp.Count)
	writeJSON(w, http.StatusOK, resp)
}

// executeGuess registers req.Guess with its session. On error the response still carries the
// session id and the words possible after the guesses that were registered. A new session is only
// kept once one of its guesses is accepted.
func (s *server) executeGuess(ctx context.Context, req RegisterGuessRequest) (RegisterGuessResponse, error) {
	if strings.Trim(req.Guess, " \t,") == "" {
		return RegisterGuessResponse{SessionID: req.SessionID}, errEmptyGuess
	}

	if req.SessionID == "" {
		source, err := s.resolveWords(ctx, req.wordsRequest)
		if err != nil {
			return RegisterGuessResponse{}, err
		}
		session := wrd.NewSession(source.sessionOption(), wrd.WithLogger(s.logger.Slog()))
		reports, err := session.RegisterGuessResults(req.Guess)
		if len(reports) == 0 {
			return guessResponse("", session, nil, err), err
		}
		id := s.sessions.create(session)
		s.logger.Info("started session", "session", id, "sessions", s.sessions.len())
		return guessResponse(id, session, reports, err), err
	}

	stored, err := s.sessions.get(req.SessionID)
	if err != nil {
		return RegisterGuessResponse{SessionID: req.SessionID}, err
	}
	stored.mu.Lock()
	defer stored.mu.Unlock()

	reports, err := stored.session.RegisterGuessResults(req.Guess)
	return guessResponse(req.SessionID, stored.session, reports, err), err
}

func guessResponse(id string, session *wrd.Session, reports []wrd.GuessReport, err error) RegisterGuessResponse {
	resp := RegisterGuessResponse{Success: err == nil, SessionID: id, Outcomes: make([][]GuessOutcome, 0, len(reports))}
	for _, report := range reports {
		resp.Outcomes = append(resp.Outcomes, outcomesJSON(report.Outcomes))
	}
	switch {
	case len(reports) > 0:
		resp.Words = reports[len(reports)-1].Matches
	case session.Len() > 0:
		resp.Words = session.Matches()
	default:
		resp.Words = []string{}
	}
	resp.Count = len(resp.Words)
	return resp
}

func outcomesJSON(outcomes []primitives.GuessOutcome) []GuessOutcome {
	result := make([]GuessOutcome, len(outcomes))
	for i, o := range outcomes {
		result[i] = GuessOutcome{Letter: string(o.Letter), Outcome: o.Outcome.String()}
	}
	return result
}

// statusFor maps an error to the status code it is reported with.
func statusFor(err error) int {
	var mismatch *wrd.LengthMismatchError
	switch {
	case errors.Is(err, primitives.ErrInvalidPattern),
		errors.Is(err, primitives.ErrInvalidGuess),
		errors.Is(err, wrd.ErrInvalidLetters),
		errors.Is(err, dictionary.ErrUnknownDictionary),
		errors.Is(err, errEmptyGuess),
		errors.As(err, &mismatch):
		return http.StatusBadRequest
	case errors.Is(err, errUnknownSession):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

// decode handles CORS and the request method, then reads the JSON body into v. It reports
// whether the handler should go on.
func (s *server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	setCORSHeaders(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return false
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method %s not allowed", r.Method))
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.logger.Warn("invalid request body", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %v", err))
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success": false, "error": "Internal server error"}`)
		return
	}
	w.WriteHeader(status)
	w.Write(data)
}

func envInt(name string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(name)); err == nil {
		return v
	}
	return fallback
}

func envDuration(name string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(name)); err == nil {
		return v
	}
	return fallback
}

func main() {
	level, err := logging.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logging.LevelInfo
	}
	logger := logging.New(logging.Config{Level: level, JSON: true, Service: "wrd-function"})
	defer logger.Close()

	s := newServer(serverConfig{
		MaxSessions: envInt("MAX_SESSIONS", 1000),
		SessionTTL:  envDuration("SESSION_TTL", time.Hour),
		LoadTimeout: envDuration("LOAD_TIMEOUT", 30*time.Second),
	}, logger, prometheus.NewRegistry())

	ctx := context.Background()
	for _, rt := range s.routes() {
		if err := funcframework.RegisterHTTPFunctionContext(ctx, rt.path, rt.handler); err != nil {
			log.Fatalf("funcframework.RegisterHTTPFunctionContext: %v\n", err)
		}
	}

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	logger.Info("starting", "host", hostname, "port", port)
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}
