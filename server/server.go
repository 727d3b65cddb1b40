// Package server exposes the run workflow over a small JSON API:
// POST /api/runs starts a run, GET /api/runs/{id} reports its state.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"auto_blog_publisher/runner"
)

const defaultRunTimeout = 10 * time.Minute

// RunExecutor drives a run record through the workflow.
type RunExecutor interface {
	Execute(ctx context.Context, run *runner.Run, topic string) (*runner.Run, error)
}

type Server struct {
	exec    RunExecutor
	store   *runStore
	logger  *log.Logger
	timeout time.Duration
}

// Options wires a Server. The server builds its own runner from Runner
// so it can watch state transitions; Executor overrides that, mostly
// for tests.
type Options struct {
	Runner   runner.Options
	Executor RunExecutor
	Logger   *log.Logger
	// Timeout bounds one run; zero means ten minutes.
	Timeout time.Duration
}

func New(opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultRunTimeout
	}
	s := &Server{
		store:   newStore(),
		logger:  logger,
		timeout: timeout,
	}
	if opts.Executor != nil {
		s.exec = opts.Executor
		return s, nil
	}
	if opts.Runner.Config == nil {
		return nil, errors.New("server: executor or runner config required")
	}
	ropts := opts.Runner
	prev := ropts.OnState
	ropts.OnState = func(run runner.Run) {
		s.store.put(run)
		if prev != nil {
			prev(run)
		}
	}
	r, err := runner.New(ropts)
	if err != nil {
		return nil, err
	}
	s.exec = r
	return s, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/runs", s.handleRuns)
	mux.HandleFunc("/api/runs/", s.handleRunByID)
	mux.HandleFunc("/healthz", s.handleHealth)
	return logMiddleware(mux, s.logger)
}

// --- Run store ---

type runStore struct {
	mu   sync.Mutex
	runs map[string]runner.Run
}

func newStore() *runStore {
	return &runStore{runs: make(map[string]runner.Run)}
}

func (s *runStore) put(run runner.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
}

func (s *runStore) get(id string) (runner.Run, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[id]
	return run, ok
}

func (s *runStore) list() []runner.Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]runner.Run, 0, len(s.runs))
	for _, run := range s.runs {
		out = append(out, run)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out
}

// --- Handlers ---

type runCreateReq struct {
	Topic string `json:"topic"`
}

type runCreateResp struct {
	ID    string       `json:"id"`
	State runner.State `json:"state"`
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req runCreateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		run := runner.NewRun()
		s.store.put(*run)
		resp := runCreateResp{ID: run.ID, State: run.State}
		go s.execute(run, req.Topic)
		writeJSON(w, http.StatusAccepted, resp)
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.store.list())
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleRunByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/runs/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	run, ok := s.store.get(id)
	if !ok {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// execute runs the workflow in the background and stores the outcome.
func (s *Server) execute(run *runner.Run, topic string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	final, err := s.exec.Execute(ctx, run, topic)
	if err != nil {
		s.logger.Printf("[server] run %s failed: %v", run.ID, err)
	}
	s.store.put(*final)
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func logMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Printf("[server] %s %s %s", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}
