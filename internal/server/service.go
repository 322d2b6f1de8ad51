// Package server exposes one wizard session over an HTTP JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/theirongolddev/hormiga/internal/cli"
	"github.com/theirongolddev/hormiga/internal/model"
	"github.com/theirongolddev/hormiga/internal/store"
	"github.com/theirongolddev/hormiga/internal/wizard"
)

// Recorder stores finished results. *store.History satisfies it.
type Recorder interface {
	Save(rec store.Record) error
}

// Config controls the server runtime behavior.
type Config struct {
	Addr           string
	EventsBuffer   int
	InitialExpense string
	Palette        model.Palette
	Money          *cli.Money
	Recorder       Recorder
}

// Snapshot is the full session state served to clients.
type Snapshot struct {
	SessionID string               `json:"session_id"`
	Stage     string               `json:"stage"`
	Income    decimal.Decimal      `json:"income"`
	Draft     string               `json:"income_draft"`
	Expenses  []model.ExpenseEntry `json:"expenses"`
	Summary   SummaryView          `json:"summary"`
	Result    *ResultView          `json:"result,omitempty"`
}

// SummaryView is the summary with display strings.
type SummaryView struct {
	model.Summary
	Display map[string]string `json:"display,omitempty"`
}

// ResultView is the result with display strings.
type ResultView struct {
	model.Result
	Display map[string]string `json:"display,omitempty"`
}

// Event is emitted after every state change.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
}

// Service owns the controller. Every handler holds mu for its whole run so
// one action finishes before the next starts.
type Service struct {
	cfg Config

	mu          sync.Mutex
	sessionID   string
	ctrl        *wizard.Controller
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event

	// closing is closed once the HTTP server begins shutting down.
	closing   chan struct{}
	closeOnce sync.Once
}

// New returns a service with a fresh session.
func New(cfg Config) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8788"
	}
	if cfg.Palette == (model.Palette{}) {
		cfg.Palette = model.DefaultPalette
	}

	s := &Service{
		cfg:     cfg,
		subs:    make(map[int]chan Event),
		closing: make(chan struct{}),
	}
	s.newSession()
	return s
}

func (s *Service) newSession() {
	opts := []wizard.Option{wizard.WithPalette(s.cfg.Palette)}
	if s.cfg.InitialExpense != "" {
		opts = append(opts, wizard.WithInitialExpense(s.cfg.InitialExpense))
	}
	s.sessionID = uuid.NewString()
	s.ctrl = wizard.New(opts...)
}

// Router builds the HTTP routes.
func (s *Service) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(logRequests)

	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	r.HandleFunc("/v1/session", s.handleSession).Methods("GET")
	r.HandleFunc("/v1/income", s.handleSetIncome).Methods("PUT")
	r.HandleFunc("/v1/expenses", s.handleAddExpense).Methods("POST")
	r.HandleFunc("/v1/expenses/{id:[0-9]+}", s.handleSetExpense).Methods("PUT")
	r.HandleFunc("/v1/expenses/{id:[0-9]+}", s.handleRemoveExpense).Methods("DELETE")
	r.HandleFunc("/v1/advance", s.handleAdvance).Methods("POST")
	r.HandleFunc("/v1/summary", s.handleSummary).Methods("GET")
	r.HandleFunc("/v1/result", s.handleResult).Methods("GET")
	r.HandleFunc("/v1/reset", s.handleReset).Methods("POST")
	r.HandleFunc("/v1/events", s.handleEvents).Methods("GET")
	r.HandleFunc("/v1/stream", s.handleStream).Methods("GET")
	return r
}

// Run listens on cfg.Addr and serves until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("hormiga http server: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve handles requests on ln until ctx is canceled. Open event streams
// are ended as soon as shutdown begins.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	server.RegisterOnShutdown(s.closeStreams)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	code := ""
	if s.cfg.Money != nil {
		code = s.cfg.Money.Code()
	}
	log.WithFields(log.Fields{
		"addr":     ln.Addr().String(),
		"currency": code,
		"history":  s.cfg.Recorder != nil,
	}).Info("hormiga server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("hormiga http server: %w", err)
	}
}

func (s *Service) closeStreams() {
	s.closeOnce.Do(func() { close(s.closing) })
}

// snapshotLocked builds the session state. Caller holds mu.
func (s *Service) snapshotLocked() Snapshot {
	snap := Snapshot{
		SessionID: s.sessionID,
		Stage:     s.ctrl.Stage().String(),
		Income:    s.ctrl.Income(),
		Draft:     s.ctrl.IncomeDraft(),
		Expenses:  s.ctrl.Entries(),
		Summary:   s.summaryView(s.ctrl.Summary()),
	}
	if r, ok := s.ctrl.Result(); ok {
		rv := s.resultView(r)
		snap.Result = &rv
	}
	return snap
}

func (s *Service) summaryView(sum model.Summary) SummaryView {
	v := SummaryView{Summary: sum}
	if m := s.cfg.Money; m != nil {
		v.Display = map[string]string{
			"daily":   m.Format(sum.Daily),
			"weekly":  m.Format(sum.Weekly),
			"monthly": m.Format(sum.Monthly),
			"annual":  m.Format(sum.Annual),
		}
	}
	return v
}

func (s *Service) resultView(r model.Result) ResultView {
	v := ResultView{Result: r}
	v.Display = map[string]string{"percentage": cli.FormatPercent(r.Rounded)}
	if m := s.cfg.Money; m != nil {
		v.Display["income"] = m.Format(r.Income)
		v.Display["monthly_total"] = m.Format(r.MonthlyTotal)
	}
	return v
}

// emitLocked records an event for the current state. Caller holds mu.
func (s *Service) emitLocked(kind string) {
	s.nextEventID++
	ev := Event{
		ID:        s.nextEventID,
		Type:      kind,
		Timestamp: time.Now(),
		Snapshot:  s.snapshotLocked(),
	}

	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// recordLocked writes the current result to the recorder, if any. Failures
// are logged and never fail the request.
func (s *Service) recordLocked() {
	if s.cfg.Recorder == nil {
		return
	}
	r, ok := s.ctrl.Result()
	if !ok {
		return
	}
	code := ""
	if s.cfg.Money != nil {
		code = s.cfg.Money.Code()
	}
	rec := store.NewRecord(r, s.ctrl.Summary(), s.ctrl.Entries(), code)
	if err := s.cfg.Recorder.Save(rec); err != nil {
		log.WithError(err).Warn("saving result to history")
	}
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start),
		}).Debug("request")
	})
}
