package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/theirongolddev/hormiga/internal/model"
	"github.com/theirongolddev/hormiga/internal/wizard"
)

type valueRequest struct {
	Value json.RawMessage `json:"value"`
}

type labelRequest struct {
	Label string `json:"label"`
}

type errorResponse struct {
	Field string `json:"field,omitempty"`
	Error string `json:"error"`
}

// rawValue accepts "value": "10" or "value": 10 and returns the text form.
func (v valueRequest) rawValue() string {
	if len(v.Value) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(v.Value, &s); err == nil {
		return s
	}
	return string(v.Value)
}

// writeJSON encodes v before writing the status line, so an encoding
// failure becomes a 500 instead of a truncated success.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).Error("encoding response")
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Error: "encoding response failed"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// writeError maps validation failures to 422 and anything else to 500.
func writeError(w http.ResponseWriter, err error) {
	var ve *wizard.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Field: ve.Field, Error: ve.Message})
		return
	}
	log.WithError(err).Error("request failed")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid body: %v", err)})
		return false
	}
	return true
}

func expenseID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleSession(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.snapshotLocked())
}

func (s *Service) handleSetIncome(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.ctrl.SetIncome(req.rawValue())
	s.emitLocked("income_set")
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.snapshotLocked())
}

func (s *Service) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req labelRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Label == "" {
		req.Label = "Daily expense"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.ctrl.AddExpense(req.Label)
	s.emitLocked("expense_added")
	writeJSON(w, http.StatusCreated, struct {
		ID      int         `json:"id"`
		Summary SummaryView `json:"summary"`
	}{id, s.summaryView(s.ctrl.Summary())})
}

func (s *Service) handleSetExpense(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if !decode(w, r, &req) {
		return
	}
	id := expenseID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, known := findEntry(s.ctrl.Entries(), id); !known {
		writeJSON(w, http.StatusNotFound, errorResponse{Field: wizard.ExpenseField(id), Error: "no such expense"})
		return
	}

	err := s.ctrl.SetExpenseAmount(id, req.rawValue())
	s.emitLocked("expense_updated")
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.summaryView(s.ctrl.Summary()))
}

func (s *Service) handleRemoveExpense(w http.ResponseWriter, r *http.Request) {
	id := expenseID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctrl.RemoveExpense(id)
	s.emitLocked("expense_removed")
	writeJSON(w, http.StatusOK, s.summaryView(s.ctrl.Summary()))
}

func (s *Service) handleAdvance(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ctrl.Advance(); err != nil {
		writeError(w, err)
		return
	}
	if s.ctrl.Stage() == model.StageResults {
		s.recordLocked()
	}
	s.emitLocked("advanced")
	writeJSON(w, http.StatusOK, s.snapshotLocked())
}

func (s *Service) handleSummary(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.summaryView(s.ctrl.Summary()))
}

func (s *Service) handleResult(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.ctrl.Result()
	if !ok {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "results stage not reached"})
		return
	}
	writeJSON(w, http.StatusOK, s.resultView(r))
}

func (s *Service) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.newSession()
	s.emitLocked("reset")
	writeJSON(w, http.StatusOK, s.snapshotLocked())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	s.mu.Lock()
	current := Event{Type: "snapshot", Timestamp: time.Now(), Snapshot: s.snapshotLocked()}
	s.mu.Unlock()
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-s.closing:
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.WithError(err).WithField("event", ev.Type).Warn("encoding stream event")
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func findEntry(entries []model.ExpenseEntry, id int) (model.ExpenseEntry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return model.ExpenseEntry{}, false
}
