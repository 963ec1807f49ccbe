// Package api provides HTTP handlers for NoteFlow endpoints.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ClinScribe/NoteFlow/internal/genai"
	"github.com/ClinScribe/NoteFlow/internal/library"
	"github.com/ClinScribe/NoteFlow/internal/models"
	"github.com/ClinScribe/NoteFlow/internal/outcome"
	"github.com/ClinScribe/NoteFlow/internal/timefmt"
	"github.com/ClinScribe/NoteFlow/internal/util"
)

// insertOutcomeRequest is the body of POST /flows/insert. The form payload is passed
// through to the flow's outcome builder untouched.
type insertOutcomeRequest struct {
	EncounterID string          `json:"encounter_id,omitempty"`
	FlowType    models.FlowType `json:"flow_type"`
	Form        json.RawMessage `json:"form,omitempty"`
}

// insertOutcomeResponse returns the stored run plus the HH:mm rendering of the same
// capture instant, so clients never re-derive the wall-clock time themselves.
type insertOutcomeResponse struct {
	Run          models.CompletedRun `json:"run"`
	InsertedHHMM string              `json:"inserted_hhmm"`
}

func (s *Server) insertOutcomeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.insertOutcomeHandler: processing insert request", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		slog.Warn("Server.insertOutcomeHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req insertOutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.insertOutcomeHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if !models.IsValidFlowType(req.FlowType) {
		slog.Warn("Server.insertOutcomeHandler: invalid flow type", "flow", req.FlowType)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid flow type"))
		return
	}

	// Capture the insertion instant exactly once; the paragraph timestamp and the
	// stored run must agree to the millisecond.
	nowMs := time.Now().UnixMilli()

	paragraph, err := outcome.Build(req.FlowType, req.Form, nowMs)
	if err != nil {
		slog.Error("Server.insertOutcomeHandler: failed to build outcome", "error", err, "flow", req.FlowType)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Failed to build outcome paragraph"))
		return
	}

	run, err := s.store.AppendFlowOutcome(req.EncounterID, string(req.FlowType), models.FlowLabel(req.FlowType), paragraph, nowMs)
	if err != nil {
		slog.Error("Server.insertOutcomeHandler: failed to store run", "error", err, "flow", req.FlowType)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to store completed run"))
		return
	}

	slog.Info("Server.insertOutcomeHandler: outcome inserted", "flow", req.FlowType, "run", run.ID)
	writeJSONResponse(w, http.StatusCreated, models.Recorded(insertOutcomeResponse{
		Run:          run,
		InsertedHHMM: timefmt.FormatLocalTimeHHmm(nowMs),
	}))
}

func (s *Server) runsHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.runsHandler: processing runs request", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		slog.Warn("Server.runsHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	runs, err := s.store.GetCompletedRuns(r.URL.Query().Get("encounter_id"))
	if err != nil {
		slog.Error("Server.runsHandler: failed to get runs", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to retrieve completed runs"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(runs))
}

func (s *Server) patientsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.patientsHandler: processing patients request", "method", r.Method, "path", r.URL.Path)
	switch r.Method {
	case http.MethodGet:
		patients, err := s.store.GetPatients()
		if err != nil {
			slog.Error("Server.patientsHandler: failed to get patients", "error", err)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to retrieve patients"))
			return
		}
		writeJSONResponse(w, http.StatusOK, models.Success(patients))
	case http.MethodPost:
		var p models.Patient
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			slog.Warn("Server.patientsHandler: failed to decode JSON", "error", err)
			writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
			return
		}
		if p.Name == "" {
			writeJSONResponse(w, http.StatusBadRequest, models.Error("Missing required field: name"))
			return
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now()
		}
		stored, err := s.store.AddPatient(p)
		if err != nil {
			slog.Error("Server.patientsHandler: failed to add patient", "error", err)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to add patient"))
			return
		}
		writeJSONResponse(w, http.StatusCreated, models.Recorded(stored))
	default:
		w.Header().Set("Allow", strings.Join([]string{http.MethodGet, http.MethodPost}, ", "))
		slog.Warn("Server.patientsHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) encountersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.encountersHandler: processing encounters request", "method", r.Method, "path", r.URL.Path)
	switch r.Method {
	case http.MethodGet:
		encounters, err := s.store.GetEncounters(r.URL.Query().Get("patient_id"))
		if err != nil {
			slog.Error("Server.encountersHandler: failed to get encounters", "error", err)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to retrieve encounters"))
			return
		}
		writeJSONResponse(w, http.StatusOK, models.Success(encounters))
	case http.MethodPost:
		var e models.Encounter
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			slog.Warn("Server.encountersHandler: failed to decode JSON", "error", err)
			writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
			return
		}
		if e.PatientID == "" {
			writeJSONResponse(w, http.StatusBadRequest, models.Error("Missing required field: patient_id"))
			return
		}
		if e.StartedAt.IsZero() {
			e.StartedAt = time.Now()
		}
		stored, err := s.store.AddEncounter(e)
		if err != nil {
			slog.Error("Server.encountersHandler: failed to add encounter", "error", err)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to add encounter"))
			return
		}
		writeJSONResponse(w, http.StatusCreated, models.Recorded(stored))
	default:
		w.Header().Set("Allow", strings.Join([]string{http.MethodGet, http.MethodPost}, ", "))
		slog.Warn("Server.encountersHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) cardsHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.cardsHandler: processing cards request", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		slog.Warn("Server.cardsHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	favorites, err := s.store.GetFavorites()
	if err != nil {
		slog.Error("Server.cardsHandler: failed to get favorites", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to retrieve favorites"))
		return
	}

	q := r.URL.Query()
	req := library.FilterRequest{
		Section:        q.Get("section"),
		Query:          q.Get("q"),
		Tags:           splitTags(q.Get("tags")),
		FavOnly:        parseBoolParam(q.Get("fav_only")),
		RecMode:        parseBoolParam(q.Get("rec_mode")),
		Favorites:      favorites,
		RecentlyViewed: s.nav.RecentlyViewed(),
	}
	writeJSONResponse(w, http.StatusOK, models.Success(s.engine.Filter(req)))
}

func (s *Server) viewHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.viewHandler: processing view request", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		slog.Warn("Server.viewHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		CardID string `json:"card_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.viewHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if req.CardID == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Missing required field: card_id"))
		return
	}
	s.nav.RecordView(req.CardID)
	if err := s.store.AddRecentView(req.CardID); err != nil {
		// The in-session list already has the view; losing persistence is not fatal.
		slog.Warn("Server.viewHandler: failed to persist recent view", "error", err, "card", req.CardID)
	}
	writeJSONResponse(w, http.StatusOK, models.Success(s.nav.Snapshot()))
}

func (s *Server) favoritesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.favoritesHandler: processing favorites request", "method", r.Method, "path", r.URL.Path)
	switch r.Method {
	case http.MethodGet:
		favorites, err := s.store.GetFavorites()
		if err != nil {
			slog.Error("Server.favoritesHandler: failed to get favorites", "error", err)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to retrieve favorites"))
			return
		}
		writeJSONResponse(w, http.StatusOK, models.Success(favorites))
	case http.MethodPost, http.MethodDelete:
		cardID := r.URL.Query().Get("card_id")
		if cardID == "" {
			var req struct {
				CardID string `json:"card_id"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
				cardID = req.CardID
			}
		}
		if cardID == "" {
			writeJSONResponse(w, http.StatusBadRequest, models.Error("Missing required field: card_id"))
			return
		}
		var err error
		if r.Method == http.MethodPost {
			err = s.store.AddFavorite(cardID)
		} else {
			err = s.store.RemoveFavorite(cardID)
		}
		if err != nil {
			slog.Error("Server.favoritesHandler: failed to update favorite", "error", err, "card", cardID)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to update favorite"))
			return
		}
		writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Favorite updated", nil))
	default:
		w.Header().Set("Allow", strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodDelete}, ", "))
		slog.Warn("Server.favoritesHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) navHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.navHandler: processing nav request", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		slog.Warn("Server.navHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(s.nav.Snapshot()))
}

func (s *Server) queryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.queryHandler: processing query request", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		slog.Warn("Server.queryHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Query string `json:"query"`
		Flush bool   `json:"flush,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.queryHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	s.nav.SetQueryDraft(req.Query)
	if req.Flush {
		s.nav.FlushQuery()
	}
	writeJSONResponse(w, http.StatusOK, models.Success(s.nav.Snapshot()))
}

// navStateRequest updates parts of the navigation state. Pointer fields distinguish
// "leave unchanged" from an explicit zero value.
type navStateRequest struct {
	Section   *string `json:"section,omitempty"`
	ToggleTag *string `json:"toggle_tag,omitempty"`
	FavOnly   *bool   `json:"fav_only,omitempty"`
	RecMode   *bool   `json:"rec_mode,omitempty"`
}

func (s *Server) navStateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.navStateHandler: processing nav state request", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		slog.Warn("Server.navStateHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req navStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.navStateHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if req.Section != nil {
		s.nav.SelectSection(*req.Section)
	}
	if req.ToggleTag != nil && *req.ToggleTag != "" {
		s.nav.ToggleTag(*req.ToggleTag)
	}
	if req.FavOnly != nil {
		s.nav.SetFavOnly(*req.FavOnly)
	}
	if req.RecMode != nil {
		s.nav.SetRecMode(*req.RecMode)
	}
	writeJSONResponse(w, http.StatusOK, models.Success(s.nav.Snapshot()))
}

func (s *Server) draftHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.draftHandler: processing draft request", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		slog.Warn("Server.draftHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.gaClient == nil {
		slog.Warn("Server.draftHandler: GenAI client not configured")
		writeJSONResponse(w, http.StatusServiceUnavailable, models.Error("GenAI client not configured"))
		return
	}
	var req genai.DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.draftHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	text, err := s.gaClient.Draft(r.Context(), req)
	if err != nil {
		if errors.Is(err, genai.ErrEmptyPrompt) {
			writeJSONResponse(w, http.StatusBadRequest, models.Error("Missing required field: prompt"))
			return
		}
		slog.Error("Server.draftHandler: failed to generate draft", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to generate draft"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]string{
		"draft_id": util.GenerateRandomID("draft-", 12),
		"draft":    text,
	}))
}

// splitTags parses a comma-separated tag list, dropping empty entries.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// parseBoolParam treats unset or malformed values as false.
func parseBoolParam(raw string) bool {
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return v
}
