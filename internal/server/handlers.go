package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/catalog"
	"github.com/jonathan/assessment-engine/internal/profile"
	"github.com/jonathan/assessment-engine/internal/types"
)

// maxBodyBytes caps request bodies; the largest answer set is a few kilobytes
const maxBodyBytes = 1 << 20

// TaxonomySummary describes a registered taxonomy
type TaxonomySummary struct {
	Taxonomy  types.Taxonomy `json:"taxonomy"`
	Format    types.Format   `json:"format"`
	Core      bool           `json:"core"`
	Questions int            `json:"questions"`
}

// handleListTaxonomies lists every registered taxonomy
func (s *Server) handleListTaxonomies(w http.ResponseWriter, r *http.Request) {
	summaries := make([]TaxonomySummary, 0, len(types.AllTaxonomies()))
	for _, t := range types.AllTaxonomies() {
		cfg, err := catalog.Get(t)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		summaries = append(summaries, TaxonomySummary{
			Taxonomy:  t,
			Format:    cfg.Format,
			Core:      t.IsCore(),
			Questions: len(cfg.Questions),
		})
	}
	s.jsonResponse(w, http.StatusOK, summaries)
}

// handleGetTaxonomy returns the full test config for a taxonomy
func (s *Server) handleGetTaxonomy(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("taxonomy")
	t, err := types.ParseTaxonomy(raw)
	if err != nil {
		s.handleError(w, r, &ErrNotFound{Resource: "taxonomy", ID: raw})
		return
	}
	cfg, err := catalog.Get(t)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, cfg)
}

// handleScore scores an answer set without persisting anything
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := s.decode(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}
	t, err := types.ParseTaxonomy(string(req.Taxonomy))
	if err != nil {
		s.handleError(w, r, &ErrValidation{Field: "taxonomy", Message: err.Error()})
		return
	}

	resp, err := s.score(t, req.Answers)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleAssign assigns a taxonomy to a participant, or returns the existing one
func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	id, err := participantID(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	t, created, err := s.assignments.Assign(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	s.jsonResponse(w, status, types.AssignmentResponse{
		ParticipantID: id,
		Taxonomy:      t,
		Created:       created,
	})
}

// handleGetAssignment returns a participant's existing assignment
func (s *Server) handleGetAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := participantID(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	t, ok, err := s.assignments.Get(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if !ok {
		s.handleError(w, r, &ErrNotFound{Resource: "assignment", ID: id.String()})
		return
	}
	s.jsonResponse(w, http.StatusOK, types.AssignmentResponse{ParticipantID: id, Taxonomy: t})
}

// handleSubmitResults scores answers against the participant's assigned
// taxonomy and stores the result
func (s *Server) handleSubmitResults(w http.ResponseWriter, r *http.Request) {
	id, err := participantID(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req types.SubmitResultsRequest
	if err := s.decode(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}

	t, ok, err := s.assignments.Get(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if !ok {
		s.handleError(w, r, &ErrNotFound{Resource: "assignment", ID: id.String()})
		return
	}

	resp, err := s.score(t, req.Answers)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	stored, err := s.store.SaveScoreResult(r.Context(), id, resp.Result, resp.Profile)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, stored)
}

// handleGetResults returns the participant's latest stored result
func (s *Server) handleGetResults(w http.ResponseWriter, r *http.Request) {
	id, err := participantID(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	stored, err := s.store.GetLatestScoreResult(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if stored == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "results", ID: id.String()})
		return
	}
	s.jsonResponse(w, http.StatusOK, stored)
}

// score runs the scorer and the profile engine for one answer set
func (s *Server) score(t types.Taxonomy, answers []types.Answer) (*types.ScoreResponse, error) {
	cfg, err := catalog.Get(t)
	if err != nil {
		return nil, err
	}
	result, err := s.scorer.Score(answers, cfg)
	if err != nil {
		return nil, err
	}
	prof, err := profile.InferResult(result)
	if err != nil {
		return nil, err
	}
	return &types.ScoreResponse{Result: result, Profile: prof}, nil
}

// decode reads a JSON request body into v
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid request body: " + err.Error()}
	}
	return nil
}

func participantID(r *http.Request) (uuid.UUID, error) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "invalid participant id"}
	}
	return id, nil
}

// validationError converts validator output into an ErrValidation naming the first bad field
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ErrValidation{
			Field:   strings.ToLower(fe.Namespace()),
			Message: "failed on '" + fe.Tag() + "'",
		}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}
