package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/ppiankov/footfit/internal/logging"
	"github.com/ppiankov/footfit/internal/model"
	"github.com/ppiankov/footfit/internal/validate"
	"github.com/ppiankov/footfit/internal/wizard"
)

// errorResponse is the JSON error envelope
type errorResponse struct {
	Code      string                `json:"code"`
	Message   string                `json:"message"`
	Fields    []validate.FieldError `json:"fields,omitempty"`
	RequestID string                `json:"request_id,omitempty"`
}

// option is one selectable value with its display label
type option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type optionsResponse struct {
	Age       []option      `json:"age"`
	Weight    []option      `json:"weight"`
	Foot      []option      `json:"foot"`
	Activity  []option      `json:"activity"`
	Preferred []option      `json:"preferred"`
	Defaults  model.Profile `json:"defaults"`
}

type labeled interface {
	~string
	Label() string
}

func options[T labeled](values []T) []option {
	out := make([]option, 0, len(values))
	for _, v := range values {
		out = append(out, option{Value: string(v), Label: v.Label()})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.With("http").Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.With("http").Error().Err(err).Msg("failed to write JSON response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, resp errorResponse) {
	resp.RequestID = middleware.GetReqID(r.Context())
	writeJSON(w, status, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, optionsResponse{
		Age:       options(model.AgeBrackets),
		Weight:    options(model.WeightBrackets),
		Foot:      options(model.FootTypes),
		Activity:  options(model.ActivityLevels),
		Preferred: options(model.ShoeCategories),
		Defaults:  wizard.NewSession().Profile(),
	})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var profile model.Profile
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&profile); err != nil {
		writeError(w, r, http.StatusBadRequest, errorResponse{
			Code:    "bad-request",
			Message: "request body must be a JSON profile: " + err.Error(),
		})
		return
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, errorResponse{
			Code:    "bad-request",
			Message: "request body must contain a single JSON profile",
		})
		return
	}

	result, err := s.runner.Run(r.Context(), profile)
	if err != nil {
		var domainErr *validate.DomainError
		if errors.As(err, &domainErr) {
			writeError(w, r, http.StatusBadRequest, errorResponse{
				Code:    domainErr.Code(),
				Message: domainErr.Error(),
				Fields:  domainErr.Fields,
			})
			return
		}

		logging.With("http").Error().Err(err).Msg("recommendation failed")
		writeError(w, r, http.StatusInternalServerError, errorResponse{
			Code:    "internal",
			Message: "recommendation failed",
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}
