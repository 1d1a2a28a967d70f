package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Harshitk-cp/voxbridge/internal/api/middleware"
	"github.com/Harshitk-cp/voxbridge/internal/domain"
	"github.com/Harshitk-cp/voxbridge/internal/service"
)

const (
	UpstreamPhaseHeader    = middleware.UpstreamPhaseHeader
	UpstreamProviderHeader = "X-Upstream-Provider"
)

type AgentHandler struct {
	svc *service.AgentService
}

func NewAgentHandler(svc *service.AgentService) *AgentHandler {
	return &AgentHandler{svc: svc}
}

func (h *AgentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.UnifiedAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.svc.CreateAgent(r.Context(), &req)
	if err != nil {
		writeCreateError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// writeCreateError maps a CreateAgent failure onto a response. Provider
// responses are relayed with their own status and body untouched.
func writeCreateError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  ve.Message,
			"fields": ve.Fields,
		})
		return
	}

	if errors.Is(err, domain.ErrUnsupportedProvider) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var upErr *domain.UpstreamError
	if errors.As(err, &upErr) {
		w.Header().Set(UpstreamPhaseHeader, string(upErr.Phase))
		w.Header().Set(UpstreamProviderHeader, string(upErr.Provider))

		if upErr.StatusCode == 0 {
			writeJSON(w, http.StatusBadGateway, map[string]string{
				"error": upErr.Error(),
				"phase": string(upErr.Phase),
			})
			return
		}

		if json.Valid(upErr.Body) {
			w.Header().Set("Content-Type", "application/json")
		} else {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		}
		w.WriteHeader(upErr.StatusCode)
		_, _ = w.Write(upErr.Body)
		return
	}

	writeError(w, http.StatusInternalServerError, "error creating agent: "+err.Error())
}
