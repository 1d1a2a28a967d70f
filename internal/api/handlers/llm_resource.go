package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Harshitk-cp/voxbridge/internal/domain"
)

// UnattachedLister lists LLM resources that no agent references.
type UnattachedLister interface {
	ListUnattached(ctx context.Context, limit int) ([]domain.LLMRecord, error)
}

type LLMResourceHandler struct {
	store UnattachedLister
}

func NewLLMResourceHandler(store UnattachedLister) *LLMResourceHandler {
	return &LLMResourceHandler{store: store}
}

type llmResourceResponse struct {
	LLMID     string    `json:"llm_id"`
	Version   int       `json:"version"`
	Provider  string    `json:"provider"`
	AgentName string    `json:"agent_name"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *LLMResourceHandler) ListUnattached(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 1000 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 1000")
			return
		}
		limit = n
	}

	recs, err := h.store.ListUnattached(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list llm resources")
		return
	}

	out := make([]llmResourceResponse, len(recs))
	for i, rec := range recs {
		out[i] = llmResourceResponse{
			LLMID:     rec.LLMID,
			Version:   rec.Version,
			Provider:  string(rec.Provider),
			AgentName: rec.AgentName,
			CreatedAt: rec.CreatedAt,
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"llm_resources": out})
}
