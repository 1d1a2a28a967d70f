package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Harshitk-cp/voxbridge/internal/domain"
)

// transport posts JSON payloads to one provider with a static bearer token.
type transport struct {
	provider   domain.Provider
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// post sends payload to baseURL+path. Any non-2xx status or transport
// failure comes back as a *domain.UpstreamError; the body is returned
// verbatim either way.
func (t *transport) post(ctx context.Context, phase domain.Phase, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", phase, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", phase, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Provider: t.provider, Phase: phase, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{Provider: t.provider, Phase: phase, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{
			Provider:   t.provider,
			Phase:      phase,
			StatusCode: resp.StatusCode,
			Body:       respBody,
		}
	}

	return respBody, nil
}

// decode unmarshals a success body, flagging anything unparseable as a
// malformed response for the given phase.
func decode(phase domain.Phase, body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %s: %v (raw: %s)", domain.ErrMalformedResponse, phase, err, string(body))
	}
	return nil
}
