package outbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/icp-token/pkg/bridge"
)

// DefaultEndpoint is the endpoints key used for targets without their own entry
const DefaultEndpoint = "default"

const maxErrorBody = 512

// HTTPSink posts actions as JSON to the endpoint configured for their target
type HTTPSink struct {
	endpoints map[string]string
	client    *http.Client
	logger    *zap.Logger
}

// NewHTTPSink creates a sink posting to endpoints, keyed by target account
func NewHTTPSink(endpoints map[string]string, timeout time.Duration, logger *zap.Logger) *HTTPSink {
	return &HTTPSink{
		endpoints: endpoints,
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

func (s *HTTPSink) endpoint(target string) (string, bool) {
	if url, ok := s.endpoints[target]; ok {
		return url, true
	}
	url, ok := s.endpoints[DefaultEndpoint]
	return url, ok
}

// Deliver posts action to its endpoint. Actions whose target has no endpoint
// are dropped and reported as delivered.
func (s *HTTPSink) Deliver(ctx context.Context, action *bridge.OutboxAction) error {
	url, ok := s.endpoint(action.Target.String())
	if !ok {
		s.logger.Info("No endpoint for outbox target, dropping action",
			zap.String("action_id", action.ID.String()),
			zap.String("kind", string(action.Kind)),
			zap.Stringer("target", action.Target))
		return nil
	}

	body, err := json.Marshal(action)
	if err != nil {
		return fmt.Errorf("failed to encode action: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", action.ID.String())

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post action to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("endpoint %s returned %d: %s", url, resp.StatusCode, bytes.TrimSpace(msg))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
