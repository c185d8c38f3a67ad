package shadow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cuni-ai/cuni-control-skill/internal/config"
	"github.com/cuni-ai/cuni-control-skill/internal/logger"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// HTTPClient reaches the shadow service over its REST data plane.
type HTTPClient struct {
	client *resty.Client
}

func NewHTTPClient(cfg config.ShadowConfig) *HTTPClient {
	client := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetTimeout(time.Duration(cfg.TimeoutSec) * time.Second).
		SetHeader("Content-Type", "application/json")

	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	return &HTTPClient{client: client}
}

func (c *HTTPClient) GetProperty(ctx context.Context, thing, property string) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("thing", thing).
		Get("/things/{thing}/shadow")
	if err != nil {
		return "", fmt.Errorf("get shadow %s: %w: %v", thing, ErrRemoteUnavailable, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("get shadow %s: status %d: %w", thing, resp.StatusCode(), ErrRemoteUnavailable)
	}

	var doc Document
	if err := json.Unmarshal(resp.Body(), &doc); err != nil {
		return "", fmt.Errorf("get shadow %s: decode: %w", thing, ErrRemoteUnavailable)
	}

	raw, ok := doc.State.Reported[property]
	if !ok {
		return "", fmt.Errorf("shadow %s has no reported %q: %w", thing, property, ErrPropertyMissing)
	}

	value, ok := formatValue(raw)
	if !ok {
		return "", fmt.Errorf("shadow %s reported %q is not a scalar: %w", thing, property, ErrPropertyMissing)
	}
	logger.Log.Debug("shadow get",
		zap.String("thing", thing),
		zap.String("property", property),
		zap.String("value", value),
	)

	return value, nil
}

func (c *HTTPClient) SetProperty(ctx context.Context, thing, property, value string) error {
	logger.Log.Debug("shadow update",
		zap.String("thing", thing),
		zap.String("property", property),
		zap.String("value", value),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("thing", thing).
		SetBody(desiredDelta(property, value)).
		Post("/things/{thing}/shadow")
	if err != nil {
		return fmt.Errorf("update shadow %s: %w: %v", thing, ErrRemoteUnavailable, err)
	}
	if resp.IsError() {
		return fmt.Errorf("update shadow %s: status %d: %w", thing, resp.StatusCode(), ErrRemoteRejected)
	}

	return nil
}
