// Package skill maps voice intents onto device-shadow reads and writes and
// renders the result as a spoken turn.
package skill

import (
	"context"
	"errors"
	"fmt"

	"github.com/cuni-ai/cuni-control-skill/internal/config"
	"github.com/cuni-ai/cuni-control-skill/internal/logger"
	"github.com/cuni-ai/cuni-control-skill/internal/models"
	"github.com/cuni-ai/cuni-control-skill/internal/shadow"
	"go.uber.org/zap"
)

var (
	// ErrUnrecognizedIntent means the platform sent an intent name outside
	// the skill's closed set. Fatal for the turn.
	ErrUnrecognizedIntent = errors.New("unrecognized intent")
	// ErrUnsupportedRequest means the request type is not one the skill handles.
	ErrUnsupportedRequest = errors.New("unsupported request type")
)

type handlerFunc func(ctx context.Context, intent models.Intent, session models.Session) models.ResponseEnvelope

type Skill struct {
	shadow   shadow.Client
	things   config.ThingsConfig
	handlers map[string]handlerFunc
}

func New(client shadow.Client, things config.ThingsConfig) *Skill {
	s := &Skill{
		shadow: client,
		things: things,
	}

	s.handlers = map[string]handlerFunc{
		"FindObjectIntent":    s.findObject,
		"GetTemperature":      s.getTemperature,
		"GetHumidity":         s.getHumidity,
		"SetPanIntent":        s.setPan,
		"AMAZON.HelpIntent":   s.welcome,
		"AMAZON.StopIntent":   s.farewell,
		"AMAZON.CancelIntent": s.farewell,
	}

	return s
}

// Dispatch routes one inbound turn to its handler.
func (s *Skill) Dispatch(ctx context.Context, req models.RequestEnvelope) (models.ResponseEnvelope, error) {
	if req.Session.New {
		logger.Log.Info("session started",
			zap.String("requestId", req.Request.RequestID),
			zap.String("sessionId", req.Session.SessionID),
		)
	}

	switch req.Request.Type {
	case models.TypeLaunchRequest:
		return s.welcome(ctx, req.Request.Intent, req.Session), nil
	case models.TypeIntentRequest:
		handler, ok := s.handlers[req.Request.Intent.Name]
		if !ok {
			return models.ResponseEnvelope{}, fmt.Errorf("%q: %w", req.Request.Intent.Name, ErrUnrecognizedIntent)
		}
		return handler(ctx, req.Request.Intent, req.Session), nil
	case models.TypeSessionEndedRequest:
		return s.farewell(ctx, req.Request.Intent, req.Session), nil
	default:
		return models.ResponseEnvelope{}, fmt.Errorf("%q: %w", req.Request.Type, ErrUnsupportedRequest)
	}
}
