package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cuni-ai/cuni-control-skill/internal/config"
	"github.com/cuni-ai/cuni-control-skill/internal/logger"
	"github.com/cuni-ai/cuni-control-skill/internal/models"
	"github.com/cuni-ai/cuni-control-skill/internal/skill"
	"go.uber.org/zap"
)

type app struct {
	skill *skill.Skill
	cfg   config.SkillConfig
}

func newApp(s *skill.Skill, cfg config.SkillConfig) *app {
	return &app{skill: s, cfg: cfg}
}

func (a *app) webhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		logger.Log.Debug("got request with bad method", zap.String("method", r.Method))

		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	logger.Log.Debug("decoding request")
	var req models.RequestEnvelope
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		logger.Log.Debug("cannot decode request JSON body", zap.Error(err))

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// reject turns configured for another skill
	if a.cfg.ApplicationID != "" && req.Session.Application.ApplicationID != a.cfg.ApplicationID {
		logger.Log.Debug("application id mismatch",
			zap.String("applicationId", req.Session.Application.ApplicationID))

		w.WriteHeader(http.StatusForbidden)
		return
	}

	resp, err := a.skill.Dispatch(ctx, req)
	if err != nil {
		if errors.Is(err, skill.ErrUnrecognizedIntent) || errors.Is(err, skill.ErrUnsupportedRequest) {
			logger.Log.Debug("cannot dispatch request", zap.Error(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}

		logger.Log.Error("dispatch failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	if err := enc.Encode(resp); err != nil {
		logger.Log.Debug("error encoding response", zap.Error(err))
		return
	}
	logger.Log.Debug("sending HTTP 200 response")
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
