package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/cuni-ai/cuni-control-skill/internal/config"
	"github.com/cuni-ai/cuni-control-skill/internal/logger"
	"github.com/cuni-ai/cuni-control-skill/internal/shadow"
	"github.com/cuni-ai/cuni-control-skill/internal/skill"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	parseFlags()
	if err := run(); err != nil {
		panic(err)
	}
}

func run() error {
	if err := logger.Initialize(flagLogLevel); err != nil {
		return err
	}

	cfg, err := config.ReadConfig(flagConfigFile)
	if err != nil {
		return err
	}

	client, err := newShadowClient(cfg)
	if err != nil {
		return err
	}

	appInstance := newApp(skill.New(client, cfg.Things), cfg.Skill)

	router := mux.NewRouter()
	router.HandleFunc("/skill", logger.RequestLogger(gzipMiddleware(appInstance.webhook))).Methods(http.MethodPost)
	router.HandleFunc("/health", health).Methods(http.MethodGet)

	logger.Log.Info("Running server", zap.String("address", flagRunAddr))

	return http.ListenAndServe(flagRunAddr, router)
}

func newShadowClient(cfg *config.Config) (shadow.Client, error) {
	switch cfg.Shadow.Transport {
	case config.TransportHTTP:
		return shadow.NewHTTPClient(cfg.Shadow), nil
	case config.TransportMQTT:
		return shadow.NewMQTTClient(cfg.Mqtt, cfg.Shadow.TimeoutSec)
	default:
		return nil, fmt.Errorf("unknown shadow transport %q", cfg.Shadow.Transport)
	}
}

func gzipMiddleware(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ow := w

		acceptEncoding := r.Header.Get("Accept-Encoding")
		supportGzip := strings.Contains(acceptEncoding, "gzip")

		if supportGzip {
			cw := newCompressWriter(w)
			ow = cw
			// the response is already written by the time Close runs,
			// so a failure here can only be logged
			defer func(cw *compressWriter) {
				if err := cw.Close(); err != nil {
					logger.Log.Debug("compressWriterError", zap.Error(err))
				}
			}(cw)
		}

		contentEncoding := r.Header.Get("Content-Encoding")

		sendsGzip := strings.Contains(contentEncoding, "gzip")
		if sendsGzip {
			cr, err := newCompressReader(r.Body)
			if err != nil {
				logger.Log.Debug("newCompressReaderError", zap.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			r.Body = cr
			defer func(cr *compressReader) {
				if err := cr.Close(); err != nil {
					logger.Log.Debug("closeCompressReaderError", zap.Error(err))
				}
			}(cr)
		}

		h.ServeHTTP(ow, r)
	}
}
