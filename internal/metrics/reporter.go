package metrics

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jwtpizza/pizza-service/internal/config"
)

// Reporter pushes collector snapshots to the configured sink on a fixed
// interval. Push failures are logged and never affect request handling.
type Reporter struct {
	collector *Collector
	cfg       config.MetricsConfig
	client    *http.Client
	logger    zerolog.Logger
}

func NewReporter(collector *Collector, cfg config.MetricsConfig, logger zerolog.Logger) *Reporter {
	return &Reporter{
		collector: collector,
		cfg:       cfg,
		client:    &http.Client{Timeout: 10 * time.Second},
		logger:    logger,
	}
}

// Run reports until ctx is cancelled.
func (r *Reporter) Run(ctx context.Context) {
	interval := time.Duration(r.cfg.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 10 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.report(ctx)
		}
	}
}

func (r *Reporter) report(ctx context.Context) {
	payload, err := json.Marshal(map[string]any{
		"source":  r.cfg.Source,
		"metrics": r.collector.Snapshot(),
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("marshal metrics report")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		r.logger.Error().Err(err).Msg("build metrics request")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.cfg.APIKey)

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Warn().Err(err).Msg("push metrics")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		r.logger.Warn().Int("status", resp.StatusCode).Msg("metrics sink rejected report")
	}
}
