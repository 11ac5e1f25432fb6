package telemetry

import (
	"time"

	"github.com/2Lynk/DeathLogger-server/config"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
)

// InitNewRelic starts the New Relic agent when monitoring is enabled and
// a license key is configured. A nil application with a nil error means
// monitoring is off and the caller should skip the middleware entirely.
func InitNewRelic(cfg config.NewRelicConfig) (*newrelic.Application, error) {
	if !cfg.Enabled || cfg.LicenseKey == "" {
		return nil, nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.AppName),
		newrelic.ConfigLicense(cfg.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(true),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to start New Relic agent")
	}

	if err := app.WaitForConnection(5 * time.Second); err != nil {
		return nil, errors.Wrap(err, "New Relic agent did not connect")
	}
	return app, nil
}
