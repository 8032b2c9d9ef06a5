//nolint:mnd //no magic number
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/config"
	str2duration "github.com/xhit/go-str2duration/v2"
)

type Config struct {
	Env              string
	SentryDsn        string
	SampleRate       float64
	Release          string
	TenantID         string
	ClientID         string
	ClientSecret     string
	LicenseSkuID     string
	UsageLocation    string
	ReplicationDelay string
	ExcludedHolidays []string
}

func New(logger *slog.Logger) Config {
	var cfg Config

	parser := config.New(logger)

	cfg.Env = parser.EnvStr("ENV", config.ProdEnv)
	cfg.SentryDsn = parser.EnvStr("SENTRY_DSN", "")
	cfg.SampleRate = parser.EnvFloat("SAMPLE_RATE", 1.0)
	cfg.Release = parser.EnvStr("RELEASE", config.DevEnv)

	cfg.TenantID = parser.EnvStr("TENANT_ID", "")
	cfg.ClientID = parser.EnvStr("CLIENT_ID", "")
	cfg.ClientSecret = parser.EnvStr("CLIENT_SECRET", "")

	cfg.LicenseSkuID = parser.EnvStr("LICENSE_SKU_ID", "")
	cfg.UsageLocation = parser.EnvStr("USAGE_LOCATION", "AU")
	cfg.ReplicationDelay = parser.EnvStr("REPLICATION_DELAY", "30s")

	excluded := parser.EnvStr("EXCLUDED_HOLIDAYS", "Bank Holiday")
	cfg.ExcludedHolidays = splitList(excluded)

	return cfg
}

// ParsedReplicationDelay returns the directory replication wait applied
// between account creation and licensing.
func (cfg Config) ParsedReplicationDelay() (time.Duration, error) {
	return str2duration.ParseDuration(cfg.ReplicationDelay)
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}

	return items
}
