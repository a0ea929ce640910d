// Package config loads service configuration from the environment with a NAV
// prefix, e.g. NAV_OSRM_BASE_URL.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServiceConfig holds all configuration for the navigation service.
type ServiceConfig struct {
	AppEnv string
	Port   string

	NominatimBaseURL string
	OSRMBaseURL      string
	UpstreamTimeout  time.Duration

	ProximityMeters float64
	SessionTimeout  time.Duration
	CleanupInterval time.Duration

	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaGroupPrefix string
}

// Load reads configuration from environment variables, applying defaults for
// anything unset.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("NAV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app_env", "development")
	v.SetDefault("port", ":8086")
	v.SetDefault("nominatim_base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("osrm_base_url", "https://router.project-osrm.org/route/v1/foot")
	v.SetDefault("upstream_timeout", "30s")
	v.SetDefault("proximity_meters", 50.0)
	v.SetDefault("session_timeout", "30m")
	v.SetDefault("cleanup_interval", "1m")
	v.SetDefault("kafka_enabled", false)
	v.SetDefault("kafka_brokers", "localhost:9092")
	v.SetDefault("kafka_group_prefix", "sage.")

	upstreamTimeout, err := time.ParseDuration(v.GetString("upstream_timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid upstream_timeout: %w", err)
	}
	sessionTimeout, err := time.ParseDuration(v.GetString("session_timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid session_timeout: %w", err)
	}
	cleanupInterval, err := time.ParseDuration(v.GetString("cleanup_interval"))
	if err != nil {
		return nil, fmt.Errorf("invalid cleanup_interval: %w", err)
	}

	return &ServiceConfig{
		AppEnv:           v.GetString("app_env"),
		Port:             v.GetString("port"),
		NominatimBaseURL: strings.TrimSuffix(v.GetString("nominatim_base_url"), "/"),
		OSRMBaseURL:      strings.TrimSuffix(v.GetString("osrm_base_url"), "/"),
		UpstreamTimeout:  upstreamTimeout,
		ProximityMeters:  v.GetFloat64("proximity_meters"),
		SessionTimeout:   sessionTimeout,
		CleanupInterval:  cleanupInterval,
		KafkaEnabled:     v.GetBool("kafka_enabled"),
		KafkaBrokers:     splitBrokers(v.GetString("kafka_brokers")),
		KafkaGroupPrefix: v.GetString("kafka_group_prefix"),
	}, nil
}

func splitBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}
