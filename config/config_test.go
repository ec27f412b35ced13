package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	LoadConfig()

	require.Equal(t, "8080", AppConfig.AppPort)
	require.Equal(t, "development", AppConfig.Env)
	require.Equal(t, 30, AppConfig.ConfirmationTimeLimitMinutes)
	require.Equal(t, 30*time.Minute, ConfirmationWindow())
	require.Equal(t, 24, AppConfig.LeadTimeHours)
	require.Equal(t, 24*time.Hour, LeadTime())
	require.False(t, IsProduction())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("LEAD_TIME_HOURS", "48")
	t.Setenv("CONFIRMATION_TIME_LIMIT_MINUTES", "5")

	LoadConfig()

	require.Equal(t, 48*time.Hour, LeadTime())
	require.Equal(t, 5*time.Minute, ConfirmationWindow())
}
