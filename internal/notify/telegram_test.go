package notify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"artjobs-engine/internal/config"
)

func TestDispatcherDisabled(t *testing.T) {
	var d Dispatcher
	cfg := config.Config{}
	cfg.Telegram.Enabled = false
	cfg.Telegram.Token = "t0ken"
	cfg.Telegram.ChatID = 42

	require.Nil(t, d.For(cfg))
}

func TestDispatcherIncompleteConfig(t *testing.T) {
	var d Dispatcher
	cfg := config.Config{}
	cfg.Telegram.Enabled = true
	cfg.Telegram.ChatID = 42
	// No token: construction fails and the failure is cached, so a
	// second pass with the same config stays nil without retrying.
	require.Nil(t, d.For(cfg))
	require.Nil(t, d.For(cfg))
}

func TestDispatcherReactsToToggle(t *testing.T) {
	var d Dispatcher
	cfg := config.Config{}
	cfg.Telegram.Enabled = true
	cfg.Telegram.Token = ""
	cfg.Telegram.ChatID = 7

	require.Nil(t, d.For(cfg))

	cfg.Telegram.Enabled = false
	require.Nil(t, d.For(cfg))
}
