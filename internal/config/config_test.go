package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"auction_client/internal/config"
)

func TestParse(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		rq := require.New(t)

		t.Setenv("API_BASE_URL", `"http://localhost:8000/"`)

		cfg, err := config.Parse()
		rq.NoError(err)
		rq.Equal("http://localhost:8000", cfg.API.BaseURL)
		rq.Equal(5*time.Second, cfg.API.Timeout)
		rq.Equal("human", cfg.API.PlayerID)
		rq.Equal(5, cfg.API.DealsLimit)
		rq.Equal([]string{"auction", "game", "statistics"}, cfg.Poll.Screens)
		rq.Equal(time.Second, cfg.Poll.AuctionInterval)
		rq.Equal(1, cfg.Poll.PatchMaxCycles)
		rq.Equal(3*time.Second, cfg.Notify.TTL)
		rq.False(cfg.Bot.Enabled())
	})

	t.Run("Overrides", func(t *testing.T) {
		rq := require.New(t)

		t.Setenv("API_BASE_URL", "http://auction:9000")
		t.Setenv("POLL_SCREENS", "auction")
		t.Setenv("POLL_AUCTION_INTERVAL", "250ms")
		t.Setenv("BOT_TOKEN", "token")
		t.Setenv("BOT_CHAT_ID", "42")

		cfg, err := config.Parse()
		rq.NoError(err)
		rq.Equal([]string{"auction"}, cfg.Poll.Screens)
		rq.Equal(250*time.Millisecond, cfg.Poll.AuctionInterval)
		rq.True(cfg.Bot.Enabled())
	})

	t.Run("Missing base url", func(t *testing.T) {
		rq := require.New(t)

		t.Setenv("API_BASE_URL", "")

		_, err := config.Parse()
		rq.Error(err)
	})
}
