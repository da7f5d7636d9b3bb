package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"auction_client/internal/config"
	"auction_client/internal/domain/value"
	"auction_client/internal/infrastructure/api"
	"auction_client/internal/infrastructure/notifier"
	"auction_client/internal/render"
	"auction_client/internal/server"
	"auction_client/internal/store"
	"auction_client/internal/transport/bot"
	"auction_client/internal/worker"
	"auction_client/pkg/application/modules"
	"auction_client/pkg/logx"
	"auction_client/pkg/lox"
	"auction_client/pkg/middlewarex"
)

const httpReadHeaderTimeout = 5 * time.Second

func Run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	// 1. Screens
	screens, err := parseScreens(cfg.Poll.Screens)
	if err != nil {
		return fmt.Errorf("parse screens: %w", err)
	}

	// 2. Auction API
	client, err := api.NewClient(api.Config{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        cfg.API.Timeout,
		PlayerID:       cfg.API.PlayerID,
		DealsLimit:     cfg.API.DealsLimit,
		LogFieldMaxLen: cfg.API.LogFieldMaxLen,
	})
	if err != nil {
		return fmt.Errorf("api client: %w", err)
	}
	log.Info("auction api", slog.String("base-url", cfg.API.BaseURL), slog.String("player-id", client.PlayerID()))

	// 3. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// 4. Notifications
	hub := server.NewHub(server.HubConfig{CheckOrigin: server.AllowOrigins(cfg.HTTP.AllowedOrigins)})

	notifications := notifier.New(
		notifier.WithTTL(cfg.Notify.TTL),
		notifier.WithSink(hub),
	)
	defer notifications.Close()

	var alertBot *notifier.TelegramBot
	if cfg.Bot.Enabled() {
		alertBot, err = notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID)
		if err != nil {
			return fmt.Errorf("notifier bot: %w", err)
		}

		notifications.AddSink(alertBot)
		log.Info("telegram notifications enabled")
	}

	// 5. State, rendering and polling
	st := store.New(store.WithPatchMaxCycles(cfg.Poll.PatchMaxCycles))
	document := render.NewDocument()

	reconciler := worker.NewReconciler(
		client,
		st,
		render.NewRenderer(client.PlayerID()),
		document,
		notifications,
		worker.WithInterval(value.ScreenAuction, cfg.Poll.AuctionInterval),
		worker.WithInterval(value.ScreenGame, cfg.Poll.GameInterval),
		worker.WithInterval(value.ScreenStatistics, cfg.Poll.StatisticsInterval),
		worker.WithMetrics(worker.NewMetrics(registry)),
		worker.WithPublisher(hub),
	)
	reconciler.SetScreens(screens...)

	var commandBot *bot.Bot
	if alertBot != nil {
		commandBot, err = bot.New(ctx, cfg.Bot, reconciler)
		if err != nil {
			return fmt.Errorf("command bot: %w", err)
		}
	}

	// 6. Local API
	srv := server.NewServer(
		server.NewViewServer(reconciler, document, notifications),
		server.NewActionServer(reconciler),
		server.NewStreamServer(hub, reconciler, reconciler.Screens),
	)

	masker := logx.NewSensitiveDataMasker()

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		cors.New(cors.Options{
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Content-Type", "X-Trace-Id"},
		}).Handler,
	)
	srv.RegisterRoutes(
		router,
		middlewarex.RequestLogging(masker, cfg.HTTP.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.HTTP.LogFieldMaxLen),
	)

	httpServer := &http.Server{
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: httpReadHeaderTimeout,
	}

	// 7. Modules
	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, httpServer)
	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Probe.ListenAddress,
		Ready: func() bool {
			return len(st.Read().Versions) > 0
		},
	}.Run(ctx, g)
	modules.MetricServer{ListenAddress: cfg.Metrics.ListenAddress, Gatherer: registry}.Run(ctx, g)

	modules.Worker{Name: "websocket-hub"}.Run(ctx, g, hub.Run)
	modules.Worker{Name: "reconciler"}.Run(ctx, g, func(ctx context.Context) error {
		// Бот может остановить и снова запустить опрос через Start/Stop.
		if err := reconciler.Start(ctx); err != nil {
			return fmt.Errorf("reconciler.Start: %w", err)
		}

		<-ctx.Done()
		reconciler.Stop()

		return nil
	})

	if alertBot != nil {
		modules.Worker{Name: "telegram-notifications"}.Run(ctx, g, alertBot.Run)
		modules.Worker{Name: "telegram-commands"}.Run(ctx, g, commandBot.Run)
	}

	log.Info("application started", slog.Any("screens", screens))

	if err = g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	log.Info("application stopping...")

	return nil
}

func parseScreens(names []string) ([]value.Screen, error) {
	screens, err := lox.MapErr(names, value.ParseScreen)
	if err != nil {
		return nil, fmt.Errorf("value.ParseScreen: %w", err)
	}

	return lo.Uniq(screens), nil
}
