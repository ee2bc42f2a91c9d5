package main

import (
	"context"
	"eventdash/internal/api/api"
	rabbitReader "eventdash/internal/consumerWorker"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventdash/cmd/buildCFG"

	"eventdash/internal/gateway"
	"eventdash/internal/live"
	"eventdash/internal/mailer"
	"eventdash/internal/rabbit"
	"eventdash/internal/selection"
	"eventdash/internal/store"

	"eventdash/internal/service"

	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/zlog"
)

func main() {
	zlog.Init()
	log := zlog.Logger

	cfg := config.New()
	if err := cfg.Load("config.yaml", "", "'"); err != nil {
		log.Fatal().Msgf("failed to load configuration: %v", err)
	}
	serverCfg := buildCFG.BuildServerConfig(cfg, &log)
	port := serverCfg.Port

	st := store.New()
	sel := selection.NewRouter(st)

	gatewayCfg, err := buildCFG.BuildGatewayConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build gateway config")
	}
	// The gateway reads its bearer token from the session store, so a token
	// refreshed at runtime reaches the next request.
	st.SetToken(gatewayCfg.Token)
	gatewayCfg.TokenSource = st.Token
	gw, err := gateway.New(gatewayCfg, &log)
	if err != nil {
		log.Fatal().Msgf("failed to initialize gateway: %v", err)
	}
	log.Info().Str("base_url", gatewayCfg.BaseURL).Msg("Upstream gateway configured")

	// The organizer account scopes pending-request and report calls.
	user, err := gw.FetchUser(context.Background())
	if err != nil {
		log.Fatal().Msgf("failed to fetch organizer profile: %v", err)
	}
	st.SetUser(user)
	log.Info().Int("user_id", user.ID).Msg("Organizer profile loaded")

	rabbitCfg, err := buildCFG.BuildRabbitConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load RabbitMQ config")
	}
	rmq, err := rabbit.NewRabbit(rabbitCfg.Url, rabbitCfg.Exchange, rabbitCfg.Queue)
	if err != nil {
		log.Fatal().Msgf("Failed to connect to RabbitMQ: %v", err)
	}
	defer rmq.Close()

	smtpCfg, err := buildCFG.BuildSMTPConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load SMTP config")
	}
	mail := mailer.New(smtpCfg, &log)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())

	rabbitReaderer := rabbitReader.NewReader(rmq, gw, mail)
	go rabbitReaderer.Start(workerCtx)

	pollerCfg := buildCFG.BuildPollerConfig(cfg, &log)
	poller := live.NewPoller(st, gw, &log, pollerCfg.Interval)
	go poller.Run(workerCtx)

	serviceInstance := service.NewService(gw, st, sel, poller, &log, rmq)
	app := api.NewRouters(&api.Routers{Service: serviceInstance})

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info().Msgf("Starting server on %s", port)
		if err := app.Run(":" + port); err != nil {
			serverErrChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-signalChan:
		log.Info().Msgf("Received signal %s. Initiating shutdown...", sig)
	case err := <-serverErrChan:
		log.Error().Msgf("Server error: %v", err)
	}

	cancelWorkers()
	rabbitReaderer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if closer, ok := interface{}(app).(interface{ Close(context.Context) error }); ok {
		if err := closer.Close(shutdownCtx); err != nil {
			log.Error().Msgf("Error shutting down server: %v", err)
		}
	}

	log.Info().Msg("Shutdown complete")
}
