package buildCFG

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"

	"eventdash/internal/gateway"
	"eventdash/internal/mailer"
)

type ServerConfig struct {
	Port string
}

type RabbitConfig struct {
	Url      string
	Exchange string
	Queue    string
}

type PollerConfig struct {
	Interval time.Duration
}

func BuildServerConfig(cfg *config.Config, log *zerolog.Logger) ServerConfig {
	port := cfg.GetString("server.port")
	if port == "" {
		port = "8080"
		log.Warn().Msg("server.port not set, defaulting to 8080")
	}
	return ServerConfig{Port: port}
}

func BuildGatewayConfig(cfg *config.Config, log *zerolog.Logger) (gateway.Config, error) {
	baseURL := cfg.GetString("gateway.base_url")
	if baseURL == "" {
		return gateway.Config{}, fmt.Errorf("gateway.base_url is required")
	}
	token := cfg.GetString("gateway.token")
	if token == "" {
		return gateway.Config{}, fmt.Errorf("gateway.token is required")
	}
	timeout := cfg.GetDuration("gateway.timeout")
	if timeout == 0 {
		timeout = 30 * time.Second
		log.Warn().Msg("gateway.timeout not set, defaulting to 30s")
	}
	return gateway.Config{BaseURL: baseURL, Token: token, Timeout: timeout}, nil
}

func BuildRabbitConfig(cfg *config.Config, log *zerolog.Logger) (RabbitConfig, error) {
	url := cfg.GetString("rabbit.url")
	if url == "" {
		return RabbitConfig{}, fmt.Errorf("rabbit.url is required")
	}
	exchange := cfg.GetString("rabbit.exchange")
	if exchange == "" {
		exchange = "reminders-exchange"
		log.Warn().Msg("rabbit.exchange not set, defaulting to reminders-exchange")
	}
	queue := cfg.GetString("rabbit.queue")
	if queue == "" {
		queue = "reminders"
		log.Warn().Msg("rabbit.queue not set, defaulting to reminders")
	}
	return RabbitConfig{Url: url, Exchange: exchange, Queue: queue}, nil
}

func BuildSMTPConfig(cfg *config.Config, log *zerolog.Logger) (mailer.Config, error) {
	host := cfg.GetString("smtp.host")
	if host == "" {
		return mailer.Config{}, fmt.Errorf("smtp.host is required")
	}
	port := cfg.GetString("smtp.port")
	if port == "" {
		port = "587"
		log.Warn().Msg("smtp.port not set, defaulting to 587")
	}
	from := cfg.GetString("smtp.from")
	if from == "" {
		return mailer.Config{}, fmt.Errorf("smtp.from is required")
	}
	return mailer.Config{
		Host:     host,
		Port:     port,
		From:     from,
		Password: cfg.GetString("smtp.password"),
	}, nil
}

func BuildPollerConfig(cfg *config.Config, log *zerolog.Logger) PollerConfig {
	interval := cfg.GetDuration("poller.interval")
	if interval == 0 {
		interval = time.Minute
		log.Warn().Msg("poller.interval not set, defaulting to 1m")
	}
	return PollerConfig{Interval: interval}
}
