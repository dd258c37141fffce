package buildCFG

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"

	"waitlist/internal/mailer"
	"waitlist/internal/ratelimit"
)

type ServerConfig struct {
	Port string
}

type RabbitConfig struct {
	Url      string
	Exchange string
	Queue    string
}

func BuildServerConfig(cfg *config.Config, log *zerolog.Logger) *ServerConfig {
	port := cfg.GetString("server.port")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "5000"
	}
	log.Info().Str("port", port).Msg("server config built")
	return &ServerConfig{Port: port}
}

func BuildDBConfig(cfg *config.Config, log *zerolog.Logger) (string, []string, *dbpg.Options, error) {
	masterDSN := cfg.GetString("database.dsn")
	if masterDSN == "" {
		masterDSN = os.Getenv("DATABASE_URL")
	}
	if masterDSN == "" {
		return "", nil, nil, fmt.Errorf("database DSN is not configured")
	}

	maxOpen := cfg.GetInt("database.max_open_conns")
	if maxOpen == 0 {
		maxOpen = 10
	}
	maxIdle := cfg.GetInt("database.max_idle_conns")
	if maxIdle == 0 {
		maxIdle = 5
	}

	opts := &dbpg.Options{
		MaxOpenConns: maxOpen,
		MaxIdleConns: maxIdle,
	}

	log.Info().Int("max_open_conns", maxOpen).Msg("DB config built")
	return masterDSN, nil, opts, nil
}

func BuildRabbitConfig(cfg *config.Config, log *zerolog.Logger) (*RabbitConfig, error) {
	url := cfg.GetString("rabbit.url")
	if url == "" {
		url = os.Getenv("RABBITMQ_URL")
	}
	if url == "" {
		return nil, fmt.Errorf("rabbit URL is not configured")
	}

	exchange := cfg.GetString("rabbit.exchange")
	if exchange == "" {
		exchange = "waitlist.orders"
	}
	queue := cfg.GetString("rabbit.queue")
	if queue == "" {
		queue = "waitlist.confirmations"
	}

	log.Info().Str("exchange", exchange).Str("queue", queue).Msg("rabbit config built")
	return &RabbitConfig{Url: url, Exchange: exchange, Queue: queue}, nil
}

func BuildSMTPConfig(cfg *config.Config) mailer.Config {
	port := cfg.GetString("smtp.port")
	if port == "" {
		port = "587"
	}
	return mailer.Config{
		Host:     cfg.GetString("smtp.host"),
		Port:     port,
		From:     cfg.GetString("smtp.from"),
		Password: os.Getenv("SMTP_PASSWORD"),
	}
}

func BuildRateLimitConfig(cfg *config.Config) *ratelimit.Config {
	limits := ratelimit.DefaultConfig()
	if v := cfg.GetInt("ratelimit.buy_limit"); v > 0 {
		limits.BuyLimit = v
	}
	if v := cfg.GetDuration("ratelimit.buy_window"); v > 0 {
		limits.BuyWindow = v
	}
	if v := cfg.GetInt("ratelimit.api_limit"); v > 0 {
		limits.APILimit = v
	}
	if v := cfg.GetDuration("ratelimit.api_window"); v > 0 {
		limits.APIWindow = v
	}
	return limits
}
