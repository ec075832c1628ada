package main

import (
	"fmt"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Language        string        `env:"MANDI_LANGUAGE"`
	LogPath         string        `env:"MANDI_LOG_PATH"`
	LogLevel        string        `env:"MANDI_LOG_LEVEL,default=info" validate:"oneof=trace debug info warn error"`
	LocalesFile     string        `env:"MANDI_LOCALES_FILE" validate:"omitempty,file"`
	PhrasesFile     string        `env:"MANDI_PHRASES_FILE" validate:"omitempty,file"`
	MarketFile      string        `env:"MANDI_MARKET_FILE" validate:"omitempty,file"`
	Capture         string        `env:"MANDI_CAPTURE,default=demo" validate:"oneof=demo off"`
	CaptureLatency  time.Duration `env:"MANDI_CAPTURE_LATENCY,default=1500ms" validate:"gt=0"`
	ProcessingDelay time.Duration `env:"MANDI_PROCESSING_DELAY,default=1s" validate:"gt=0"`
	ReplyDelay      time.Duration `env:"MANDI_REPLY_DELAY,default=1500ms" validate:"gt=0"`
	PriceInterval   time.Duration `env:"MANDI_PRICE_INTERVAL,default=2m" validate:"gte=1s"`
	NewsInterval    time.Duration `env:"MANDI_NEWS_INTERVAL,default=10s" validate:"gte=1s"`
	Seed            int           `env:"MANDI_SEED,default=0"`
	Market          bool          `env:"MANDI_MARKET,default=true"`
	Greeting        bool          `env:"MANDI_GREETING,default=true"`
}

var validate = validator.New()

// loadConfig reads an optional .env file, then the process environment.
func loadConfig() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
