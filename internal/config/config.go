package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string `env:"ENV" env-default:"local"`
	BotToken string `env:"BOT_TOKEN" env-required:"true"`
	Mongo    Mongo
	HTTPServer
	Downtime
}

type Mongo struct {
	URI        string `env:"MONGO_URI" env-required:"true"`
	Database   string `env:"MONGO_DATABASE" env-required:"true"`
	Collection string `env:"MONGO_COLLECTION" env-default:"users"`
}

type HTTPServer struct {
	Port        int           `env:"HTTP_PORT" env-default:"8080"`
	Timeout     time.Duration `env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type Downtime struct {
	OnCallChatID   int64         `env:"ONCALL_CHAT_ID" env-required:"true"`
	ProjectID      string        `env:"RAILWAY_PROJECT_ID" env-required:"true"`
	SupportContact string        `env:"SUPPORT_CONTACT" env-default:"@strbit"`
	Forced         bool          `env:"FORCED_DOWNTIME" env-default:"false"`
	Delay          time.Duration `env:"DOWNTIME_DELAY" env-default:"60s"`
}

// Address returns the bind address for the control server.
func (s HTTPServer) Address() string {
	return fmt.Sprintf(":%d", s.Port)
}

// DashboardURL points at the hosting dashboard for the on-call alert button.
func (d Downtime) DashboardURL() string {
	return fmt.Sprintf("https://railway.com/project/%s", d.ProjectID)
}

func Load() (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

// MustLoad reads the environment and panics on any missing or invalid
// variable so a misconfigured process never starts serving.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic("failed to read config: " + err.Error())
	}

	return cfg
}
