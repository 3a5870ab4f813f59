package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	TelegramBot TelegramBot
	Sleeper     Sleeper
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	ChatID int64  `envconfig:"CHAT_ID" required:"true"`
}

type Sleeper struct {
	LeagueID string `envconfig:"LEAGUE_ID" required:"true"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
