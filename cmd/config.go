package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"custody_wallet_back/internal/seedcipher"
	"custody_wallet_back/pkg/cache"
	"custody_wallet_back/pkg/handler"
	"custody_wallet_back/pkg/notify"
	"custody_wallet_back/pkg/platform"
	"custody_wallet_back/pkg/repository"
)

// Config is everything the process needs, read once at start-up.
type Config struct {
	Port            string
	LogLevel        string
	DB              repository.Config
	Platform        platform.Config
	Redis           cache.RedisConfig
	Mail            mailConfig
	HTTP            handler.Config
	SeedKey         []byte
	MainnetDisabled bool
}

type mailConfig struct {
	MailjetAPIKey    string
	MailjetSecretKey string
	SMTP             notify.SMTPConfig
	Recipient        notify.Recipient
}

func InitConfig() error {
	viper.AddConfigPath("configs")
	viper.SetConfigName("config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	return viper.ReadInConfig()
}

// loadConfig reads settings from v and secrets from the environment. A bad
// seed key aborts start-up.
func loadConfig(v *viper.Viper) (Config, error) {
	key, err := seedcipher.ParseKey(os.Getenv("SEED_ENCRYPTION_KEY"))
	if err != nil {
		return Config{}, errors.Wrap(err, "SEED_ENCRYPTION_KEY")
	}

	cfg := Config{
		Port:     v.GetString("port"),
		LogLevel: v.GetString("log.level"),
		DB: repository.Config{
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			Username: v.GetString("db.username"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   v.GetString("db.dbname"),
			SSLMode:  v.GetString("db.sslmode"),
			MaxConns: v.GetInt("db.max_conns"),
		},
		Platform: platform.Config{
			BaseURL:        v.GetString("platform.base_url"),
			APIKeyName:     os.Getenv("CDP_API_KEY_NAME"),
			APIKeySecret:   os.Getenv("CDP_API_KEY_SECRET"),
			RequestTimeout: v.GetDuration("platform.request_timeout"),
			AwaitInterval:  v.GetDuration("platform.await_interval"),
			AwaitTimeout:   v.GetDuration("platform.await_timeout"),
		},
		Redis: cache.RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       v.GetInt("redis.db"),
			Prefix:   v.GetString("redis.prefix"),
		},
		Mail: mailConfig{
			MailjetAPIKey:    os.Getenv("MAILJET_API_KEY"),
			MailjetSecretKey: os.Getenv("MAILJET_SECRET_KEY"),
			SMTP: notify.SMTPConfig{
				Host:     v.GetString("mail.smtp.host"),
				Port:     v.GetInt("mail.smtp.port"),
				Username: v.GetString("mail.smtp.username"),
				Password: os.Getenv("SMTP_PASSWORD"),
			},
			Recipient: notify.Recipient{
				FromEmail: v.GetString("mail.from_email"),
				FromName:  v.GetString("mail.from_name"),
				ToEmail:   v.GetString("mail.to_email"),
			},
		},
		HTTP: handler.Config{
			AllowOrigins: v.GetStringSlice("cors.allow_origins"),
			APIToken:     os.Getenv("API_TOKEN"),
		},
		SeedKey:         key,
		MainnetDisabled: v.GetBool("mainnet_disabled"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	return cfg, nil
}

// newNotifier prefers Mailjet, then SMTP, and falls back to no notifications.
func (c mailConfig) newNotifier() notify.Notifier {
	if c.Recipient.ToEmail == "" {
		return notify.Nop{}
	}
	if c.MailjetAPIKey != "" && c.MailjetSecretKey != "" {
		return notify.NewMailjet(c.MailjetAPIKey, c.MailjetSecretKey, c.Recipient)
	}
	if c.SMTP.Host != "" {
		return notify.NewSMTP(c.SMTP, c.Recipient)
	}
	return notify.Nop{}
}
