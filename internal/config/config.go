// Package config reads the application settings from the environment and an
// optional dotenv file.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/postsportal/postsportal/internal/logger"
)

// DefaultEnvFile is read when present and no other file is given.
const DefaultEnvFile = ".env"

const (
	defaultPort          = 3000
	defaultShutdownTime  = 5
	defaultSessionExpiry = 30 * 24 * time.Hour
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_TITLE", "Posts Portal")
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("SHUTDOWN_TIME", defaultShutdownTime)
	v.SetDefault("SESSION_STORAGE", StorageMemory)
	v.SetDefault("SESSION_EXPIRY", defaultSessionExpiry)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_APP_NAME", "postsportal")
	v.SetDefault("LOG_SERVICE_NAME", "web")
	v.SetDefault("LOG_CONSOLE_ENABLED", true)
	v.SetDefault("LOG_ACCESS_TO_CONSOLE", true)
	v.SetDefault("LOG_DISABLE_CHECKALIVE", true)
	v.SetDefault("LOG_FILE_PATH", "./logs")
}

// ReadConfig loads the configuration. Environment variables win over values
// from envFile; a missing envFile is not an error.
func ReadConfig(envFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")

			if err = v.ReadInConfig(); err != nil {
				return Config{}, errors.Wrapf(err, "failed to read env file %s", envFile)
			}
		}
	}

	c := fromViper(v)

	return c, validate(&c)
}

func fromViper(v *viper.Viper) Config {
	return Config{
		DevMode: v.GetBool("APP_DEV_MODE"),
		Title:   v.GetString("APP_TITLE"),
		Webserver: Webserver{
			BrowseStatic:   v.GetBool("APP_BROWSE_STATIC"),
			DisableRecover: v.GetBool("APP_DISABLE_RECOVER"),
			Port:           v.GetInt("PORT"),
			ShutDownTime:   v.GetInt("SHUTDOWN_TIME"),
			URL:            strings.TrimSuffix(v.GetString("APP_BASE_URL"), "/"),
			SecretKey:      v.GetString("APP_SECRET_KEY"),
		},
		Auth: Auth{
			Domain:       v.GetString("AUTH0_DOMAIN"),
			ClientID:     v.GetString("AUTH0_CLIENT_ID"),
			ClientSecret: v.GetString("AUTH0_CLIENT_SECRET"),
			IssuerURL:    v.GetString("AUTH0_ISSUER_URL"),
		},
		RapidAPI: RapidAPI{
			Key:      v.GetString("RAPIDAPI_KEY"),
			Host:     v.GetString("RAPIDAPI_HOST"),
			Endpoint: v.GetString("RAPIDAPI_ENDPOINT"),
		},
		Session: Session{
			Storage:    strings.ToLower(v.GetString("SESSION_STORAGE")),
			StorageURI: v.GetString("SESSION_STORAGE_URI"),
			ExpiryTime: v.GetDuration("SESSION_EXPIRY"),
		},
		Log: logger.Log{
			LogLevel:                 v.GetString("LOG_LEVEL"),
			EnableAccessLogToConsole: v.GetBool("LOG_ACCESS_TO_CONSOLE"),
			ReportCaller:             v.GetBool("LOG_REPORT_CALLER"),
			DisableCheckAlive:        v.GetBool("LOG_DISABLE_CHECKALIVE"),
			AppName:                  v.GetString("LOG_APP_NAME"),
			ServiceName:              v.GetString("LOG_SERVICE_NAME"),
			Console: logger.Console{
				Enabled:          v.GetBool("LOG_CONSOLE_ENABLED"),
				UseConsoleWriter: v.GetBool("LOG_CONSOLE_WRITER"),
			},
			File: logger.LogFile{
				Enabled:   v.GetBool("LOG_FILE_ENABLED"),
				Path:      v.GetString("LOG_FILE_PATH"),
				AccessLog: "access.log",
				ErrorLog:  "error.log",
				InfoLog:   "info.log",
				TraceLog:  "trace.log",
				WarnLog:   "warn.log",
			},
		},
	}
}

// DumpConfigJSON returns the config as indented JSON. Secrets are omitted.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint:wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings needed to serve requests at all.
func validate(c *Config) error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}

	return nil
}
