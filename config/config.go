package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/paologalligit/go-seatplan/constant"
)

const (
	SinkFile     = "file"
	SinkPostgres = "postgres"
)

type Config struct {
	App      AppConfig
	Seatplan SeatplanConfig
	Database DatabaseConfig
}

type AppConfig struct {
	Debug   bool
	LogPath string
}

type SeatplanConfig struct {
	InputDir     string `validate:"required"`
	OutputFile   string `validate:"required"`
	RecordsFile  string `validate:"required_if=Sink file"`
	Workers      int    `validate:"min=1,max=256"`
	Strict       bool
	InferColumns bool
	Descending   bool
	Sink         string `validate:"oneof=file postgres"`
}

type DatabaseConfig struct {
	URL      string
	MaxConns int32 `validate:"min=1"`
}

var validate = validator.New()

// Load reads .env when present, then the environment, then applies
// defaults for anything unset.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", constant.DEFAULT_LOG_PATH)
	v.SetDefault("SEATPLAN_INPUT_DIR", constant.DEFAULT_INPUT_DIR)
	v.SetDefault("SEATPLAN_OUTPUT_FILE", constant.DEFAULT_REPORT_FILE)
	v.SetDefault("SEATPLAN_RECORDS_FILE", constant.DEFAULT_RECORDS_FILE)
	v.SetDefault("SEATPLAN_WORKERS", 4)
	v.SetDefault("SEATPLAN_STRICT", false)
	v.SetDefault("SEATPLAN_INFER_COLUMNS", false)
	v.SetDefault("SEATPLAN_DESCENDING_COLUMNS", false)
	v.SetDefault("SEATPLAN_SINK", SinkFile)
	v.SetDefault("DB_MAX_CONNS", 10)

	sink := strings.ToLower(strings.TrimSpace(v.GetString("SEATPLAN_SINK")))
	cfg := &Config{
		App: AppConfig{
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Seatplan: SeatplanConfig{
			InputDir:     v.GetString("SEATPLAN_INPUT_DIR"),
			OutputFile:   v.GetString("SEATPLAN_OUTPUT_FILE"),
			RecordsFile:  v.GetString("SEATPLAN_RECORDS_FILE"),
			Workers:      v.GetInt("SEATPLAN_WORKERS"),
			Strict:       v.GetBool("SEATPLAN_STRICT"),
			InferColumns: v.GetBool("SEATPLAN_INFER_COLUMNS"),
			Descending:   v.GetBool("SEATPLAN_DESCENDING_COLUMNS"),
			Sink:         sink,
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
	}
	return cfg, nil
}

// Validate checks the configuration once command-line overrides are in.
func (c *Config) Validate() error {
	if err := validate.Struct(c.Seatplan); err != nil {
		return fmt.Errorf("invalid seatplan config: %s", describe(err))
	}
	if err := validate.Struct(c.Database); err != nil {
		return fmt.Errorf("invalid database config: %s", describe(err))
	}
	if c.Seatplan.Sink == SinkPostgres && c.Database.URL == "" {
		return fmt.Errorf("invalid database config: DATABASE_URL is required for the %s sink", SinkPostgres)
	}
	return nil
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "required_if":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", ")))
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s must be %s %s", fe.Field(), fe.Tag(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("invalid %s", fe.Field()))
		}
	}
	return strings.Join(msgs, "; ")
}
