package app

import (
	"fmt"
	"strings"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/platform/config"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendGoogle   = "google"
	BackendXLSX     = "xlsx"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	LogMode     string `env:"LOG_MODE" envDefault:"development"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	Version     string `env:"APP_VERSION"`

	StoreBackend  string `env:"STORE_BACKEND" envDefault:"google"`
	SpreadsheetID string `env:"SPREADSHEET_ID"`
	SheetName     string `env:"SHEET_NAME" envDefault:"Lead"`
	XLSXPath      string `env:"XLSX_PATH" envDefault:"leads.xlsx"`
	DatabaseDSN   string `env:"DATABASE_DSN"`
	// SQLStoreID scopes rows in the shared sheet_row table.
	SQLStoreID   string `env:"SQL_STORE_ID" envDefault:"leads"`
	ExtendHeader bool   `env:"STORE_EXTEND_HEADER" envDefault:"false"`

	RoutingConfig  string   `env:"ROUTING_CONFIG"`
	SubjectPrefix  string   `env:"EMAIL_SUBJECT_PREFIX" envDefault:"SCG Lead Notification"`
	OtherSentinels []string `env:"OTHER_SENTINELS" envSeparator:"," envDefault:"Other,อื่นๆ"`

	AllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:","`
	MaxLeadBytes int64    `env:"MAX_LEAD_BYTES" envDefault:"65536"`

	Otel OtelEnv
}

type OtelEnv struct {
	Enabled     bool    `env:"OTEL_ENABLED" envDefault:"false"`
	Endpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Headers     string  `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	Insecure    bool    `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
	SampleRatio float64 `env:"OTEL_SAMPLER_RATIO" envDefault:"0.1"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendGoogle:
		if strings.TrimSpace(c.SpreadsheetID) == "" {
			return fmt.Errorf("SPREADSHEET_ID required for the google store")
		}
	case BackendXLSX:
		if strings.TrimSpace(c.XLSXPath) == "" {
			return fmt.Errorf("XLSX_PATH required for the xlsx store")
		}
	case BackendPostgres, BackendSQLite:
		if strings.TrimSpace(c.DatabaseDSN) == "" {
			return fmt.Errorf("DATABASE_DSN required for the %s store", c.StoreBackend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if strings.TrimSpace(c.SheetName) == "" {
		return fmt.Errorf("SHEET_NAME required")
	}
	return nil
}

func (c Config) Addr() string {
	p := strings.TrimSpace(c.Port)
	if strings.Contains(p, ":") {
		return p
	}
	return ":" + p
}
