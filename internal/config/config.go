package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/parsing"
)

type Config struct {
	App    App    `mapstructure:",squash"`
	Server Server `mapstructure:",squash"`
	Ledger Ledger `mapstructure:",squash"`
	Reload Reload `mapstructure:",squash"`
	Paging Paging `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level" validate:"required"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port" validate:"required"`

	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Ledger struct {
	Source            string `mapstructure:"ledger_source" validate:"required"`
	TimeoutSeconds    int    `mapstructure:"ledger_source_timeout_seconds" validate:"min=1"`
	Delimiter         string `mapstructure:"ledger_delimiter" validate:"required"`
	StrictMode        bool   `mapstructure:"ledger_strict_mode"`
	DecimalPlaces     int    `mapstructure:"ledger_decimal_places" validate:"min=0,max=8"`
	ValidateLineTotal bool   `mapstructure:"ledger_validate_line_total"`
}

type Reload struct {
	CronSchedule string `mapstructure:"ledger_reload_cron"`
	Enabled      bool   `mapstructure:"ledger_reload_enabled"`
}

type Paging struct {
	PageSize    int `mapstructure:"ledger_page_size" validate:"min=1"`
	MaxPageSize int `mapstructure:"ledger_max_page_size" validate:"gtefield=PageSize"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("HOST", "localhost")
	v.SetDefault("PORT", "8000")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	v.SetDefault("LOG_LEVEL", "debug")

	v.SetDefault("LEDGER_SOURCE", "./data/data.txt")
	v.SetDefault("LEDGER_SOURCE_TIMEOUT_SECONDS", 30)
	v.SetDefault("LEDGER_DELIMITER", ",")
	v.SetDefault("LEDGER_STRICT_MODE", false)
	v.SetDefault("LEDGER_DECIMAL_PLACES", 2)
	v.SetDefault("LEDGER_VALIDATE_LINE_TOTAL", false)

	v.SetDefault("LEDGER_RELOAD_CRON", "*/15 * * * *") // a cada 15 minutos
	v.SetDefault("LEDGER_RELOAD_ENABLED", false)

	v.SetDefault("LEDGER_PAGE_SIZE", 50)
	v.SetDefault("LEDGER_MAX_PAGE_SIZE", 500)
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	v := viper.New()
	SetDefaults(v)

	v.SetConfigType("env")
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	}

	return Load(v)
}

// Load decodifica e valida a configuração a partir de uma instância do viper
func Load(v *viper.Viper) (*Config, error) {
	config := &Config{}

	err := v.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if utf8.RuneCountInString(config.Ledger.Delimiter) != 1 {
		return nil, fmt.Errorf("invalid configuration: LEDGER_DELIMITER must be a single character, got %q", config.Ledger.Delimiter)
	}

	config.Reload.CronSchedule = strings.TrimSpace(config.Reload.CronSchedule)
	if config.Reload.Enabled && config.Reload.CronSchedule == "" {
		return nil, fmt.Errorf("invalid configuration: LEDGER_RELOAD_CRON is required when reload is enabled")
	}

	return config, nil
}

// ParseOptions converte a configuração do razão para as opções do parser
func (l Ledger) ParseOptions() parsing.Options {
	delimiter, _ := utf8.DecodeRuneInString(l.Delimiter)

	return parsing.Options{
		Delimiter:         delimiter,
		StrictMode:        l.StrictMode,
		DecimalPlaces:     int32(l.DecimalPlaces),
		ValidateLineTotal: l.ValidateLineTotal,
	}
}

// Address retorna host:porta para o servidor HTTP
func (s Server) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
