package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/revenue-compare-api/internal/domain"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Database  Database  `mapstructure:",squash"`
	Auth      Auth      `mapstructure:",squash"`
	Analysis  Analysis  `mapstructure:",squash"`
	DataFile  DataFile  `mapstructure:",squash"`
	Export    Export    `mapstructure:",squash"`
	Retention Retention `mapstructure:",squash"`
	Upload    Upload    `mapstructure:",squash"`
}

type App struct {
	LogLevel       string   `mapstructure:"log_level"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Auth struct {
	SecretKey     string        `mapstructure:"secret_key"`
	TokenTTL      time.Duration `mapstructure:"auth_token_ttl"`
	AdminEmail    string        `mapstructure:"admin_email"`
	AdminPassword string        `mapstructure:"admin_password"`
}

// Analysis guarda os limiares padrão de classificação e os limites de entrada
type Analysis struct {
	HighGrowth      float64 `mapstructure:"analysis_high_growth"`
	ModerateGrowth  float64 `mapstructure:"analysis_moderate_growth"`
	MildDecline     float64 `mapstructure:"analysis_mild_decline"`
	ModerateDecline float64 `mapstructure:"analysis_moderate_decline"`
	DefaultWindow   int     `mapstructure:"analysis_default_window"`
	MinYear         int     `mapstructure:"analysis_min_year"`
}

// Thresholds converte a seção de análise nos limiares de domínio
func (a Analysis) Thresholds() domain.GrowthThresholds {
	return domain.GrowthThresholds{
		HighGrowth:      a.HighGrowth,
		ModerateGrowth:  a.ModerateGrowth,
		MildDecline:     a.MildDecline,
		ModerateDecline: a.ModerateDecline,
	}
}

type DataFile struct {
	Path  string `mapstructure:"data_file_path"`
	Watch bool   `mapstructure:"data_file_watch"`
}

type Export struct {
	SheetName      string `mapstructure:"export_sheet_name"`
	ArchiveEnabled bool   `mapstructure:"export_archive_enabled"`
	Bucket         string `mapstructure:"export_bucket"`
	Region         string `mapstructure:"export_region"`
	Prefix         string `mapstructure:"export_prefix"`
}

type Retention struct {
	CronSchedule string `mapstructure:"retention_cron"`
	Days         int    `mapstructure:"retention_days"`
	Enabled      bool   `mapstructure:"retention_enabled"`
}

type Upload struct {
	MaxBytes int64 `mapstructure:"upload_max_bytes"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/revenue?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")
	viper.SetDefault("ADMIN_EMAIL", "")
	viper.SetDefault("ADMIN_PASSWORD", "")

	// Limiares padrão dos sliders de comparação
	viper.SetDefault("ANALYSIS_HIGH_GROWTH", 20.0)
	viper.SetDefault("ANALYSIS_MODERATE_GROWTH", 5.0)
	viper.SetDefault("ANALYSIS_MILD_DECLINE", -5.0)
	viper.SetDefault("ANALYSIS_MODERATE_DECLINE", -20.0)
	viper.SetDefault("ANALYSIS_DEFAULT_WINDOW", 1)
	viper.SetDefault("ANALYSIS_MIN_YEAR", 2014)

	viper.SetDefault("DATA_FILE_PATH", "times_series.csv")
	viper.SetDefault("DATA_FILE_WATCH", true)

	viper.SetDefault("EXPORT_SHEET_NAME", "Data")
	viper.SetDefault("EXPORT_ARCHIVE_ENABLED", false)
	viper.SetDefault("EXPORT_BUCKET", "")
	viper.SetDefault("EXPORT_REGION", "us-east-1")
	viper.SetDefault("EXPORT_PREFIX", "exports")

	viper.SetDefault("RETENTION_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("RETENTION_DAYS", 90)
	viper.SetDefault("RETENTION_ENABLED", false)

	viper.SetDefault("UPLOAD_MAX_BYTES", 10<<20) // 10 MB

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	return decode()
}

func decode() (*Config, error) {
	config := &Config{}

	err := viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Analysis.Thresholds().Validate(); err != nil {
		return nil, fmt.Errorf("limiares de análise inválidos: %w", err)
	}

	if config.Export.ArchiveEnabled && config.Export.Bucket == "" {
		return nil, fmt.Errorf("EXPORT_BUCKET é obrigatório com EXPORT_ARCHIVE_ENABLED")
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado; usando apenas variáveis de ambiente")
}
