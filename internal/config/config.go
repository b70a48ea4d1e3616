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
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	Blob        Blob        `mapstructure:",squash"`
	BlobCleanup BlobCleanup `mapstructure:",squash"`
	Optimizer   Optimizer   `mapstructure:",squash"`
}

type Server struct {
	Host        string `mapstructure:"host"`
	Port        string `mapstructure:"port"`
	MaxUploadMB int64  `mapstructure:"max_upload_mb"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Blob configura onde as planilhas geradas ficam guardadas até expirar
type Blob struct {
	Driver   string        `mapstructure:"blob_driver"`
	TTL      time.Duration `mapstructure:"blob_ttl"`
	S3Bucket string        `mapstructure:"blob_s3_bucket"`
	S3Region string        `mapstructure:"blob_s3_region"`
	S3Prefix string        `mapstructure:"blob_s3_prefix"`
}

type BlobCleanup struct {
	CronSchedule string `mapstructure:"blob_cleanup_cron"`
	Enabled      bool   `mapstructure:"blob_cleanup_enabled"`
}

// Optimizer são os valores padrão de cada execução; o upload pode sobrescrever alguns
type Optimizer struct {
	TargetACOS             float64 `mapstructure:"optimizer_target_acos"`
	NegationMultiplier     float64 `mapstructure:"optimizer_negation_multiplier"`
	MinBid                 float64 `mapstructure:"optimizer_min_bid"`
	MinBudget              float64 `mapstructure:"optimizer_min_budget"`
	MaxPlacementPercentage int     `mapstructure:"optimizer_max_placement_percentage"`
	MinSearchVolume        int     `mapstructure:"optimizer_min_search_volume"`
	LookbackDays           int     `mapstructure:"optimizer_lookback_days"`
}

const (
	BlobDriverPostgres = "postgres"
	BlobDriverS3       = "s3"
)

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("MAX_UPLOAD_MB", 50)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/ads_optimizer?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	viper.SetDefault("BLOB_DRIVER", BlobDriverPostgres)
	viper.SetDefault("BLOB_TTL", "24h")
	viper.SetDefault("BLOB_S3_BUCKET", "")
	viper.SetDefault("BLOB_S3_REGION", "us-east-1")
	viper.SetDefault("BLOB_S3_PREFIX", "optimizations/")

	viper.SetDefault("BLOB_CLEANUP_CRON", "0 * * * *") // A cada hora
	viper.SetDefault("BLOB_CLEANUP_ENABLED", true)

	viper.SetDefault("OPTIMIZER_TARGET_ACOS", 0.30)
	viper.SetDefault("OPTIMIZER_NEGATION_MULTIPLIER", 1.5)
	viper.SetDefault("OPTIMIZER_MIN_BID", 1.00)
	viper.SetDefault("OPTIMIZER_MIN_BUDGET", 200)
	viper.SetDefault("OPTIMIZER_MAX_PLACEMENT_PERCENTAGE", 900) // limite da Amazon
	viper.SetDefault("OPTIMIZER_MIN_SEARCH_VOLUME", 0)
	viper.SetDefault("OPTIMIZER_LOOKBACK_DAYS", 30)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if config.Blob.Driver == BlobDriverS3 && config.Blob.S3Bucket == "" {
		return nil, fmt.Errorf("BLOB_S3_BUCKET é obrigatório quando BLOB_DRIVER=s3")
	}

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
