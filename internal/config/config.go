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
	"github.com/vfg2006/rfm-segmentation-api/pkg/utils"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Auth             Auth             `mapstructure:",squash"`
	Segmentation     Segmentation     `mapstructure:",squash"`
	SegmentationSync SegmentationSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
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
	Secret string `mapstructure:"auth_secret"`
}

// Segmentation configura o núcleo RFM. ReferenceDate vazia significa derivar
// a data de referência do ledger (última compra + 1 dia) — a derivação é
// sempre logada, nunca cai silenciosamente para "agora"
type Segmentation struct {
	ReferenceDate string `mapstructure:"segmentation_reference_date"`
	QuantileCount int    `mapstructure:"segmentation_quantile_count"`
}

type SegmentationSync struct {
	CronSchedule string `mapstructure:"segmentation_sync_cron"`
	Enabled      bool   `mapstructure:"segmentation_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/rfm")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	// Defaults da segmentação RFM
	viper.SetDefault("SEGMENTATION_REFERENCE_DATE", "") // vazio = derivar do ledger
	viper.SetDefault("SEGMENTATION_QUANTILE_COUNT", 5)  // quintis

	viper.SetDefault("SEGMENTATION_SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("SEGMENTATION_SYNC_ENABLED", false)    // Habilitar segmentação agendada

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := validateSegmentation(config.Segmentation); err != nil {
		return nil, err
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

// validateSegmentation falha cedo com configuração que impediria qualquer
// execução da segmentação
func validateSegmentation(cfg Segmentation) error {
	if cfg.QuantileCount < 2 {
		return fmt.Errorf("segmentation_quantile_count deve ser >= 2, recebido %d", cfg.QuantileCount)
	}

	if cfg.ReferenceDate != "" {
		if _, err := utils.ParseDate(cfg.ReferenceDate); err != nil {
			return fmt.Errorf("segmentation_reference_date inválida (%s): %w", cfg.ReferenceDate, err)
		}
		logrus.WithField("reference_date", cfg.ReferenceDate).
			Info("Data de referência da segmentação fixada por configuração")
	} else {
		logrus.Info("Data de referência da segmentação será derivada do ledger (última compra + 1 dia)")
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
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

// ParseReferenceDate devolve a data de referência configurada, ou zero quando
// ela deve ser derivada do ledger
func (c *Config) ParseReferenceDate() (time.Time, error) {
	if c.Segmentation.ReferenceDate == "" {
		return time.Time{}, nil
	}

	parsed, err := utils.ParseDate(c.Segmentation.ReferenceDate)
	if err != nil {
		return time.Time{}, err
	}

	return *parsed, nil
}
