package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит конфигурацию сервера.
type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Настройки HTTP сервера
	ServerPort         int           `envconfig:"SERVER_PORT" default:"8080"`
	ServerReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	ServerWriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"120s"`
	ServerIdleTimeout  time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`
	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	JWTSecret          string        `envconfig:"JWT_SECRET" required:"true"`

	// Настройки PostgreSQL
	DBHost     string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string        `envconfig:"DB_PORT" default:"5432"`
	DBUser     string        `envconfig:"DB_USER" default:"postgres"`
	DBPassword string        `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string        `envconfig:"DB_NAME" default:"cineasta"`
	DBSSLMode  string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns int32         `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTime time.Duration `envconfig:"DB_MAX_IDLE_TIME" default:"5m"`

	// Настройки AI (OpenAI-совместимый API, например OpenRouter)
	AIAPIKey        string        `envconfig:"AI_API_KEY" required:"true"`
	AIBaseURL       string        `envconfig:"AI_BASE_URL" default:"https://openrouter.ai/api/v1"`
	AIModel         string        `envconfig:"AI_MODEL" default:"gpt-4o-mini"`
	AITimeout       time.Duration `envconfig:"AI_TIMEOUT" default:"120s"`
	AIMaxAttempts   int           `envconfig:"AI_MAX_ATTEMPTS" default:"3"`
	AIBaseRetryWait time.Duration `envconfig:"AI_BASE_RETRY_DELAY" default:"1s"`

	// Настройки генерации изображений
	ImageGenBaseURL string        `envconfig:"IMAGE_GEN_BASE_URL" default:"http://localhost:8188"`
	ImageGenTimeout time.Duration `envconfig:"IMAGE_GEN_TIMEOUT" default:"120s"`

	// Настройки транскрипции аудио
	TranscribeBaseURL string        `envconfig:"TRANSCRIBE_BASE_URL" default:""`
	TranscribeTimeout time.Duration `envconfig:"TRANSCRIBE_TIMEOUT" default:"60s"`
	TranscribeLang    string        `envconfig:"TRANSCRIBE_LANGUAGE" default:"pt"`

	// Настройки объектного хранилища (файлы + публичный базовый URL)
	StorageSavePath      string `envconfig:"STORAGE_SAVE_PATH" default:"./data/storage"`
	StoragePublicBaseURL string `envconfig:"STORAGE_PUBLIC_BASE_URL" default:"http://localhost:8080/files"`

	// Настройки логгера
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`
}

// GetDSN возвращает строку подключения (DSN) для PostgreSQL.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// GetMaskedDSN возвращает DSN с замаскированным паролем для логирования.
func (c *Config) GetMaskedDSN() string {
	dsn := c.GetDSN()
	parts := strings.Split(dsn, "@")
	if len(parts) != 2 {
		return "[invalid dsn format]"
	}
	userInfo := strings.Split(parts[0], ":")
	if len(userInfo) >= 2 {
		userInfo[len(userInfo)-1] = "********"
	}
	return strings.Join(userInfo, ":") + "@" + parts[1]
}

// Load загружает конфигурацию из переменных окружения.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}
	return &cfg, nil
}
