package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Server      ServerConfig
	CatKissFish CatKissFishConfig
	Shopify     ShopifyConfig
	Compare     CompareConfig
	DB          PostgresConfig
	Kafka       KafkaConfig
	Redis       RedisConfig
	Telemetry   TelemetryConfig
}

type AppConfig struct {
	Name string
	Env  string
}

type ServerConfig struct {
	Host string
	Port int
}

// CatKissFishConfig là cấu hình cho API của xưởng in Cat Kiss Fish.
type CatKissFishConfig struct {
	BaseURL         string
	ClientID        string
	ClientSecret    string
	TokenTTLSeconds int
	TimeoutSeconds  int
}

// StoreConfig là một storefront Shopify, chọn bằng ký tự prefix của order name.
type StoreConfig struct {
	Prefix      string
	URL         string
	AccessToken string
}

type ShopifyConfig struct {
	APIVersion       string
	Stores           map[string]StoreConfig
	ExcludedKeywords []string
	TimeoutSeconds   int
}

// CompareConfig controls how the factory side is projected for display.
type CompareConfig struct {
	ReverseDesignHistory bool
	DropLastEffectImage  bool
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
}

type KafkaConfig struct {
	Brokers         []string
	ComparisonTopic string
	ConsumerGroup   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "order_compare"),
			Env:  getEnv("APP_ENV", "local"),
		},
		Server: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnvAsInt("HTTP_PORT", 8030),
		},
		CatKissFish: CatKissFishConfig{
			BaseURL:         getEnv("CATKISSFISH_BASE_URL", "https://www.catkissfish.com:8443"),
			ClientID:        getEnv("CATKISSFISH_CLIENT_ID", ""),
			ClientSecret:    getEnv("CATKISSFISH_CLIENT_SECRET", ""),
			TokenTTLSeconds: getEnvAsInt("CATKISSFISH_TOKEN_TTL_SECONDS", 7000),
			TimeoutSeconds:  getEnvAsInt("CATKISSFISH_TIMEOUT_SECONDS", 30),
		},
		Shopify: ShopifyConfig{
			APIVersion:       getEnv("SHOPIFY_API_VERSION", "2023-10"),
			Stores:           loadStores(splitAndTrim(getEnv("SHOPIFY_STORE_PREFIXES", "G,C,U"))),
			ExcludedKeywords: splitAndTrim(strings.ToLower(getEnv("SHOPIFY_EXCLUDED_KEYWORDS", "versand,shipping"))),
			TimeoutSeconds:   getEnvAsInt("SHOPIFY_TIMEOUT_SECONDS", 30),
		},
		Compare: CompareConfig{
			ReverseDesignHistory: getEnvAsBool("COMPARE_REVERSE_DESIGN_HISTORY", true),
			DropLastEffectImage:  getEnvAsBool("COMPARE_DROP_LAST_EFFECT_IMAGE", true),
		},
		DB: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", ""),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			DBName:   getEnv("POSTGRES_DB", "postgres"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
		},
		Kafka: KafkaConfig{
			Brokers:         splitAndTrim(getEnv("KAFKA_BOOTSTRAP_SERVERS", "")),
			ComparisonTopic: getEnv("KAFKA_COMPARISON_TOPIC", "order_comparisons"),
			ConsumerGroup:   getEnv("KAFKA_CONSUMER_GROUP", "order-compare-history"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "order-compare"),
		},
	}

	return cfg, cfg.validate()
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (c CatKissFishConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLSeconds) * time.Second
}

func (c CatKissFishConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c ShopifyConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

/* ================= helpers ================= */

func (c *Config) validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("HTTP_PORT is invalid")
	}
	if c.CatKissFish.TokenTTLSeconds <= 0 {
		return fmt.Errorf("CATKISSFISH_TOKEN_TTL_SECONDS must be positive")
	}
	for prefix := range c.Shopify.Stores {
		if len([]rune(prefix)) != 1 {
			return fmt.Errorf("shopify store prefix %q must be a single character", prefix)
		}
	}
	if c.Kafka.Enabled() && c.Kafka.ComparisonTopic == "" {
		return fmt.Errorf("KAFKA_COMPARISON_TOPIC is empty")
	}
	// Credentials của Cat Kiss Fish không bắt buộc ở đây, client sẽ báo lỗi khi gọi
	return nil
}

// loadStores đọc SHOPIFY_STORE_<n>_URL / _ACCESS_TOKEN theo thứ tự prefix.
// Store không có URL thì bỏ qua.
func loadStores(prefixes []string) map[string]StoreConfig {
	stores := make(map[string]StoreConfig, len(prefixes))
	for i, p := range prefixes {
		prefix := strings.ToUpper(p)
		n := i + 1
		url := getEnv(fmt.Sprintf("SHOPIFY_STORE_%d_URL", n), "")
		if url == "" {
			continue
		}
		stores[prefix] = StoreConfig{
			Prefix:      prefix,
			URL:         url,
			AccessToken: getEnv(fmt.Sprintf("SHOPIFY_STORE_%d_ACCESS_TOKEN", n), ""),
		}
	}
	return stores
}

func getEnv(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return defaultVal
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if val := strings.TrimSpace(p); val != "" {
			out = append(out, val)
		}
	}
	return out
}
