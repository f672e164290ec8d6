package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Mülk silme politikaları (PROPERTY_DELETE_POLICY)
const (
	DeletePolicyOrphan   = "orphan"
	DeletePolicyCascade  = "cascade"
	DeletePolicyRestrict = "restrict"
)

type Config struct {
	HTTPPort     string
	DBDriver     string // sqlite | postgres
	DatabaseDSN  string // sqlite: dosya yolu, postgres: DSN
	UploadDir    string
	TemplatesDir string
	StaticDir    string
	CORSOrigins  string

	PDFExtraction  bool
	SearchCacheTTL time.Duration

	PropertyDeletePolicy string

	LogMode string
	LogFile string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Logger kurulmadan önce oluşan uyarılar; main logger'ı kurduktan sonra basar
	Warnings []string
}

// Load: varsa .env dosyasını yükler, sonra ortam değişkenlerinden Config üretir
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv: sadece mevcut ortam değişkenlerinden okur (testler için .env'siz)
func FromEnv() *Config {
	cfg := &Config{
		HTTPPort:             getEnv("PORT", "8000"),
		DBDriver:             strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DatabaseDSN:          getEnv("DATABASE_DSN", "database.db"),
		UploadDir:            getEnv("UPLOAD_DIR", "uploads"),
		TemplatesDir:         getEnv("TEMPLATES_DIR", "templates"),
		StaticDir:            getEnv("STATIC_DIR", "static"),
		CORSOrigins:          getEnv("CORS_ALLOWED_ORIGINS", "*"),
		PropertyDeletePolicy: strings.ToLower(getEnv("PROPERTY_DELETE_POLICY", DeletePolicyOrphan)),
		LogMode:              getEnv("LOG_MODE", "development"),
		LogFile:              getEnv("LOG_FILE", ""),
	}

	cfg.PDFExtraction = cfg.getBool("PDF_EXTRACTION", true)
	cfg.SearchCacheTTL = cfg.getDuration("SEARCH_CACHE_TTL", 10*time.Minute)
	cfg.ReadTimeout = cfg.getDuration("READ_TIMEOUT", 15*time.Second)
	cfg.WriteTimeout = cfg.getDuration("WRITE_TIMEOUT", 15*time.Second)

	switch cfg.PropertyDeletePolicy {
	case DeletePolicyOrphan, DeletePolicyCascade, DeletePolicyRestrict:
	default:
		cfg.warnf("PROPERTY_DELETE_POLICY=%q tanınmıyor, %q kullanılıyor", cfg.PropertyDeletePolicy, DeletePolicyOrphan)
		cfg.PropertyDeletePolicy = DeletePolicyOrphan
	}
	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		cfg.warnf("DB_DRIVER=%q tanınmıyor, sqlite kullanılıyor", cfg.DBDriver)
		cfg.DBDriver = "sqlite"
	}

	return cfg
}

// CORS origins'i virgülle ayrılmış string'den array'e çevir
func (c *Config) CORSOriginList() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c *Config) warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

func (c *Config) getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		c.warnf("%s=%q geçersiz, varsayılan %v kullanılıyor", key, v, def)
		return def
	}
	return b
}

func (c *Config) getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := cast.ToDurationE(v)
	if err != nil || d <= 0 {
		c.warnf("%s=%q geçersiz, varsayılan %s kullanılıyor", key, v, def)
		return def
	}
	return d
}
