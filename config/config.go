package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
)

const DefaultSpecialCharacters = "@$!%*?&"

type Config struct {
	App      AppConfig
	MySQL    MySQLConfig
	JWT      JWTConfig
	Tokens   TokenConfig
	Password PasswordConfig
	Redis    RedisConfig
	Queue    QueueConfig
	SMTP     SMTPConfig
	Storage  StorageConfig
	Health   HealthConfig
	Seed     SeedConfig
	Log      LogConfig
}

type AppConfig struct {
	Env         string
	HTTPHost    string
	HTTPPort    string
	FrontendURL string
	AdminEmail  string
}

type MySQLConfig struct {
	DSN string
}

type JWTConfig struct {
	AccessSecret    string
	AccessTokenTTL  time.Duration
	RefreshSecret   string
	RefreshTokenTTL time.Duration
}

type TokenConfig struct {
	ResetTTL time.Duration
}

type PasswordConfig struct {
	Policy     PasswordPolicy
	BcryptCost int
}

type RedisConfig struct {
	URL      string
	Addr     string
	Password string
	DB       int
}

type QueueConfig struct {
	Name         string
	Attempts     int
	Backoff      time.Duration
	Concurrency  int
	PollInterval time.Duration
	LeaseTTL     time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     string
	Secure   bool
	User     string
	Password string
	From     string
}

type StorageConfig struct {
	Endpoint       string
	Region         string
	Bucket         string
	AccessKey      string
	SecretKey      string
	PublicBaseURL  string
	UsePathStyle   bool
	MaxUploadBytes int64
}

type HealthConfig struct {
	Interval      time.Duration
	SlowThreshold time.Duration
}

type SeedConfig struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type LogConfig struct {
	Level  string
	Format string
}

type PasswordPolicy struct {
	MinLength         int
	MaxLength         int
	RequireUppercase  bool
	RequireLowercase  bool
	RequireNumber     bool
	RequireSpecial    bool
	SpecialCharacters string
}

func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:         8,
		MaxLength:         32,
		RequireUppercase:  true,
		RequireLowercase:  true,
		RequireNumber:     true,
		RequireSpecial:    true,
		SpecialCharacters: DefaultSpecialCharacters,
	}
}

func (p PasswordPolicy) Validate(password string) error {
	length := len([]rune(password))
	if length < p.MinLength {
		return fmt.Errorf("password must be at least %d characters long", p.MinLength)
	}
	if p.MaxLength > 0 && length > p.MaxLength {
		return fmt.Errorf("password must not exceed %d characters", p.MaxLength)
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, ch := range password {
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasUpper = true
		case ch >= 'a' && ch <= 'z':
			hasLower = true
		case ch >= '0' && ch <= '9':
			hasNumber = true
		case p.isSpecial(ch):
			hasSpecial = true
		}
	}

	var missing []string
	if p.RequireLowercase && !hasLower {
		missing = append(missing, "lowercase letter")
	}
	if p.RequireUppercase && !hasUpper {
		missing = append(missing, "uppercase letter")
	}
	if p.RequireNumber && !hasNumber {
		missing = append(missing, "number")
	}
	if p.RequireSpecial && !hasSpecial {
		missing = append(missing, fmt.Sprintf("special character (%s)", p.specialSet()))
	}

	if len(missing) > 0 {
		return fmt.Errorf("password must contain at least one: %s", strings.Join(missing, ", "))
	}

	if first, _ := utf8.DecodeRuneInString(password); length > 0 && !isASCIIAlnum(first) && !p.isSpecial(first) {
		return fmt.Errorf("password must start with a letter, a number or one of %s", p.specialSet())
	}

	return nil
}

func (p PasswordPolicy) specialSet() string {
	if p.SpecialCharacters == "" {
		return DefaultSpecialCharacters
	}
	return p.SpecialCharacters
}

func (p PasswordPolicy) isSpecial(ch rune) bool {
	return strings.ContainsRune(p.specialSet(), ch)
}

func isASCIIAlnum(ch rune) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9')
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignores error if not found)
	_ = godotenv.Load()

	env := strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV")))
	if env == "" {
		env = "local"
	}
	l := loader{prefix: envPrefix(env)}

	accessSecret := l.get("JWT_SECRET", "")
	if accessSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	refreshSecret := l.get("JWT_REFRESH_SECRET", "")
	if refreshSecret == "" {
		return nil, errors.New("JWT_REFRESH_SECRET environment variable is required")
	}

	mysqlDSN := l.get("MYSQL_DSN", "")
	if mysqlDSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	seedEmail := l.get("SEED_USER_EMAIL", "admin@example.com")

	return &Config{
		App: AppConfig{
			Env:         env,
			HTTPHost:    l.get("HTTP_HOST", "0.0.0.0"),
			HTTPPort:    l.get("HTTP_PORT", "3000"),
			FrontendURL: strings.TrimRight(l.get("FRONTEND_URL", "http://localhost:5173"), "/"),
			AdminEmail:  l.get("ADMIN_EMAIL", seedEmail),
		},
		MySQL: MySQLConfig{
			DSN: mysqlDSN,
		},
		JWT: JWTConfig{
			AccessSecret:    accessSecret,
			AccessTokenTTL:  l.duration("JWT_EXPIRATION", 15*time.Minute),
			RefreshSecret:   refreshSecret,
			RefreshTokenTTL: l.duration("JWT_REFRESH_EXPIRATION", 7*24*time.Hour),
		},
		Tokens: TokenConfig{
			ResetTTL: l.duration("RESET_TOKEN_TTL", time.Hour),
		},
		Password: PasswordConfig{
			Policy:     l.passwordPolicy(),
			BcryptCost: l.int("BCRYPT_COST", 10),
		},
		Redis: RedisConfig{
			URL:      l.get("REDIS_URL", ""),
			Addr:     fmt.Sprintf("%s:%s", l.get("REDIS_HOST", "localhost"), l.get("REDIS_PORT", "6379")),
			Password: l.get("REDIS_PASSWORD", ""),
			DB:       l.int("REDIS_DB", 0),
		},
		Queue: QueueConfig{
			Name:         l.get("MAIL_QUEUE_NAME", "mail-queue"),
			Attempts:     l.int("MAIL_QUEUE_ATTEMPTS", 3),
			Backoff:      l.duration("MAIL_QUEUE_BACKOFF", time.Second),
			Concurrency:  l.int("MAIL_QUEUE_CONCURRENCY", 2),
			PollInterval: l.duration("MAIL_QUEUE_POLL_INTERVAL", time.Second),
			LeaseTTL:     l.duration("MAIL_QUEUE_LEASE_TTL", 30*time.Second),
		},
		SMTP: SMTPConfig{
			Host:     l.get("SMTP_HOST", ""),
			Port:     l.get("SMTP_PORT", "587"),
			Secure:   l.bool("SMTP_SECURE", false),
			User:     l.get("SMTP_USER", ""),
			Password: l.get("SMTP_PASSWORD", ""),
			From:     l.get("EMAIL_FROM", ""),
		},
		Storage: StorageConfig{
			Endpoint:       l.get("S3_ENDPOINT", ""),
			Region:         l.get("S3_REGION", "us-east-1"),
			Bucket:         l.get("S3_BUCKET", "portfolio"),
			AccessKey:      l.get("S3_ACCESS_KEY", ""),
			SecretKey:      l.get("S3_SECRET_KEY", ""),
			PublicBaseURL:  strings.TrimRight(l.get("S3_PUBLIC_BASE_URL", ""), "/"),
			UsePathStyle:   l.bool("S3_USE_PATH_STYLE", true),
			MaxUploadBytes: int64(l.int("UPLOAD_MAX_BYTES", 10<<20)),
		},
		Health: HealthConfig{
			Interval:      l.duration("HEALTH_INTERVAL", 10*time.Minute),
			SlowThreshold: l.duration("HEALTH_SLOW_THRESHOLD", 5*time.Second),
		},
		Seed: SeedConfig{
			Email:     seedEmail,
			Password:  l.get("SEED_USER_PASSWORD", "Admin@123456"),
			FirstName: l.get("SEED_USER_FIRST_NAME", "Admin"),
			LastName:  l.get("SEED_USER_LAST_NAME", "User"),
		},
		Log: LogConfig{
			Level:  l.get("LOG_LEVEL", "info"),
			Format: l.get("LOG_FORMAT", "text"),
		},
	}, nil
}

func (c *Config) DSN() string {
	return c.MySQL.DSN
}

func (c *Config) HTTPAddr() string {
	return c.App.HTTPHost + ":" + c.App.HTTPPort
}

func envPrefix(env string) string {
	switch env {
	case "dev":
		return "DEV"
	case "prod":
		return "PROD"
	default:
		return "LOCAL"
	}
}

// loader resolves <PREFIX>_<KEY> before falling back to <KEY>.
type loader struct {
	prefix string
}

func (l loader) get(key, defaultValue string) string {
	if value := os.Getenv(l.prefix + "_" + key); value != "" {
		return value
	}
	return getEnv(key, defaultValue)
}

func (l loader) duration(key string, defaultValue time.Duration) time.Duration {
	return parseDuration(l.get(key, ""), defaultValue)
}

func (l loader) bool(key string, defaultValue bool) bool {
	if value := l.get(key, ""); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func (l loader) int(key string, defaultValue int) int {
	if value := l.get(key, ""); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func (l loader) passwordPolicy() PasswordPolicy {
	policy := DefaultPasswordPolicy()
	policy.MinLength = l.int("PASSWORD_MIN_LENGTH", policy.MinLength)
	policy.MaxLength = l.int("PASSWORD_MAX_LENGTH", policy.MaxLength)
	policy.RequireUppercase = l.bool("PASSWORD_REQUIRE_UPPERCASE", policy.RequireUppercase)
	policy.RequireLowercase = l.bool("PASSWORD_REQUIRE_LOWERCASE", policy.RequireLowercase)
	policy.RequireNumber = l.bool("PASSWORD_REQUIRE_NUMBER", policy.RequireNumber)
	policy.RequireSpecial = l.bool("PASSWORD_REQUIRE_SPECIAL", policy.RequireSpecial)
	policy.SpecialCharacters = l.get("PASSWORD_SPECIAL_CHARACTERS", policy.SpecialCharacters)
	return policy
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseDuration accepts plain minutes ("30"), Go durations ("15m") and days ("7d").
func parseDuration(value string, defaultValue time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultValue
	}
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}
	if strings.HasSuffix(value, "d") {
		if days, err := strconv.Atoi(strings.TrimSuffix(value, "d")); err == nil {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return defaultValue
}
