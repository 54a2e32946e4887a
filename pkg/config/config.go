package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingBackendURL se devuelve cuando ninguna de las variables del backend externo está definida.
var ErrMissingBackendURL = errors.New("config: URL del backend no configurada (BACKEND_API_URL)")

// backendURLKeys orden de resolución de la URL del backend. La primera no vacía gana.
// Los nombres NEXT_PUBLIC_* se aceptan para reutilizar el mismo .env del frontend.
var backendURLKeys = []string{
	"BACKEND_API_URL",
	"NEXT_PUBLIC_BACKEND_API",
	"API_URL",
	"NEXT_PUBLIC_API_URL",
	"NEXT_PUBLIC_BACKEND_API_URL",
}

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Backend BackendConfig
	Gateway GatewayConfig
	Notify  NotifyConfig
	Storage StorageConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string
	SwaggerFile string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN arma el connection string con la contraseña escapada.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// RedisConfig conexión a Redis (sesiones de staff, lock de verificación, caché de tarifas).
// Addr vacío deshabilita Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	FeeTTL   time.Duration
}

// JWTConfig secreto compartido con el backend que emite los tokens.
type JWTConfig struct {
	Secret string
	Issuer string
}

// BackendConfig backend REST externo al que se reenvían las rutas proxy.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// GatewayConfig pasarela de pago con página hospedada.
type GatewayConfig struct {
	BaseURL     string
	SecretKey   string
	CallbackURL string
	Currency    string
	Timeout     time.Duration
}

// NotifyConfig notificaciones por correo (SES). Enabled=false usa el notificador de log.
type NotifyConfig struct {
	Enabled   bool
	AWSRegion string
	Sender    string
}

// StorageConfig selecciona los adaptadores de persistencia y de tarifas.
type StorageConfig struct {
	Driver      string // postgres | memory
	PricingFrom string // database | backend
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. La URL del backend se resuelve una sola vez aquí.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	backendURL := resolveBackendURL(v)
	if backendURL == "" {
		return nil, ErrMissingBackendURL
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "datacapture-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			CORSOrigins: getString(v, "CORS_ALLOW_ORIGINS", "*"),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "datacapture"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 20),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			FeeTTL:   getDuration(v, "REDIS_FEE_TTL", 10*time.Minute),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", ""),
		},
		Backend: BackendConfig{
			BaseURL: backendURL,
			Timeout: getDuration(v, "BACKEND_TIMEOUT", 15*time.Second),
		},
		Gateway: GatewayConfig{
			BaseURL:     getString(v, "PAYMENT_GATEWAY_URL", ""),
			SecretKey:   getString(v, "PAYMENT_GATEWAY_SECRET", ""),
			CallbackURL: getString(v, "PAYMENT_CALLBACK_URL", ""),
			Currency:    getString(v, "PAYMENT_CURRENCY", "NGN"),
			Timeout:     getDuration(v, "PAYMENT_GATEWAY_TIMEOUT", 20*time.Second),
		},
		Notify: NotifyConfig{
			Enabled:   getBool(v, "NOTIFY_EMAIL_ENABLED", false),
			AWSRegion: getString(v, "AWS_REGION", "us-east-1"),
			Sender:    getString(v, "NOTIFY_SENDER", ""),
		},
		Storage: StorageConfig{
			Driver:      getString(v, "STORAGE_DRIVER", "postgres"),
			PricingFrom: getString(v, "PRICING_SOURCE", "database"),
		},
	}
	return cfg, nil
}

// resolveBackendURL devuelve la primera URL no vacía de backendURLKeys, sin barra final.
func resolveBackendURL(v *viper.Viper) string {
	for _, key := range backendURLKeys {
		raw := strings.TrimSpace(getString(v, key, ""))
		if raw != "" && raw != "undefined" && raw != "null" {
			return strings.TrimRight(raw, "/")
		}
	}
	return ""
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	switch v.Get(key).(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return n
	default:
		return v.GetInt(key)
	}
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	return v.GetBool(key)
}

// getDuration acepta "15s", "2m" o un entero en segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
