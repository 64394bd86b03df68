package config

// ConfigLogger настройки логирования
type ConfigLogger struct {
	Level string `mapstructure:"level"`
}

// ConfigApp общие настройки приложения
type ConfigApp struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	// EnableFTS зарезервирован под полнотекстовый поиск:
	// флаг принимается и логируется, но поведение не меняет
	EnableFTS bool `mapstructure:"enable_fts"`
}

// ConfigServer настройки HTTP сервера
type ConfigServer struct {
	PortHTTP                int `mapstructure:"port_http"`
	HTTPReadTimeout         int `mapstructure:"http_read_timeout"`
	HTTPWriteTimeout        int `mapstructure:"http_write_timeout"`
	HTTPIdleTimeout         int `mapstructure:"http_idle_timeout"`
	HTTPReadHeaderTimeout   int `mapstructure:"http_read_header_timeout"`
	GracefulShutdownTimeout int `mapstructure:"graceful_shutdown_timeout"`
}

// ConfigDatabase настройки базы данных
type ConfigDatabase struct {
	// URL путь к файлу SQLite (или ":memory:")
	URL string `mapstructure:"url"`
}

// ConfigHTTP настройки HTTP middleware (CORS и rate limiting)
type ConfigHTTP struct {
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	CORSMaxAge         int    `mapstructure:"cors_max_age"`
	RateLimitRPS       int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst     int    `mapstructure:"rate_limit_burst"`
}

// Config основная структура конфигурации
type Config struct {
	Logger   *ConfigLogger   `mapstructure:"logger"`
	App      *ConfigApp      `mapstructure:"app"`
	Server   *ConfigServer   `mapstructure:"server"`
	Database *ConfigDatabase `mapstructure:"database"`
	HTTP     *ConfigHTTP     `mapstructure:"http"`
}
