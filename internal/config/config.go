package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Дефолты конфигурации. Все настройки опциональны:
// приложение стартует и без конфигурационного файла.
// Дефолты сами ссылаются на переменные окружения, поэтому
// окружение работает и без config.yml
var defaults = map[string]any{
	"logger.level":                     "${LOG_LEVEL:-info}",
	"app.name":                         "${APP_NAME:-Notes API}",
	"app.env":                          "${ENV:-dev}",
	"app.enable_fts":                   "${ENABLE_FTS:-false}",
	"server.port_http":                 "${PORT:-8080}",
	"server.http_read_timeout":         10,
	"server.http_write_timeout":        30,
	"server.http_idle_timeout":         60,
	"server.http_read_header_timeout":  5,
	"server.graceful_shutdown_timeout": 10,
	"database.url":                     "${DATABASE_URL:-data/app.db}",
	"http.cors_allowed_origins":        "${CORS_ALLOWED_ORIGINS:-*}",
	"http.cors_max_age":                86400,
	"http.rate_limit_rps":              100,
	"http.rate_limit_burst":            10,
}

// Ключи, значения которых приводятся к bool и int после
// подстановки переменных окружения. Остальные ключи остаются строками
var boolKeys = map[string]bool{
	"app.enable_fts": true,
}

var intKeys = map[string]bool{
	"server.port_http":                 true,
	"server.http_read_timeout":         true,
	"server.http_write_timeout":        true,
	"server.http_idle_timeout":         true,
	"server.http_read_header_timeout":  true,
	"server.graceful_shutdown_timeout": true,
	"http.cors_max_age":                true,
	"http.rate_limit_rps":              true,
	"http.rate_limit_burst":            true,
}

// expandEnvWithDefaults расширяет переменные окружения с поддержкой дефолтных значений
// Формат: ${VAR:-default}
func expandEnvWithDefaults(s string) string {
	// Регулярное выражение для поиска ${VAR:-default}
	re := regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		// Извлекаем имя переменной и значение по умолчанию
		matches := re.FindStringSubmatch(match)
		if len(matches) < 2 {
			return match
		}

		varName := matches[1]
		defaultValue := ""
		if len(matches) > 2 {
			defaultValue = matches[2]
		}

		// Пытаемся получить значение из переменных окружения
		value := os.Getenv(varName)
		if value == "" {
			// Если переменная не установлена, используем значение по умолчанию
			return defaultValue
		}
		return value
	})
}

// Load читает конфигурационный файл и возвращает конфигурацию приложения.
// Отсутствующий файл не является ошибкой: остаются дефолты,
// которые сами указывают на переменные окружения
func Load(configFile string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	ext := strings.TrimLeft(filepath.Ext(configFile), ".")
	v.SetConfigFile(configFile)
	v.SetConfigType(ext)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("v.ReadInConfig: %w", err)
		}
	}

	// Заменяем переменные окружения формата ${VAR:-default} на их значения
	for _, k := range v.AllKeys() {
		value := v.GetString(k)
		if value == "" {
			continue
		}
		// Используем кастомную функцию для поддержки дефолтных значений
		expanded := expandEnvWithDefaults(value)

		// Приведение типов только для заведомо нестроковых ключей:
		// иначе числовое значение строковой переменной (APP_NAME=123)
		// ломало бы Unmarshal
		switch {
		case boolKeys[k]:
			boolValue, _ := strconv.ParseBool(expanded)
			v.Set(k, boolValue)
		case intKeys[k]:
			if intValue, err := strconv.Atoi(expanded); err == nil {
				v.Set(k, intValue)
			} else {
				v.Set(k, expanded)
			}
		default:
			v.Set(k, expanded)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}

	return cfg, nil
}
