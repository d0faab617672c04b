package config

import (
	"net/http"
	"os"
)

type Config struct {
	AppName string
	AppEnv  string
	AppPort string

	DB     DBConfig
	Redis  RedisConfig
	Cookie CookieConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host          string
	Port          string
	RedisPassword string
	RedisDB       string
}

type CookieConfig struct {
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

func Load() *Config {
	return &Config{
		AppName: os.Getenv("APP_NAME"),
		AppEnv:  os.Getenv("APP_ENV"),
		AppPort: getenv("APP_PORT", "8080"),

		DB: DBConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  os.Getenv("DB_SSLMODE"),
		},

		Redis: RedisConfig{
			Host:          os.Getenv("REDIS_HOST"),
			Port:          os.Getenv("REDIS_PORT"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       getenv("REDIS_DB", "0"),
		},

		Cookie: CookieConfig{
			Path:     getenv("COOKIE_PATH", "/"),
			Domain:   os.Getenv("COOKIE_DOMAIN"),
			Secure:   os.Getenv("COOKIE_SECURE") == "true",
			SameSite: http.SameSiteLaxMode,
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
