package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/sablecraft/studio-admin/internal/auth/token"
)

const EnvProduction = "production"

type Config struct {
	DatabaseURL string

	// JWTSecret has no fallback. The service refuses to start without it.
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	PasswordPepper  string

	HTTPAddress  string
	Environment  string
	CookieDomain string

	AllowedOrigins   []string
	AllowCredentials bool

	// AuthDisabled turns the access gate off. Honored only outside
	// production, see IsGateEnabled.
	AuthDisabled bool

	ProtectedPrefixes []string
	AdminPrefixes     []string

	AdminEmail    string
	AdminPassword string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	for _, key := range []string{
		"DATABASE_URL", "JWT_SECRET", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL",
		"PASSWORD_PEPPER", "HTTP_ADDRESS", "ENVIRONMENT", "COOKIE_DOMAIN",
		"ALLOWED_ORIGINS", "ALLOW_CREDENTIALS", "AUTH_DISABLED",
		"PROTECTED_PREFIXES", "ADMIN_PREFIXES", "ADMIN_EMAIL", "ADMIN_PASSWORD",
	} {
		if err := viper.BindEnv(key); err != nil {
			return nil, err
		}
	}

	viper.SetDefault("HTTP_ADDRESS", ":8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("ALLOW_CREDENTIALS", true)
	viper.SetDefault("PROTECTED_PREFIXES", []string{"/api"})
	viper.SetDefault("ADMIN_PREFIXES", []string{"/api/admin"})

	cfg := &Config{
		DatabaseURL:       viper.GetString("DATABASE_URL"),
		JWTSecret:         viper.GetString("JWT_SECRET"),
		AccessTokenTTL:    token.ParseTTL(viper.GetString("ACCESS_TOKEN_TTL"), token.DefaultAccessTTL),
		RefreshTokenTTL:   token.ParseTTL(viper.GetString("REFRESH_TOKEN_TTL"), token.DefaultRefreshTTL),
		PasswordPepper:    viper.GetString("PASSWORD_PEPPER"),
		HTTPAddress:       viper.GetString("HTTP_ADDRESS"),
		Environment:       viper.GetString("ENVIRONMENT"),
		CookieDomain:      viper.GetString("COOKIE_DOMAIN"),
		AllowedOrigins:    viper.GetStringSlice("ALLOWED_ORIGINS"),
		AllowCredentials:  viper.GetBool("ALLOW_CREDENTIALS"),
		AuthDisabled:      viper.GetBool("AUTH_DISABLED"),
		ProtectedPrefixes: viper.GetStringSlice("PROTECTED_PREFIXES"),
		AdminPrefixes:     viper.GetStringSlice("ADMIN_PREFIXES"),
		AdminEmail:        viper.GetString("ADMIN_EMAIL"),
		AdminPassword:     viper.GetString("ADMIN_PASSWORD"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// IsGateEnabled keeps the development escape hatch impossible to trip in a
// production posture.
func (c *Config) IsGateEnabled() bool {
	if c.IsProduction() {
		return true
	}
	return !c.AuthDisabled
}
