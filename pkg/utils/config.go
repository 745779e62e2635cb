package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Email    EmailConfig
	Support  SupportConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// SupportConfig berisi data statis untuk email konfirmasi
type SupportConfig struct {
	ClientURL      string
	Phone          string
	Email          string
	CompanyName    string
	CompanyAddress string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("SUPPORT_PHONE", "011-1234567")
	viper.SetDefault("SUPPORT_EMAIL", "support@sfservice.lk")
	viper.SetDefault("COMPANY_NAME", "Staff Bus Service.lk")
	viper.SetDefault("COMPANY_ADDRESS", "Colombo, Sri Lanka")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		Support: SupportConfig{
			ClientURL:      viper.GetString("CLIENT_URL"),
			Phone:          viper.GetString("SUPPORT_PHONE"),
			Email:          viper.GetString("SUPPORT_EMAIL"),
			CompanyName:    viper.GetString("COMPANY_NAME"),
			CompanyAddress: viper.GetString("COMPANY_ADDRESS"),
		},
	}

	return config, nil
}
