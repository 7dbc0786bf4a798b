package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port               string   `mapstructure:"PORT"`
	DatabaseDriver     string   `mapstructure:"DATABASE_DRIVER"`
	DatabasePath       string   `mapstructure:"DATABASE_PATH"`
	DatabaseURL        string   `mapstructure:"DATABASE_URL"`
	JWTSecret          string   `mapstructure:"JWT_SECRET"`
	TicketSecret       string   `mapstructure:"TICKET_SECRET"`
	SecureCookies      bool     `mapstructure:"SECURE_COOKIES"`
	AdminUsername      string   `mapstructure:"ADMIN_USERNAME"`
	AdminEmail         string   `mapstructure:"ADMIN_EMAIL"`
	AdminPassword      string   `mapstructure:"ADMIN_PASSWORD"`
	EnableCORS         bool     `mapstructure:"ENABLE_CORS"`
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	LoginRatePerMinute int      `mapstructure:"LOGIN_RATE_PER_MINUTE"`
	LoginRateBurst     int      `mapstructure:"LOGIN_RATE_BURST"`

	DiscordBotToken               string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
}

func LoadConfig() *Config {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_PATH", "cruise.db")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_EMAIL", "admin@cruise.com")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})
	viper.SetDefault("LOGIN_RATE_PER_MINUTE", 10)
	viper.SetDefault("LOGIN_RATE_BURST", 5)

	viper.BindEnv("DATABASE_URL")
	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("TICKET_SECRET")
	viper.BindEnv("SECURE_COOKIES")
	viper.BindEnv("ADMIN_PASSWORD")
	viper.BindEnv("ENABLE_CORS")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	if config.TicketSecret == "" {
		config.TicketSecret = config.JWTSecret
	}

	return &config
}
