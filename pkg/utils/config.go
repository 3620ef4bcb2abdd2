package utils

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Payment PaymentConfig
}

type AppConfig struct {
	Name    string
	Debug   bool
	LogPath string
	DataDir string
}

type APIConfig struct {
	BaseURL           string
	TimeoutSeconds    int
	FilmPageSize      int
	SessionPageSize   int
	ReviewPageSize    int
	CategoryPageSize  int
	AuthWaitSeconds   int
	BootstrapDelaySec int
}

type PaymentConfig struct {
	SeatPriceCents int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "cinema-client")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DATA_DIR", "")
	viper.SetDefault("API_BASE_URL", "http://localhost:5148")
	viper.SetDefault("HTTP_TIMEOUT_SECONDS", 12)
	viper.SetDefault("FILM_PAGE_SIZE", 50)
	viper.SetDefault("SESSION_PAGE_SIZE", 120)
	viper.SetDefault("REVIEW_PAGE_SIZE", 100)
	viper.SetDefault("CATEGORY_PAGE_SIZE", 50)
	viper.SetDefault("AUTH_WAIT_SECONDS", 5)
	viper.SetDefault("BOOTSTRAP_DELAY_SECONDS", 0)
	viper.SetDefault("SEAT_PRICE_CENTS", 1000)

	// A missing .env is fine for a client; env vars and defaults still apply.
	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
			DataDir: viper.GetString("DATA_DIR"),
		},
		API: APIConfig{
			BaseURL:           viper.GetString("API_BASE_URL"),
			TimeoutSeconds:    viper.GetInt("HTTP_TIMEOUT_SECONDS"),
			FilmPageSize:      viper.GetInt("FILM_PAGE_SIZE"),
			SessionPageSize:   viper.GetInt("SESSION_PAGE_SIZE"),
			ReviewPageSize:    viper.GetInt("REVIEW_PAGE_SIZE"),
			CategoryPageSize:  viper.GetInt("CATEGORY_PAGE_SIZE"),
			AuthWaitSeconds:   viper.GetInt("AUTH_WAIT_SECONDS"),
			BootstrapDelaySec: viper.GetInt("BOOTSTRAP_DELAY_SECONDS"),
		},
		Payment: PaymentConfig{
			SeatPriceCents: viper.GetInt("SEAT_PRICE_CENTS"),
		},
	}

	return config, nil
}
