package config

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	JWT   JWTConfig
	Plan  PlanConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// PlanConfig carries subscription pricing and the expiry sweep cadence.
// Base prices default to the standard plan table (titular 600.00,
// dependente 150.00) and can be overridden per deployment.
type PlanConfig struct {
	BasePriceTitular    decimal.Decimal
	BasePriceDependente decimal.Decimal
	SweepInterval       time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	sweepInterval, err := time.ParseDuration(viper.GetString("SUBSCRIPTION_SWEEP_INTERVAL"))
	if err != nil {
		sweepInterval = time.Hour
	}

	basePriceTitular, err := decimal.NewFromString(viper.GetString("PLAN_PRICE_TITULAR"))
	if err != nil {
		basePriceTitular = decimal.NewFromInt(600)
	}

	basePriceDependente, err := decimal.NewFromString(viper.GetString("PLAN_PRICE_DEPENDENTE"))
	if err != nil {
		basePriceDependente = decimal.NewFromInt(150)
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Plan: PlanConfig{
			BasePriceTitular:    basePriceTitular,
			BasePriceDependente: basePriceDependente,
			SweepInterval:       sweepInterval,
		},
	}

	return config, nil
}

// BasePriceFor returns the base subscription price for a plan target
// ("titular" or "dependente").
func (c PlanConfig) BasePriceFor(target string) (decimal.Decimal, bool) {
	switch target {
	case "titular":
		return c.BasePriceTitular, true
	case "dependente":
		return c.BasePriceDependente, true
	}
	return decimal.Decimal{}, false
}
