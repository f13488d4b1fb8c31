package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the engine process
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Lottery  LotteryConfig
	Engine   EngineConfig
	Jackpot  JackpotConfig
	LogLevel string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds operator-token configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// LotteryConfig holds the issue cadence settings
type LotteryConfig struct {
	Types           []string // one scheduler actor per type
	IntervalSeconds int      // start to draw
	BettingSeconds  int      // start to betting lock
}

// EngineConfig holds the engine defaults used until the operator saves
// an avoid-win config row
type EngineConfig struct {
	Enabled                 bool
	AllowedWinProbability   float64
	MinBetAmount            float64
	MaxAnalysisCombinations int
	AnalysisTimeoutSeconds  int
	Workers                 int
}

// JackpotConfig holds the super-jackpot tunables
type JackpotConfig struct {
	Enabled           bool
	TargetProbability float64
	ContributionRate  float64
	BaseFloor         float64
}

// Load loads configuration from config files and environment variables
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Unmarshal configuration
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// PaaS-style overrides win over the file
	config.Server.Port = GetEnv("PORT", config.Server.Port)
	config.MongoDB.URI = GetEnv("MONGODB_URI", config.MongoDB.URI)

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "lucky5")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("LogLevel", "info")

	viper.SetDefault("Lottery.Types", []string{"LUCKY5"})
	viper.SetDefault("Lottery.IntervalSeconds", 60)
	viper.SetDefault("Lottery.BettingSeconds", 50)

	viper.SetDefault("Engine.Enabled", true)
	viper.SetDefault("Engine.AllowedWinProbability", 0.0000000168)
	viper.SetDefault("Engine.MinBetAmount", 1.0)
	viper.SetDefault("Engine.MaxAnalysisCombinations", 100000)
	viper.SetDefault("Engine.AnalysisTimeoutSeconds", 5)
	viper.SetDefault("Engine.Workers", 0) // 0 means GOMAXPROCS

	viper.SetDefault("Jackpot.Enabled", true)
	viper.SetDefault("Jackpot.TargetProbability", 1.0/59600000)
	viper.SetDefault("Jackpot.ContributionRate", 0.001)
	viper.SetDefault("Jackpot.BaseFloor", 100000.0)
}
