package config

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Keys shared by the config file, environment and command-line flags.
const (
	KeyDifficulty   = "difficulty"
	KeyMiningReward = "mining-reward"
	KeyMinerAddress = "miner-address"
	KeyLogLevel     = "log-level"
	KeyMetricsAddr  = "metrics-addr"
)

type Config struct {
	Difficulty   int     `mapstructure:"difficulty"`
	MiningReward float64 `mapstructure:"mining-reward"`
	MinerAddress string  `mapstructure:"miner-address"`
	LogLevel     string  `mapstructure:"log-level"`
	MetricsAddr  string  `mapstructure:"metrics-addr"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		Difficulty:   2,
		MiningReward: 100,
		MinerAddress: "miner-address",
		LogLevel:     logrus.InfoLevel.String(),
	}
}

// SetDefaults registers the defaults of New on v.
func SetDefaults(v *viper.Viper) {
	def := New()
	v.SetDefault(KeyDifficulty, def.Difficulty)
	v.SetDefault(KeyMiningReward, def.MiningReward)
	v.SetDefault(KeyMinerAddress, def.MinerAddress)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyMetricsAddr, def.MetricsAddr)
}

func (c Config) Validate() error {
	if c.Difficulty < 0 {
		return errors.Errorf("difficulty must not be negative, got %d", c.Difficulty)
	}
	if c.MiningReward < 0 {
		return errors.Errorf("mining reward must not be negative, got %v", c.MiningReward)
	}
	if c.MinerAddress == "" {
		return errors.New("miner address must not be empty")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.WithMessage(err, "invalid log level")
	}
	return nil
}

// Level is the parsed LogLevel; call Validate first.
func (c Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return config, errors.Wrap(err, "failed to decode configuration")
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// LoadConfiguration reads file on top of the defaults. The format follows the
// file extension (json, yaml, toml, ...).
func LoadConfiguration(file string) (Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		logrus.WithError(err).WithField("file", file).Error("Error parsing configfile")
		return *New(), errors.Wrapf(err, "failed to read %s", file)
	}
	return Load(v)
}
