package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"wsb.com/wchain/internals/config"
	"wsb.com/wchain/internals/ledger"
)

var cfg config.Config

var RootCmd = &cobra.Command{
	Use:   "wchain",
	Short: "Proof-of-work ledger",
	Long:  `wchain keeps an in-memory chain of proof-of-work blocks and mines pending transfers into it.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if file := viper.GetString("config"); file != "" {
			viper.SetConfigFile(file)
			if err := viper.ReadInConfig(); err != nil {
				return errors.Wrapf(err, "failed to read config file %s", file)
			}
		}

		var err error
		cfg, err = config.Load(viper.GetViper())
		if err != nil {
			return errors.WithMessage(err, "invalid configuration")
		}

		logrus.SetOutput(cmd.ErrOrStderr())
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logrus.SetLevel(cfg.Level())
		logrus.WithField("config", viper.ConfigFileUsed()).Debug("Application started")
		return nil
	},
}

func init() {
	def := config.New()
	flags := RootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (json, yaml or toml)")
	flags.StringP(config.KeyLogLevel, "l", def.LogLevel, "log level (trace|debug|info|warn|error)")
	flags.IntP(config.KeyDifficulty, "d", def.Difficulty, "leading zero hex digits required in a block hash")
	flags.Float64P(config.KeyMiningReward, "r", def.MiningReward, "amount paid to the miner per block")
	flags.StringP(config.KeyMinerAddress, "m", def.MinerAddress, "address credited with mining rewards")
	flags.String(config.KeyMetricsAddr, def.MetricsAddr, "serve Prometheus metrics on this address")
	mineCmd.Flags().IntP("rounds", "n", 1, "number of blocks to mine")

	RootCmd.SilenceUsage = true
	RootCmd.SilenceErrors = true

	RootCmd.AddCommand(demoCmd)
	RootCmd.AddCommand(mineCmd)
	RootCmd.AddCommand(versionCmd)

	bindConfig()
}

// bindConfig wires the command flags and WCHAIN_* environment variables
// into the global viper instance.
func bindConfig() {
	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		logrus.WithError(err).Error("Failed to bind root flags")
	}
	if err := viper.BindPFlags(mineCmd.Flags()); err != nil {
		logrus.WithError(err).Error("Failed to bind mineCmd flags")
	}

	viper.SetEnvPrefix("wchain")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func newLedger(c config.Config) (*ledger.Ledger, error) {
	return ledger.New(
		ledger.WithDifficulty(c.Difficulty),
		ledger.WithMiningReward(c.MiningReward),
		ledger.WithLogger(logrus.StandardLogger()),
	)
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("An error occurred")
		os.Exit(1)
	}
}
