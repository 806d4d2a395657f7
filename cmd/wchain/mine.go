package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"wsb.com/wchain/internals/ledger"
	"wsb.com/wchain/internals/metrics"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine reward blocks for the configured miner address",
	Long: `Mine --rounds blocks, each holding the previous round's reward. With
--metrics-addr set, metrics stay available until SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rounds := viper.GetInt("rounds")
		if rounds < 1 {
			return errors.Errorf("rounds must be positive, got %d", rounds)
		}

		l, err := newLedger(cfg)
		if err != nil {
			return errors.WithMessage(err, "failed to create ledger")
		}
		out := cmd.OutOrStdout()
		showBanner(out, cfg.MinerAddress)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		g, ctx := errgroup.WithContext(ctx)

		if cfg.MetricsAddr != "" {
			server, err := metrics.CreateMetricsServer(l, cfg.MetricsAddr)
			if err != nil {
				return errors.WithMessage(err, "failed to start metrics server")
			}
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			})
		}

		g.Go(func() error {
			if err := mineRounds(ctx, l, cfg.MinerAddress, rounds, cmd.ErrOrStderr()); err != nil {
				return err
			}
			if err := printChain(out, l); err != nil {
				return err
			}
			fmt.Fprintf(out, "Balance of %s is %v\n", cfg.MinerAddress, l.BalanceOf(cfg.MinerAddress))
			fmt.Fprintf(out, "Chain is %s\n", verdict(l))
			if cfg.MetricsAddr != "" {
				logrus.Info("Mining finished, serving metrics until interrupted")
			}
			return nil
		})

		return g.Wait()
	},
}

// mineRounds mines one block per round. A block in progress is always
// finished; cancellation is only observed between rounds.
func mineRounds(ctx context.Context, l *ledger.Ledger, address string, rounds int, progress io.Writer) error {
	bar := progressbar.NewOptions(rounds,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetDescription("Mining blocks..."),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	for i := 0; i < rounds; i++ {
		select {
		case <-ctx.Done():
			logrus.WithField("mined", i).Warn("Mining interrupted")
			return nil
		default:
		}

		block := l.MinePendingTransactions(address)
		logrus.WithFields(logrus.Fields{
			"round": i + 1,
			"hash":  block.Hash(),
		}).Debug("Round completed")
		if err := bar.Add(1); err != nil {
			return errors.Wrap(err, "failed to update progress bar")
		}
	}

	if err := bar.Finish(); err != nil {
		return errors.Wrap(err, "failed to finish progress bar")
	}
	return nil
}

func showBanner(w io.Writer, address string) {
	fmt.Fprintln(w, "@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@")
	fmt.Fprintf(w, "@ ===                  wchain %-8s                 === @\n", Version)
	fmt.Fprintf(w, "@ === MINER ADDRESS: %-35s === @\n", address)
	fmt.Fprintln(w, "@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@@")
}
