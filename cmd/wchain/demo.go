package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"wsb.com/wchain/internals/ledger"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Queue three transfers, mine twice and print the resulting chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLedger(cfg)
		if err != nil {
			return errors.WithMessage(err, "failed to create ledger")
		}
		out := cmd.OutOrStdout()

		l.CreateTransaction(ledger.NewTransaction("address1", "address2", 100))
		l.CreateTransaction(ledger.NewTransaction("address2", "address1", 100))
		l.CreateTransaction(ledger.NewTransaction("address2", "address3", 100))

		for _, label := range []string{"Starting miner", "Starting miner again"} {
			logrus.WithField("miner", cfg.MinerAddress).Info(label)
			l.MinePendingTransactions(cfg.MinerAddress)
			fmt.Fprintf(out, "Balance of %s is %v\n", cfg.MinerAddress, l.BalanceOf(cfg.MinerAddress))
		}

		if err := printChain(out, l); err != nil {
			return err
		}
		if err := printBalances(out, l); err != nil {
			return err
		}
		fmt.Fprintf(out, "Chain is %s\n", verdict(l))
		return nil
	},
}
