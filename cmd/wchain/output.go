package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/pterm/pterm"

	"wsb.com/wchain/internals/ledger"
)

func short(hash string) string {
	if len(hash) > 16 {
		return hash[:16]
	}
	return hash
}

func printChain(w io.Writer, l *ledger.Ledger) error {
	data := pterm.TableData{{"Height", "Time", "Txs", "Nonce", "Previous hash", "Hash", "Merkle root"}}
	for i, block := range l.Chain() {
		data = append(data, []string{
			strconv.Itoa(i),
			block.Time().UTC().Format("2006-01-02 15:04:05.000"),
			strconv.Itoa(len(block.Transactions())),
			strconv.FormatUint(block.Nonce(), 10),
			short(block.PreviousHash()),
			short(block.Hash()),
			short(block.MerkleRoot()),
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, table)
	return err
}

// printBalances lists every address that appears on the chain.
func printBalances(w io.Writer, l *ledger.Ledger) error {
	seen := make(map[string]struct{})
	for _, block := range l.Chain() {
		for _, tx := range block.Transactions() {
			if from, ok := tx.From(); ok {
				seen[from] = struct{}{}
			}
			seen[tx.To()] = struct{}{}
		}
	}
	addresses := make([]string, 0, len(seen))
	for address := range seen {
		addresses = append(addresses, address)
	}
	slices.Sort(addresses)

	data := pterm.TableData{{"Address", "Balance"}}
	for _, address := range addresses {
		data = append(data, []string{address, strconv.FormatFloat(l.BalanceOf(address), 'f', -1, 64)})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, table)
	return err
}

func verdict(l *ledger.Ledger) string {
	if err := l.VerifyChain(); err != nil {
		return "invalid (" + err.Error() + ")"
	}
	return "valid"
}
