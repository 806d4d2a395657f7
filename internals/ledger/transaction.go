package ledger

import (
	"encoding/json"
	"math"
)

// Transaction moves Amount from one address to another. A transaction
// without a sender is a mining reward issued by the ledger itself.
// Values are immutable once built; nothing is validated.
type Transaction struct {
	from   *string
	to     string
	amount float64
}

type transactionJSON struct {
	FromAddress *string  `json:"fromAddress"`
	ToAddress   string   `json:"toAddress"`
	Amount      *float64 `json:"amount"`
}

// NewTransaction creates a transfer of amount from one address to another.
func NewTransaction(from, to string, amount float64) Transaction {
	return Transaction{from: &from, to: to, amount: amount}
}

// NewRewardTransaction creates a sender-less transaction crediting to.
func NewRewardTransaction(to string, amount float64) Transaction {
	return Transaction{to: to, amount: amount}
}

// From returns the sending address; ok is false for reward transactions.
func (t Transaction) From() (address string, ok bool) {
	if t.from == nil {
		return "", false
	}
	return *t.from, true
}

func (t Transaction) To() string {
	return t.to
}

func (t Transaction) Amount() float64 {
	return t.amount
}

func (t Transaction) IsReward() bool {
	return t.from == nil
}

// MarshalJSON is the canonical serialization hashed into blocks. Amounts
// that are NaN or infinite encode as null.
func (t Transaction) MarshalJSON() ([]byte, error) {
	raw := transactionJSON{
		FromAddress: t.from,
		ToAddress:   t.to,
	}
	if !math.IsNaN(t.amount) && !math.IsInf(t.amount, 0) {
		amount := t.amount
		raw.Amount = &amount
	}
	return json.Marshal(raw)
}
