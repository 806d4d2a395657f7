package ledger

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"wsb.com/wchain/internals/helpers"
)

// Block batches transactions and links to its predecessor through
// PreviousHash. Hash is always the content hash of the other fields as of
// the last recomputation.
type Block struct {
	timestamp    int64
	transactions []Transaction
	previousHash string
	hash         string
	nonce        uint64
}

// NewBlock builds an unmined block with nonce 0. Timestamps are Unix
// milliseconds. The transaction slice is copied.
func NewBlock(timestamp int64, transactions []Transaction, previousHash string) *Block {
	txs := make([]Transaction, len(transactions))
	copy(txs, transactions)

	b := &Block{
		timestamp:    timestamp,
		transactions: txs,
		previousHash: previousHash,
	}
	b.hash = b.ComputeHash()
	return b
}

// ComputeHash hashes previousHash, timestamp, the transactions as JSON and
// the nonce, concatenated in that order.
func (b *Block) ComputeHash() string {
	payload, err := json.Marshal(b.transactions)
	if err != nil {
		// Transaction.MarshalJSON never fails.
		panic(err)
	}
	return helpers.SerializeSHA256(
		b.previousHash +
			strconv.FormatInt(b.timestamp, 10) +
			string(payload) +
			strconv.FormatUint(b.nonce, 10))
}

// mine increments the nonce until the hash carries difficulty leading zero
// hex digits and returns the number of hashes computed. There is no upper
// bound on the search.
func (b *Block) mine(difficulty int, logger logrus.FieldLogger) uint64 {
	start := time.Now()
	attempts := uint64(0)
	for !helpers.HasLeadingZeros(b.hash, difficulty) {
		b.nonce++
		b.hash = b.ComputeHash()
		attempts++
	}

	logger.WithFields(logrus.Fields{
		"hash":     b.hash,
		"nonce":    b.nonce,
		"attempts": attempts,
		"hashrate": helpers.FormatHashrate(attempts, time.Since(start).Seconds()),
	}).Info("Block mined")
	return attempts
}

func (b *Block) Timestamp() int64 {
	return b.timestamp
}

// Time returns the block timestamp as a time.Time.
func (b *Block) Time() time.Time {
	return time.UnixMilli(b.timestamp)
}

// Transactions returns a copy of the block's transactions.
func (b *Block) Transactions() []Transaction {
	txs := make([]Transaction, len(b.transactions))
	copy(txs, b.transactions)
	return txs
}

func (b *Block) PreviousHash() string {
	return b.previousHash
}

func (b *Block) Hash() string {
	return b.hash
}

func (b *Block) Nonce() uint64 {
	return b.nonce
}

// MerkleRoot summarizes the block's transactions; empty for no transactions.
func (b *Block) MerkleRoot() string {
	leaves := make([]string, 0, len(b.transactions))
	for _, tx := range b.transactions {
		raw, err := json.Marshal(tx)
		if err != nil {
			panic(err)
		}
		leaves = append(leaves, string(raw))
	}
	return helpers.GenerateMerkleRoot(leaves)
}
