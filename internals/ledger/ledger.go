package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultDifficulty   = 2
	DefaultMiningReward = 100.0

	// GenesisPreviousHash is the sentinel predecessor of the genesis block.
	GenesisPreviousHash = "0"
)

// genesisTimestamp is 2020-01-01T00:00:00Z in Unix milliseconds.
const genesisTimestamp int64 = 1577836800000

var ErrNegativeDifficulty = errors.New("difficulty must not be negative")

// ChainError describes the first integrity violation found by VerifyChain.
type ChainError struct {
	Index  int
	Reason string
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("block %d: %s", e.Index, e.Reason)
}

const (
	ReasonHashMismatch         = "stored hash does not match block contents"
	ReasonPreviousHashMismatch = "previous hash does not match preceding block"
)

// Ledger owns the chain of blocks and the pool of transactions waiting to be
// mined. All methods are safe for concurrent use.
type Ledger struct {
	mu           sync.RWMutex
	chain        []*Block
	pending      []Transaction
	difficulty   int
	miningReward float64

	logger logrus.FieldLogger
	now    func() time.Time
}

type Option func(*Ledger)

// WithDifficulty sets the number of leading zero hex digits a mined hash needs.
func WithDifficulty(difficulty int) Option {
	return func(l *Ledger) {
		l.difficulty = difficulty
	}
}

// WithMiningReward sets the amount credited to the miner after each round.
func WithMiningReward(reward float64) Option {
	return func(l *Ledger) {
		l.miningReward = reward
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// WithClock replaces time.Now as the source of block timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// New creates a ledger seeded with the genesis block.
func New(opts ...Option) (*Ledger, error) {
	l := &Ledger{
		difficulty:   DefaultDifficulty,
		miningReward: DefaultMiningReward,
		logger:       logrus.StandardLogger(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.difficulty < 0 {
		return nil, errors.Wrapf(ErrNegativeDifficulty, "got %d", l.difficulty)
	}

	l.chain = []*Block{createGenesisBlock()}
	return l, nil
}

func createGenesisBlock() *Block {
	return NewBlock(genesisTimestamp, nil, GenesisPreviousHash)
}

// LatestBlock returns the tip of the chain. The chain always holds at least
// the genesis block.
func (l *Ledger) LatestBlock() *Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.latestBlock()
}

func (l *Ledger) latestBlock() *Block {
	return l.chain[len(l.chain)-1]
}

// CreateTransaction queues tx for the next mined block.
func (l *Ledger) CreateTransaction(tx Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending = append(l.pending, tx)

	from, _ := tx.From()
	l.logger.WithFields(logrus.Fields{
		"from":    from,
		"to":      tx.To(),
		"amount":  tx.Amount(),
		"pending": len(l.pending),
	}).Debug("Transaction queued")
}

// MinePendingTransactions packs every pending transaction into a new block,
// mines it, appends it and reseeds the pool with a single reward for
// rewardAddress. It blocks until proof-of-work succeeds.
func (l *Ledger) MinePendingTransactions(rewardAddress string) *Block {
	l.mu.Lock()
	defer l.mu.Unlock()

	block := NewBlock(l.now().UnixMilli(), l.pending, l.latestBlock().Hash())
	block.mine(l.difficulty, l.logger)
	l.chain = append(l.chain, block)

	l.logger.WithFields(logrus.Fields{
		"height":       len(l.chain) - 1,
		"transactions": len(block.transactions),
	}).Info("Block successfully mined!")

	l.pending = []Transaction{NewRewardTransaction(rewardAddress, l.miningReward)}
	return block
}

// BalanceOf replays every transaction on the chain for address. A
// transaction sent from address is only ever counted as outgoing, so a
// self-transfer decreases the balance.
func (l *Ledger) BalanceOf(address string) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	balance := 0.0
	for _, block := range l.chain {
		for _, tx := range block.transactions {
			if from, ok := tx.From(); ok && from == address {
				balance -= tx.amount
			} else if tx.to == address {
				balance += tx.amount
			}
		}
	}
	return balance
}

// VerifyChain checks every non-genesis block for a stale hash and a broken
// link to its predecessor and reports the first violation.
func (l *Ledger) VerifyChain() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.verifyChain()
}

func (l *Ledger) verifyChain() error {
	for i := 1; i < len(l.chain); i++ {
		current := l.chain[i]
		previous := l.chain[i-1]

		if current.hash != current.ComputeHash() {
			return &ChainError{Index: i, Reason: ReasonHashMismatch}
		}
		if current.previousHash != previous.hash {
			return &ChainError{Index: i, Reason: ReasonPreviousHashMismatch}
		}
	}
	return nil
}

func (l *Ledger) IsChainValid() bool {
	return l.VerifyChain() == nil
}

// Chain returns the blocks from genesis to tip.
func (l *Ledger) Chain() []*Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Block, len(l.chain))
	copy(out, l.chain)
	return out
}

// PendingTransactions returns a copy of the pool in submission order.
func (l *Ledger) PendingTransactions() []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Transaction, len(l.pending))
	copy(out, l.pending)
	return out
}

// Height is the index of the tip; zero when only genesis exists.
func (l *Ledger) Height() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.chain) - 1
}

func (l *Ledger) Difficulty() int {
	return l.difficulty
}

func (l *Ledger) MiningReward() float64 {
	return l.miningReward
}

// Stats is a point-in-time summary of a ledger.
type Stats struct {
	Height     int
	Pending    int
	Valid      bool
	NonceTotal uint64
}

// Stats reads every field under a single lock so the values agree with
// each other even while another goroutine is mining.
func (l *Ledger) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var nonces uint64
	for _, block := range l.chain {
		nonces += block.nonce
	}
	return Stats{
		Height:     len(l.chain) - 1,
		Pending:    len(l.pending),
		Valid:      l.verifyChain() == nil,
		NonceTotal: nonces,
	}
}
