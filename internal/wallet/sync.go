package wallet

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/teerhub/teer-core/internal/api/dto"
)

// Backend is the API-client slice the synchronizer depends on.
type Backend interface {
	Authenticated() bool
	WalletInfo(ctx context.Context) (*dto.WalletInfo, error)
	WalletBalance(ctx context.Context) (float64, error)
	Transactions(ctx context.Context, txType string, limit int) ([]dto.Transaction, error)
	RequestDeposit(ctx context.Context, req dto.DepositRequest) (*dto.Transaction, error)
	RequestWithdrawal(ctx context.Context, req dto.WithdrawalRequest) (*dto.Transaction, error)
}

// Transaction is a cached transaction. Pending marks a local echo of a just
// submitted deposit/withdrawal request; echoes are replaced wholesale by the
// next successful full refresh.
type Transaction struct {
	dto.Transaction
	Pending bool
}

// State is a point-in-time snapshot of the wallet cache.
type State struct {
	Balance      float64
	Transactions []Transaction
	IsLoading    bool
	Err          error
}

// Synchronizer is the process-wide wallet cache: one instance per
// authenticated session, shared by every consumer. It guarantees at most one
// in-flight full refresh and at most one refresh attempt per debounce window,
// no matter how many views ask concurrently, and it never lets a slow stale
// response overwrite state written by a newer request.
type Synchronizer struct {
	log      *zap.Logger
	backend  Backend
	debounce time.Duration
	now      func() time.Time

	mu           sync.Mutex
	balance      float64
	transactions []Transaction
	loading      bool
	lastErr      error
	lastFetchAt  time.Time
	inFlight     bool
	seq          uint64 // last started state-writing request; last request wins
}

func NewSynchronizer(backend Backend, debounce time.Duration, log *zap.Logger) *Synchronizer {
	if log == nil {
		log = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = 3 * time.Second
	}
	return &Synchronizer{
		log:      log,
		backend:  backend,
		debounce: debounce,
		now:      time.Now,
	}
}

// FetchWalletInfo refreshes balance and transactions. Unauthenticated calls
// and calls suppressed by the debounce window or an in-flight fetch return
// nil: a swallowed duplicate is not a failure. On error the previous state
// stays visible (stale-but-available) with Err set.
func (s *Synchronizer) FetchWalletInfo(ctx context.Context) error {
	if !s.backend.Authenticated() {
		return nil
	}

	s.mu.Lock()
	now := s.now()
	if s.inFlight || now.Sub(s.lastFetchAt) < s.debounce {
		s.mu.Unlock()
		fetchesSuppressed.Inc()
		return nil
	}
	s.inFlight = true
	s.lastFetchAt = now
	s.loading = true
	s.lastErr = nil
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	info, err := s.backend.WalletInfo(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	s.loading = false

	if err != nil {
		fetchErrors.Inc()
		if seq == s.seq {
			s.lastErr = err
		}
		s.log.Warn("wallet refresh failed", zap.Error(err))
		return err
	}
	if seq != s.seq {
		// a newer request wrote (or will write) fresher state
		return nil
	}

	fetchesTotal.Inc()
	s.balance = info.Balance
	s.transactions = fromDTO(info.RecentTransactions)
	s.lastErr = nil
	return nil
}

// GetBalance updates the balance only. It bypasses the debounce guarding full
// refreshes, so it takes a sequence slot to keep slow full fetches from
// clobbering its result. On error the cached balance is returned unchanged.
func (s *Synchronizer) GetBalance(ctx context.Context) (float64, error) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	bal, err := s.backend.WalletBalance(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		return s.balance, err
	}
	if seq == s.seq {
		s.balance = bal
	}
	return bal, nil
}

// RequestDeposit submits a deposit request and, on success, prepends the
// returned transaction as a pending echo. The balance is deliberately not
// refetched: deposits await admin approval and do not move the balance yet.
func (s *Synchronizer) RequestDeposit(ctx context.Context, req dto.DepositRequest) (*dto.Transaction, error) {
	return s.submitRequest(ctx, "deposit", func() (*dto.Transaction, error) {
		return s.backend.RequestDeposit(ctx, req)
	})
}

// RequestWithdrawal submits a withdrawal request; same echo semantics as
// RequestDeposit.
func (s *Synchronizer) RequestWithdrawal(ctx context.Context, req dto.WithdrawalRequest) (*dto.Transaction, error) {
	return s.submitRequest(ctx, "withdrawal", func() (*dto.Transaction, error) {
		return s.backend.RequestWithdrawal(ctx, req)
	})
}

func (s *Synchronizer) submitRequest(ctx context.Context, kind string, call func() (*dto.Transaction, error)) (*dto.Transaction, error) {
	s.mu.Lock()
	s.loading = true
	s.lastErr = nil
	s.mu.Unlock()

	tx, err := call()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		s.log.Warn("wallet request failed", zap.String("kind", kind), zap.Error(err))
		return nil, err
	}
	s.transactions = append([]Transaction{{Transaction: *tx, Pending: true}}, s.transactions...)
	return tx, nil
}

// FetchTransactions replaces the transaction list, optionally filtered by
// type. Pending echoes are dropped: the server list is authoritative.
func (s *Synchronizer) FetchTransactions(ctx context.Context, txType string, limit int) error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = nil
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	txs, err := s.backend.Transactions(ctx, txType, limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		return err
	}
	if seq == s.seq {
		s.transactions = fromDTO(txs)
	}
	return nil
}

// Snapshot returns a copy of the current state.
func (s *Synchronizer) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	txs := make([]Transaction, len(s.transactions))
	copy(txs, s.transactions)
	return State{
		Balance:      s.balance,
		Transactions: txs,
		IsLoading:    s.loading,
		Err:          s.lastErr,
	}
}

// Balance returns the cached balance.
func (s *Synchronizer) Balance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

// Refresh satisfies the bet-slip engine's wallet dependency.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	return s.FetchWalletInfo(ctx)
}

// ClearError drops the surfaced error without touching cached data.
func (s *Synchronizer) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}

// Reset restores the zero state. Called on logout; the next authenticated
// fetch repopulates the cache.
func (s *Synchronizer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balance = 0
	s.transactions = nil
	s.loading = false
	s.lastErr = nil
	s.lastFetchAt = time.Time{}
	s.inFlight = false
	s.seq++
}

func fromDTO(txs []dto.Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	for i, tx := range txs {
		out[i] = Transaction{Transaction: tx}
	}
	return out
}
