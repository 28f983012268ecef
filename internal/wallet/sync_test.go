package wallet

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/teerhub/teer-core/internal/api/dto"
)

type fakeBackend struct {
	mu           sync.Mutex
	authed       bool
	infoCalls    int
	balanceCalls int

	info    *dto.WalletInfo
	infoErr error
	balance float64

	started chan struct{} // signaled when WalletInfo is entered, if set
	release chan struct{} // WalletInfo blocks until closed, if set
}

func (f *fakeBackend) Authenticated() bool { return f.authed }

func (f *fakeBackend) WalletInfo(ctx context.Context) (*dto.WalletInfo, error) {
	f.mu.Lock()
	f.infoCalls++
	info, err := f.info, f.infoErr
	started, release := f.started, f.release
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (f *fakeBackend) WalletBalance(ctx context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balanceCalls++
	return f.balance, nil
}

func (f *fakeBackend) Transactions(ctx context.Context, txType string, limit int) ([]dto.Transaction, error) {
	return f.info.RecentTransactions, nil
}

func (f *fakeBackend) RequestDeposit(ctx context.Context, req dto.DepositRequest) (*dto.Transaction, error) {
	return &dto.Transaction{ID: 99, TransactionType: "deposit", Amount: req.Amount, Status: "pending"}, nil
}

func (f *fakeBackend) RequestWithdrawal(ctx context.Context, req dto.WithdrawalRequest) (*dto.Transaction, error) {
	return &dto.Transaction{ID: 100, TransactionType: "withdrawal", Amount: req.Amount, Status: "pending"}, nil
}

func (f *fakeBackend) calls() (info, balance int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.infoCalls, f.balanceCalls
}

func newTestSync(b *fakeBackend) (*Synchronizer, *time.Time) {
	s := NewSynchronizer(b, 3*time.Second, nil)
	cur := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time { return cur }
	return s, &cur
}

func walletInfo(balance float64, txs ...dto.Transaction) *dto.WalletInfo {
	return &dto.WalletInfo{UserID: 1, Balance: balance, RecentTransactions: txs}
}

func TestFetchSuppressedWithinDebounceWindow(t *testing.T) {
	b := &fakeBackend{authed: true, info: walletInfo(100)}
	s, _ := newTestSync(b)

	require.NoError(t, s.FetchWalletInfo(context.Background()))
	require.NoError(t, s.FetchWalletInfo(context.Background()))

	info, _ := b.calls()
	require.Equal(t, 1, info, "second call inside the window must not hit the network")
	require.Equal(t, 100.0, s.Snapshot().Balance)
}

func TestFetchAllowedAfterDebounceWindow(t *testing.T) {
	b := &fakeBackend{authed: true, info: walletInfo(100)}
	s, cur := newTestSync(b)

	require.NoError(t, s.FetchWalletInfo(context.Background()))
	*cur = cur.Add(3100 * time.Millisecond)
	require.NoError(t, s.FetchWalletInfo(context.Background()))

	info, _ := b.calls()
	require.Equal(t, 2, info)
}

func TestFetchMutualExclusionWhileInFlight(t *testing.T) {
	b := &fakeBackend{
		authed:  true,
		info:    walletInfo(100),
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	s, cur := newTestSync(b)

	done := make(chan error, 1)
	go func() { done <- s.FetchWalletInfo(context.Background()) }()
	<-b.started

	// well past the debounce window, but the first fetch is still in flight
	*cur = cur.Add(10 * time.Second)
	require.NoError(t, s.FetchWalletInfo(context.Background()))

	close(b.release)
	require.NoError(t, <-done)

	info, _ := b.calls()
	require.Equal(t, 1, info)
}

func TestFetchErrorKeepsStaleState(t *testing.T) {
	b := &fakeBackend{authed: true, info: walletInfo(100, dto.Transaction{ID: 1, Amount: 40})}
	s, cur := newTestSync(b)

	require.NoError(t, s.FetchWalletInfo(context.Background()))

	b.mu.Lock()
	b.infoErr = errors.New("network failure")
	b.mu.Unlock()
	*cur = cur.Add(5 * time.Second)

	require.Error(t, s.FetchWalletInfo(context.Background()))

	st := s.Snapshot()
	require.Equal(t, 100.0, st.Balance, "stale balance stays visible")
	require.Len(t, st.Transactions, 1)
	require.Error(t, st.Err)
}

func TestDepositEchoIsPendingUntilNextRefresh(t *testing.T) {
	b := &fakeBackend{authed: true, info: walletInfo(100)}
	s, cur := newTestSync(b)
	require.NoError(t, s.FetchWalletInfo(context.Background()))

	tx, err := s.RequestDeposit(context.Background(), dto.DepositRequest{Amount: 500})
	require.NoError(t, err)
	require.Equal(t, 500.0, tx.Amount)

	st := s.Snapshot()
	require.Len(t, st.Transactions, 1)
	require.True(t, st.Transactions[0].Pending)
	// balance untouched: deposits wait for admin approval
	require.Equal(t, 100.0, st.Balance)

	// the next full refresh replaces echoes with the server's list
	b.mu.Lock()
	b.info = walletInfo(100, dto.Transaction{ID: 7, TransactionType: "deposit", Amount: 500, Status: "pending"})
	b.mu.Unlock()
	*cur = cur.Add(5 * time.Second)
	require.NoError(t, s.FetchWalletInfo(context.Background()))

	st = s.Snapshot()
	require.Len(t, st.Transactions, 1)
	require.False(t, st.Transactions[0].Pending)
	require.Equal(t, 7, st.Transactions[0].ID)
}

func TestGetBalanceBypassesDebounce(t *testing.T) {
	b := &fakeBackend{authed: true, info: walletInfo(100), balance: 250}
	s, _ := newTestSync(b)

	require.NoError(t, s.FetchWalletInfo(context.Background()))

	// immediately after a full fetch, still allowed
	bal, err := s.GetBalance(context.Background())
	require.NoError(t, err)
	require.Equal(t, 250.0, bal)
	require.Equal(t, 250.0, s.Snapshot().Balance)

	_, balance := b.calls()
	require.Equal(t, 1, balance)
}

func TestSlowFullFetchLosesToNewerBalance(t *testing.T) {
	b := &fakeBackend{
		authed:  true,
		info:    walletInfo(40),
		balance: 50,
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	s, _ := newTestSync(b)

	done := make(chan error, 1)
	go func() { done <- s.FetchWalletInfo(context.Background()) }()
	<-b.started

	// a newer balance request completes while the full fetch is stalled
	bal, err := s.GetBalance(context.Background())
	require.NoError(t, err)
	require.Equal(t, 50.0, bal)

	close(b.release)
	require.NoError(t, <-done)

	// last request wins: the stale 40 must not overwrite the newer 50
	require.Equal(t, 50.0, s.Snapshot().Balance)
}

func TestUnauthenticatedFetchIsNoop(t *testing.T) {
	b := &fakeBackend{authed: false, info: walletInfo(100)}
	s, _ := newTestSync(b)

	require.NoError(t, s.FetchWalletInfo(context.Background()))
	info, _ := b.calls()
	require.Zero(t, info)
}

func TestResetClearsStateAndReenablesFetch(t *testing.T) {
	b := &fakeBackend{authed: true, info: walletInfo(100)}
	s, _ := newTestSync(b)

	require.NoError(t, s.FetchWalletInfo(context.Background()))
	require.Equal(t, 100.0, s.Balance())

	s.Reset()
	st := s.Snapshot()
	require.Zero(t, st.Balance)
	require.Empty(t, st.Transactions)
	require.NoError(t, st.Err)

	// the debounce clock restarts with the session
	require.NoError(t, s.FetchWalletInfo(context.Background()))
	info, _ := b.calls()
	require.Equal(t, 2, info)
}

func TestFetchTransactionsReplacesList(t *testing.T) {
	b := &fakeBackend{authed: true, info: walletInfo(100,
		dto.Transaction{ID: 1, TransactionType: "deposit"},
		dto.Transaction{ID: 2, TransactionType: "bet"},
	)}
	s, _ := newTestSync(b)

	_, err := s.RequestWithdrawal(context.Background(), dto.WithdrawalRequest{Amount: 10})
	require.NoError(t, err)
	require.True(t, s.Snapshot().Transactions[0].Pending)

	require.NoError(t, s.FetchTransactions(context.Background(), "", 50))
	st := s.Snapshot()
	require.Len(t, st.Transactions, 2)
	require.False(t, st.Transactions[0].Pending)
}
