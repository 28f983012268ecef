package repo

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/teerhub/teer-core/internal/api/dto"
)

// Postgres is the simulator's ledger: users keyed by bearer token, one wallet
// per user, transactions and accepted tickets.
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotFound          = errors.New("not found")
)

// demo credit granted to every new wallet so client flows work end to end
const openingBalance = 1000.0

// EnsureSchema creates the simulator tables when missing.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			token TEXT UNIQUE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS wallets (
			user_id INT PRIMARY KEY REFERENCES users(id),
			balance DOUBLE PRECISION NOT NULL,
			version INT NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(id),
			transaction_type TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			status TEXT NOT NULL,
			description TEXT,
			balance_before DOUBLE PRECISION NOT NULL,
			balance_after DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS tickets (
			id TEXT PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(id),
			house_id INT NOT NULL,
			bet_type TEXT NOT NULL,
			total_amount DOUBLE PRECISION NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, q := range stmts {
		if _, err := p.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// GetOrCreateUser resolves a bearer token to a user ID, creating the user and
// its wallet on first sight.
func (p *Postgres) GetOrCreateUser(ctx context.Context, token string) (int, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int
	err = tx.QueryRowContext(ctx, `SELECT id FROM users WHERE token=$1`, token).Scan(&id)
	if err == sql.ErrNoRows {
		if err = tx.QueryRowContext(ctx, `INSERT INTO users(token) VALUES($1) RETURNING id`, token).Scan(&id); err != nil {
			return 0, err
		}
		if _, err = tx.ExecContext(ctx, `INSERT INTO wallets(user_id, balance, version) VALUES($1,$2,1)`, id, openingBalance); err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (p *Postgres) Balance(ctx context.Context, userID int) (float64, error) {
	var bal float64
	err := p.db.QueryRowContext(ctx, `SELECT balance FROM wallets WHERE user_id=$1`, userID).Scan(&bal)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	return bal, err
}

// RecentTransactions returns the newest transactions first, optionally
// filtered by type.
func (p *Postgres) RecentTransactions(ctx context.Context, userID int, txType string, limit int) ([]dto.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	q := `SELECT id, user_id, transaction_type, amount, status, COALESCE(description,''),
	             balance_before, balance_after, created_at
	      FROM transactions WHERE user_id=$1`
	args := []any{userID}
	if txType != "" {
		q += ` AND transaction_type=$2`
		args = append(args, txType)
	}
	q += ` ORDER BY id DESC LIMIT ` + strconv.Itoa(limit)

	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dto.Transaction
	for rows.Next() {
		var t dto.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.TransactionType, &t.Amount, &t.Status,
			&t.Description, &t.BalanceBefore, &t.BalanceAfter, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CreateDeposit records a pending deposit request. The balance is untouched
// until an admin would approve it, so before and after are equal.
func (p *Postgres) CreateDeposit(ctx context.Context, userID int, amount float64, description string) (*dto.Transaction, error) {
	bal, err := p.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	return p.insertTransaction(ctx, userID, "deposit", amount, "pending", description, bal, bal)
}

// CreateWithdrawal records a pending withdrawal and debits the amount as a
// hold so it cannot be wagered while the request is processed.
func (p *Postgres) CreateWithdrawal(ctx context.Context, userID int, amount float64, description string) (*dto.Transaction, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var bal float64
	if err = tx.QueryRowContext(ctx, `SELECT balance FROM wallets WHERE user_id=$1 FOR UPDATE`, userID).Scan(&bal); err != nil {
		return nil, err
	}
	if bal < amount {
		return nil, ErrInsufficientFunds
	}
	after := bal - amount
	if _, err = tx.ExecContext(ctx, `UPDATE wallets SET balance=$1, version=version+1 WHERE user_id=$2`, after, userID); err != nil {
		return nil, err
	}
	t, err := insertTransactionTx(ctx, tx, userID, "withdrawal", amount, "pending", description, bal, after)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return t, nil
}

// DebitForTicket atomically checks the balance, debits the stake and records
// the bet transaction.
func (p *Postgres) DebitForTicket(ctx context.Context, userID int, amount float64, description string) (*dto.Transaction, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var bal float64
	if err = tx.QueryRowContext(ctx, `SELECT balance FROM wallets WHERE user_id=$1 FOR UPDATE`, userID).Scan(&bal); err != nil {
		return nil, err
	}
	if bal < amount {
		return nil, ErrInsufficientFunds
	}
	after := bal - amount
	if _, err = tx.ExecContext(ctx, `UPDATE wallets SET balance=$1, version=version+1 WHERE user_id=$2`, after, userID); err != nil {
		return nil, err
	}
	t, err := insertTransactionTx(ctx, tx, userID, "bet", amount, "completed", description, bal, after)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return t, nil
}

// InsertTicket persists an accepted ticket with its raw payload.
func (p *Postgres) InsertTicket(ctx context.Context, id string, userID, houseID int, betType string, totalAmount float64, payload []byte) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO tickets(id, user_id, house_id, bet_type, total_amount, payload) VALUES($1,$2,$3,$4,$5,$6)`,
		id, userID, houseID, betType, totalAmount, payload)
	return err
}

func (p *Postgres) insertTransaction(ctx context.Context, userID int, txType string, amount float64, status, description string, before, after float64) (*dto.Transaction, error) {
	t := &dto.Transaction{
		UserID:          userID,
		TransactionType: txType,
		Amount:          amount,
		Status:          status,
		Description:     description,
		BalanceBefore:   before,
		BalanceAfter:    after,
	}
	err := p.db.QueryRowContext(ctx,
		`INSERT INTO transactions(user_id, transaction_type, amount, status, description, balance_before, balance_after)
		 VALUES($1,$2,$3,$4,$5,$6,$7) RETURNING id, created_at`,
		userID, txType, amount, status, description, before, after).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func insertTransactionTx(ctx context.Context, tx *sql.Tx, userID int, txType string, amount float64, status, description string, before, after float64) (*dto.Transaction, error) {
	t := &dto.Transaction{
		UserID:          userID,
		TransactionType: txType,
		Amount:          amount,
		Status:          status,
		Description:     description,
		BalanceBefore:   before,
		BalanceAfter:    after,
	}
	err := tx.QueryRowContext(ctx,
		`INSERT INTO transactions(user_id, transaction_type, amount, status, description, balance_before, balance_after)
		 VALUES($1,$2,$3,$4,$5,$6,$7) RETURNING id, created_at`,
		userID, txType, amount, status, description, before, after).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}
