package dto

import "time"

type DepositRequest struct {
	Amount          float64 `json:"amount"`
	Description     string  `json:"description,omitempty"`
	PaymentProofURL string  `json:"payment_proof_url,omitempty"`
	DepositMethod   string  `json:"deposit_method,omitempty"` // UPI, Bank Transfer, ...
	ReferenceNumber string  `json:"reference_number,omitempty"`
}

type WithdrawalRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

type Transaction struct {
	ID              int        `json:"id"`
	UserID          int        `json:"user_id"`
	TransactionType string     `json:"transaction_type"` // "deposit", "withdrawal", "bet", "payout"
	Amount          float64    `json:"amount"`
	Status          string     `json:"status"` // "pending", "completed", "rejected"
	Description     string     `json:"description,omitempty"`
	DepositMethod   string     `json:"deposit_method,omitempty"`
	ReferenceNumber string     `json:"reference_number,omitempty"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
	BalanceBefore   float64    `json:"balance_before"`
	BalanceAfter    float64    `json:"balance_after"`
	CreatedAt       time.Time  `json:"created_at"`
}

// WalletInfo is the response of GET /wallet/.
type WalletInfo struct {
	UserID             int           `json:"user_id"`
	Balance            float64       `json:"balance"`
	RecentTransactions []Transaction `json:"recent_transactions"`
}

// BalanceInfo is the response of GET /wallet/balance.
type BalanceInfo struct {
	Balance float64 `json:"balance"`
}
