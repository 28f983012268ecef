package events

// WalletTransaction mirrors ledger movements (deposits, withdrawals, ticket
// debits) for downstream consumers such as reporting.
type WalletTransaction struct {
	TransactionID string  `json:"transaction_id"`
	UserID        string  `json:"user_id"`
	Type          string  `json:"type"`   // "deposit", "withdrawal", "bet"
	Status        string  `json:"status"` // "pending", "completed"
	Amount        float64 `json:"amount"`
	BalanceAfter  float64 `json:"balance_after"`
	TsUnixMs      int64   `json:"ts_unix_ms"`
}
