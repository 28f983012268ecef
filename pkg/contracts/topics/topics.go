package topics

const (
	// Tickets
	TicketPlaced = "ticket_placed"

	// Wallet
	WalletTransactions = "wallet_transactions"

	// DLQs
	TicketPlacedDLQ = "ticket_placed_dlq"
)
