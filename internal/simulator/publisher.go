package simulator

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/teerhub/teer-core/pkg/contracts/events"
)

// Publisher emits ticket and wallet events. Nil writers disable publishing,
// so the HTTP server can run without a broker in tests.
type Publisher struct {
	Tickets  *kafka.Writer
	WalletTx *kafka.Writer
}

func NewPublisher(tickets, walletTx *kafka.Writer) *Publisher {
	return &Publisher{Tickets: tickets, WalletTx: walletTx}
}

func (p *Publisher) PublishTicketPlaced(ctx context.Context, e events.TicketPlaced) error {
	if p == nil || p.Tickets == nil {
		return nil
	}
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return p.Tickets.WriteMessages(ctx, kafka.Message{Key: []byte(e.TicketID), Value: b})
}

func (p *Publisher) PublishWalletTransaction(ctx context.Context, e events.WalletTransaction) error {
	if p == nil || p.WalletTx == nil {
		return nil
	}
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return p.WalletTx.WriteMessages(ctx, kafka.Message{Key: []byte(e.UserID), Value: b})
}
