package betslip

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/teerhub/teer-core/internal/api/dto"
)

// TicketPoster submits a serialized ticket to the backend.
type TicketPoster interface {
	PlaceTicket(ctx context.Context, t dto.TicketCreate) (*dto.TicketResponse, error)
}

// Wallet is the slice of the wallet synchronizer the slip depends on.
type Wallet interface {
	Balance() float64
	Refresh(ctx context.Context) error
}

// HouseContext is the read-only house/round configuration the slip is
// parameterized by.
type HouseContext interface {
	HouseID() int
	PayoutRate(m Mode, r Round) float64
	Available(m Mode, r Round) bool
}

// Slip is one page view's in-progress bet slip: a selection store bound to a
// house, a game mode and a round, with validation on every insert and submit
// orchestration. It is created empty when the view opens and discarded after
// a successful submission or on navigation away; it is never shared between
// views or modes.
type Slip struct {
	log    *zap.Logger
	mode   Mode
	round  Round
	house  HouseContext
	wallet Wallet
	poster TicketPoster
	store  *Store
}

func NewSlip(log *zap.Logger, mode Mode, round Round, house HouseContext, wallet Wallet, poster TicketPoster) *Slip {
	if log == nil {
		log = zap.NewNop()
	}
	return &Slip{
		log:    log,
		mode:   mode,
		round:  round,
		house:  house,
		wallet: wallet,
		poster: poster,
		store:  NewStore(),
	}
}

func (s *Slip) Mode() Mode   { return s.mode }
func (s *Slip) Round() Round { return s.round }

// Add validates and upserts a number line. On any validation failure the
// store is left untouched and the specific rejection is returned.
func (s *Slip) Add(rawNumber string, amount float64) (Line, error) {
	if s.mode.IsForecast() {
		return Line{}, fmt.Errorf("mode %s takes forecast pairs: %w", s.mode, ErrOutOfRange)
	}
	key, err := NormalizeNumber(s.mode, rawNumber)
	if err != nil {
		return Line{}, err
	}
	if err := CheckAmount(amount); err != nil {
		return Line{}, err
	}
	if err := CheckBalance(amount, s.wallet.Balance()); err != nil {
		return Line{}, err
	}
	return s.store.Upsert(key, amount), nil
}

// AddForecast validates and upserts a forecast pair line. Each component is
// validated against the forecast variant's own arity and range.
func (s *Slip) AddForecast(rawFR, rawSR string, amount float64) (Line, error) {
	if !s.mode.IsForecast() {
		return Line{}, fmt.Errorf("mode %s takes single numbers: %w", s.mode, ErrOutOfRange)
	}
	fr, err := NormalizeNumber(s.mode, rawFR)
	if err != nil {
		return Line{}, err
	}
	sr, err := NormalizeNumber(s.mode, rawSR)
	if err != nil {
		return Line{}, err
	}
	if err := CheckAmount(amount); err != nil {
		return Line{}, err
	}
	if err := CheckBalance(amount, s.wallet.Balance()); err != nil {
		return Line{}, err
	}
	return s.store.Upsert(ForecastKey(fr, sr), amount), nil
}

// Remove deletes a line by its local ID.
func (s *Slip) Remove(id int64) bool { return s.store.Remove(id) }

// Clear discards every line.
func (s *Slip) Clear() { s.store.Clear() }

// Lines returns the current lines in insertion order.
func (s *Slip) Lines() []Line { return s.store.Lines() }

// Totals recomputes stake and payout exposure from the current lines.
func (s *Slip) Totals() Totals {
	return ComputeTotals(s.store.Lines(), s.house.PayoutRate(s.mode, s.round))
}

// Submit serializes the slip and posts it. On success the store is cleared
// and a wallet refresh is requested; on any failure the store is left intact
// so the user can retry.
func (s *Slip) Submit(ctx context.Context) (*dto.TicketResponse, error) {
	if s.store.Len() == 0 {
		return nil, ErrEmptySlip
	}

	totals := s.Totals()
	if err := CheckBalance(totals.TotalStake, s.wallet.Balance()); err != nil {
		return nil, err
	}

	if !s.house.Available(s.mode, s.round) {
		return nil, fmt.Errorf("%s %s: %w", s.mode, s.mode.RoundKey(s.round), ErrRoundUnavailable)
	}

	ticket, err := BuildTicket(s.house.HouseID(), s.mode, s.round, s.store.Lines())
	if err != nil {
		return nil, err
	}

	res, err := s.poster.PlaceTicket(ctx, ticket)
	if err != nil {
		s.log.Warn("ticket submit failed",
			zap.String("mode", s.mode.String()),
			zap.Int("house_id", s.house.HouseID()),
			zap.Error(err))
		return nil, err
	}

	s.log.Info("ticket placed",
		zap.String("ticket_id", res.TicketID),
		zap.String("mode", s.mode.String()),
		zap.Float64("total_amount", totals.TotalStake))

	s.store.Clear()
	if err := s.wallet.Refresh(ctx); err != nil {
		// balance will catch up on the next refresh; the ticket is placed
		s.log.Warn("wallet refresh after submit failed", zap.Error(err))
	}
	return res, nil
}
