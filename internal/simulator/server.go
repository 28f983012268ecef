package simulator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/teerhub/teer-core/internal/api/dto"
	"github.com/teerhub/teer-core/internal/simulator/repo"
	"github.com/teerhub/teer-core/pkg/contracts/events"
)

var ticketsPlaced = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "teer_sim_tickets_placed_total",
	Help: "Tickets accepted by the simulator",
})

func init() {
	prometheus.MustRegister(ticketsPlaced)
}

// Ledger is the persistence interface the HTTP handlers need.
type Ledger interface {
	GetOrCreateUser(ctx context.Context, token string) (int, error)
	Balance(ctx context.Context, userID int) (float64, error)
	RecentTransactions(ctx context.Context, userID int, txType string, limit int) ([]dto.Transaction, error)
	CreateDeposit(ctx context.Context, userID int, amount float64, description string) (*dto.Transaction, error)
	CreateWithdrawal(ctx context.Context, userID int, amount float64, description string) (*dto.Transaction, error)
	DebitForTicket(ctx context.Context, userID int, amount float64, description string) (*dto.Transaction, error)
	InsertTicket(ctx context.Context, id string, userID, houseID int, betType string, totalAmount float64, payload []byte) error
}

// Server implements the backend REST contract the client library consumes.
type Server struct {
	log    *zap.Logger
	ledger Ledger
	publ   *Publisher
	hub    *Hub
	now    func() time.Time
}

func NewServer(log *zap.Logger, ledger Ledger, publ *Publisher, hub *Hub) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{log: log, ledger: ledger, publ: publ, hub: hub, now: time.Now}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/bet/ticket", s.placeTicket)                  // POST
	mux.HandleFunc("/bet/houses-with-rounds", s.housesWithRounds) // GET
	mux.HandleFunc("/wallet/", s.walletInfo)                      // GET
	mux.HandleFunc("/wallet/balance", s.balance)                  // GET
	mux.HandleFunc("/wallet/transactions", s.transactions)        // GET
	mux.HandleFunc("/wallet/deposit", s.deposit)                  // POST
	mux.HandleFunc("/wallet/withdraw", s.withdraw)                // POST
	if s.hub != nil {
		mux.HandleFunc("/ws/rounds", s.hub.Handler)
	}
	return mux
}

// BroadcastRoundUpdates pushes a countdown tick for every open round.
func (s *Server) BroadcastRoundUpdates() {
	if s.hub == nil {
		return
	}
	now := s.now()
	for _, h := range catalogFor(now) {
		for _, rd := range h.Rounds {
			s.hub.Broadcast(RoundUpdate{
				HouseID:         h.House.ID,
				RoundType:       rd.RoundType,
				BettingClosesAt: rd.BettingClosesAt,
				ClosesInSeconds: int(rd.BettingClosesAt.Sub(now) / time.Second),
				TsUnixMs:        now.UnixMilli(),
			})
		}
	}
}

// auth resolves the bearer token to a user, creating it on first contact.
func (s *Server) auth(w http.ResponseWriter, r *http.Request) (int, bool) {
	h := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok || token == "" {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return 0, false
	}
	userID, err := s.ledger.GetOrCreateUser(r.Context(), token)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "user lookup failed")
		return 0, false
	}
	return userID, true
}

func (s *Server) placeTicket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID, ok := s.auth(w, r)
	if !ok {
		return
	}

	var t dto.TicketCreate
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sum, err := validateTicket(t)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	house := houseByID(t.HouseID)
	if house == nil {
		writeDetail(w, http.StatusNotFound, "House not found")
		return
	}

	if _, err := s.ledger.DebitForTicket(r.Context(), userID, sum.Total, "ticket "+sum.BetType); err != nil {
		if errors.Is(err, repo.ErrInsufficientFunds) {
			writeDetail(w, http.StatusBadRequest, "Insufficient balance")
			return
		}
		writeDetail(w, http.StatusInternalServerError, "wallet debit failed")
		return
	}

	ticketID := uuid.NewString()
	payload, _ := json.Marshal(t)
	if err := s.ledger.InsertTicket(r.Context(), ticketID, userID, t.HouseID, sum.BetType, sum.Total, payload); err != nil {
		s.log.Error("ticket insert failed", zap.String("ticket_id", ticketID), zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "ticket store failed")
		return
	}

	ticketsPlaced.Inc()
	if err := s.publ.PublishTicketPlaced(r.Context(), events.TicketPlaced{
		TicketID:    ticketID,
		UserID:      strconv.Itoa(userID),
		HouseID:     t.HouseID,
		BetType:     sum.BetType,
		TotalAmount: sum.Total,
		Lines:       sum.Lines,
	}); err != nil {
		s.log.Warn("ticket event publish failed", zap.Error(err))
	}

	writeJSON(w, dto.TicketResponse{
		TicketID:             ticketID,
		UserID:               userID,
		HouseID:              t.HouseID,
		HouseName:            house.Name,
		TotalAmount:          sum.Total,
		TotalPotentialPayout: sum.MaxLine * payoutRateFor(house, sum.BetType),
		Status:               "active",
		CreatedAt:            s.now().UTC(),
	})
}

func (s *Server) housesWithRounds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeDetail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, catalogFor(s.now()))
}

func (s *Server) walletInfo(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/wallet/" {
		writeDetail(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		writeDetail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID, ok := s.auth(w, r)
	if !ok {
		return
	}
	bal, err := s.ledger.Balance(r.Context(), userID)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "balance lookup failed")
		return
	}
	txs, err := s.ledger.RecentTransactions(r.Context(), userID, "", 10)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "transaction lookup failed")
		return
	}
	if txs == nil {
		txs = []dto.Transaction{}
	}
	writeJSON(w, dto.WalletInfo{UserID: userID, Balance: bal, RecentTransactions: txs})
}

func (s *Server) balance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeDetail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID, ok := s.auth(w, r)
	if !ok {
		return
	}
	bal, err := s.ledger.Balance(r.Context(), userID)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "balance lookup failed")
		return
	}
	writeJSON(w, dto.BalanceInfo{Balance: bal})
}

func (s *Server) transactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeDetail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID, ok := s.auth(w, r)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	txType := r.URL.Query().Get("transaction_type")
	txs, err := s.ledger.RecentTransactions(r.Context(), userID, txType, limit)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "transaction lookup failed")
		return
	}
	if txs == nil {
		txs = []dto.Transaction{}
	}
	writeJSON(w, txs)
}

func (s *Server) deposit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID, ok := s.auth(w, r)
	if !ok {
		return
	}
	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Amount <= 0 {
		writeDetail(w, http.StatusBadRequest, "Amount must be positive")
		return
	}
	tx, err := s.ledger.CreateDeposit(r.Context(), userID, req.Amount, req.Description)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "deposit request failed")
		return
	}
	s.publishWalletTx(r.Context(), tx)
	writeJSON(w, tx)
}

func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	userID, ok := s.auth(w, r)
	if !ok {
		return
	}
	var req dto.WithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Amount <= 0 {
		writeDetail(w, http.StatusBadRequest, "Amount must be positive")
		return
	}
	tx, err := s.ledger.CreateWithdrawal(r.Context(), userID, req.Amount, req.Description)
	if err != nil {
		if errors.Is(err, repo.ErrInsufficientFunds) {
			writeDetail(w, http.StatusBadRequest, "Insufficient balance")
			return
		}
		writeDetail(w, http.StatusInternalServerError, "withdrawal request failed")
		return
	}
	s.publishWalletTx(r.Context(), tx)
	writeJSON(w, tx)
}

func (s *Server) publishWalletTx(ctx context.Context, tx *dto.Transaction) {
	if err := s.publ.PublishWalletTransaction(ctx, events.WalletTransaction{
		TransactionID: strconv.Itoa(tx.ID),
		UserID:        strconv.Itoa(tx.UserID),
		Type:          tx.TransactionType,
		Status:        tx.Status,
		Amount:        tx.Amount,
		BalanceAfter:  tx.BalanceAfter,
	}); err != nil {
		s.log.Warn("wallet event publish failed", zap.Error(err))
	}
}

// writeJSON serializes and sends a JSON response.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail sends the backend's {detail} error shape.
func writeDetail(w http.ResponseWriter, code int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Detail: detail})
}
