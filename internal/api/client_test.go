package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/teerhub/teer-core/internal/api/dto"
)

func staticToken(tok string) TokenSource {
	return func() string { return tok }
}

func TestClientNoTokenNoRequest(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, staticToken(""))
	require.False(t, c.Authenticated())

	_, err := c.WalletInfo(context.Background())
	require.ErrorIs(t, err, ErrUnauthenticated)
	require.Zero(t, hits, "unauthenticated calls must not reach the server")
}

func TestClientSendsAuthAndBody(t *testing.T) {
	var gotAuth, gotReqID string
	var gotTicket dto.TicketCreate
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotTicket))
		json.NewEncoder(w).Encode(dto.TicketResponse{TicketID: "T-42", Status: "placed"})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, staticToken("tok-1"))
	res, err := c.PlaceTicket(context.Background(), dto.TicketCreate{
		HouseID:  3,
		FRDirect: map[string]float64{"07": 50},
	})
	require.NoError(t, err)
	require.Equal(t, "T-42", res.TicketID)

	require.Equal(t, "Bearer tok-1", gotAuth)
	require.NotEmpty(t, gotReqID)
	require.Equal(t, 3, gotTicket.HouseID)
	require.Equal(t, map[string]float64{"07": 50}, gotTicket.FRDirect)
}

func TestClientUnauthorizedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(dto.ErrorResponse{Detail: "Invalid token"})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, staticToken("expired"))
	_, err := c.WalletBalance(context.Background())
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestClientServerErrorCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(dto.ErrorResponse{Detail: "Insufficient balance"})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, staticToken("tok"))
	_, err := c.PlaceTicket(context.Background(), dto.TicketCreate{HouseID: 1})
	require.Error(t, err)

	var se *ServerError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusBadRequest, se.Status)
	require.Equal(t, "Insufficient balance", se.Detail)
	require.Equal(t, "Insufficient balance", Detail(err, "fallback"))
}

func TestClientServerErrorWithoutBodyFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, staticToken("tok"))
	_, err := c.WalletInfo(context.Background())

	var se *ServerError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusInternalServerError, se.Status)
	require.NotEmpty(t, se.Detail)
}

func TestClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, time.Second, staticToken("tok"))
	_, err := c.WalletInfo(context.Background())
	require.ErrorIs(t, err, ErrNetwork)
	require.Equal(t, "fallback", Detail(err, "fallback"))
}

func TestClientTransactionsQueryParams(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode([]dto.Transaction{{ID: 1, TransactionType: "deposit"}})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, staticToken("tok"))
	txs, err := c.Transactions(context.Background(), "deposit", 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, []string{"10"}, gotQuery["limit"])
	require.Equal(t, []string{"deposit"}, gotQuery["transaction_type"])

	// limit defaults when not positive, type filter omitted when empty
	_, err = c.Transactions(context.Background(), "", 0)
	require.NoError(t, err)
	require.Equal(t, []string{"50"}, gotQuery["limit"])
	require.NotContains(t, gotQuery, "transaction_type")
}

func TestClientWalletInfoRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wallet/", r.URL.Path)
		json.NewEncoder(w).Encode(dto.WalletInfo{
			UserID:  4,
			Balance: 920.5,
			RecentTransactions: []dto.Transaction{
				{ID: 11, TransactionType: "bet", Amount: 80, Status: "completed"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, staticToken("tok"))
	info, err := c.WalletInfo(context.Background())
	require.NoError(t, err)
	require.Equal(t, 920.5, info.Balance)
	require.Len(t, info.RecentTransactions, 1)
	require.Equal(t, "bet", info.RecentTransactions[0].TransactionType)
}
