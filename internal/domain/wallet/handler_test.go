package wallet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"thriftsave/internal/database"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(fmt.Sprintf("file:wallet_handler_test_%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&Wallet{}, &Transaction{}, &PayoutAccount{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	h := NewHandler(NewService(db))
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID := c.GetHeader("X-Test-User-ID"); userID != "" {
			c.Set("user_id", int64(42))
		}
		c.Next()
	})

	v1 := r.Group("/api/v1")
	h.RegisterRoutes(v1)
	return r
}

func doJSONRequest(r http.Handler, method, path string, body any, authorized bool) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authorized {
		req.Header.Set("X-Test-User-ID", "42")
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

type walletEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Wallet       Wallet        `json:"wallet"`
		Transactions []Transaction `json:"transactions"`
	} `json:"data"`
}

func decodeWallet(t *testing.T, rr *httptest.ResponseRecorder) walletEnvelope {
	t.Helper()
	var env walletEnvelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid response: %v body=%s", err, rr.Body.String())
	}
	return env
}

func TestWalletEndpoints_Unauthorized(t *testing.T) {
	r := setupTestRouter(t)

	cases := []struct {
		method string
		path   string
		body   any
	}{
		{method: http.MethodGet, path: "/api/v1/wallets/me"},
		{method: http.MethodPost, path: "/api/v1/wallets/me/deposit", body: map[string]any{"amount": 10}},
		{method: http.MethodPost, path: "/api/v1/wallets/me/withdraw", body: map[string]any{"amount": 10}},
		{method: http.MethodGet, path: "/api/v1/wallets/me/transactions"},
		{method: http.MethodGet, path: "/api/v1/wallets/me/payout-account"},
	}

	for _, tc := range cases {
		rr := doJSONRequest(r, tc.method, tc.path, tc.body, false)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s %s, got %d", tc.method, tc.path, rr.Code)
		}
	}
}

func TestWalletEndpoints_FullFlow(t *testing.T) {
	r := setupTestRouter(t)

	rr := doJSONRequest(r, http.MethodGet, "/api/v1/wallets/me", nil, true)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for get wallet, got %d body=%s", rr.Code, rr.Body.String())
	}
	if env := decodeWallet(t, rr); env.Data.Wallet.Balance != 0 {
		t.Fatalf("expected initial balance 0, got %d", env.Data.Wallet.Balance)
	}

	rr = doJSONRequest(r, http.MethodPost, "/api/v1/wallets/me/deposit", map[string]any{"amount": -5}, true)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid deposit, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSONRequest(r, http.MethodPost, "/api/v1/wallets/me/deposit", map[string]any{"amount": 150}, true)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for deposit, got %d body=%s", rr.Code, rr.Body.String())
	}

	// no payout account yet
	rr = doJSONRequest(r, http.MethodPost, "/api/v1/wallets/me/withdraw", map[string]any{"amount": 40}, true)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for withdraw without payout account, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/wallets/me/payout-account", nil, true)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing payout account, got %d", rr.Code)
	}

	rr = doJSONRequest(r, http.MethodPut, "/api/v1/wallets/me/payout-account", map[string]any{
		"bank_name": "Wema", "account_number": "12ab", "account_name": "Ada",
	}, true)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad account number, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSONRequest(r, http.MethodPut, "/api/v1/wallets/me/payout-account", map[string]any{
		"bank_name": "Wema", "account_number": "0123456789", "account_name": "Ada",
	}, true)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for payout account, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSONRequest(r, http.MethodPost, "/api/v1/wallets/me/withdraw", map[string]any{"amount": 500}, true)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for overdraw, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSONRequest(r, http.MethodPost, "/api/v1/wallets/me/withdraw", map[string]any{"amount": 40}, true)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for withdraw, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/wallets/me/transactions", nil, true)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for transactions, got %d body=%s", rr.Code, rr.Body.String())
	}
	if env := decodeWallet(t, rr); len(env.Data.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(env.Data.Transactions))
	}

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/wallets/me", nil, true)
	if env := decodeWallet(t, rr); env.Data.Wallet.Balance != 110 {
		t.Fatalf("expected final balance 110, got %d", env.Data.Wallet.Balance)
	}
}
