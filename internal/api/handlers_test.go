package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/xtrntr/tradelog/internal/auth"
	"github.com/xtrntr/tradelog/internal/db/dbtest"
	"github.com/xtrntr/tradelog/internal/feed"
	"github.com/xtrntr/tradelog/internal/trades"
)

type testEnv struct {
	store  *dbtest.Memory
	auth   *auth.AuthService
	hub    *feed.Hub
	router *chi.Mux
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	store := dbtest.NewMemory()
	authService := auth.NewAuthService(store, auth.Config{
		Secret:     []byte("test-secret"),
		AccessTTL:  10 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		BcryptCost: bcrypt.MinCost,
	}, logger)
	hub := feed.NewHub(logger, nil)
	t.Cleanup(hub.Close)
	tradeService := trades.NewTradeService(store, hub, logger)
	handler := NewHandler(authService, tradeService, hub, logger)

	return &testEnv{
		store:  store,
		auth:   authService,
		hub:    hub,
		router: NewRouter(handler, "*"),
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// login signs up a fresh user and returns an access token
func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	require.NoError(t, e.auth.Signup(context.Background(), email, "password123"))
	pair, err := e.auth.Login(context.Background(), email, "password123")
	require.NoError(t, err)
	return pair.AccessToken
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func validationProperties(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var response struct {
		StatusCode int          `json:"statusCode"`
		Message    []fieldError `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	props := make(map[string]string, len(response.Message))
	for _, f := range response.Message {
		props[f.Property] = f.Message
	}
	return props
}

func TestHandler_SignUp(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		expectedProps  []string
	}{
		{
			name:           "Success",
			requestBody:    map[string]interface{}{"email": "alice@example.com", "password": "password123"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "DuplicateEmail",
			requestBody:    map[string]interface{}{"email": "alice@example.com", "password": "other"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "InvalidEmail",
			requestBody:    map[string]interface{}{"email": "not-an-email", "password": "password123"},
			expectedStatus: http.StatusBadRequest,
			expectedProps:  []string{"email"},
		},
		{
			name:           "MissingFields",
			requestBody:    map[string]interface{}{},
			expectedStatus: http.StatusBadRequest,
			expectedProps:  []string{"email", "password"},
		},
		{
			name:           "MalformedJSON",
			requestBody:    `{"email":`,
			expectedStatus: http.StatusBadRequest,
			expectedProps:  []string{"body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, "POST", "/auth/sign-up", tt.requestBody, "")
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			switch tt.expectedStatus {
			case http.StatusCreated:
				assert.Equal(t, map[string]interface{}{
					"statusCode": float64(201),
					"message":    "User created, please login!",
				}, decodeMap(t, w))
			case http.StatusConflict:
				response := decodeMap(t, w)
				assert.Equal(t, "Email already exists", response["message"])
				assert.Equal(t, float64(409), response["statusCode"])
			case http.StatusBadRequest:
				props := validationProperties(t, w)
				for _, p := range tt.expectedProps {
					assert.Contains(t, props, p)
				}
				assert.Len(t, props, len(tt.expectedProps))
			}
		})
	}

	assert.Equal(t, 1, env.store.UserCount())
}

func TestHandler_Login(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, "POST", "/auth/sign-up", map[string]interface{}{"email": "alice@example.com", "password": "password123"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectTokens   bool
	}{
		{
			name:           "Success",
			requestBody:    map[string]interface{}{"email": "alice@example.com", "password": "password123"},
			expectedStatus: http.StatusOK,
			expectTokens:   true,
		},
		{
			name:           "WrongPassword",
			requestBody:    map[string]interface{}{"email": "alice@example.com", "password": "wrongpass"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "UnknownEmail",
			requestBody:    map[string]interface{}{"email": "bob@example.com", "password": "password123"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, "POST", "/auth/login", tt.requestBody, "")
			assert.Equal(t, tt.expectedStatus, w.Code)

			response := decodeMap(t, w)
			if tt.expectTokens {
				assert.NotEmpty(t, response["accessToken"])
				assert.NotEmpty(t, response["refreshToken"])
			} else {
				assert.NotContains(t, response, "accessToken")
				assert.Contains(t, response, "message")
			}
		})
	}
}

func TestHandler_RefreshToken(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.auth.Signup(context.Background(), "alice@example.com", "password123"))
	pair, err := env.auth.Login(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)

	w := env.do(t, "POST", "/auth/refrest-jwt-token", map[string]string{"token": pair.RefreshToken}, "")
	require.Equal(t, http.StatusOK, w.Code)
	response := decodeMap(t, w)
	access, ok := response["accessToken"].(string)
	require.True(t, ok)

	claims, err := env.auth.VerifyAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email)

	w = env.do(t, "POST", "/auth/refrest-jwt-token", map[string]string{"token": pair.RefreshToken + "x"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid refresh token", decodeMap(t, w)["message"])

	w = env.do(t, "POST", "/auth/refrest-jwt-token", map[string]string{}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_SignUpThenLogin(t *testing.T) {
	env := newTestEnv(t)
	creds := []map[string]string{
		{"email": "a@example.com", "password": "pw-a"},
		{"email": "b@example.com", "password": "pw-b with spaces"},
		{"email": "c.d+tag@example.org", "password": "ünïcødé"},
	}
	for _, c := range creds {
		w := env.do(t, "POST", "/auth/sign-up", c, "")
		require.Equal(t, http.StatusCreated, w.Code, c["email"])

		w = env.do(t, "POST", "/auth/login", c, "")
		assert.Equal(t, http.StatusOK, w.Code, c["email"])
	}
}

func TestHandler_TradesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		header string
	}{
		{"Missing", ""},
		{"WrongScheme", "Basic abc"},
		{"EmptyBearer", "Bearer "},
		{"Garbage", "Bearer not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, method := range []string{"GET", "POST"} {
				req := httptest.NewRequest(method, "/trades", bytes.NewReader([]byte(`{}`)))
				if tt.header != "" {
					req.Header.Set("Authorization", tt.header)
				}
				w := httptest.NewRecorder()
				env.router.ServeHTTP(w, req)
				assert.Equal(t, http.StatusUnauthorized, w.Code)
			}
		})
	}
}

func TestHandler_CreateAndGetTrade(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "alice@example.com")

	w := env.do(t, "POST", "/trades", map[string]interface{}{
		"type":    "buy",
		"user_id": 1,
		"symbol":  "AAPL",
		"shares":  10,
		"price":   150.5,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, map[string]interface{}{
		"statusCode":    float64(201),
		"tradeObjectId": float64(1),
	}, decodeMap(t, w))

	w = env.do(t, "GET", "/trades/1", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	trade := decodeMap(t, w)
	assert.Equal(t, float64(1), trade["id"])
	assert.Equal(t, "buy", trade["type"])
	assert.Equal(t, float64(1), trade["user_id"])
	assert.Equal(t, "AAPL", trade["symbol"])
	assert.Equal(t, float64(10), trade["shares"])
	assert.Equal(t, 150.5, trade["price"])

	ts, ok := trade["timestamp"].(float64)
	require.True(t, ok)
	assert.Equal(t, float64(int64(ts)), ts, "timestamp should be whole seconds")
	assert.InDelta(t, float64(time.Now().Unix()), ts, 5)
}

func TestHandler_CreateTradeValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "alice@example.com")

	valid := func() map[string]interface{} {
		return map[string]interface{}{"type": "sell", "user_id": 1, "symbol": "AAPL", "shares": 10, "price": 150.5}
	}
	with := func(key string, value interface{}) map[string]interface{} {
		m := valid()
		m[key] = value
		return m
	}
	without := func(key string) map[string]interface{} {
		m := valid()
		delete(m, key)
		return m
	}

	tests := []struct {
		name         string
		body         interface{}
		wantProperty string
		wantMessage  string
	}{
		{"SharesZero", with("shares", 0), "shares", "shares must not be less than 1"},
		{"SharesTooMany", with("shares", 101), "shares", "shares must not be greater than 100"},
		{"SharesFraction", with("shares", 10.5), "shares", "shares must be an integer number"},
		{"SharesString", with("shares", "ten"), "shares", "shares must be an integer number"},
		{"BadType", with("type", "hold"), "type", "type must be one of the following values: buy, sell"},
		{"MissingType", without("type"), "type", "type should not be empty"},
		{"UserIDString", with("user_id", "abc"), "user_id", "user_id must be an integer number"},
		{"MissingUserID", without("user_id"), "user_id", "user_id should not be empty"},
		{"MissingSymbol", without("symbol"), "symbol", "symbol should not be empty"},
		{"SymbolNumber", with("symbol", 42), "symbol", "symbol must be a string"},
		{"MissingPrice", without("price"), "price", "price should not be empty"},
		{"PriceString", with("price", "cheap"), "price", "price must be a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, "POST", "/trades", tt.body, token)
			require.Equal(t, http.StatusBadRequest, w.Code)
			props := validationProperties(t, w)
			assert.Equal(t, map[string]string{tt.wantProperty: tt.wantMessage}, props)
		})
	}

	// nothing reached the store
	w := env.do(t, "GET", "/trades", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	// boundaries are accepted
	for _, shares := range []int{1, 100} {
		w := env.do(t, "POST", "/trades", with("shares", shares), token)
		assert.Equal(t, http.StatusCreated, w.Code)
	}
}

func TestHandler_CreateTradeWholeNumbers(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "alice@example.com")

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantUserID float64
		wantShares float64
		wantProps  map[string]string
	}{
		{
			name:       "SharesWholeFloat",
			body:       `{"type":"buy","user_id":1,"symbol":"AAPL","shares":10.0,"price":150.5}`,
			wantStatus: http.StatusCreated,
			wantUserID: 1,
			wantShares: 10,
		},
		{
			name:       "UserIDWholeFloat",
			body:       `{"type":"buy","user_id":1.0,"symbol":"AAPL","shares":10,"price":150.5}`,
			wantStatus: http.StatusCreated,
			wantUserID: 1,
			wantShares: 10,
		},
		{
			name:       "Exponent",
			body:       `{"type":"sell","user_id":2e0,"symbol":"AAPL","shares":1e2,"price":150.5}`,
			wantStatus: http.StatusCreated,
			wantUserID: 2,
			wantShares: 100,
		},
		{
			name:       "SharesFraction",
			body:       `{"type":"buy","user_id":1,"symbol":"AAPL","shares":10.5,"price":150.5}`,
			wantStatus: http.StatusBadRequest,
			wantProps:  map[string]string{"shares": "shares must be an integer number"},
		},
		{
			name:       "SharesQuoted",
			body:       `{"type":"buy","user_id":1,"symbol":"AAPL","shares":"10","price":150.5}`,
			wantStatus: http.StatusBadRequest,
			wantProps:  map[string]string{"shares": "shares must be an integer number"},
		},
		{
			name:       "WholeFloatOutOfRange",
			body:       `{"type":"buy","user_id":1,"symbol":"AAPL","shares":101.0,"price":150.5}`,
			wantStatus: http.StatusBadRequest,
			wantProps:  map[string]string{"shares": "shares must not be greater than 100"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, "POST", "/trades", tt.body, token)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusCreated {
				assert.Equal(t, tt.wantProps, validationProperties(t, w))
				return
			}

			id := decodeMap(t, w)["tradeObjectId"].(float64)
			w = env.do(t, "GET", fmt.Sprintf("/trades/%d", int64(id)), nil, token)
			require.Equal(t, http.StatusOK, w.Code)
			trade := decodeMap(t, w)
			assert.Equal(t, tt.wantUserID, trade["user_id"])
			assert.Equal(t, tt.wantShares, trade["shares"])
		})
	}
}

func TestHandler_CreateTradeReportsEveryBadField(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "alice@example.com")

	w := env.do(t, "POST", "/trades", map[string]interface{}{
		"type":    "hold",
		"user_id": 1,
		"symbol":  "AAPL",
		"shares":  500,
		"price":   1,
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]string{
		"type":   "type must be one of the following values: buy, sell",
		"shares": "shares must not be greater than 100",
	}, validationProperties(t, w))

	// several type mismatches in one body are all reported
	w = env.do(t, "POST", "/trades", `{"type":"buy","user_id":"one","symbol":7,"shares":"x","price":"y"}`, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]string{
		"user_id": "user_id must be an integer number",
		"symbol":  "symbol must be a string",
		"shares":  "shares must be an integer number",
		"price":   "price must be a number",
	}, validationProperties(t, w))

	// a mistyped field does not hide a missing one
	w = env.do(t, "POST", "/trades", `{"type":"buy","user_id":1,"shares":"x"}`, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]string{
		"symbol": "symbol should not be empty",
		"shares": "shares must be an integer number",
		"price":  "price should not be empty",
	}, validationProperties(t, w))
}

func TestHandler_ListTrades(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "alice@example.com")

	for _, body := range []map[string]interface{}{
		{"type": "buy", "user_id": 1, "symbol": "AAPL", "shares": 10, "price": 150.5},
		{"type": "sell", "user_id": 1, "symbol": "AAPL", "shares": 5, "price": 151},
		{"type": "buy", "user_id": 2, "symbol": "TSLA", "shares": 3, "price": 180},
		{"type": "sell", "user_id": 2, "symbol": "MSFT", "shares": 7, "price": 300},
	} {
		w := env.do(t, "POST", "/trades", body, token)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	tests := []struct {
		name    string
		query   string
		wantIDs []float64
	}{
		{"All", "", []float64{1, 2, 3, 4}},
		{"Buy", "?type=buy", []float64{1, 3}},
		{"Sell", "?type=sell", []float64{2, 4}},
		{"User", "?user_id=1", []float64{1, 2}},
		{"UserWholeFloat", "?user_id=1.0", []float64{1, 2}},
		{"BuyForUser", "?type=buy&user_id=2", []float64{3}},
		{"EmptyValuesIgnored", "?type=&user_id=", []float64{1, 2, 3, 4}},
		{"NoMatch", "?user_id=99", []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, "GET", "/trades"+tt.query, nil, token)
			require.Equal(t, http.StatusOK, w.Code)

			var rows []map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
			ids := make([]float64, 0, len(rows))
			for _, row := range rows {
				ids = append(ids, row["id"].(float64))
				assert.Contains(t, row, "timestamp")
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	t.Run("InvalidType", func(t *testing.T) {
		w := env.do(t, "GET", "/trades?type=hold", nil, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, map[string]string{"type": "type must be either 'buy' or 'sell'"}, validationProperties(t, w))
	})

	for _, bad := range []string{"abc", "1.5", "NaN", "Inf"} {
		t.Run("InvalidUserID_"+bad, func(t *testing.T) {
			w := env.do(t, "GET", "/trades?user_id="+bad, nil, token)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, map[string]string{"user_id": "user_id must be a valid number"}, validationProperties(t, w))
		})
	}
}

func TestHandler_GetTradeNotFound(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "alice@example.com")

	for _, path := range []string{"/trades/42", "/trades/abc"} {
		w := env.do(t, "GET", path, nil, token)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "Trade not found", decodeMap(t, w)["message"])
	}
}

func TestHandler_TradesAreImmutable(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "alice@example.com")

	for _, method := range []string{"DELETE", "PUT", "PATCH"} {
		w := env.do(t, method, "/trades/1", map[string]interface{}{"shares": 5}, token)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
		assert.Equal(t, "Method Not Allowed", decodeMap(t, w)["message"])

		// the guard still runs first
		w = env.do(t, method, "/trades/1", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, method)
	}

	w := env.do(t, "POST", "/trades/5", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, "POST", "/trades/5", map[string]interface{}{"shares": 5}, token)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandler_StoreFailureIsInternal(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "alice@example.com")
	env.store.Err = errors.New("connection refused to 10.0.0.1")

	w := env.do(t, "GET", "/trades", nil, token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to fetch trades", decodeMap(t, w)["message"])
	assert.NotContains(t, w.Body.String(), "10.0.0.1")

	w = env.do(t, "POST", "/auth/login", map[string]string{"email": "alice@example.com", "password": "password123"}, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandler_UnknownRoute(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, "GET", "/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, "GET", "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHandler_TradeStream(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "alice@example.com")
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/trades/stream"

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return env.hub.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)

	w := env.do(t, "POST", "/trades", map[string]interface{}{
		"type": "sell", "user_id": 1, "symbol": "NVDA", "shares": 2, "price": 900.25,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got map[string]interface{}
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, float64(1), got["id"])
	assert.Equal(t, "NVDA", got["symbol"])
	assert.Equal(t, 900.25, got["price"])
}

func TestClaimsFromContext(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "alice@example.com")

	var seen *auth.Claims
	h := &Handler{Auth: env.auth, Logger: zap.NewNop()}
	protected := h.JWTAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "bearer "+token)
	protected.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, seen)
	assert.Equal(t, "alice@example.com", seen.Email)
	id, err := seen.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	_, ok := ClaimsFromContext(context.Background())
	assert.False(t, ok)
}
