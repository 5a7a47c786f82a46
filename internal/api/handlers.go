package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xtrntr/tradelog/internal/apperrors"
	"github.com/xtrntr/tradelog/internal/auth"
	"github.com/xtrntr/tradelog/internal/models"
	"github.com/xtrntr/tradelog/internal/trades"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	Auth   *auth.AuthService
	Trades *trades.TradeService
	Feed   http.Handler // optional live trade stream
	Logger *zap.Logger
}

// NewHandler creates a new handler
func NewHandler(authService *auth.AuthService, tradeService *trades.TradeService, feed http.Handler, logger *zap.Logger) *Handler {
	return &Handler{Auth: authService, Trades: tradeService, Feed: feed, Logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

type refreshRequest struct {
	Token string `json:"token" validate:"required"`
}

type createTradeRequest struct {
	Type   string       `json:"type" validate:"required,oneof=buy sell"`
	UserID *wholeNumber `json:"user_id" validate:"required"`
	Symbol string       `json:"symbol" validate:"required"`
	Shares *wholeNumber `json:"shares" validate:"required,min=1,max=100"`
	Price  *float64     `json:"price" validate:"required"`
}

type tradesQuery struct {
	Type   string `json:"type" validate:"omitempty,oneof=buy sell" msg:"type must be either 'buy' or 'sell'"`
	UserID string `json:"user_id" validate:"omitempty,integer" msg:"user_id must be a valid number"`
}

// SignUp handles user registration
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.respondErr(w, r, err)
		return
	}

	if err := h.Auth.Signup(r.Context(), req.Email, req.Password); err != nil {
		h.respondErr(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"statusCode": http.StatusCreated,
		"message":    "User created, please login!",
	})
}

// Login handles user login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.respondErr(w, r, err)
		return
	}

	pair, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pair)
}

// RefreshToken exchanges a valid token for a new access token
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.respondErr(w, r, err)
		return
	}

	access, err := h.Auth.Refresh(req.Token)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"accessToken": access})
}

// CreateTrade records a trade
func (h *Handler) CreateTrade(w http.ResponseWriter, r *http.Request) {
	var req createTradeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.respondErr(w, r, err)
		return
	}

	id, err := h.Trades.Create(r.Context(), models.NewTrade{
		Type:   req.Type,
		UserID: int64(*req.UserID),
		Symbol: req.Symbol,
		Shares: int(*req.Shares),
		Price:  *req.Price,
	})
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"statusCode":    http.StatusCreated,
		"tradeObjectId": id,
	})
}

// ListTrades returns trades, optionally filtered by type and user_id
func (h *Handler) ListTrades(w http.ResponseWriter, r *http.Request) {
	q := tradesQuery{
		Type:   r.URL.Query().Get("type"),
		UserID: r.URL.Query().Get("user_id"),
	}
	if verr := validateStruct(&q); verr != nil {
		h.respondErr(w, r, verr)
		return
	}

	var filter models.TradeFilter
	if q.Type != "" {
		filter.Type = &q.Type
	}
	if q.UserID != "" {
		// already checked by the integer rule
		userID, _ := parseWhole(q.UserID)
		filter.UserID = &userID
	}

	records, err := h.Trades.List(r.Context(), filter)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// GetTrade returns one trade by id
func (h *Handler) GetTrade(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		// an id that cannot exist is reported the same as a missing one
		h.respondErr(w, r, apperrors.NotFound("Trade not found"))
		return
	}

	record, err := h.Trades.Get(r.Context(), id)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// MethodNotAllowed rejects updates and deletes; trades are immutable
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}

// NotFound is the router's fallback for unknown paths
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Cannot "+r.Method+" "+r.URL.Path)
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
