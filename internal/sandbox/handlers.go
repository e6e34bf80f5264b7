package sandbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aristath/tradeboard/internal/api"
)

type contextKey struct{}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type accountSummary struct {
	Balance      float64 `json:"balance"`
	Equity       float64 `json:"equity"`
	UnrealizedPL float64 `json:"unrealized_pl"`
	RealizedPL   float64 `json:"realized_pl"`
	DailyPL      float64 `json:"daily_pl"`
}

type positionData struct {
	Symbol       string  `json:"symbol"`
	Quantity     int64   `json:"quantity"`
	AveragePrice float64 `json:"average_price"`
	CurrentValue float64 `json:"current_value"`
	UnrealizedPL float64 `json:"unrealized_pl"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// readCredentials accepts a urlencoded form, like the browser login page, or a JSON body.
func readCredentials(r *http.Request) (credentials, error) {
	var c credentials
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			return c, fmt.Errorf("invalid JSON body: %w", err)
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return c, fmt.Errorf("invalid form body: %w", err)
		}
		c.Username = r.PostFormValue("username")
		c.Password = r.PostFormValue("password")
	}
	if c.Username == "" || c.Password == "" {
		return c, errors.New("username and password are required")
	}
	return c, nil
}

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := s.sessionUser(r)
		if !ok {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, username)))
	})
}

func (s *Server) sessionUser(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	username, ok := s.sessions[cookie.Value]
	if !ok {
		return "", false
	}
	_, exists := s.accounts[username]
	return username, exists
}

func currentUser(r *http.Request) string {
	username, _ := r.Context().Value(contextKey{}).(string)
	return username
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	c, err := readCredentials(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, message{Message: err.Error()})
		return
	}

	s.mu.Lock()
	acc, ok := s.accounts[c.Username]
	valid := ok && acc.password == c.Password
	token := ""
	if valid {
		token = uuid.NewString()
		s.sessions[token] = c.Username
	}
	s.mu.Unlock()

	if !valid {
		s.log.Warn().Str("username", c.Username).Msg("Login rejected")
		s.writeJSON(w, http.StatusUnauthorized, message{Message: "Invalid username or password"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionLifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.log.Info().Str("username", c.Username).Msg("User logged in")
	s.writeJSON(w, http.StatusOK, message{Success: true, Message: "Logged in successfully."})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		s.mu.Lock()
		username := s.sessions[cookie.Value]
		delete(s.sessions, cookie.Value)
		s.mu.Unlock()
		s.log.Info().Str("username", username).Msg("User logged out")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	s.writeJSON(w, http.StatusOK, message{Success: true, Message: "Logged out successfully."})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	c, err := readCredentials(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, message{Message: err.Error()})
		return
	}

	if err := s.AddUser(c.Username, c.Password); err != nil {
		if errors.Is(err, ErrUserExists) {
			s.writeJSON(w, http.StatusConflict, message{Message: "Username already exists. Please choose a different one."})
			return
		}
		s.writeJSON(w, http.StatusInternalServerError, message{Message: "Registration failed: " + err.Error()})
		return
	}

	s.log.Info().Str("username", c.Username).Msg("User registered")
	s.writeJSON(w, http.StatusCreated, message{Success: true, Message: "Registered successfully. Please log in."})
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	balance := s.accounts[currentUser(r)].balance
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, map[string]float64{"balance": balance.InexactFloat64()})
}

func (s *Server) handleAccountSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	acc := s.accounts[currentUser(r)]
	unrealized := acc.position.unrealizedPL(s.quote)
	summary := accountSummary{
		Balance:      acc.balance.InexactFloat64(),
		Equity:       acc.balance.Add(unrealized).InexactFloat64(),
		UnrealizedPL: unrealized.InexactFloat64(),
	}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	pos := s.accounts[currentUser(r)].position
	quote := s.quote
	s.mu.Unlock()

	positions := []positionData{}
	if pos.quantity != 0 {
		positions = append(positions, positionData{
			Symbol:       s.symbol,
			Quantity:     pos.quantity,
			AveragePrice: pos.averagePrice.InexactFloat64(),
			CurrentValue: quote.Mul(decimal.NewFromInt(abs(pos.quantity))).InexactFloat64(),
			UnrealizedPL: pos.unrealizedPL(quote).InexactFloat64(),
		})
	}

	s.writeJSON(w, http.StatusOK, map[string][]positionData{"positions": positions})
}

func (s *Server) handleMarketData(w http.ResponseWriter, r *http.Request) {
	quote := s.Quote()
	if quote.IsZero() {
		s.writeJSON(w, http.StatusOK, map[string]float64{})
		return
	}

	price := quote.InexactFloat64()
	s.writeJSON(w, http.StatusOK, map[string]float64{"Close": price, "Last": price})
}

func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request) {
	var req api.TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, message{Message: "Invalid trade request"})
		return
	}

	username := currentUser(r)
	action, orderID, err := s.placeOrder(username, req)
	if err != nil {
		s.log.Error().Err(err).Str("username", username).Msg("Failed to place order")
		s.writeJSON(w, http.StatusOK, message{Message: "Failed to place order: " + err.Error()})
		return
	}

	s.log.Info().
		Str("username", username).
		Str("action", string(action)).
		Int("quantity", req.Quantity).
		Str("order_id", orderID).
		Msg("Order filled")

	text := fmt.Sprintf("%s order for %d contracts placed successfully. Order ID: %s",
		capitalize(string(action)), req.Quantity, orderID)
	s.writeJSON(w, http.StatusOK, message{Success: true, Message: text})
}

// placeOrder fills a market order at the current quote.
func (s *Server) placeOrder(username string, req api.TradeRequest) (api.Action, string, error) {
	action, err := api.ParseAction(string(req.Action))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}
	if req.Quantity <= 0 {
		return "", "", fmt.Errorf("%w: quantity must be positive", ErrInvalidOrder)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quote.IsZero() {
		return "", "", ErrNoMarketData
	}

	delta := int64(req.Quantity)
	if action == api.ActionSell {
		delta = -delta
	}
	acc := s.accounts[username]
	acc.position = acc.position.fill(delta, s.quote)

	return action, uuid.NewString(), nil
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	s.mu.Lock()
	acc, ok := s.accounts[username]
	if ok {
		acc.balance = StartingBalance
		acc.position = position{}
	}
	s.mu.Unlock()

	if !ok {
		s.log.Warn().Str("username", username).Msg("Reset attempted for non-existent user")
		s.writeJSON(w, http.StatusNotFound, message{Message: "User not found"})
		return
	}

	s.log.Info().Str("username", username).Msg("User data reset")
	s.writeJSON(w, http.StatusOK, message{Success: true, Message: "User data reset successfully for " + username})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
