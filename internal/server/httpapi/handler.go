package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmsantos/transferd/internal/common"
	"github.com/dmsantos/transferd/internal/server/accounts"
	"github.com/dmsantos/transferd/internal/server/transfers"
)

// Wire types. Field names follow the public contract: "saldo" is the balance
// and "favorecidos" the favorites list. The credential hash never appears in
// a response.

type registerRequest struct {
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	Favorecidos []string `json:"favorecidos"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	Username    string   `json:"username"`
	Saldo       int64    `json:"saldo"`
	Favorecidos []string `json:"favorecidos"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type transferRequest struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Value int64  `json:"value"`
}

type transferResponse struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Value     int64     `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toUserResponse(a *accounts.Account) userResponse {
	favorites := a.Favorites
	if favorites == nil {
		favorites = []string{}
	}
	return userResponse{Username: a.Username, Saldo: a.Balance, Favorecidos: favorites}
}

func toTransferResponse(t *transfers.Transfer) transferResponse {
	return transferResponse{ID: t.ID, From: t.From, To: t.To, Value: t.Value, CreatedAt: t.CreatedAt}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, common.ErrValidation)
		return
	}

	account, err := s.accounts.Create(r.Context(), req.Username, req.Password, req.Favorecidos)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "account registered", "username", account.Username)
	s.writeJSON(w, http.StatusCreated, toUserResponse(account))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, common.ErrValidation)
		return
	}

	token, account, err := s.auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "login", "username", account.Username)
	s.writeJSON(w, http.StatusOK, loginResponse{Token: token, User: toUserResponse(account)})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := s.accounts.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]userResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toUserResponse(a))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTransfer(w http.ResponseWriter, r *http.Request) {
	actingUser, ok := principalFrom(r.Context())
	if !ok {
		s.writeError(w, r, common.ErrUnauthorized)
		return
	}

	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, common.ErrValidation)
		return
	}

	committed, err := s.transfers.Execute(r.Context(), req.From, req.To, req.Value, actingUser)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.transfersCommitted.Inc()
	s.logger.Info(r.Context(), "transfer committed",
		"from", committed.From, "to", committed.To, "value", committed.Value)
	s.writeJSON(w, http.StatusCreated, toTransferResponse(committed))
}

func (s *Server) handleListTransfers(w http.ResponseWriter, r *http.Request) {
	actingUser, ok := principalFrom(r.Context())
	if !ok {
		s.writeError(w, r, common.ErrUnauthorized)
		return
	}

	list, err := s.transfers.ListFor(r.Context(), actingUser)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]transferResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTransferResponse(t))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps an error kind to its transport status. The mapping is
// deterministic: a given kind always produces the same status.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, common.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrAlreadyExists),
		errors.Is(err, common.ErrNotFound),
		errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrInvalidValue):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
		s.writeJSON(w, status, errorResponse{Error: common.ErrInternal.Error()})
		return
	}

	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
