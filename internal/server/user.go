package server

import (
	"net/http"

	"github.com/fracshare/rwaledger/internal/domain"
)

type registerUserRequest struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	WalletAddress string `json:"wallet_address"`
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req registerUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	user, err := s.users.Register(r.Context(), caller, req.Username, req.Email, req.WalletAddress)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseIdentity(pathParam(r, "id"))
	if err != nil {
		writeError(w, domain.Errorf(domain.KindInvalidArgument, "invalid user id"))
		return
	}
	user, err := s.users.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	users, err := s.users.ListUsers(r.Context(), caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var profile domain.Profile
	if err := decodeJSON(r, &profile); err != nil {
		writeError(w, err)
		return
	}
	user, err := s.users.UpdateProfile(r.Context(), caller, &profile)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type setKYCStatusRequest struct {
	Status domain.KYCStatus `json:"status"`
}

func (s *Server) handleSetKYCStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	subject, err := domain.ParseIdentity(pathParam(r, "id"))
	if err != nil {
		writeError(w, domain.Errorf(domain.KindInvalidArgument, "invalid user id"))
		return
	}
	var req setKYCStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	user, err := s.users.SetKYCStatus(r.Context(), caller, subject, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type setRoleRequest struct {
	Role domain.Role `json:"role"`
}

func (s *Server) handleSetRole(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	subject, err := domain.ParseIdentity(pathParam(r, "id"))
	if err != nil {
		writeError(w, domain.Errorf(domain.KindInvalidArgument, "invalid user id"))
		return
	}
	var req setRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	user, err := s.users.SetRole(r.Context(), caller, subject, req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
