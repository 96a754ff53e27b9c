package server

import (
	"net/http"

	"github.com/fracshare/rwaledger/internal/domain"
	"github.com/fracshare/rwaledger/internal/repository"
)

type mintTokenRequest struct {
	AssetID uint64          `json:"asset_id"`
	OwnerID domain.Identity `json:"owner_id"`
	Amount  uint64          `json:"amount"`
	Price   uint64          `json:"price"`
}

func (s *Server) handleMintToken(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req mintTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	owner := req.OwnerID
	if owner == domain.NilIdentity {
		owner = caller
	}
	token, err := s.tokens.Mint(r.Context(), caller, req.AssetID, owner, req.Amount, req.Price)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, token)
}

func (s *Server) handleGetToken(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	token, err := s.tokens.GetToken(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

func (s *Server) handleListTokens(w http.ResponseWriter, r *http.Request) {
	filter := &repository.TokenFilter{}
	if raw := r.URL.Query().Get("owner"); raw != "" {
		owner, err := domain.ParseIdentity(raw)
		if err != nil {
			writeError(w, domain.Errorf(domain.KindInvalidArgument, "invalid owner id"))
			return
		}
		filter.OwnerID = &owner
	}
	if raw := r.URL.Query().Get("asset"); raw != "" {
		assetID, err := parseUint(raw, "asset")
		if err != nil {
			writeError(w, err)
			return
		}
		filter.AssetID = &assetID
	}
	tokens, err := s.tokens.ListTokens(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

type transferTokenRequest struct {
	NewOwner domain.Identity `json:"new_owner"`
}

func (s *Server) handleTransferToken(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req transferTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.NewOwner == domain.NilIdentity {
		writeError(w, domain.Errorf(domain.KindInvalidArgument, "new_owner is required"))
		return
	}
	token, err := s.tokens.Transfer(r.Context(), caller, id, req.NewOwner)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}
