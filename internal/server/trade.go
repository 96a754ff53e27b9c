package server

import (
	"net/http"

	"github.com/fracshare/rwaledger/internal/domain"
	"github.com/fracshare/rwaledger/internal/manager"
	"github.com/fracshare/rwaledger/internal/repository"
)

type createTradeRequest struct {
	BuyerID  domain.Identity `json:"buyer_id"`
	SellerID domain.Identity `json:"seller_id"`
	TokenID  uint64          `json:"token_id"`
	AssetID  uint64          `json:"asset_id"`
	Quantity uint64          `json:"quantity"`
	Price    uint64          `json:"price"`
	Currency domain.Currency `json:"currency"`
}

func (s *Server) handleCreateTrade(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req createTradeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	trade, err := s.trades.CreateTrade(r.Context(), caller, manager.CreateTradeInput{
		BuyerID:  req.BuyerID,
		SellerID: req.SellerID,
		TokenID:  req.TokenID,
		AssetID:  req.AssetID,
		Quantity: req.Quantity,
		Price:    req.Price,
		Currency: req.Currency,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trade)
}

func (s *Server) handleGetTrade(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	trade, err := s.trades.GetTrade(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trade)
}

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	filter := &repository.TradeFilter{}
	if raw := r.URL.Query().Get("user"); raw != "" {
		party, err := domain.ParseIdentity(raw)
		if err != nil {
			writeError(w, domain.Errorf(domain.KindInvalidArgument, "invalid user id"))
			return
		}
		filter.PartyID = &party
	}
	if raw := r.URL.Query().Get("asset"); raw != "" {
		assetID, err := parseUint(raw, "asset")
		if err != nil {
			writeError(w, err)
			return
		}
		filter.AssetID = &assetID
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.TradeStatus(raw)
		if !status.Valid() {
			writeError(w, domain.Errorf(domain.KindInvalidArgument, "unknown trade status: %s", raw))
			return
		}
		filter.Status = &status
	}
	trades, err := s.trades.ListTrades(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trades)
}

type updateTradeStatusRequest struct {
	Status domain.TradeStatus `json:"status"`
	Filled uint64             `json:"filled"`
}

func (s *Server) handleUpdateTradeStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req updateTradeStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	trade, err := s.trades.UpdateStatus(r.Context(), caller, id, req.Status, req.Filled)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trade)
}
