package server

import (
	"net/http"

	"github.com/fracshare/rwaledger/internal/domain"
	"github.com/fracshare/rwaledger/internal/repository"
)

type createAssetRequest struct {
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	Category        string             `json:"category"`
	Location        string             `json:"location"`
	Images          []string           `json:"images"`
	Documents       []string           `json:"documents"`
	TotalValue      uint64             `json:"total_value"`
	TokenPrice      uint64             `json:"token_price"`
	TotalTokens     uint64             `json:"total_tokens"`
	APY             float64            `json:"apy"`
	LaunchDate      *string            `json:"launch_date"`
	FundingDeadline *string            `json:"funding_deadline"`
	MonthlyIncome   *uint64            `json:"monthly_income"`
	RiskRating      *string            `json:"risk_rating"`
	KeyMetrics      *domain.KeyMetrics `json:"key_metrics"`
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req createAssetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	asset := &domain.Asset{
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Location:        req.Location,
		Images:          req.Images,
		Documents:       req.Documents,
		TotalValue:      req.TotalValue,
		TokenPrice:      req.TokenPrice,
		TotalTokens:     req.TotalTokens,
		APY:             req.APY,
		LaunchDate:      req.LaunchDate,
		FundingDeadline: req.FundingDeadline,
		MonthlyIncome:   req.MonthlyIncome,
		RiskRating:      req.RiskRating,
		KeyMetrics:      req.KeyMetrics,
	}
	if err := s.assets.CreateAsset(r.Context(), caller, asset); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	asset, err := s.assets.GetAsset(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	filter := &repository.AssetFilter{}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.AssetStatus(raw)
		if !status.Valid() {
			writeError(w, domain.Errorf(domain.KindInvalidArgument, "unknown asset status: %s", raw))
			return
		}
		filter.Status = &status
	}
	if raw := r.URL.Query().Get("category"); raw != "" {
		filter.Category = &raw
	}
	if raw := r.URL.Query().Get("owner"); raw != "" {
		owner, err := domain.ParseIdentity(raw)
		if err != nil {
			writeError(w, domain.Errorf(domain.KindInvalidArgument, "invalid owner id"))
			return
		}
		filter.OwnerID = &owner
	}
	assets, err := s.assets.ListAssets(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var patch domain.AssetPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	asset, err := s.assets.UpdateAsset(r.Context(), caller, id, &patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

func (s *Server) handleApproveAsset(w http.ResponseWriter, r *http.Request) {
	s.handleReviewAsset(w, r, true)
}

func (s *Server) handleRejectAsset(w http.ResponseWriter, r *http.Request) {
	s.handleReviewAsset(w, r, false)
}

func (s *Server) handleReviewAsset(w http.ResponseWriter, r *http.Request, approve bool) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var asset *domain.Asset
	if approve {
		asset, err = s.assets.ApproveAsset(r.Context(), caller, id)
	} else {
		asset, err = s.assets.RejectAsset(r.Context(), caller, id)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.assets.DeleteAsset(r.Context(), caller, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
