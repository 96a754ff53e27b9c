package manager

import (
	"strings"

	"github.com/fracshare/rwaledger/internal/domain"
)

// validateAssetEconomics checks the structural fields of a new asset before
// any state is touched.
func validateAssetEconomics(asset *domain.Asset) error {
	if asset == nil {
		return domain.Errorf(domain.KindInvalidArgument, "asset payload is required")
	}
	if strings.TrimSpace(asset.Name) == "" {
		return domain.Errorf(domain.KindInvalidArgument, "name is required")
	}
	if asset.TotalTokens == 0 {
		return domain.Errorf(domain.KindInvalidArgument, "total_tokens must be positive")
	}
	if asset.TokenPrice == 0 {
		return domain.Errorf(domain.KindInvalidArgument, "token_price must be positive")
	}
	if asset.APY < 0 {
		return domain.Errorf(domain.KindInvalidArgument, "apy cannot be negative")
	}
	return nil
}

// validateStatusTransition enforces the asset sale state machine for
// free-form status edits. Review verdicts (approved/rejected) are reserved
// for the admin review operations; the owner may only advance an approved
// asset through the sale states.
func validateStatusTransition(current, next domain.AssetStatus) error {
	if current == next {
		return nil
	}
	switch next {
	case domain.AssetActive, domain.AssetFunding, domain.AssetSold:
		switch current {
		case domain.AssetApproved, domain.AssetActive, domain.AssetFunding:
			return nil
		}
		return domain.Errorf(domain.KindPreconditionFailed,
			"asset status %s cannot move to %s before approval", current, next)
	}
	return domain.Errorf(domain.KindPreconditionFailed,
		"asset status %s can only be set through the review operations", next)
}
