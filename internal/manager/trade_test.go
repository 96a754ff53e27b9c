package manager

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fracshare/rwaledger/internal/domain"
	"github.com/fracshare/rwaledger/internal/repository"
)

func (env *testEnv) tradeInput(tokenID, assetID uint64) CreateTradeInput {
	return CreateTradeInput{
		BuyerID:  env.bob,
		SellerID: env.alice,
		TokenID:  tokenID,
		AssetID:  assetID,
		Quantity: 10,
		Price:    1000,
		Currency: domain.CurrencyUSD,
	}
}

func TestTradeManager_CreateTrade_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	asset := env.createApprovedAsset(t, 100)
	token := env.mintLot(t, asset.ID, 50)

	tests := []struct {
		name     string
		mutate   func(*CreateTradeInput)
		wantKind domain.ErrorKind
	}{
		{
			name:   "valid trade",
			mutate: func(in *CreateTradeInput) {},
		},
		{
			name:     "zero quantity",
			mutate:   func(in *CreateTradeInput) { in.Quantity = 0 },
			wantKind: domain.KindInvalidArgument,
		},
		{
			name:     "unknown currency",
			mutate:   func(in *CreateTradeInput) { in.Currency = "EUR" },
			wantKind: domain.KindInvalidArgument,
		},
		{
			name:     "buyer equals seller",
			mutate:   func(in *CreateTradeInput) { in.BuyerID = env.alice },
			wantKind: domain.KindInvalidArgument,
		},
		{
			name:     "buyer without KYC approval",
			mutate:   func(in *CreateTradeInput) { in.BuyerID = env.mallo },
			wantKind: domain.KindPreconditionFailed,
		},
		{
			name:     "unknown token",
			mutate:   func(in *CreateTradeInput) { in.TokenID = 9999 },
			wantKind: domain.KindNotFound,
		},
		{
			name:     "token belongs to a different asset",
			mutate:   func(in *CreateTradeInput) { in.AssetID = asset.ID + 1 },
			wantKind: domain.KindInvalidArgument,
		},
		{
			name:     "seller does not hold the lot",
			mutate:   func(in *CreateTradeInput) { in.SellerID = env.bob; in.BuyerID = env.alice },
			wantKind: domain.KindPreconditionFailed,
		},
		{
			name:     "quantity exceeds lot size",
			mutate:   func(in *CreateTradeInput) { in.Quantity = 51 },
			wantKind: domain.KindInvariantViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, err := env.trades.ListTrades(ctx, nil)
			require.NoError(t, err)

			input := env.tradeInput(token.ID, asset.ID)
			tt.mutate(&input)

			trade, err := env.trades.CreateTrade(ctx, input.SellerID, input)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, domain.KindOf(err))

				// A rejected trade must not leave a record behind.
				after, lerr := env.trades.ListTrades(ctx, nil)
				require.NoError(t, lerr)
				assert.Len(t, after, len(before))
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, trade.ID)
			assert.Equal(t, domain.TradePending, trade.Status)
			assert.Zero(t, trade.Filled)
			assert.Equal(t, env.now, trade.CreatedAt)
		})
	}
}

func TestTradeManager_CreateTrade_CallerMustBeParty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	asset := env.createApprovedAsset(t, 100)
	token := env.mintLot(t, asset.ID, 50)

	_, err := env.trades.CreateTrade(ctx, env.mallo, env.tradeInput(token.ID, asset.ID))
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	// An admin may record a trade between two other parties.
	trade, err := env.trades.CreateTrade(ctx, env.admin, env.tradeInput(token.ID, asset.ID))
	require.NoError(t, err)
	assert.Equal(t, domain.TradePending, trade.Status)
}

func TestTradeManager_UpdateStatus_Authorization(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	asset := env.createApprovedAsset(t, 100)
	token := env.mintLot(t, asset.ID, 50)

	trade, err := env.trades.CreateTrade(ctx, env.bob, env.tradeInput(token.ID, asset.ID))
	require.NoError(t, err)

	_, err = env.trades.UpdateStatus(ctx, env.mallo, trade.ID, domain.TradeCancelled, 0)
	require.Error(t, err)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	_, err = env.trades.UpdateStatus(ctx, env.bob, trade.ID, "haggling", 0)
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))

	_, err = env.trades.UpdateStatus(ctx, env.bob, 9999, domain.TradeCancelled, 0)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	// An admin who is not a party may still act.
	got, err := env.trades.UpdateStatus(ctx, env.admin, trade.ID, domain.TradeCancelled, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.TradeCancelled, got.Status)
}

func TestTradeManager_UpdateStatus_FillBounds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	asset := env.createApprovedAsset(t, 100)
	token := env.mintLot(t, asset.ID, 50)

	trade, err := env.trades.CreateTrade(ctx, env.bob, env.tradeInput(token.ID, asset.ID))
	require.NoError(t, err)

	_, err = env.trades.UpdateStatus(ctx, env.bob, trade.ID, domain.TradePending, trade.Quantity+1)
	require.Error(t, err)
	assert.Equal(t, domain.KindInvariantViolation, domain.KindOf(err))

	got, err := env.trades.UpdateStatus(ctx, env.bob, trade.ID, domain.TradePending, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), got.Filled)
}

func TestTradeManager_Complete_SettlesLot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	asset := env.createApprovedAsset(t, 100)
	token := env.mintLot(t, asset.ID, 50)

	trade, err := env.trades.CreateTrade(ctx, env.bob, env.tradeInput(token.ID, asset.ID))
	require.NoError(t, err)

	got, err := env.trades.UpdateStatus(ctx, env.bob, trade.ID, domain.TradeCompleted, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.TradeCompleted, got.Status)
	assert.Equal(t, trade.Quantity, got.Filled)

	lot, err := env.tokens.GetToken(ctx, token.ID)
	require.NoError(t, err)
	assert.Equal(t, env.bob, lot.OwnerID)
	assert.Equal(t, domain.TokenSold, lot.Status)

	// Finalized trades accept no further updates.
	_, err = env.trades.UpdateStatus(ctx, env.bob, trade.ID, domain.TradeCancelled, 0)
	require.Error(t, err)
	assert.Equal(t, domain.KindPreconditionFailed, domain.KindOf(err))
	assert.Contains(t, err.Error(), "already finalized")
}

func TestTradeManager_Complete_FailedSettlementLeavesTradePending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	asset := env.createApprovedAsset(t, 100)
	token := env.mintLot(t, asset.ID, 50)

	trade, err := env.trades.CreateTrade(ctx, env.bob, env.tradeInput(token.ID, asset.ID))
	require.NoError(t, err)

	// Buyer KYC revoked after the trade was agreed: settlement must fail and
	// leave both the trade and the lot untouched.
	_, err = env.users.SetKYCStatus(ctx, env.admin, env.bob, domain.KYCRejected)
	require.NoError(t, err)

	_, err = env.trades.UpdateStatus(ctx, env.alice, trade.ID, domain.TradeCompleted, 0)
	require.Error(t, err)
	assert.Equal(t, domain.KindPreconditionFailed, domain.KindOf(err))

	got, err := env.trades.GetTrade(ctx, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TradePending, got.Status)
	assert.Zero(t, got.Filled)

	lot, err := env.tokens.GetToken(ctx, token.ID)
	require.NoError(t, err)
	assert.Equal(t, env.alice, lot.OwnerID)
	assert.Equal(t, domain.TokenAvailable, lot.Status)
}

func TestTradeManager_ListTrades_Filters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	asset := env.createApprovedAsset(t, 100)
	first := env.mintLot(t, asset.ID, 30)
	second := env.mintLot(t, asset.ID, 30)

	a, err := env.trades.CreateTrade(ctx, env.bob, env.tradeInput(first.ID, asset.ID))
	require.NoError(t, err)
	b, err := env.trades.CreateTrade(ctx, env.bob, env.tradeInput(second.ID, asset.ID))
	require.NoError(t, err)

	_, err = env.trades.UpdateStatus(ctx, env.bob, b.ID, domain.TradeCancelled, 0)
	require.NoError(t, err)

	pending := domain.TradePending
	byStatus, err := env.trades.ListTrades(ctx, &repository.TradeFilter{Status: &pending})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, a.ID, byStatus[0].ID)

	byParty, err := env.trades.ListTrades(ctx, &repository.TradeFilter{PartyID: &env.bob})
	require.NoError(t, err)
	assert.Len(t, byParty, 2)

	byToken, err := env.trades.ListTrades(ctx, &repository.TradeFilter{TokenID: &second.ID})
	require.NoError(t, err)
	require.Len(t, byToken, 1)
	assert.Equal(t, b.ID, byToken[0].ID)
}
