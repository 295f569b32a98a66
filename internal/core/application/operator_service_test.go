package application_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitcoin-tales/talesd/internal/core/application"
	"github.com/bitcoin-tales/talesd/internal/core/domain"
)

func TestSetupIsIdempotent(t *testing.T) {
	wallet := newMockWalletService()
	rig := newTestRig(t, wallet, 0)

	miner, err := rig.repoManager.LedgerRepository().GetWallet(
		ctx, domain.WalletRoleMiner,
	)
	require.NoError(t, err)
	require.True(t, miner.IsProvisioned())
	require.Equal(t, "mike", miner.Name)

	merchant, err := rig.repoManager.LedgerRepository().GetWallet(
		ctx, domain.WalletRoleMerchant,
	)
	require.NoError(t, err)
	require.True(t, merchant.IsProvisioned())
	require.Equal(t, "mary", merchant.Name)

	// a second run leaves provisioned wallets untouched
	require.NoError(t, rig.operator.Setup(ctx))

	minerAgain, err := rig.repoManager.LedgerRepository().GetWallet(
		ctx, domain.WalletRoleMiner,
	)
	require.NoError(t, err)
	require.Equal(t, miner.Address, minerAgain.Address)
}

func TestMine(t *testing.T) {
	wallet := newMockWalletService()
	rig := newTestRig(t, wallet, 0)

	require.Error(t, rig.operator.Mine(ctx, 0))
	require.Error(t, rig.operator.Mine(ctx, -5))

	require.NoError(t, rig.operator.Mine(ctx, 2))

	// the miner balance is refreshed right after mining
	balances, err := rig.operator.GetBalances(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(105000), balances.MinerBalance)
}

func TestReset(t *testing.T) {
	wallet := newMockWalletService()
	wallet.confirmAfter = 1
	rig := newTestRig(t, wallet, 0)

	_, err := rig.operator.RefreshBalances(ctx)
	require.NoError(t, err)

	events := rig.tracker.SubscribeLifecycleEvents()
	defer rig.tracker.UnsubscribeLifecycleEvents(events)

	_, err = rig.tracker.SubmitSpend(ctx, 4000, "buying Hummus")
	require.NoError(t, err)
	waitForState(t, events, application.StateConfirmed)

	require.NoError(t, rig.operator.Reset(ctx))

	// back to first-run state: no provisioned wallets, empty history
	_, err = rig.repoManager.LedgerRepository().GetWallet(
		ctx, domain.WalletRoleMiner,
	)
	require.ErrorIs(t, err, domain.ErrWalletNotFound)

	history, err := rig.operator.GetHistory(ctx)
	require.NoError(t, err)
	require.Empty(t, history)

	balances, err := rig.operator.GetBalances(ctx)
	require.NoError(t, err)
	require.Zero(t, balances.MinerBalance)
	require.Zero(t, balances.MerchantBalance)
}

func TestMenuService(t *testing.T) {
	wallet := newMockWalletService()
	rig := newTestRig(t, wallet, 0)

	menu, err := rig.menu.GetMenu(ctx)
	require.NoError(t, err)
	require.Len(t, menu, len(domain.DefaultMenu))

	item, err := rig.menu.GetItem(ctx, "hummus")
	require.NoError(t, err)
	require.Equal(t, uint64(4000), item.Price)

	_, err = rig.menu.GetItem(ctx, "notexisting")
	require.ErrorIs(t, err, domain.ErrUnknownMenuItem)

	t.Run("price_override", func(t *testing.T) {
		require.NoError(t, rig.menu.SetPrice(ctx, "hummus", 5000))

		item, err := rig.menu.GetItem(ctx, "hummus")
		require.NoError(t, err)
		require.Equal(t, uint64(5000), item.Price)

		// overrides survive only for known items
		err = rig.menu.SetPrice(ctx, "notexisting", 1)
		require.ErrorIs(t, err, domain.ErrUnknownMenuItem)

		// the default is untouched for the other items
		other, err := rig.menu.GetItem(ctx, "mango-salad")
		require.NoError(t, err)
		require.Equal(t, uint64(20000), other.Price)
	})
}
