package bridgestore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsafe/icp-token/pkg/bridge"
	"github.com/chainsafe/icp-token/pkg/chain"
)

var (
	tokenContract = chain.Name("eosio.token")
	alice         = chain.Name("alice")
	bob           = chain.Name("bob")
)

// runStoreTests exercises behavior every Store implementation shares.
func runStoreTests(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()

	t.Run("config is created once", func(t *testing.T) {
		ctx, store := context.Background(), newStore(t)

		_, err := store.GetConfig(ctx)
		require.ErrorIs(t, err, ErrNotFound)

		cfg := &bridge.ChannelConfig{ICP: "icp", Peer: "peer"}
		require.NoError(t, store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
			return tx.CreateConfig(ctx, cfg)
		}))

		err = store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
			return tx.CreateConfig(ctx, cfg)
		})
		require.ErrorIs(t, err, ErrAlreadyExists)

		got, err := store.GetConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, cfg, got)
	})

	t.Run("accounts", func(t *testing.T) {
		ctx, store := context.Background(), newStore(t)

		require.NoError(t, store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
			return tx.CreateAccount(ctx, &bridge.Account{Name: alice})
		}))

		ok, err := store.AccountExists(ctx, alice)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.AccountExists(ctx, bob)
		require.NoError(t, err)
		assert.False(t, ok)

		err = store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
			return tx.CreateAccount(ctx, &bridge.Account{Name: alice})
		})
		require.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("supplies and balances", func(t *testing.T) {
		ctx, store := context.Background(), newStore(t)

		require.NoError(t, store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
			if err := tx.CreateSupply(ctx, &bridge.SupplyRecord{
				Contract: tokenContract,
				Supply:   chain.MustParseAsset("0.0000 TOK"),
			}); err != nil {
				return err
			}
			if err := tx.UpdateSupply(ctx, &bridge.SupplyRecord{
				Contract: tokenContract,
				Supply:   chain.MustParseAsset("5.0000 TOK"),
			}); err != nil {
				return err
			}
			if err := tx.SaveBalance(ctx, &bridge.Balance{
				Contract: tokenContract, Owner: alice, Balance: chain.MustParseAsset("2.0000 TOK"),
			}); err != nil {
				return err
			}
			return tx.SaveBalance(ctx, &bridge.Balance{
				Contract: tokenContract, Owner: alice, Balance: chain.MustParseAsset("5.0000 TOK"),
			})
		}))

		supply, err := store.GetSupply(ctx, tokenContract, "TOK")
		require.NoError(t, err)
		assert.Equal(t, "5.0000 TOK", supply.Supply.String())

		_, err = store.GetSupply(ctx, tokenContract, "ABC")
		require.ErrorIs(t, err, ErrNotFound)

		bal, err := store.GetBalance(ctx, tokenContract, alice, "TOK")
		require.NoError(t, err)
		assert.Equal(t, "5.0000 TOK", bal.Balance.String())

		_, err = store.GetBalance(ctx, tokenContract, bob, "TOK")
		require.ErrorIs(t, err, ErrNotFound)

		supplies, err := store.ListSupplies(ctx)
		require.NoError(t, err)
		require.Len(t, supplies, 1)

		balances, err := store.ListBalances(ctx)
		require.NoError(t, err)
		require.Len(t, balances, 1)

		err = store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
			return tx.UpdateSupply(ctx, &bridge.SupplyRecord{
				Contract: tokenContract, Supply: chain.MustParseAsset("1 XYZ"),
			})
		})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("deposits", func(t *testing.T) {
		ctx, store := context.Background(), newStore(t)

		rec := &bridge.DepositRecord{
			Contract: tokenContract,
			Owner:    alice,
			Balance:  chain.MustParseAsset("1.0000 TOK"),
		}
		require.NoError(t, store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
			return tx.CreateDeposit(ctx, rec)
		}))
		assert.NotZero(t, rec.ID)

		err := store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
			return tx.CreateDeposit(ctx, &bridge.DepositRecord{
				Contract: tokenContract, Owner: alice, Balance: chain.MustParseAsset("2.0000 TOK"),
			})
		})
		require.ErrorIs(t, err, ErrAlreadyExists)

		require.NoError(t, store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
			if err := tx.CreateDeposit(ctx, &bridge.DepositRecord{
				Contract: tokenContract, Owner: bob, Balance: chain.MustParseAsset("3.0000 TOK"),
			}); err != nil {
				return err
			}
			rec.Balance = chain.MustParseAsset("4.0000 TOK")
			rec.UpdatedAt = time.Now().UTC()
			return tx.UpdateDeposit(ctx, rec)
		}))

		got, err := store.GetDeposit(ctx, tokenContract, alice, "TOK")
		require.NoError(t, err)
		assert.Equal(t, rec.ID, got.ID)
		assert.Equal(t, "4.0000 TOK", got.Balance.String())

		all, err := store.ListDeposits(ctx, bridge.DepositFilter{})
		require.NoError(t, err)
		require.Len(t, all, 2)

		bobs, err := store.ListDeposits(ctx, bridge.DepositFilter{Owner: bob})
		require.NoError(t, err)
		require.Len(t, bobs, 1)
		assert.Equal(t, "3.0000 TOK", bobs[0].Balance.String())

		require.NoError(t, store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
			return tx.DeleteDeposit(ctx, rec.ID)
		}))
		_, err = store.GetDeposit(ctx, tokenContract, alice, "TOK")
		require.ErrorIs(t, err, ErrNotFound)

		err = store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
			return tx.DeleteDeposit(ctx, rec.ID)
		})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("escrows", func(t *testing.T) {
		ctx, store := context.Background(), newStore(t)

		for _, seq := range []uint64{2, 1} {
			require.NoError(t, store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
				return tx.CreateEscrow(ctx, &bridge.EscrowRecord{
					Sequence: seq,
					Contract: tokenContract,
					Owner:    alice,
					Amount:   chain.MustParseAsset("1.0000 TOK"),
					Refund:   seq == 2,
				})
			}))
		}

		err := store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
			return tx.CreateEscrow(ctx, &bridge.EscrowRecord{
				Sequence: 1, Contract: tokenContract, Owner: bob, Amount: chain.MustParseAsset("1.0000 TOK"),
			})
		})
		require.ErrorIs(t, err, ErrAlreadyExists)

		escrows, err := store.ListEscrows(ctx)
		require.NoError(t, err)
		require.Len(t, escrows, 2)
		count, err := store.CountEscrows(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Equal(t, uint64(1), escrows[0].Sequence)
		assert.True(t, escrows[1].Refund)

		require.NoError(t, store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
			return tx.DeleteEscrow(ctx, 1)
		}))
		_, err = store.GetEscrow(ctx, 1)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("sequences are per channel and start at one", func(t *testing.T) {
		ctx, store := context.Background(), newStore(t)

		var got []uint64
		require.NoError(t, store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
			for _, ch := range []chain.Name{"icp", "icp", "other", "icp"} {
				seq, err := tx.NextSequence(ctx, ch)
				if err != nil {
					return err
				}
				got = append(got, seq)
			}
			return nil
		}))
		assert.Equal(t, []uint64{1, 2, 1, 3}, got)
	})

	t.Run("failed transaction rolls back", func(t *testing.T) {
		ctx, store := context.Background(), newStore(t)
		boom := errors.New("boom")

		err := store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
			if err := tx.CreateAccount(ctx, &bridge.Account{Name: alice}); err != nil {
				return err
			}
			if _, err := tx.NextSequence(ctx, "icp"); err != nil {
				return err
			}
			action, err := bridge.NewAction("icp", bridge.ActionSendAction, nil)
			if err != nil {
				return err
			}
			if err := tx.EnqueueAction(ctx, bridge.NewOutboxAction(bridge.OutboxKindSendAction, action, time.Now())); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		ok, err := store.AccountExists(ctx, alice)
		require.NoError(t, err)
		assert.False(t, ok)

		actions, err := store.ListActions(ctx, "", 0)
		require.NoError(t, err)
		assert.Empty(t, actions)

		var seq uint64
		require.NoError(t, store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
			seq, err = tx.NextSequence(ctx, "icp")
			return err
		}))
		assert.Equal(t, uint64(1), seq)
	})

	t.Run("outbox delivery bookkeeping", func(t *testing.T) {
		ctx, store := context.Background(), newStore(t)
		now := time.Now().UTC().Truncate(time.Millisecond)

		var queued []*bridge.OutboxAction
		require.NoError(t, store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
			for _, to := range []chain.Name{alice, bob, "carol"} {
				action, err := bridge.NewAction(tokenContract, bridge.ActionTransfer, bridge.TransferPayload{
					From: "bridge", To: to, Quantity: chain.MustParseAsset("1.0000 TOK"),
				})
				if err != nil {
					return err
				}
				oa := bridge.NewOutboxAction(bridge.OutboxKindTransfer, action, now)
				if err := tx.EnqueueAction(ctx, oa); err != nil {
					return err
				}
				queued = append(queued, oa)
			}
			return nil
		}))

		pending, err := store.ListPendingActions(ctx, 2)
		require.NoError(t, err)
		require.Len(t, pending, 2)
		assert.Equal(t, queued[0].ID, pending[0].ID)
		assert.Equal(t, queued[1].ID, pending[1].ID)
		assert.Equal(t, tokenContract, pending[0].Target)

		require.NoError(t, store.MarkActionDelivered(ctx, queued[0].ID, now))

		status, err := store.MarkActionFailed(ctx, queued[1].ID, "unreachable", 2, now)
		require.NoError(t, err)
		assert.Equal(t, bridge.OutboxStatusPending, status)

		status, err = store.MarkActionFailed(ctx, queued[1].ID, "unreachable", 2, now)
		require.NoError(t, err)
		assert.Equal(t, bridge.OutboxStatusFailed, status)

		pending, err = store.ListPendingActions(ctx, 0)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, queued[2].ID, pending[0].ID)

		failed, err := store.ListActions(ctx, bridge.OutboxStatusFailed, 0)
		require.NoError(t, err)
		require.Len(t, failed, 1)
		assert.Equal(t, 2, failed[0].Attempts)
		assert.Equal(t, "unreachable", failed[0].LastError)

		err = store.MarkActionDelivered(ctx, uuid.New(), now)
		require.ErrorIs(t, err, ErrNotFound)
		_, err = store.MarkActionFailed(ctx, uuid.New(), "x", 1, now)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("requeued action keeps its queue position", func(t *testing.T) {
		ctx, store := context.Background(), newStore(t)
		now := time.Now().UTC().Truncate(time.Millisecond)

		var queued []*bridge.OutboxAction
		require.NoError(t, store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
			for _, to := range []chain.Name{alice, bob} {
				action, err := bridge.NewAction(tokenContract, bridge.ActionTransfer, bridge.TransferPayload{
					From: "bridge", To: to, Quantity: chain.MustParseAsset("1.0000 TOK"),
				})
				if err != nil {
					return err
				}
				oa := bridge.NewOutboxAction(bridge.OutboxKindTransfer, action, now)
				if err := tx.EnqueueAction(ctx, oa); err != nil {
					return err
				}
				queued = append(queued, oa)
			}
			return nil
		}))

		status, err := store.MarkActionFailed(ctx, queued[0].ID, "unreachable", 1, now)
		require.NoError(t, err)
		require.Equal(t, bridge.OutboxStatusFailed, status)

		require.NoError(t, store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
			return tx.RequeueAction(ctx, queued[0].ID, now)
		}))

		got, err := store.GetAction(ctx, queued[0].ID)
		require.NoError(t, err)
		assert.Equal(t, bridge.OutboxStatusPending, got.Status)
		assert.Zero(t, got.Attempts)
		assert.Equal(t, "unreachable", got.LastError)

		pending, err := store.ListPendingActions(ctx, 0)
		require.NoError(t, err)
		require.Len(t, pending, 2)
		assert.Equal(t, queued[0].ID, pending[0].ID)

		_, err = store.GetAction(ctx, uuid.New())
		require.ErrorIs(t, err, ErrNotFound)
		err = store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
			return tx.RequeueAction(ctx, uuid.New(), now)
		})
		require.ErrorIs(t, err, ErrNotFound)
	})
}
