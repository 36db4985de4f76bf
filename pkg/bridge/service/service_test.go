package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chainsafe/icp-token/internal/metrics"
	apperrors "github.com/chainsafe/icp-token/pkg/app/errors"
	"github.com/chainsafe/icp-token/pkg/auth"
	"github.com/chainsafe/icp-token/pkg/bridge"
	"github.com/chainsafe/icp-token/pkg/bridgestore"
	"github.com/chainsafe/icp-token/pkg/chain"
)

const (
	self     chain.Name = "icp.token"
	icp      chain.Name = "icp"
	peer     chain.Name = "icp.peer"
	contract chain.Name = "eosio.token"
	alice    chain.Name = "alice"
	bob      chain.Name = "bob"
)

var (
	selfAuth     = auth.NewAuthority(self, "active")
	callbackAuth = auth.NewAuthority(self, "callback")
	tokenAuth    = auth.NewAuthority(contract, "active")
	aliceAuth    = auth.NewAuthority(alice, "active")
	tok          = chain.MustSymbol(4, "TOK")
)

type testBridge struct {
	svc   Service
	store bridgestore.Store
}

func newUnconfiguredBridge(t *testing.T) *testBridge {
	t.Helper()
	store := bridgestore.NewMemoryStore()
	svc := NewService(store, Config{Self: self}, zap.NewNop())

	ctx := context.Background()
	for _, name := range []chain.Name{alice, bob} {
		_, err := svc.RegisterAccount(ctx, selfAuth, &bridge.RegisterAccountRequest{Name: name})
		require.NoError(t, err)
	}
	_, err := svc.CreateToken(ctx, selfAuth, &bridge.CreateTokenRequest{Contract: contract, Symbol: tok})
	require.NoError(t, err)
	return &testBridge{svc: svc, store: store}
}

func newTestBridge(t *testing.T) *testBridge {
	t.Helper()
	b := newUnconfiguredBridge(t)
	_, err := b.svc.InitConfig(context.Background(), selfAuth, &bridge.InitConfigRequest{ICP: icp, Peer: peer})
	require.NoError(t, err)
	return b
}

func (b *testBridge) deposit(t *testing.T, from chain.Name, quantity string) {
	t.Helper()
	res, err := b.svc.OnNativeTransfer(context.Background(), tokenAuth, &bridge.NativeTransferRequest{
		Contract: contract,
		From:     from,
		To:       self,
		Quantity: chain.MustParseAsset(quantity),
		Memo:     "deposit",
	})
	require.NoError(t, err)
	require.Equal(t, bridge.IntakeDeposited, res.Outcome)
}

func (b *testBridge) receive(t *testing.T, to chain.Name, quantity string) {
	t.Helper()
	res, err := b.svc.PeerReceive(context.Background(), callbackAuth, &bridge.ReceiveRequest{
		Contract: contract,
		From:     bob,
		To:       to,
		Quantity: chain.MustParseAsset(quantity),
		Memo:     "inbound",
	})
	require.NoError(t, err)
	require.Equal(t, "credit/wrapped", res.Settlement)
}

func (b *testBridge) ledger(t *testing.T) bridge.Ledger {
	t.Helper()
	ctx := context.Background()
	var (
		l   bridge.Ledger
		err error
	)
	l.Supplies, err = b.store.ListSupplies(ctx)
	require.NoError(t, err)
	l.Balances, err = b.store.ListBalances(ctx)
	require.NoError(t, err)
	l.Deposits, err = b.store.ListDeposits(ctx, bridge.DepositFilter{})
	require.NoError(t, err)
	l.Escrows, err = b.store.ListEscrows(ctx)
	require.NoError(t, err)
	return l
}

func (b *testBridge) actions(t *testing.T) []*bridge.OutboxAction {
	t.Helper()
	actions, err := b.store.ListActions(context.Background(), "", 0)
	require.NoError(t, err)
	return actions
}

func (b *testBridge) supply(t *testing.T) int64 {
	t.Helper()
	rec, err := b.store.GetSupply(context.Background(), contract, tok.Code)
	require.NoError(t, err)
	return rec.Supply.Amount
}

func (b *testBridge) balance(t *testing.T, owner chain.Name) int64 {
	t.Helper()
	bal, err := b.store.GetBalance(context.Background(), contract, owner, tok.Code)
	if errors.Is(err, bridgestore.ErrNotFound) {
		return 0
	}
	require.NoError(t, err)
	return bal.Balance.Amount
}

func (b *testBridge) assertInvariants(t *testing.T) {
	t.Helper()
	report, err := b.svc.CheckInvariants(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Broken, "violations: %v", report.Violations)
}

// requireServiceError asserts err is a service error with the given message
// and category.
func requireServiceError(t *testing.T, err error, category apperrors.Category, msg string) {
	t.Helper()
	require.Error(t, err)
	var svcErr *apperrors.ServiceError
	require.True(t, errors.As(err, &svcErr), "expected service error, got %v", err)
	assert.Equal(t, category, svcErr.Category)
	assert.Equal(t, msg, svcErr.Message)
}

func decodePacket(t *testing.T, oa *bridge.OutboxAction) (bridge.SendActionPayload, bridge.Action, bridge.ReceivePayload) {
	t.Helper()
	require.Equal(t, bridge.OutboxKindSendAction, oa.Kind)

	var payload bridge.SendActionPayload
	require.NoError(t, json.Unmarshal(oa.Action.Data, &payload))
	var send bridge.Action
	require.NoError(t, json.Unmarshal(payload.SendAction, &send))
	var receive bridge.ReceivePayload
	require.NoError(t, json.Unmarshal(send.Data, &receive))
	return payload, send, receive
}

func TestBridgeService_InitConfig(t *testing.T) {
	ctx := context.Background()
	b := newUnconfiguredBridge(t)

	_, err := b.svc.InitConfig(ctx, aliceAuth, &bridge.InitConfigRequest{ICP: icp, Peer: peer})
	requireServiceError(t, err, apperrors.CategoryUnauthorized, "missing required authority of icp.token")

	cfg, err := b.svc.InitConfig(ctx, selfAuth, &bridge.InitConfigRequest{ICP: icp, Peer: peer})
	require.NoError(t, err)
	assert.Equal(t, &bridge.ChannelConfig{ICP: icp, Peer: peer}, cfg)

	_, err = b.svc.InitConfig(ctx, selfAuth, &bridge.InitConfigRequest{ICP: icp, Peer: "other"})
	requireServiceError(t, err, apperrors.CategoryDataConflict, "contracts already exist")
	assert.ErrorIs(t, err, bridge.ErrAlreadyConfigured)

	got, err := b.svc.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, peer, got.Peer)
}

func TestBridgeService_RegistryAndToken(t *testing.T) {
	ctx := context.Background()
	b := newTestBridge(t)

	_, err := b.svc.RegisterAccount(ctx, selfAuth, &bridge.RegisterAccountRequest{Name: alice})
	requireServiceError(t, err, apperrors.CategoryDataConflict, "account already exists")

	_, err = b.svc.RegisterAccount(ctx, selfAuth, &bridge.RegisterAccountRequest{Name: "Not-Valid"})
	requireServiceError(t, err, apperrors.CategoryDataError, `invalid new account name "Not-Valid"`)

	_, err = b.svc.CreateToken(ctx, selfAuth, &bridge.CreateTokenRequest{Contract: contract, Symbol: tok})
	requireServiceError(t, err, apperrors.CategoryDataConflict, "token with symbol already exists")

	_, err = b.svc.CreateToken(ctx, selfAuth, &bridge.CreateTokenRequest{Contract: contract, Symbol: chain.Symbol{Precision: 4, Code: "tok"}})
	requireServiceError(t, err, apperrors.CategoryDataError, "invalid symbol name")

	rec, err := b.svc.GetSupply(ctx, contract, tok.Code)
	require.NoError(t, err)
	assert.True(t, rec.Supply.IsZero())
	assert.Equal(t, tok, rec.Supply.Symbol)
}

func TestBridgeService_OnNativeTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("requires the token contract", func(t *testing.T) {
		b := newTestBridge(t)
		_, err := b.svc.OnNativeTransfer(ctx, aliceAuth, &bridge.NativeTransferRequest{
			Contract: contract, From: alice, To: self, Quantity: chain.MustParseAsset("1.0000 TOK"),
		})
		requireServiceError(t, err, apperrors.CategoryUnauthorized, "missing required authority of eosio.token")
	})

	t.Run("ignores transfers not addressed to the bridge", func(t *testing.T) {
		b := newTestBridge(t)
		for _, req := range []*bridge.NativeTransferRequest{
			{Contract: contract, From: alice, To: bob, Quantity: chain.MustParseAsset("1.0000 TOK")},
			{Contract: contract, From: self, To: self, Quantity: chain.MustParseAsset("1.0000 TOK")},
		} {
			res, err := b.svc.OnNativeTransfer(ctx, tokenAuth, req)
			require.NoError(t, err)
			assert.Equal(t, bridge.IntakeIgnored, res.Outcome)
		}
		assert.Empty(t, b.ledger(t).Deposits)
	})

	t.Run("merges deposits of the same sender", func(t *testing.T) {
		b := newTestBridge(t)
		b.deposit(t, alice, "60.0000 TOK")
		b.deposit(t, alice, "40.0000 TOK")
		b.deposit(t, bob, "1.0000 TOK")

		deposits, err := b.svc.ListDeposits(ctx, bridge.DepositFilter{Owner: alice})
		require.NoError(t, err)
		require.Len(t, deposits, 1)
		assert.Equal(t, "100.0000 TOK", deposits[0].Balance.String())
		assert.Empty(t, b.actions(t))
	})

	t.Run("directive memo dispatches without a deposit", func(t *testing.T) {
		b := newTestBridge(t)
		res, err := b.svc.OnNativeTransfer(ctx, tokenAuth, &bridge.NativeTransferRequest{
			Contract: contract,
			From:     alice,
			To:       self,
			Quantity: chain.MustParseAsset("5.0000 TOK"),
			Memo:     "icp bob 1700000000",
		})
		require.NoError(t, err)
		assert.Equal(t, bridge.IntakeDispatched, res.Outcome)
		require.NotNil(t, res.Dispatch)
		assert.Equal(t, uint64(1), res.Dispatch.Sequence)
		assert.Equal(t, alice, res.Dispatch.Escrow.Owner)
		assert.False(t, res.Dispatch.Escrow.Refund)
		assert.Empty(t, b.ledger(t).Deposits)

		actions := b.actions(t)
		require.Len(t, actions, 1)
		payload, send, receive := decodePacket(t, actions[0])
		assert.Equal(t, uint32(1700000000), payload.Expiration)
		assert.Equal(t, peer, send.Account)
		assert.Equal(t, bob, receive.To)
		assert.Equal(t, "icp bob 1700000000", receive.Memo)
	})

	t.Run("malformed directive is rejected", func(t *testing.T) {
		b := newTestBridge(t)
		_, err := b.svc.OnNativeTransfer(ctx, tokenAuth, &bridge.NativeTransferRequest{
			Contract: contract,
			From:     alice,
			To:       self,
			Quantity: chain.MustParseAsset("5.0000 TOK"),
			Memo:     "icp bob soon",
		})
		requireServiceError(t, err, apperrors.CategoryDataError, "invalid icp token transfer memo")
		assert.ErrorIs(t, err, bridge.ErrInvalidMemo)
	})

	t.Run("rejects non positive quantities", func(t *testing.T) {
		b := newTestBridge(t)
		_, err := b.svc.OnNativeTransfer(ctx, tokenAuth, &bridge.NativeTransferRequest{
			Contract: contract, From: alice, To: self, Quantity: chain.MustParseAsset("0.0000 TOK"),
		})
		requireServiceError(t, err, apperrors.CategoryDataError, "must transfer positive quantity")
	})
}

func TestBridgeService_BridgeTransfer(t *testing.T) {
	ctx := context.Background()
	transfer := func(quantity string) *bridge.BridgeRequest {
		return &bridge.BridgeRequest{
			Contract:   contract,
			From:       alice,
			To:         bob,
			Quantity:   chain.MustParseAsset(quantity),
			Memo:       "to the other side",
			Expiration: 1700000000,
		}
	}

	t.Run("escrows the deposit and queues a packet", func(t *testing.T) {
		b := newTestBridge(t)
		b.deposit(t, alice, "100.0000 TOK")
		before := bridge.Custody(b.ledger(t), contract)

		res, err := b.svc.BridgeTransfer(ctx, aliceAuth, transfer("100.0000 TOK"))
		require.NoError(t, err)
		assert.Equal(t, uint64(1), res.Sequence)

		l := b.ledger(t)
		assert.Empty(t, l.Deposits)
		require.Len(t, l.Escrows, 1)
		assert.Equal(t, "100.0000 TOK", l.Escrows[0].Amount.String())
		assert.Equal(t, before, bridge.Custody(l, contract))

		actions := b.actions(t)
		require.Len(t, actions, 1)
		require.NotNil(t, actions[0].Sequence)
		assert.Equal(t, uint64(1), *actions[0].Sequence)
		assert.Equal(t, icp, actions[0].Target)
		assert.Equal(t, []bridge.PermissionLevel{{Actor: icp, Permission: bridge.PermissionSendAction}}, actions[0].Action.Authorization)

		payload, send, receive := decodePacket(t, actions[0])
		assert.Equal(t, uint64(1), payload.Seq)
		assert.Equal(t, bridge.ActionReceive, send.Name)
		assert.Empty(t, send.Authorization)
		assert.Equal(t, bridge.ReceivePayload{
			Contract: contract,
			From:     alice,
			To:       bob,
			Quantity: chain.MustParseAsset("100.0000 TOK"),
			Memo:     "to the other side",
		}, receive)

		var receipt bridge.Action
		require.NoError(t, json.Unmarshal(payload.ReceiveAction, &receipt))
		assert.Equal(t, self, receipt.Account)
		assert.Equal(t, bridge.ActionReceipt, receipt.Name)
		b.assertInvariants(t)
	})

	t.Run("partial transfer keeps the rest deposited", func(t *testing.T) {
		b := newTestBridge(t)
		b.deposit(t, alice, "100.0000 TOK")

		_, err := b.svc.BridgeTransfer(ctx, aliceAuth, transfer("30.0000 TOK"))
		require.NoError(t, err)
		res, err := b.svc.BridgeTransfer(ctx, aliceAuth, transfer("20.0000 TOK"))
		require.NoError(t, err)
		assert.Equal(t, uint64(2), res.Sequence)

		l := b.ledger(t)
		require.Len(t, l.Deposits, 1)
		assert.Equal(t, "50.0000 TOK", l.Deposits[0].Balance.String())
		assert.Len(t, l.Escrows, 2)
		assert.Equal(t, map[string]int64{"TOK": 1000000}, bridge.Custody(l, contract))
	})

	t.Run("requires the sender", func(t *testing.T) {
		b := newTestBridge(t)
		b.deposit(t, alice, "100.0000 TOK")
		_, err := b.svc.BridgeTransfer(ctx, auth.NewAuthority(bob, "active"), transfer("1.0000 TOK"))
		requireServiceError(t, err, apperrors.CategoryUnauthorized, "missing required authority of alice")
	})

	t.Run("deposit errors", func(t *testing.T) {
		b := newTestBridge(t)
		_, err := b.svc.BridgeTransfer(ctx, aliceAuth, transfer("1.0000 TOK"))
		requireServiceError(t, err, apperrors.CategoryResourceNotFound, "no deposit object found")

		b.deposit(t, alice, "1.0000 TOK")
		_, err = b.svc.BridgeTransfer(ctx, aliceAuth, transfer("2.0000 TOK"))
		requireServiceError(t, err, apperrors.CategoryInsufficientFunds, "overdrawn balance")

		_, err = b.svc.BridgeTransfer(ctx, aliceAuth, transfer("1.00 TOK"))
		requireServiceError(t, err, apperrors.CategoryDataError, "symbol precision mismatch")

		assert.Empty(t, b.actions(t))
		assert.Empty(t, b.ledger(t).Escrows)
	})

	t.Run("memo too long", func(t *testing.T) {
		b := newTestBridge(t)
		b.deposit(t, alice, "1.0000 TOK")
		req := transfer("1.0000 TOK")
		req.Memo = string(make([]byte, 257))
		_, err := b.svc.BridgeTransfer(ctx, aliceAuth, req)
		requireServiceError(t, err, apperrors.CategoryDataError, "memo has more than 256 bytes")
	})

	t.Run("unconfigured channel consumes nothing", func(t *testing.T) {
		b := newUnconfiguredBridge(t)
		b.deposit(t, alice, "10.0000 TOK")

		_, err := b.svc.BridgeTransfer(ctx, aliceAuth, transfer("10.0000 TOK"))
		requireServiceError(t, err, apperrors.CategoryPreconditionFailed, "empty remote peer contract")
		assert.ErrorIs(t, err, bridge.ErrNotConfigured)

		l := b.ledger(t)
		require.Len(t, l.Deposits, 1)
		assert.Equal(t, "10.0000 TOK", l.Deposits[0].Balance.String())
		assert.Empty(t, l.Escrows)
		assert.Empty(t, b.actions(t))

		_, err = b.svc.InitConfig(ctx, selfAuth, &bridge.InitConfigRequest{ICP: icp, Peer: peer})
		require.NoError(t, err)
		res, err := b.svc.BridgeTransfer(ctx, aliceAuth, transfer("10.0000 TOK"))
		require.NoError(t, err)
		assert.Equal(t, uint64(1), res.Sequence)
	})
}

func TestBridgeService_Receipt(t *testing.T) {
	ctx := context.Background()
	dispatch := func(t *testing.T, b *testBridge) uint64 {
		t.Helper()
		b.deposit(t, alice, "100.0000 TOK")
		res, err := b.svc.BridgeTransfer(ctx, aliceAuth, &bridge.BridgeRequest{
			Contract:   contract,
			From:       alice,
			To:         bob,
			Quantity:   chain.MustParseAsset("100.0000 TOK"),
			Memo:       "hello",
			Expiration: 1700000000,
		})
		require.NoError(t, err)
		return res.Sequence
	}

	t.Run("executed receipt finalizes the escrow", func(t *testing.T) {
		b := newTestBridge(t)
		seq := dispatch(t, b)
		queued := len(b.actions(t))

		res, err := b.svc.PeerReceipt(ctx, callbackAuth, &bridge.ReceiptRequest{Sequence: seq, Status: bridge.ReceiptExecuted})
		require.NoError(t, err)
		assert.Equal(t, bridge.EscrowFinalized, res.Outcome)
		assert.Empty(t, res.Settlement)

		assert.Empty(t, b.ledger(t).Escrows)
		assert.Len(t, b.actions(t), queued)
		assert.Empty(t, bridge.Custody(b.ledger(t), contract)["TOK"])
	})

	t.Run("expired transfer releases the locked tokens", func(t *testing.T) {
		b := newTestBridge(t)
		seq := dispatch(t, b)

		res, err := b.svc.PeerReceipt(ctx, callbackAuth, &bridge.ReceiptRequest{Sequence: seq, Status: bridge.ReceiptExpired})
		require.NoError(t, err)
		assert.Equal(t, bridge.EscrowCompensated, res.Outcome)
		assert.Equal(t, "debit/native", res.Settlement)
		assert.Empty(t, b.ledger(t).Escrows)

		actions := b.actions(t)
		last := actions[len(actions)-1]
		assert.Equal(t, bridge.OutboxKindTransfer, last.Kind)
		assert.Equal(t, contract, last.Target)
		assert.Equal(t, []bridge.PermissionLevel{{Actor: self, Permission: bridge.PermissionActive}}, last.Action.Authorization)

		var payload bridge.TransferPayload
		require.NoError(t, json.Unmarshal(last.Action.Data, &payload))
		assert.Equal(t, bridge.TransferPayload{
			From:     self,
			To:       alice,
			Quantity: chain.MustParseAsset("100.0000 TOK"),
			Memo:     bridge.ReleaseMemo,
		}, payload)
	})

	t.Run("repeated receipt is ignored", func(t *testing.T) {
		b := newTestBridge(t)
		seq := dispatch(t, b)

		_, err := b.svc.PeerReceipt(ctx, callbackAuth, &bridge.ReceiptRequest{Sequence: seq, Status: bridge.ReceiptExpired})
		require.NoError(t, err)
		queued := len(b.actions(t))

		res, err := b.svc.PeerReceipt(ctx, callbackAuth, &bridge.ReceiptRequest{Sequence: seq, Status: bridge.ReceiptExpired})
		require.NoError(t, err)
		assert.Equal(t, bridge.EscrowIgnored, res.Outcome)
		assert.Len(t, b.actions(t), queued)
	})

	t.Run("unknown sequence is ignored", func(t *testing.T) {
		b := newTestBridge(t)
		res, err := b.svc.PeerReceipt(ctx, callbackAuth, &bridge.ReceiptRequest{Sequence: 42, Status: bridge.ReceiptExecuted})
		require.NoError(t, err)
		assert.Equal(t, bridge.EscrowIgnored, res.Outcome)
		assert.Empty(t, b.actions(t))
	})

	t.Run("requires the callback permission", func(t *testing.T) {
		b := newTestBridge(t)
		seq := dispatch(t, b)

		for _, caller := range []auth.Authority{selfAuth, aliceAuth} {
			_, err := b.svc.PeerReceipt(ctx, caller, &bridge.ReceiptRequest{Sequence: seq, Status: bridge.ReceiptExpired})
			requireServiceError(t, err, apperrors.CategoryUnauthorized, "missing required authority of icp.token@callback")
			assert.ErrorIs(t, err, bridge.ErrUnauthorized)
		}
		assert.Len(t, b.ledger(t).Escrows, 1)
	})
}

func TestBridgeService_PeerReceive(t *testing.T) {
	ctx := context.Background()

	t.Run("plain transfer mints wrapped tokens", func(t *testing.T) {
		b := newTestBridge(t)
		b.receive(t, alice, "50.0000 TOK")

		assert.Equal(t, int64(500000), b.supply(t))
		assert.Equal(t, int64(500000), b.balance(t, alice))

		actions := b.actions(t)
		require.Len(t, actions, 1)
		assert.Equal(t, bridge.OutboxKindNotify, actions[0].Kind)
		assert.Equal(t, alice, actions[0].Target)
		b.assertInvariants(t)
	})

	t.Run("refund releases underlying tokens with the packet memo", func(t *testing.T) {
		b := newTestBridge(t)
		res, err := b.svc.PeerReceive(ctx, callbackAuth, &bridge.ReceiveRequest{
			Contract: contract,
			From:     bob,
			To:       alice,
			Quantity: chain.MustParseAsset("5.0000 TOK"),
			Memo:     "coming home",
			Refund:   true,
		})
		require.NoError(t, err)
		assert.Equal(t, "credit/native", res.Settlement)
		assert.Zero(t, b.supply(t))

		actions := b.actions(t)
		require.Len(t, actions, 1)
		var payload bridge.TransferPayload
		require.NoError(t, json.Unmarshal(actions[0].Action.Data, &payload))
		assert.Equal(t, "coming home", payload.Memo)
		assert.Equal(t, alice, payload.To)
	})

	t.Run("mint checks", func(t *testing.T) {
		b := newTestBridge(t)
		tests := []struct {
			name     string
			to       chain.Name
			quantity chain.Asset
			category apperrors.Category
			msg      string
		}{
			{"unknown recipient", "carol", chain.MustParseAsset("1.0000 TOK"), apperrors.CategoryResourceNotFound, "to account does not exist"},
			{"zero quantity", alice, chain.MustParseAsset("0.0000 TOK"), apperrors.CategoryDataError, "must mint positive quantity"},
			{"unknown token", alice, chain.MustParseAsset("1.0000 XYZ"), apperrors.CategoryResourceNotFound, "token with symbol does not exist, create token before mint"},
			{"precision mismatch", alice, chain.MustParseAsset("1.00 TOK"), apperrors.CategoryDataError, "symbol precision mismatch"},
			{"invalid quantity", alice, chain.Asset{Amount: 1, Symbol: chain.Symbol{Precision: 4}}, apperrors.CategoryDataError, "invalid quantity"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := b.svc.PeerReceive(ctx, callbackAuth, &bridge.ReceiveRequest{
					Contract: contract, From: bob, To: tt.to, Quantity: tt.quantity,
				})
				requireServiceError(t, err, tt.category, tt.msg)
			})
		}
		assert.Zero(t, b.supply(t))
		assert.Empty(t, b.actions(t))
	})

	t.Run("memo over the limit changes nothing", func(t *testing.T) {
		b := newTestBridge(t)
		_, err := b.svc.PeerReceive(ctx, callbackAuth, &bridge.ReceiveRequest{
			Contract: contract,
			From:     bob,
			To:       alice,
			Quantity: chain.MustParseAsset("1.0000 TOK"),
			Memo:     strings.Repeat("x", 257),
		})
		requireServiceError(t, err, apperrors.CategoryDataError, "memo has more than 256 bytes")
		assert.ErrorIs(t, err, bridge.ErrInvalidMemo)
		assert.Zero(t, b.supply(t))
		assert.Zero(t, b.balance(t, alice))
		assert.Empty(t, b.actions(t))
	})

	t.Run("mint past the supply bound overflows", func(t *testing.T) {
		b := newTestBridge(t)
		_, err := b.svc.PeerReceive(ctx, callbackAuth, &bridge.ReceiveRequest{
			Contract: contract, From: bob, To: alice, Quantity: chain.NewAsset(chain.MaxAmount, tok),
		})
		require.NoError(t, err)
		actionsBefore := len(b.actions(t))

		_, err = b.svc.PeerReceive(ctx, callbackAuth, &bridge.ReceiveRequest{
			Contract: contract, From: bob, To: bob, Quantity: chain.NewAsset(1, tok),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, bridge.ErrSupplyOverflow)
		assert.True(t, apperrors.Is(err, apperrors.CategoryDataError))
		assert.Equal(t, chain.MaxAmount, b.supply(t))
		assert.Zero(t, b.balance(t, bob))
		assert.Len(t, b.actions(t), actionsBefore)
		b.assertInvariants(t)
	})

	t.Run("unauthorized callback changes nothing", func(t *testing.T) {
		b := newTestBridge(t)
		_, err := b.svc.PeerReceive(ctx, selfAuth, &bridge.ReceiveRequest{
			Contract: contract, From: bob, To: alice, Quantity: chain.MustParseAsset("1.0000 TOK"),
		})
		requireServiceError(t, err, apperrors.CategoryUnauthorized, "missing required authority of icp.token@callback")
		assert.Zero(t, b.supply(t))
		assert.Empty(t, b.actions(t))
	})
}

func TestBridgeService_Refund(t *testing.T) {
	ctx := context.Background()
	refund := &bridge.BridgeRequest{
		Contract:   contract,
		From:       alice,
		To:         bob,
		Quantity:   chain.MustParseAsset("50.0000 TOK"),
		Memo:       "going back",
		Expiration: 1700000000,
	}

	t.Run("burns and escrows", func(t *testing.T) {
		b := newTestBridge(t)
		b.receive(t, alice, "50.0000 TOK")

		res, err := b.svc.BridgeRefund(ctx, aliceAuth, refund)
		require.NoError(t, err)
		assert.True(t, res.Escrow.Refund)
		assert.Zero(t, b.supply(t))
		assert.Zero(t, b.balance(t, alice))

		actions := b.actions(t)
		_, _, receive := decodePacket(t, actions[len(actions)-1])
		assert.True(t, receive.Refund)
		assert.Equal(t, "going back", receive.Memo)
		assert.Empty(t, bridge.Custody(b.ledger(t), contract)["TOK"])
		b.assertInvariants(t)
	})

	t.Run("expired refund mints back", func(t *testing.T) {
		b := newTestBridge(t)
		b.receive(t, alice, "50.0000 TOK")

		res, err := b.svc.BridgeRefund(ctx, aliceAuth, refund)
		require.NoError(t, err)

		receipt, err := b.svc.PeerReceipt(ctx, callbackAuth, &bridge.ReceiptRequest{Sequence: res.Sequence, Status: bridge.ReceiptExpired})
		require.NoError(t, err)
		assert.Equal(t, bridge.EscrowCompensated, receipt.Outcome)
		assert.Equal(t, "debit/wrapped", receipt.Settlement)
		assert.Equal(t, int64(500000), b.supply(t))
		assert.Equal(t, int64(500000), b.balance(t, alice))
		b.assertInvariants(t)
	})

	t.Run("cannot burn more than held", func(t *testing.T) {
		b := newTestBridge(t)
		b.receive(t, alice, "50.0000 TOK")
		b.receive(t, bob, "50.0000 TOK")

		req := *refund
		req.Quantity = chain.MustParseAsset("60.0000 TOK")
		_, err := b.svc.BridgeRefund(ctx, aliceAuth, &req)
		requireServiceError(t, err, apperrors.CategoryInsufficientFunds, "overdrawn balance")

		assert.Equal(t, int64(1000000), b.supply(t))
		assert.Empty(t, b.ledger(t).Escrows)
	})

	t.Run("cannot burn more than the supply", func(t *testing.T) {
		b := newTestBridge(t)
		b.receive(t, alice, "10.0000 TOK")
		_, err := b.svc.BridgeRefund(ctx, aliceAuth, refund)
		requireServiceError(t, err, apperrors.CategoryInsufficientFunds, "quantity exceeds available supply")
	})
}

func TestBridgeService_Transfer(t *testing.T) {
	ctx := context.Background()
	b := newTestBridge(t)
	b.receive(t, alice, "10.0000 TOK")

	bal, err := b.svc.Transfer(ctx, aliceAuth, &bridge.TransferRequest{
		Contract: contract, From: alice, To: bob, Quantity: chain.MustParseAsset("4.0000 TOK"), Memo: "rent",
	})
	require.NoError(t, err)
	assert.Equal(t, "6.0000 TOK", bal.Balance.String())
	assert.Equal(t, int64(40000), b.balance(t, bob))
	b.assertInvariants(t)

	_, err = b.svc.Transfer(ctx, aliceAuth, &bridge.TransferRequest{
		Contract: contract, From: alice, To: alice, Quantity: chain.MustParseAsset("1.0000 TOK"),
	})
	requireServiceError(t, err, apperrors.CategoryDataError, "cannot transfer to self")

	_, err = b.svc.Transfer(ctx, aliceAuth, &bridge.TransferRequest{
		Contract: contract, From: alice, To: bob, Quantity: chain.MustParseAsset("7.0000 TOK"),
	})
	requireServiceError(t, err, apperrors.CategoryInsufficientFunds, "overdrawn balance")

	_, err = b.svc.Transfer(ctx, aliceAuth, &bridge.TransferRequest{
		Contract: contract, From: alice, To: "carol", Quantity: chain.MustParseAsset("1.0000 TOK"),
	})
	requireServiceError(t, err, apperrors.CategoryResourceNotFound, "to account does not exist")
}

func TestBridgeService_Queries(t *testing.T) {
	ctx := context.Background()
	b := newTestBridge(t)
	b.deposit(t, alice, "3.0000 TOK")

	_, err := b.svc.BridgeTransfer(ctx, aliceAuth, &bridge.BridgeRequest{
		Contract: contract, From: alice, To: bob, Quantity: chain.MustParseAsset("3.0000 TOK"), Expiration: 1,
	})
	require.NoError(t, err)

	rec, err := b.svc.GetEscrow(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, alice, rec.Owner)

	_, err = b.svc.GetEscrow(ctx, 2)
	requireServiceError(t, err, apperrors.CategoryResourceNotFound, "no escrow for sequence 2")

	pending, err := b.svc.ListOutbox(ctx, bridge.OutboxStatusPending, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	_, err = b.svc.ListOutbox(ctx, "lost", 10)
	requireServiceError(t, err, apperrors.CategoryDataError, `unknown outbox status "lost"`)

	_, err = b.svc.GetBalance(ctx, contract, alice, tok.Code)
	requireServiceError(t, err, apperrors.CategoryResourceNotFound, "no balance object found")
}

func TestBridgeService_CheckInvariantsReportsDrift(t *testing.T) {
	ctx := context.Background()
	b := newTestBridge(t)
	b.receive(t, alice, "1.0000 TOK")

	// corrupt the supply behind the service's back
	err := b.store.RunInTx(ctx, func(ctx context.Context, tx bridgestore.Tx) error {
		st, err := tx.GetSupply(ctx, contract, tok.Code)
		if err != nil {
			return err
		}
		st.Supply = chain.MustParseAsset("2.0000 TOK")
		return tx.UpdateSupply(ctx, st)
	})
	require.NoError(t, err)

	report, err := b.svc.CheckInvariants(ctx)
	require.NoError(t, err)
	assert.True(t, report.Broken)
	require.Len(t, report.Violations, 1)
	assert.Contains(t, report.Violations[0], "eosio.token:TOK")
}

type dispatchedPacket struct {
	seq        uint64
	send       bridge.Action
	receipt    bridge.Action
	expiration uint32
}

// fakeChannel hands out sequences from next and records dispatched packets.
type fakeChannel struct {
	next    uint64
	packets []dispatchedPacket
	err     error
}

func (c *fakeChannel) NextSequence(context.Context, chain.Name) (uint64, error) {
	c.next++
	return c.next, nil
}

func (c *fakeChannel) Dispatch(_ context.Context, seq uint64, send, receipt bridge.Action, expiration uint32) error {
	if c.err != nil {
		return c.err
	}
	c.packets = append(c.packets, dispatchedPacket{seq: seq, send: send, receipt: receipt, expiration: expiration})
	return nil
}

func newChannelBridge(t *testing.T, ch *fakeChannel) *testBridge {
	t.Helper()
	store := bridgestore.NewMemoryStore()
	svc := NewService(store, Config{
		Self: self,
		Channel: func(bridgestore.Tx, chain.Name, time.Time) Channel {
			return ch
		},
	}, zap.NewNop())

	ctx := context.Background()
	_, err := svc.RegisterAccount(ctx, selfAuth, &bridge.RegisterAccountRequest{Name: alice})
	require.NoError(t, err)
	_, err = svc.CreateToken(ctx, selfAuth, &bridge.CreateTokenRequest{Contract: contract, Symbol: tok})
	require.NoError(t, err)
	_, err = svc.InitConfig(ctx, selfAuth, &bridge.InitConfigRequest{ICP: icp, Peer: peer})
	require.NoError(t, err)
	return &testBridge{svc: svc, store: store}
}

func TestBridgeService_DispatchUsesConfiguredChannel(t *testing.T) {
	ctx := context.Background()
	request := &bridge.BridgeRequest{
		Contract:   contract,
		From:       alice,
		To:         bob,
		Quantity:   chain.MustParseAsset("10.0000 TOK"),
		Memo:       "via channel",
		Expiration: 1700000000,
	}

	t.Run("packet goes to the channel", func(t *testing.T) {
		ch := &fakeChannel{next: 41}
		b := newChannelBridge(t, ch)
		b.deposit(t, alice, "10.0000 TOK")

		res, err := b.svc.BridgeTransfer(ctx, aliceAuth, request)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), res.Sequence)

		require.Len(t, ch.packets, 1)
		p := ch.packets[0]
		assert.Equal(t, uint64(42), p.seq)
		assert.Equal(t, uint32(1700000000), p.expiration)
		assert.Equal(t, peer, p.send.Account)
		assert.Equal(t, bridge.ActionReceive, p.send.Name)
		assert.Equal(t, self, p.receipt.Account)
		assert.Equal(t, bridge.ActionReceipt, p.receipt.Name)

		escrow, err := b.store.GetEscrow(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, alice, escrow.Owner)
		for _, a := range b.actions(t) {
			assert.NotEqual(t, bridge.OutboxKindSendAction, a.Kind)
		}
	})

	t.Run("channel failure rolls the execution back", func(t *testing.T) {
		ch := &fakeChannel{err: errors.New("channel closed")}
		b := newChannelBridge(t, ch)
		b.deposit(t, alice, "10.0000 TOK")

		_, err := b.svc.BridgeTransfer(ctx, aliceAuth, request)
		require.Error(t, err)

		l := b.ledger(t)
		require.Len(t, l.Deposits, 1)
		assert.Equal(t, "10.0000 TOK", l.Deposits[0].Balance.String())
		assert.Empty(t, l.Escrows)
	})
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func TestBridgeService_EscrowGaugeFollowsStore(t *testing.T) {
	ctx := context.Background()
	b := newTestBridge(t)
	b.deposit(t, alice, "3.0000 TOK")
	for i := 0; i < 2; i++ {
		_, err := b.svc.BridgeTransfer(ctx, aliceAuth, &bridge.BridgeRequest{
			Contract: contract, From: alice, To: bob, Quantity: chain.MustParseAsset("1.0000 TOK"),
		})
		require.NoError(t, err)
	}
	assert.Equal(t, float64(2), gaugeValue(t, metrics.EscrowPending))

	// a new process over the same store starts with an unset gauge
	metrics.EscrowPending.Set(0)
	restarted := NewService(b.store, Config{Self: self}, zap.NewNop())

	_, err := restarted.PeerReceipt(ctx, callbackAuth, &bridge.ReceiptRequest{Sequence: 1, Status: bridge.ReceiptExecuted})
	require.NoError(t, err)
	assert.Equal(t, float64(1), gaugeValue(t, metrics.EscrowPending))

	_, err = restarted.PeerReceipt(ctx, callbackAuth, &bridge.ReceiptRequest{Sequence: 2, Status: bridge.ReceiptExecuted})
	require.NoError(t, err)
	assert.Zero(t, gaugeValue(t, metrics.EscrowPending))
}

func TestBridgeService_RequeueAction(t *testing.T) {
	ctx := context.Background()
	b := newTestBridge(t)
	b.deposit(t, alice, "1.0000 TOK")
	res, err := b.svc.BridgeTransfer(ctx, aliceAuth, &bridge.BridgeRequest{
		Contract: contract, From: alice, To: bob, Quantity: chain.MustParseAsset("1.0000 TOK"),
	})
	require.NoError(t, err)

	actions := b.actions(t)
	require.Len(t, actions, 1)
	packet := actions[0]
	require.Equal(t, res.Sequence, *packet.Sequence)

	_, err = b.svc.RequeueAction(ctx, selfAuth, packet.ID)
	requireServiceError(t, err, apperrors.CategoryPreconditionFailed, "outbox action "+packet.ID.String()+" is pending")
	assert.ErrorIs(t, err, bridge.ErrActionNotFailed)

	status, err := b.store.MarkActionFailed(ctx, packet.ID, "channel unreachable", 1, time.Now())
	require.NoError(t, err)
	require.Equal(t, bridge.OutboxStatusFailed, status)

	_, err = b.svc.RequeueAction(ctx, aliceAuth, packet.ID)
	requireServiceError(t, err, apperrors.CategoryUnauthorized, "missing required authority of icp.token")

	missing := uuid.New()
	_, err = b.svc.RequeueAction(ctx, selfAuth, missing)
	requireServiceError(t, err, apperrors.CategoryResourceNotFound, "no outbox action "+missing.String())

	requeued, err := b.svc.RequeueAction(ctx, selfAuth, packet.ID)
	require.NoError(t, err)
	assert.Equal(t, bridge.OutboxStatusPending, requeued.Status)
	assert.Zero(t, requeued.Attempts)

	pending, err := b.store.ListPendingActions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, packet.ID, pending[0].ID)

	escrow, err := b.store.GetEscrow(ctx, res.Sequence)
	require.NoError(t, err)
	assert.Equal(t, "1.0000 TOK", escrow.Amount.String())
}
