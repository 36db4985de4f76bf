package bridgestore

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chainsafe/icp-token/pkg/bridge"
	"github.com/chainsafe/icp-token/pkg/chain"
)

type tokenKey struct {
	contract chain.Name
	code     string
}

type holderKey struct {
	contract chain.Name
	owner    chain.Name
	code     string
}

type outboxEntry struct {
	action bridge.OutboxAction
	order  uint64
}

// memState is one version of the tables. Values are stored by value so a
// shallow clone of every map is an independent snapshot.
type memState struct {
	config       *bridge.ChannelConfig
	accounts     map[chain.Name]bridge.Account
	supplies     map[tokenKey]bridge.SupplyRecord
	balances     map[holderKey]bridge.Balance
	deposits     map[uint64]bridge.DepositRecord
	depositIndex map[holderKey]uint64
	escrows      map[uint64]bridge.EscrowRecord
	sequences    map[chain.Name]uint64
	outbox       map[uuid.UUID]outboxEntry
	nextDeposit  uint64
	nextOrder    uint64
}

func newMemState() *memState {
	return &memState{
		accounts:     make(map[chain.Name]bridge.Account),
		supplies:     make(map[tokenKey]bridge.SupplyRecord),
		balances:     make(map[holderKey]bridge.Balance),
		deposits:     make(map[uint64]bridge.DepositRecord),
		depositIndex: make(map[holderKey]uint64),
		escrows:      make(map[uint64]bridge.EscrowRecord),
		sequences:    make(map[chain.Name]uint64),
		outbox:       make(map[uuid.UUID]outboxEntry),
		nextDeposit:  1,
	}
}

func (s *memState) clone() *memState {
	c := *s
	if s.config != nil {
		cfg := *s.config
		c.config = &cfg
	}
	c.accounts = maps.Clone(s.accounts)
	c.supplies = maps.Clone(s.supplies)
	c.balances = maps.Clone(s.balances)
	c.deposits = maps.Clone(s.deposits)
	c.depositIndex = maps.Clone(s.depositIndex)
	c.escrows = maps.Clone(s.escrows)
	c.sequences = maps.Clone(s.sequences)
	c.outbox = maps.Clone(s.outbox)
	return &c
}

type memoryStore struct {
	// txMu serializes writers, mu guards the committed state pointer.
	txMu  sync.Mutex
	mu    sync.RWMutex
	state *memState
}

// NewMemoryStore creates an in-process store. Transactions run one at a time
// on a private copy of the tables that replaces the committed state only when
// the transaction function succeeds.
func NewMemoryStore() *memoryStore {
	return &memoryStore{state: newMemState()}
}

func (m *memoryStore) current() *memState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *memoryStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := m.current().clone()
	if err := fn(ctx, &memTx{memReader{snapshot}}); err != nil {
		return err
	}

	m.mu.Lock()
	m.state = snapshot
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) update(fn func(s *memState) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	snapshot := m.current().clone()
	if err := fn(snapshot); err != nil {
		return err
	}
	m.mu.Lock()
	m.state = snapshot
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) reader() memReader {
	return memReader{m.current()}
}

func (m *memoryStore) GetConfig(ctx context.Context) (*bridge.ChannelConfig, error) {
	return m.reader().GetConfig(ctx)
}

func (m *memoryStore) AccountExists(ctx context.Context, name chain.Name) (bool, error) {
	return m.reader().AccountExists(ctx, name)
}

func (m *memoryStore) GetSupply(ctx context.Context, contract chain.Name, code string) (*bridge.SupplyRecord, error) {
	return m.reader().GetSupply(ctx, contract, code)
}

func (m *memoryStore) ListSupplies(ctx context.Context) ([]*bridge.SupplyRecord, error) {
	return m.reader().ListSupplies(ctx)
}

func (m *memoryStore) GetBalance(ctx context.Context, contract, owner chain.Name, code string) (*bridge.Balance, error) {
	return m.reader().GetBalance(ctx, contract, owner, code)
}

func (m *memoryStore) ListBalances(ctx context.Context) ([]*bridge.Balance, error) {
	return m.reader().ListBalances(ctx)
}

func (m *memoryStore) GetDeposit(ctx context.Context, contract, owner chain.Name, code string) (*bridge.DepositRecord, error) {
	return m.reader().GetDeposit(ctx, contract, owner, code)
}

func (m *memoryStore) ListDeposits(ctx context.Context, filter bridge.DepositFilter) ([]*bridge.DepositRecord, error) {
	return m.reader().ListDeposits(ctx, filter)
}

func (m *memoryStore) GetEscrow(ctx context.Context, seq uint64) (*bridge.EscrowRecord, error) {
	return m.reader().GetEscrow(ctx, seq)
}

func (m *memoryStore) ListEscrows(ctx context.Context) ([]*bridge.EscrowRecord, error) {
	return m.reader().ListEscrows(ctx)
}

func (m *memoryStore) CountEscrows(ctx context.Context) (int, error) {
	return m.reader().CountEscrows(ctx)
}

func (m *memoryStore) GetAction(ctx context.Context, id uuid.UUID) (*bridge.OutboxAction, error) {
	return m.reader().GetAction(ctx, id)
}

func (m *memoryStore) ListActions(ctx context.Context, status bridge.OutboxStatus, limit int) ([]*bridge.OutboxAction, error) {
	return m.reader().ListActions(ctx, status, limit)
}

func (m *memoryStore) ListPendingActions(ctx context.Context, limit int) ([]*bridge.OutboxAction, error) {
	return m.ListActions(ctx, bridge.OutboxStatusPending, limit)
}

func (m *memoryStore) MarkActionDelivered(_ context.Context, id uuid.UUID, at time.Time) error {
	return m.update(func(s *memState) error {
		e, ok := s.outbox[id]
		if !ok {
			return ErrNotFound
		}
		e.action.Status = bridge.OutboxStatusDelivered
		e.action.Attempts++
		e.action.UpdatedAt = at
		s.outbox[id] = e
		return nil
	})
}

func (m *memoryStore) MarkActionFailed(
	_ context.Context,
	id uuid.UUID,
	lastErr string,
	maxAttempts int,
	at time.Time,
) (bridge.OutboxStatus, error) {
	var status bridge.OutboxStatus
	err := m.update(func(s *memState) error {
		e, ok := s.outbox[id]
		if !ok {
			return ErrNotFound
		}
		e.action.Attempts++
		e.action.LastError = lastErr
		e.action.UpdatedAt = at
		if e.action.Attempts >= maxAttempts {
			e.action.Status = bridge.OutboxStatusFailed
		}
		s.outbox[id] = e
		status = e.action.Status
		return nil
	})
	return status, err
}

type memReader struct {
	s *memState
}

func (r memReader) GetConfig(context.Context) (*bridge.ChannelConfig, error) {
	if r.s.config == nil {
		return nil, ErrNotFound
	}
	cfg := *r.s.config
	return &cfg, nil
}

func (r memReader) AccountExists(_ context.Context, name chain.Name) (bool, error) {
	_, ok := r.s.accounts[name]
	return ok, nil
}

func (r memReader) GetSupply(_ context.Context, contract chain.Name, code string) (*bridge.SupplyRecord, error) {
	rec, ok := r.s.supplies[tokenKey{contract, code}]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (r memReader) ListSupplies(context.Context) ([]*bridge.SupplyRecord, error) {
	out := make([]*bridge.SupplyRecord, 0, len(r.s.supplies))
	for _, rec := range r.s.supplies {
		out = append(out, &rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Contract != out[j].Contract {
			return out[i].Contract < out[j].Contract
		}
		return out[i].Supply.Symbol.Code < out[j].Supply.Symbol.Code
	})
	return out, nil
}

func (r memReader) GetBalance(_ context.Context, contract, owner chain.Name, code string) (*bridge.Balance, error) {
	bal, ok := r.s.balances[holderKey{contract, owner, code}]
	if !ok {
		return nil, ErrNotFound
	}
	return &bal, nil
}

func (r memReader) ListBalances(context.Context) ([]*bridge.Balance, error) {
	out := make([]*bridge.Balance, 0, len(r.s.balances))
	for _, bal := range r.s.balances {
		out = append(out, &bal)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Contract != b.Contract {
			return a.Contract < b.Contract
		}
		if a.Owner != b.Owner {
			return a.Owner < b.Owner
		}
		return a.Balance.Symbol.Code < b.Balance.Symbol.Code
	})
	return out, nil
}

func (r memReader) GetDeposit(_ context.Context, contract, owner chain.Name, code string) (*bridge.DepositRecord, error) {
	id, ok := r.s.depositIndex[holderKey{contract, owner, code}]
	if !ok {
		return nil, ErrNotFound
	}
	rec := r.s.deposits[id]
	return &rec, nil
}

func (r memReader) ListDeposits(_ context.Context, filter bridge.DepositFilter) ([]*bridge.DepositRecord, error) {
	ids := slices.Sorted(maps.Keys(r.s.deposits))
	out := make([]*bridge.DepositRecord, 0, len(ids))
	for _, id := range ids {
		rec := r.s.deposits[id]
		if !filter.Contract.IsEmpty() && rec.Contract != filter.Contract {
			continue
		}
		if !filter.Owner.IsEmpty() && rec.Owner != filter.Owner {
			continue
		}
		out = append(out, &rec)
	}
	return out, nil
}

func (r memReader) GetEscrow(_ context.Context, seq uint64) (*bridge.EscrowRecord, error) {
	rec, ok := r.s.escrows[seq]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (r memReader) ListEscrows(context.Context) ([]*bridge.EscrowRecord, error) {
	seqs := slices.Sorted(maps.Keys(r.s.escrows))
	out := make([]*bridge.EscrowRecord, len(seqs))
	for i, seq := range seqs {
		rec := r.s.escrows[seq]
		out[i] = &rec
	}
	return out, nil
}

func (r memReader) CountEscrows(context.Context) (int, error) {
	return len(r.s.escrows), nil
}

func (r memReader) GetAction(_ context.Context, id uuid.UUID) (*bridge.OutboxAction, error) {
	e, ok := r.s.outbox[id]
	if !ok {
		return nil, ErrNotFound
	}
	a := e.action
	return &a, nil
}

func (r memReader) ListActions(_ context.Context, status bridge.OutboxStatus, limit int) ([]*bridge.OutboxAction, error) {
	entries := make([]outboxEntry, 0, len(r.s.outbox))
	for _, e := range r.s.outbox {
		if status == "" || e.action.Status == status {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].order < entries[j].order })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]*bridge.OutboxAction, len(entries))
	for i := range entries {
		a := entries[i].action
		out[i] = &a
	}
	return out, nil
}

type memTx struct {
	memReader
}

func (t *memTx) CreateConfig(_ context.Context, cfg *bridge.ChannelConfig) error {
	if t.s.config != nil {
		return ErrAlreadyExists
	}
	c := *cfg
	t.s.config = &c
	return nil
}

func (t *memTx) CreateAccount(_ context.Context, account *bridge.Account) error {
	if _, ok := t.s.accounts[account.Name]; ok {
		return ErrAlreadyExists
	}
	t.s.accounts[account.Name] = *account
	return nil
}

func (t *memTx) CreateSupply(_ context.Context, rec *bridge.SupplyRecord) error {
	key := tokenKey{rec.Contract, rec.Supply.Symbol.Code}
	if _, ok := t.s.supplies[key]; ok {
		return ErrAlreadyExists
	}
	t.s.supplies[key] = *rec
	return nil
}

func (t *memTx) UpdateSupply(_ context.Context, rec *bridge.SupplyRecord) error {
	key := tokenKey{rec.Contract, rec.Supply.Symbol.Code}
	if _, ok := t.s.supplies[key]; !ok {
		return ErrNotFound
	}
	t.s.supplies[key] = *rec
	return nil
}

func (t *memTx) SaveBalance(_ context.Context, bal *bridge.Balance) error {
	t.s.balances[holderKey{bal.Contract, bal.Owner, bal.Balance.Symbol.Code}] = *bal
	return nil
}

func (t *memTx) CreateDeposit(_ context.Context, rec *bridge.DepositRecord) error {
	key := holderKey{rec.Contract, rec.Owner, rec.Balance.Symbol.Code}
	if _, ok := t.s.depositIndex[key]; ok {
		return ErrAlreadyExists
	}
	rec.ID = t.s.nextDeposit
	t.s.nextDeposit++
	t.s.deposits[rec.ID] = *rec
	t.s.depositIndex[key] = rec.ID
	return nil
}

func (t *memTx) UpdateDeposit(_ context.Context, rec *bridge.DepositRecord) error {
	existing, ok := t.s.deposits[rec.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Balance.Amount = rec.Balance.Amount
	existing.UpdatedAt = rec.UpdatedAt
	t.s.deposits[rec.ID] = existing
	return nil
}

func (t *memTx) DeleteDeposit(_ context.Context, id uint64) error {
	rec, ok := t.s.deposits[id]
	if !ok {
		return ErrNotFound
	}
	delete(t.s.deposits, id)
	delete(t.s.depositIndex, holderKey{rec.Contract, rec.Owner, rec.Balance.Symbol.Code})
	return nil
}

func (t *memTx) CreateEscrow(_ context.Context, rec *bridge.EscrowRecord) error {
	if _, ok := t.s.escrows[rec.Sequence]; ok {
		return ErrAlreadyExists
	}
	t.s.escrows[rec.Sequence] = *rec
	return nil
}

func (t *memTx) DeleteEscrow(_ context.Context, seq uint64) error {
	if _, ok := t.s.escrows[seq]; !ok {
		return ErrNotFound
	}
	delete(t.s.escrows, seq)
	return nil
}

func (t *memTx) RequeueAction(_ context.Context, id uuid.UUID, at time.Time) error {
	e, ok := t.s.outbox[id]
	if !ok {
		return ErrNotFound
	}
	e.action.Status = bridge.OutboxStatusPending
	e.action.Attempts = 0
	e.action.UpdatedAt = at
	t.s.outbox[id] = e
	return nil
}

func (t *memTx) NextSequence(_ context.Context, channel chain.Name) (uint64, error) {
	t.s.sequences[channel]++
	return t.s.sequences[channel], nil
}

func (t *memTx) EnqueueAction(_ context.Context, action *bridge.OutboxAction) error {
	if _, ok := t.s.outbox[action.ID]; ok {
		return ErrAlreadyExists
	}
	t.s.nextOrder++
	t.s.outbox[action.ID] = outboxEntry{action: *action, order: t.s.nextOrder}
	return nil
}
