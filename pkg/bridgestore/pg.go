package bridgestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/chainsafe/icp-token/pkg/bridge"
	"github.com/chainsafe/icp-token/pkg/chain"
)

const (
	pgUniqueViolation       = "23505"
	pgSerializationFailure  = "40001"
	maxSerializationRetries = 3
)

type pgStore struct {
	pgQueries
	db *bun.DB
}

// NewStore creates a new postgres implementation of the bridge store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{pgQueries: pgQueries{db: db}, db: db}
}

// RunInTx runs fn in a serializable transaction, retrying it when postgres
// aborts it with a serialization failure.
func (s *pgStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	var err error
	for attempt := 0; attempt < maxSerializationRetries; attempt++ {
		err = s.db.RunInTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, func(ctx context.Context, tx bun.Tx) error {
			return fn(ctx, &pgQueries{db: tx})
		})
		if !isPgError(err, pgSerializationFailure) {
			return err
		}
	}
	return fmt.Errorf("transaction retries exhausted: %w", err)
}

func (s *pgStore) ListPendingActions(ctx context.Context, limit int) ([]*bridge.OutboxAction, error) {
	return s.ListActions(ctx, bridge.OutboxStatusPending, limit)
}

func (s *pgStore) MarkActionDelivered(ctx context.Context, id uuid.UUID, at time.Time) error {
	res, err := s.db.NewUpdate().
		Model((*OutboxActionDao)(nil)).
		Set("status = ?", string(bridge.OutboxStatusDelivered)).
		Set("attempts = attempts + 1").
		Set("updated_at = ?", at).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark action delivered: %w", err)
	}
	return requireAffected(res)
}

func (s *pgStore) MarkActionFailed(
	ctx context.Context,
	id uuid.UUID,
	lastErr string,
	maxAttempts int,
	at time.Time,
) (bridge.OutboxStatus, error) {
	var status string
	err := s.db.NewUpdate().
		Model((*OutboxActionDao)(nil)).
		Set("attempts = attempts + 1").
		Set("last_error = ?", lastErr).
		Set("status = CASE WHEN attempts + 1 >= ? THEN ? ELSE status END", maxAttempts, string(bridge.OutboxStatusFailed)).
		Set("updated_at = ?", at).
		Where("id = ?", id).
		Returning("status").
		Scan(ctx, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to mark action failed: %w", err)
	}
	return bridge.OutboxStatus(status), nil
}

// pgQueries implements Reader and Tx on a database handle or a transaction.
type pgQueries struct {
	db bun.IDB
}

func (q *pgQueries) GetConfig(ctx context.Context) (*bridge.ChannelConfig, error) {
	dao := new(ConfigDao)
	err := q.db.NewSelect().Model(dao).Where("id = ?", configID).Scan(ctx)
	if err != nil {
		return nil, notFound(err, "failed to get config")
	}
	return toConfig(dao), nil
}

func (q *pgQueries) CreateConfig(ctx context.Context, cfg *bridge.ChannelConfig) error {
	_, err := q.db.NewInsert().
		Model(&ConfigDao{ID: configID, ICP: cfg.ICP.String(), Peer: cfg.Peer.String()}).
		Exec(ctx)
	return conflict(err, "failed to create config")
}

func (q *pgQueries) AccountExists(ctx context.Context, name chain.Name) (bool, error) {
	exists, err := q.db.NewSelect().
		Model((*AccountDao)(nil)).
		Where("name = ?", name.String()).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check account exists: %w", err)
	}
	return exists, nil
}

func (q *pgQueries) CreateAccount(ctx context.Context, account *bridge.Account) error {
	_, err := q.db.NewInsert().
		Model(&AccountDao{Name: account.Name.String(), CreatedAt: account.CreatedAt}).
		Exec(ctx)
	return conflict(err, "failed to create account")
}

func (q *pgQueries) GetSupply(ctx context.Context, contract chain.Name, code string) (*bridge.SupplyRecord, error) {
	dao := new(SupplyDao)
	err := q.db.NewSelect().
		Model(dao).
		Where("contract = ?", contract.String()).
		Where("symbol_code = ?", code).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "failed to get supply")
	}
	return toSupply(dao), nil
}

func (q *pgQueries) ListSupplies(ctx context.Context) ([]*bridge.SupplyRecord, error) {
	var daos []SupplyDao
	if err := q.db.NewSelect().Model(&daos).Order("contract", "symbol_code").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list supplies: %w", err)
	}
	out := make([]*bridge.SupplyRecord, len(daos))
	for i := range daos {
		out[i] = toSupply(&daos[i])
	}
	return out, nil
}

func (q *pgQueries) CreateSupply(ctx context.Context, rec *bridge.SupplyRecord) error {
	_, err := q.db.NewInsert().Model(toSupplyDao(rec)).Exec(ctx)
	return conflict(err, "failed to create supply")
}

func (q *pgQueries) UpdateSupply(ctx context.Context, rec *bridge.SupplyRecord) error {
	dao := toSupplyDao(rec)
	dao.UpdatedAt = time.Now().UTC()
	res, err := q.db.NewUpdate().
		Model(dao).
		Column("supply", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update supply: %w", err)
	}
	return requireAffected(res)
}

func (q *pgQueries) GetBalance(ctx context.Context, contract, owner chain.Name, code string) (*bridge.Balance, error) {
	dao := new(BalanceDao)
	err := q.db.NewSelect().
		Model(dao).
		Where("contract = ?", contract.String()).
		Where("owner = ?", owner.String()).
		Where("symbol_code = ?", code).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "failed to get balance")
	}
	return toBalance(dao), nil
}

func (q *pgQueries) ListBalances(ctx context.Context) ([]*bridge.Balance, error) {
	var daos []BalanceDao
	if err := q.db.NewSelect().Model(&daos).Order("contract", "owner", "symbol_code").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	out := make([]*bridge.Balance, len(daos))
	for i := range daos {
		out[i] = toBalance(&daos[i])
	}
	return out, nil
}

func (q *pgQueries) SaveBalance(ctx context.Context, bal *bridge.Balance) error {
	dao := toBalanceDao(bal)
	dao.UpdatedAt = time.Now().UTC()
	_, err := q.db.NewInsert().
		Model(dao).
		On("CONFLICT (contract, owner, symbol_code) DO UPDATE").
		Set("amount = EXCLUDED.amount").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save balance: %w", err)
	}
	return nil
}

func (q *pgQueries) GetDeposit(ctx context.Context, contract, owner chain.Name, code string) (*bridge.DepositRecord, error) {
	dao := new(DepositDao)
	err := q.db.NewSelect().
		Model(dao).
		Where("contract = ?", contract.String()).
		Where("owner = ?", owner.String()).
		Where("symbol_code = ?", code).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "failed to get deposit")
	}
	return toDeposit(dao), nil
}

func (q *pgQueries) ListDeposits(ctx context.Context, filter bridge.DepositFilter) ([]*bridge.DepositRecord, error) {
	var daos []DepositDao
	query := q.db.NewSelect().Model(&daos)
	if !filter.Contract.IsEmpty() {
		query = query.Where("contract = ?", filter.Contract.String())
	}
	if !filter.Owner.IsEmpty() {
		query = query.Where("owner = ?", filter.Owner.String())
	}
	if err := query.Order("id").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list deposits: %w", err)
	}
	out := make([]*bridge.DepositRecord, len(daos))
	for i := range daos {
		out[i] = toDeposit(&daos[i])
	}
	return out, nil
}

func (q *pgQueries) CreateDeposit(ctx context.Context, rec *bridge.DepositRecord) error {
	dao := toDepositDao(rec)
	dao.ID = 0
	_, err := q.db.NewInsert().Model(dao).Returning("id").Exec(ctx)
	if err != nil {
		return conflict(err, "failed to create deposit")
	}
	rec.ID = uint64(dao.ID)
	return nil
}

func (q *pgQueries) UpdateDeposit(ctx context.Context, rec *bridge.DepositRecord) error {
	dao := toDepositDao(rec)
	if dao.UpdatedAt.IsZero() {
		dao.UpdatedAt = time.Now().UTC()
	}
	res, err := q.db.NewUpdate().
		Model(dao).
		Column("amount", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update deposit: %w", err)
	}
	return requireAffected(res)
}

func (q *pgQueries) DeleteDeposit(ctx context.Context, id uint64) error {
	res, err := q.db.NewDelete().
		Model((*DepositDao)(nil)).
		Where("id = ?", int64(id)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete deposit: %w", err)
	}
	return requireAffected(res)
}

func (q *pgQueries) GetEscrow(ctx context.Context, seq uint64) (*bridge.EscrowRecord, error) {
	dao := new(EscrowDao)
	err := q.db.NewSelect().Model(dao).Where("sequence = ?", int64(seq)).Scan(ctx)
	if err != nil {
		return nil, notFound(err, "failed to get escrow")
	}
	return toEscrow(dao), nil
}

func (q *pgQueries) ListEscrows(ctx context.Context) ([]*bridge.EscrowRecord, error) {
	var daos []EscrowDao
	if err := q.db.NewSelect().Model(&daos).Order("sequence").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list escrows: %w", err)
	}
	out := make([]*bridge.EscrowRecord, len(daos))
	for i := range daos {
		out[i] = toEscrow(&daos[i])
	}
	return out, nil
}

func (q *pgQueries) CountEscrows(ctx context.Context) (int, error) {
	n, err := q.db.NewSelect().Model((*EscrowDao)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count escrows: %w", err)
	}
	return n, nil
}

func (q *pgQueries) CreateEscrow(ctx context.Context, rec *bridge.EscrowRecord) error {
	_, err := q.db.NewInsert().Model(toEscrowDao(rec)).Exec(ctx)
	return conflict(err, "failed to create escrow")
}

func (q *pgQueries) DeleteEscrow(ctx context.Context, seq uint64) error {
	res, err := q.db.NewDelete().
		Model((*EscrowDao)(nil)).
		Where("sequence = ?", int64(seq)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete escrow: %w", err)
	}
	return requireAffected(res)
}

// NextSequence increments and returns the send sequence of channel
func (q *pgQueries) NextSequence(ctx context.Context, channel chain.Name) (uint64, error) {
	dao := &SequenceDao{Channel: channel.String(), Sequence: 1, UpdatedAt: time.Now().UTC()}
	_, err := q.db.NewInsert().
		Model(dao).
		On("CONFLICT (channel) DO UPDATE").
		Set("sequence = ?TableAlias.sequence + 1").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("sequence").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to increment channel sequence: %w", err)
	}
	return uint64(dao.Sequence), nil
}

func (q *pgQueries) EnqueueAction(ctx context.Context, action *bridge.OutboxAction) error {
	_, err := q.db.NewInsert().Model(toOutboxDao(action)).Exec(ctx)
	return conflict(err, "failed to enqueue action")
}

func (q *pgQueries) GetAction(ctx context.Context, id uuid.UUID) (*bridge.OutboxAction, error) {
	dao := new(OutboxActionDao)
	err := q.db.NewSelect().Model(dao).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, notFound(err, "failed to get outbox action")
	}
	return toOutboxAction(dao), nil
}

func (q *pgQueries) RequeueAction(ctx context.Context, id uuid.UUID, at time.Time) error {
	res, err := q.db.NewUpdate().
		Model((*OutboxActionDao)(nil)).
		Set("status = ?", string(bridge.OutboxStatusPending)).
		Set("attempts = 0").
		Set("updated_at = ?", at).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to requeue action: %w", err)
	}
	return requireAffected(res)
}

func (q *pgQueries) ListActions(ctx context.Context, status bridge.OutboxStatus, limit int) ([]*bridge.OutboxAction, error) {
	var daos []OutboxActionDao
	query := q.db.NewSelect().Model(&daos)
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Order("position").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list outbox actions: %w", err)
	}
	out := make([]*bridge.OutboxAction, len(daos))
	for i := range daos {
		out[i] = toOutboxAction(&daos[i])
	}
	return out, nil
}

func notFound(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func conflict(err error, msg string) error {
	if err == nil {
		return nil
	}
	if isPgError(err, pgUniqueViolation) {
		return fmt.Errorf("%s: %w", msg, ErrAlreadyExists)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isPgError(err error, code string) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == code
}
