package bridgestore

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/chainsafe/icp-token/pkg/bridge"
	"github.com/chainsafe/icp-token/pkg/chain"
)

const configID = 1

// ConfigDao is a data access object that maps directly to the 'channel_config' table in PostgreSQL.
// The table holds at most one row.
type ConfigDao struct {
	bun.BaseModel `bun:"table:channel_config,alias:cc"`
	ID            int       `bun:"id,pk"`
	ICP           string    `bun:"icp,notnull,type:varchar(12)"`
	Peer          string    `bun:"peer,notnull,type:varchar(12)"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// AccountDao is a data access object that maps directly to the 'accounts' table in PostgreSQL.
type AccountDao struct {
	bun.BaseModel `bun:"table:accounts,alias:a"`
	Name          string    `bun:"name,pk,type:varchar(12)"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// SupplyDao is a data access object that maps directly to the 'supplies' table in PostgreSQL.
type SupplyDao struct {
	bun.BaseModel `bun:"table:supplies,alias:s"`
	Contract      string    `bun:"contract,pk,type:varchar(12)"`
	SymbolCode    string    `bun:"symbol_code,pk,type:varchar(7)"`
	Precision     int16     `bun:"symbol_precision,notnull"`
	Supply        int64     `bun:"supply,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// BalanceDao is a data access object that maps directly to the 'balances' table in PostgreSQL.
type BalanceDao struct {
	bun.BaseModel `bun:"table:balances,alias:b"`
	Contract      string    `bun:"contract,pk,type:varchar(12)"`
	Owner         string    `bun:"owner,pk,type:varchar(12)"`
	SymbolCode    string    `bun:"symbol_code,pk,type:varchar(7)"`
	Precision     int16     `bun:"symbol_precision,notnull"`
	Amount        int64     `bun:"amount,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// DepositDao is a data access object that maps directly to the 'deposits' table in PostgreSQL.
// (contract, owner, symbol_code) is unique.
type DepositDao struct {
	bun.BaseModel `bun:"table:deposits,alias:d"`
	ID            int64     `bun:"id,pk,autoincrement"`
	Contract      string    `bun:"contract,notnull,type:varchar(12)"`
	Owner         string    `bun:"owner,notnull,type:varchar(12)"`
	SymbolCode    string    `bun:"symbol_code,notnull,type:varchar(7)"`
	Precision     int16     `bun:"symbol_precision,notnull"`
	Amount        int64     `bun:"amount,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// EscrowDao is a data access object that maps directly to the 'escrows' table in PostgreSQL.
type EscrowDao struct {
	bun.BaseModel `bun:"table:escrows,alias:e"`
	Sequence      int64     `bun:"sequence,pk"`
	Contract      string    `bun:"contract,notnull,type:varchar(12)"`
	Owner         string    `bun:"owner,notnull,type:varchar(12)"`
	SymbolCode    string    `bun:"symbol_code,notnull,type:varchar(7)"`
	Precision     int16     `bun:"symbol_precision,notnull"`
	Amount        int64     `bun:"amount,notnull"`
	Refund        bool      `bun:"refund,notnull"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// SequenceDao is a data access object that maps directly to the 'channel_sequences' table in PostgreSQL.
type SequenceDao struct {
	bun.BaseModel `bun:"table:channel_sequences,alias:cs"`
	Channel       string    `bun:"channel,pk,type:varchar(12)"`
	Sequence      int64     `bun:"sequence,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// OutboxActionDao is a data access object that maps directly to the 'outbox_actions' table in PostgreSQL.
type OutboxActionDao struct {
	bun.BaseModel `bun:"table:outbox_actions,alias:oa"`
	ID            uuid.UUID     `bun:"id,pk,type:uuid"`
	Position      int64         `bun:"position,autoincrement"`
	Kind          string        `bun:"kind,notnull,type:varchar(16)"`
	Target        string        `bun:"target,notnull,type:varchar(12)"`
	Action        bridge.Action `bun:"action,notnull,type:jsonb"`
	Sequence      *int64        `bun:"sequence"`
	Status        string        `bun:"status,notnull,type:varchar(16)"`
	Attempts      int           `bun:"attempts,notnull"`
	LastError     *string       `bun:"last_error,type:text"`
	CreatedAt     time.Time     `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time     `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Models lists every table model in creation order
func Models() []any {
	return []any{
		(*ConfigDao)(nil),
		(*AccountDao)(nil),
		(*SupplyDao)(nil),
		(*BalanceDao)(nil),
		(*DepositDao)(nil),
		(*EscrowDao)(nil),
		(*SequenceDao)(nil),
		(*OutboxActionDao)(nil),
	}
}

func toAsset(amount int64, precision int16, code string) chain.Asset {
	return chain.NewAsset(amount, chain.Symbol{Precision: uint8(precision), Code: code})
}

func toConfig(dao *ConfigDao) *bridge.ChannelConfig {
	return &bridge.ChannelConfig{ICP: chain.Name(dao.ICP), Peer: chain.Name(dao.Peer)}
}

func toSupplyDao(rec *bridge.SupplyRecord) *SupplyDao {
	return &SupplyDao{
		Contract:   rec.Contract.String(),
		SymbolCode: rec.Supply.Symbol.Code,
		Precision:  int16(rec.Supply.Symbol.Precision),
		Supply:     rec.Supply.Amount,
	}
}

func toSupply(dao *SupplyDao) *bridge.SupplyRecord {
	return &bridge.SupplyRecord{
		Contract: chain.Name(dao.Contract),
		Supply:   toAsset(dao.Supply, dao.Precision, dao.SymbolCode),
	}
}

func toBalanceDao(bal *bridge.Balance) *BalanceDao {
	return &BalanceDao{
		Contract:   bal.Contract.String(),
		Owner:      bal.Owner.String(),
		SymbolCode: bal.Balance.Symbol.Code,
		Precision:  int16(bal.Balance.Symbol.Precision),
		Amount:     bal.Balance.Amount,
	}
}

func toBalance(dao *BalanceDao) *bridge.Balance {
	return &bridge.Balance{
		Contract: chain.Name(dao.Contract),
		Owner:    chain.Name(dao.Owner),
		Balance:  toAsset(dao.Amount, dao.Precision, dao.SymbolCode),
	}
}

func toDepositDao(rec *bridge.DepositRecord) *DepositDao {
	return &DepositDao{
		ID:         int64(rec.ID),
		Contract:   rec.Contract.String(),
		Owner:      rec.Owner.String(),
		SymbolCode: rec.Balance.Symbol.Code,
		Precision:  int16(rec.Balance.Symbol.Precision),
		Amount:     rec.Balance.Amount,
		UpdatedAt:  rec.UpdatedAt,
	}
}

func toDeposit(dao *DepositDao) *bridge.DepositRecord {
	return &bridge.DepositRecord{
		ID:        uint64(dao.ID),
		Contract:  chain.Name(dao.Contract),
		Owner:     chain.Name(dao.Owner),
		Balance:   toAsset(dao.Amount, dao.Precision, dao.SymbolCode),
		UpdatedAt: dao.UpdatedAt,
	}
}

func toEscrowDao(rec *bridge.EscrowRecord) *EscrowDao {
	return &EscrowDao{
		Sequence:   int64(rec.Sequence),
		Contract:   rec.Contract.String(),
		Owner:      rec.Owner.String(),
		SymbolCode: rec.Amount.Symbol.Code,
		Precision:  int16(rec.Amount.Symbol.Precision),
		Amount:     rec.Amount.Amount,
		Refund:     rec.Refund,
		CreatedAt:  rec.CreatedAt,
	}
}

func toEscrow(dao *EscrowDao) *bridge.EscrowRecord {
	return &bridge.EscrowRecord{
		Sequence:  uint64(dao.Sequence),
		Contract:  chain.Name(dao.Contract),
		Owner:     chain.Name(dao.Owner),
		Amount:    toAsset(dao.Amount, dao.Precision, dao.SymbolCode),
		Refund:    dao.Refund,
		CreatedAt: dao.CreatedAt,
	}
}

func toOutboxDao(a *bridge.OutboxAction) *OutboxActionDao {
	dao := &OutboxActionDao{
		ID:        a.ID,
		Kind:      string(a.Kind),
		Target:    a.Target.String(),
		Action:    a.Action,
		Status:    string(a.Status),
		Attempts:  a.Attempts,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.Sequence != nil {
		seq := int64(*a.Sequence)
		dao.Sequence = &seq
	}
	if a.LastError != "" {
		dao.LastError = &a.LastError
	}
	return dao
}

func toOutboxAction(dao *OutboxActionDao) *bridge.OutboxAction {
	a := &bridge.OutboxAction{
		ID:        dao.ID,
		Kind:      bridge.OutboxKind(dao.Kind),
		Target:    chain.Name(dao.Target),
		Action:    dao.Action,
		Status:    bridge.OutboxStatus(dao.Status),
		Attempts:  dao.Attempts,
		CreatedAt: dao.CreatedAt,
		UpdatedAt: dao.UpdatedAt,
	}
	if dao.Sequence != nil {
		seq := uint64(*dao.Sequence)
		a.Sequence = &seq
	}
	if dao.LastError != nil {
		a.LastError = *dao.LastError
	}
	return a
}
