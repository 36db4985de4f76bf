package bridgedb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	"github.com/chainsafe/icp-token/pkg/bridgestore"
	mghelper "github.com/chainsafe/icp-token/pkg/pgutil/migrations"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating deposits table...")
		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if err := mghelper.CreateSchema(ctx, tx, &bridgestore.DepositDao{}); err != nil {
				return err
			}
			// one open deposit per holder and symbol
			return mghelper.CreateUniqueIndex(ctx, tx, "deposits", "idx_deposits_holder", "contract", "owner", "symbol_code")
		})
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping deposits table...")
		if err := mghelper.DropIndex(ctx, db, "idx_deposits_holder"); err != nil {
			return err
		}
		return mghelper.DropTables(ctx, db, &bridgestore.DepositDao{})
	})
}
