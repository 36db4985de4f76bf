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
		log.Println("creating outbox_actions table...")
		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if err := mghelper.CreateSchema(ctx, tx, &bridgestore.OutboxActionDao{}); err != nil {
				return err
			}
			return mghelper.CreateIndex(ctx, tx, "outbox_actions", "idx_outbox_actions_status", "status")
		})
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping outbox_actions table...")
		return mghelper.DropTables(ctx, db, &bridgestore.OutboxActionDao{})
	})
}
