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
		log.Println("creating escrows table...")
		return mghelper.CreateSchema(ctx, db, &bridgestore.EscrowDao{})
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping escrows table...")
		return mghelper.DropTables(ctx, db, &bridgestore.EscrowDao{})
	})
}
