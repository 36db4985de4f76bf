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
		log.Println("creating channel_sequences table...")
		return mghelper.CreateSchema(ctx, db, &bridgestore.SequenceDao{})
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping channel_sequences table...")
		return mghelper.DropTables(ctx, db, &bridgestore.SequenceDao{})
	})
}
