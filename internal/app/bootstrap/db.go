// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	institutestore "github.com/lyceumhq/lyceum/internal/app/store/institutes"
	"github.com/lyceumhq/lyceum/internal/app/system/indexes"
	"github.com/lyceumhq/lyceum/internal/app/system/tenancy"
	"github.com/lyceumhq/lyceum/internal/app/system/timeouts"
)

// ConnectDB establishes the MongoDB connection used by the whole app.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		LyceumMongoClient:   client,
		LyceumMongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates indexes and the well-known documents the app assumes
// exist: every store's index set, plus the generic institute that backs
// individual workspaces.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.LyceumMongoDatabase

	if err := indexes.EnsureAll(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	inst, err := institutestore.New(db).EnsureGeneric(ctx, tenancy.GenericInstituteName)
	if err != nil {
		return fmt.Errorf("ensure generic institute: %w", err)
	}
	logger.Info("schema ready",
		zap.String("generic_institute_id", inst.ID.Hex()))

	return nil
}
