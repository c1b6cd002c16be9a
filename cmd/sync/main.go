package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"kintree/application/services"
	"kintree/domain/core/aggregates"
	"kintree/domain/merge"
	"kintree/infrastructure/config"
	"kintree/infrastructure/persistence/dynamodb"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.LocalSnapshotPath == "" {
		logger.Fatal("LOCAL_SNAPSHOT_PATH is required")
	}

	local, err := loadSnapshot(cfg.LocalSnapshotPath)
	if err != nil {
		logger.Fatal("Failed to load local snapshot",
			zap.String("path", cfg.LocalSnapshotPath),
			zap.Error(err),
		)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		logger.Fatal("Failed to load AWS configuration", zap.Error(err))
	}

	store := dynamodb.NewDocumentStore(awsdynamodb.NewFromConfig(awsCfg), cfg.SnapshotTable, logger)
	engine := merge.NewEngine(nil)
	syncSvc := services.NewSyncService(store, engine, cfg.TreeFolderID, logger)
	syncSvc.SetMaxAttempts(cfg.SyncMaxAttempts)

	result, info, err := syncSvc.Publish(ctx, local)
	if err != nil {
		logger.Fatal("Sync failed",
			zap.String("treeId", local.TreeID),
			zap.Error(err),
		)
	}

	if result == nil {
		logger.Info("Local snapshot published without merge",
			zap.String("name", info.Name),
		)
		return
	}
	logger.Info("Sync complete",
		zap.String("name", info.Name),
		zap.Int("versionIndex", result.Document.VersionIndex),
		zap.Int("nodeCount", result.Document.Meta.NodeCount),
		zap.Int("warnings", len(result.Warnings)),
	)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func loadSnapshot(path string) (*aggregates.TreeDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc aggregates.TreeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
