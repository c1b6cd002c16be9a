package dynamodb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"kintree/application/ports"
	"kintree/domain/core/aggregates"
	pkgerrors "kintree/pkg/errors"
)

// DocumentStore implements the DocumentStore port on DynamoDB with
// append-only snapshot items. One folder maps to one partition; the
// sort key carries the snapshot name so a reverse Query yields the
// name-descending listing the port requires.
type DocumentStore struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewDocumentStore creates a DynamoDB-backed snapshot store
func NewDocumentStore(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.DocumentStore {
	return &DocumentStore{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// snapshotItem represents the DynamoDB item structure for a snapshot
type snapshotItem struct {
	PK           string `dynamodbav:"PK"` // FOLDER#<folderID>
	SK           string `dynamodbav:"SK"` // SNAP#<name>
	EntityType   string `dynamodbav:"EntityType"`
	SnapshotID   string `dynamodbav:"SnapshotID"`
	FolderID     string `dynamodbav:"FolderID"`
	Name         string `dynamodbav:"Name"`
	TreeID       string `dynamodbav:"TreeID"`
	VersionIndex int    `dynamodbav:"VersionIndex"`
	Document     string `dynamodbav:"Document"` // snapshot JSON, stored opaque
	CreatedTime  string `dynamodbav:"CreatedTime"`
	ModifiedTime string `dynamodbav:"ModifiedTime"`
}

// List returns the snapshots in a folder ordered by name descending
func (s *DocumentStore) List(ctx context.Context, folderID string) ([]ports.SnapshotInfo, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: folderKey(folderID)},
			":prefix": &types.AttributeValueMemberS{Value: "SNAP#"},
		},
		// Reverse key order gives newest-named first
		ScanIndexForward: aws.Bool(false),
	}

	var infos []ports.SnapshotInfo
	paginator := dynamodb.NewQueryPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("list snapshots", err)
		}
		for _, raw := range page.Items {
			var item snapshotItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, pkgerrors.NewDatabaseError("unmarshal snapshot item", err)
			}
			infos = append(infos, item.info())
		}
	}
	return infos, nil
}

// Read fetches one snapshot by id
func (s *DocumentStore) Read(ctx context.Context, id string) (*aggregates.TreeDocument, error) {
	folderID, name, err := splitSnapshotID(id)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: folderKey(folderID)},
			"SK": &types.AttributeValueMemberS{Value: snapKey(name)},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("read snapshot", err)
	}
	if out.Item == nil {
		return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("snapshot %q", id))
	}

	var item snapshotItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal snapshot item", err)
	}

	var doc aggregates.TreeDocument
	if err := json.Unmarshal([]byte(item.Document), &doc); err != nil {
		return nil, pkgerrors.NewMalformedDocumentError(
			fmt.Sprintf("snapshot %q holds invalid JSON: %v", id, err),
		)
	}
	return &doc, nil
}

// Write creates a new snapshot blob. A conditional put enforces the
// append-only contract: an existing name in the folder fails with a
// conflict instead of being overwritten.
func (s *DocumentStore) Write(ctx context.Context, folderID, name string, doc *aggregates.TreeDocument) (ports.SnapshotInfo, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return ports.SnapshotInfo{}, pkgerrors.NewInternalError("marshal snapshot").WithCause(err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	item := snapshotItem{
		PK:           folderKey(folderID),
		SK:           snapKey(name),
		EntityType:   "SNAPSHOT",
		SnapshotID:   uuid.New().String(),
		FolderID:     folderID,
		Name:         name,
		TreeID:       doc.TreeID,
		VersionIndex: doc.VersionIndex,
		Document:     string(payload),
		CreatedTime:  now,
		ModifiedTime: now,
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return ports.SnapshotInfo{}, pkgerrors.NewDatabaseError("marshal snapshot item", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return ports.SnapshotInfo{}, pkgerrors.NewConflictError(
				fmt.Sprintf("snapshot %q already exists in folder %q", name, folderID),
			).WithCode(pkgerrors.CodeSnapshotExists)
		}
		return ports.SnapshotInfo{}, pkgerrors.NewDatabaseError("write snapshot", err)
	}

	s.logger.Info("wrote snapshot",
		zap.String("folderID", folderID),
		zap.String("name", name),
		zap.String("treeId", doc.TreeID),
		zap.Int("versionIndex", doc.VersionIndex),
	)
	return item.info(), nil
}

func (item snapshotItem) info() ports.SnapshotInfo {
	created, _ := time.Parse(time.RFC3339, item.CreatedTime)
	modified, _ := time.Parse(time.RFC3339, item.ModifiedTime)
	return ports.SnapshotInfo{
		ID:           joinSnapshotID(item.FolderID, item.Name),
		Name:         item.Name,
		CreatedTime:  created,
		ModifiedTime: modified,
	}
}

func folderKey(folderID string) string {
	return "FOLDER#" + folderID
}

func snapKey(name string) string {
	return "SNAP#" + name
}

// Snapshot ids are "<folderID>/<name>" so Read can address the item
// directly without a secondary index
func joinSnapshotID(folderID, name string) string {
	return folderID + "/" + name
}

func splitSnapshotID(id string) (folderID, name string, err error) {
	idx := strings.LastIndex(id, "/")
	if idx <= 0 || idx == len(id)-1 {
		return "", "", pkgerrors.NewValidationError(fmt.Sprintf("invalid snapshot id %q", id))
	}
	return id[:idx], id[idx+1:], nil
}
