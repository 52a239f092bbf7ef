// Package dynamodb implements mind map persistence on a DynamoDB single
// table: PK "USER#<userID>", SK "MINDMAP#<mapID>".
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"mindmap-backend/application/ports"
	"mindmap-backend/domain/mindmap"
	apperrors "mindmap-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// MindMapRepository implements ports.MindMapRepository using DynamoDB.
type MindMapRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewMindMapRepository creates a new MindMapRepository
func NewMindMapRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.MindMapRepository {
	return &MindMapRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// mindmapItem represents the DynamoDB item structure for a mind map
type mindmapItem struct {
	PK         string                `dynamodbav:"PK"`
	SK         string                `dynamodbav:"SK"`
	EntityType string                `dynamodbav:"EntityType"`
	MindMapID  string                `dynamodbav:"MindMapID"`
	UserID     string                `dynamodbav:"UserID"`
	Title      string                `dynamodbav:"Title"`
	SourceText string                `dynamodbav:"SourceText"`
	Language   string                `dynamodbav:"Language"`
	Keywords   []mindmap.ConceptNode `dynamodbav:"Keywords"`
	CreatedAt  string                `dynamodbav:"CreatedAt"`
	UpdatedAt  string                `dynamodbav:"UpdatedAt"`
}

func userPK(userID string) string { return fmt.Sprintf("USER#%s", userID) }
func mindmapSK(id string) string  { return fmt.Sprintf("MINDMAP#%s", id) }

// Save persists a mind map. Maps are write-once, so the put is conditioned on
// the item not existing yet.
func (r *MindMapRepository) Save(ctx context.Context, m *mindmap.MindMap) error {
	item := mindmapItem{
		PK:         userPK(m.UserID),
		SK:         mindmapSK(m.ID),
		EntityType: "MINDMAP",
		MindMapID:  m.ID,
		UserID:     m.UserID,
		Title:      m.Title,
		SourceText: m.SourceText,
		Language:   m.Language,
		Keywords:   m.Keywords,
		CreatedAt:  m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  m.UpdatedAt.Format(time.RFC3339),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return apperrors.NewDatabaseError("save mindmap", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		r.logger.Error("Failed to put mind map item",
			zap.String("mindmapID", m.ID),
			zap.Error(err),
		)
		return apperrors.NewDatabaseError("save mindmap", err)
	}

	return nil
}

// GetByID retrieves a mind map by id, scoped to its owner.
func (r *MindMapRepository) GetByID(ctx context.Context, userID, id string) (*mindmap.MindMap, error) {
	key, err := attributevalue.MarshalMap(map[string]string{
		"PK": userPK(userID),
		"SK": mindmapSK(id),
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get mindmap", err)
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       key,
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get mindmap", err)
	}
	if out.Item == nil {
		return nil, apperrors.NewNotFoundError("mind map")
	}

	return unmarshalMindMap(out.Item)
}

// ListByUser retrieves all mind maps for a user, newest first.
func (r *MindMapRepository) ListByUser(ctx context.Context, userID string) ([]*mindmap.MindMap, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(userPK(userID))).
		And(expression.Key("SK").BeginsWith("MINDMAP#"))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("list mindmaps", err)
	}

	maps := make([]*mindmap.MindMap, 0)
	var lastKey map[string]types.AttributeValue

	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, apperrors.NewDatabaseError("list mindmaps", err)
		}

		for _, item := range out.Items {
			m, err := unmarshalMindMap(item)
			if err != nil {
				r.logger.Warn("Skipping unreadable mind map item", zap.Error(err))
				continue
			}
			maps = append(maps, m)
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		lastKey = out.LastEvaluatedKey
	}

	// The sort key is the map id, so recency ordering happens here.
	sort.Slice(maps, func(i, j int) bool {
		return maps[i].CreatedAt.After(maps[j].CreatedAt)
	})

	return maps, nil
}

// Delete removes a mind map, scoped to its owner. Deleting a map the user
// does not own (or that never existed) reports not found.
func (r *MindMapRepository) Delete(ctx context.Context, userID, id string) error {
	key, err := attributevalue.MarshalMap(map[string]string{
		"PK": userPK(userID),
		"SK": mindmapSK(id),
	})
	if err != nil {
		return apperrors.NewDatabaseError("delete mindmap", err)
	}

	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return apperrors.NewNotFoundError("mind map")
		}
		return apperrors.NewDatabaseError("delete mindmap", err)
	}

	return nil
}

func unmarshalMindMap(av map[string]types.AttributeValue) (*mindmap.MindMap, error) {
	var item mindmapItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal mindmap", err)
	}

	createdAt, err := time.Parse(time.RFC3339, item.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}
	updatedAt, err := time.Parse(time.RFC3339, item.UpdatedAt)
	if err != nil {
		updatedAt = createdAt
	}

	keywords := item.Keywords
	if keywords == nil {
		keywords = []mindmap.ConceptNode{}
	}

	return &mindmap.MindMap{
		ID:         item.MindMapID,
		UserID:     item.UserID,
		Title:      item.Title,
		SourceText: item.SourceText,
		Language:   item.Language,
		Keywords:   keywords,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}
