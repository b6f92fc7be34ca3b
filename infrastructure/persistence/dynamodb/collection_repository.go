package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"atomcms/application/ports"
	"atomcms/domain/core/entities"
	"atomcms/domain/core/valueobjects"
	pkgerrors "atomcms/pkg/errors"
)

// CollectionRepository implements the CollectionRepository port using
// DynamoDB. PK = CLIENT#<clientID>, SK = COLLECTION#<collectionID>;
// slots are embedded. GSI1 resolves collection names.
type CollectionRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewCollectionRepository creates a new CollectionRepository
func NewCollectionRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.CollectionRepository {
	return &CollectionRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// slotItem is one embedded article slot
type slotItem struct {
	ArticleID string `dynamodbav:"ArticleID"`
	SortOrder int    `dynamodbav:"SortOrder"`
	URL       string `dynamodbav:"URL,omitempty"`
	Template  string `dynamodbav:"Template,omitempty"`
	Meta      string `dynamodbav:"Meta,omitempty"`
}

// collectionItem represents the DynamoDB item structure for a collection
type collectionItem struct {
	PK           string     `dynamodbav:"PK"`
	SK           string     `dynamodbav:"SK"`
	GSI1PK       string     `dynamodbav:"GSI1PK"`
	GSI1SK       string     `dynamodbav:"GSI1SK"`
	EntityType   string     `dynamodbav:"EntityType"`
	CollectionID string     `dynamodbav:"CollectionID"`
	ClientID     string     `dynamodbav:"ClientID"`
	Name         string     `dynamodbav:"Name"`
	Slots        []slotItem `dynamodbav:"Slots"`
	CreatedAt    string     `dynamodbav:"CreatedAt"`
}

func collectionSK(id string) string { return fmt.Sprintf("COLLECTION#%s", id) }

// Save persists a collection and its slots
func (r *CollectionRepository) Save(ctx context.Context, collection *entities.Collection) error {
	slots := collection.OrderedSlots()
	slotItems := make([]slotItem, 0, len(slots))
	for _, slot := range slots {
		slotItems = append(slotItems, slotItem{
			ArticleID: slot.ArticleID.String(),
			SortOrder: slot.SortOrder,
			URL:       slot.URL,
			Template:  slot.Template,
			Meta:      slot.Meta,
		})
	}

	item := collectionItem{
		PK:           atomPK(collection.ClientID()),
		SK:           collectionSK(collection.ID()),
		GSI1PK:       fmt.Sprintf("CLIENT#%s#COLLECTIONNAME", collection.ClientID()),
		GSI1SK:       collection.Name(),
		EntityType:   "COLLECTION",
		CollectionID: collection.ID(),
		ClientID:     collection.ClientID(),
		Name:         collection.Name(),
		Slots:        slotItems,
		CreatedAt:    collection.CreatedAt().Format(time.RFC3339Nano),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal collection", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("failed to save collection",
			zap.Error(err),
			zap.String("collectionID", collection.ID()),
		)
		return pkgerrors.NewDatabaseError("save collection", err)
	}
	return nil
}

// GetByID retrieves a collection by its ID
func (r *CollectionRepository) GetByID(ctx context.Context, clientID, id string) (*entities.Collection, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: atomPK(clientID)},
			"SK": &types.AttributeValueMemberS{Value: collectionSK(id)},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get collection", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("collection " + id)
	}
	return r.unmarshalCollection(result.Item)
}

// GetByName retrieves a collection by name via GSI1
func (r *CollectionRepository) GetByName(ctx context.Context, clientID, name string) (*entities.Collection, error) {
	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND GSI1SK = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("CLIENT#%s#COLLECTIONNAME", clientID)},
			":sk": &types.AttributeValueMemberS{Value: name},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query collection by name", err)
	}
	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("collection " + name)
	}
	return r.unmarshalCollection(result.Items[0])
}

// ListByClient retrieves all collections for a client
func (r *CollectionRepository) ListByClient(ctx context.Context, clientID string) ([]*entities.Collection, error) {
	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: atomPK(clientID)},
			":sk": &types.AttributeValueMemberS{Value: "COLLECTION#"},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list collections", err)
	}

	collections := make([]*entities.Collection, 0, len(result.Items))
	for _, item := range result.Items {
		collection, err := r.unmarshalCollection(item)
		if err != nil {
			return nil, err
		}
		collections = append(collections, collection)
	}
	return collections, nil
}

// Delete removes a collection, its slots and its menus
func (r *CollectionRepository) Delete(ctx context.Context, clientID, id string) error {
	result, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: atomPK(clientID)},
			"SK": &types.AttributeValueMemberS{Value: collectionSK(id)},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("delete collection", err)
	}
	if len(result.Attributes) == 0 {
		return pkgerrors.NewNotFoundError("collection " + id)
	}

	// Menus hang off the collection partition; sweep them too.
	menuResult, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: menuPK(id)},
			":sk": &types.AttributeValueMemberS{Value: "MENU#"},
		},
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("list menus for delete", err)
	}
	for _, item := range menuResult.Items {
		_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(r.tableName),
			Key: map[string]types.AttributeValue{
				"PK": item["PK"],
				"SK": item["SK"],
			},
		})
		if err != nil {
			return pkgerrors.NewDatabaseError("delete menu", err)
		}
	}
	return nil
}

func (r *CollectionRepository) unmarshalCollection(av map[string]types.AttributeValue) (*entities.Collection, error) {
	var item collectionItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal collection", err)
	}

	slots := make([]entities.CollectionSlot, 0, len(item.Slots))
	for _, si := range item.Slots {
		articleID, err := valueobjects.NewArticleIDFromString(si.ArticleID)
		if err != nil {
			return nil, err
		}
		slots = append(slots, entities.CollectionSlot{
			ArticleID: articleID,
			SortOrder: si.SortOrder,
			URL:       si.URL,
			Template:  si.Template,
			Meta:      si.Meta,
		})
	}

	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}

	return entities.ReconstituteCollection(
		item.CollectionID,
		item.ClientID,
		item.Name,
		slots,
		createdAt,
	), nil
}
