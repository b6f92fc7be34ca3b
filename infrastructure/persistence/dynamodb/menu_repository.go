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

// MenuRepository implements the MenuRepository port using DynamoDB.
// PK = COLLECTION#<collectionID>, SK = MENU#<menuID>; entries embedded.
// GSI1 resolves menu names within a collection.
type MenuRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewMenuRepository creates a new MenuRepository
func NewMenuRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.MenuRepository {
	return &MenuRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// menuEntryItem is one embedded menu entry
type menuEntryItem struct {
	ArticleID   string `dynamodbav:"ArticleID"`
	SortOrder   int    `dynamodbav:"SortOrder"`
	DisplayName string `dynamodbav:"DisplayName,omitempty"`
}

// menuItem represents the DynamoDB item structure for a menu
type menuItem struct {
	PK           string          `dynamodbav:"PK"`
	SK           string          `dynamodbav:"SK"`
	GSI1PK       string          `dynamodbav:"GSI1PK"`
	GSI1SK       string          `dynamodbav:"GSI1SK"`
	EntityType   string          `dynamodbav:"EntityType"`
	MenuID       string          `dynamodbav:"MenuID"`
	CollectionID string          `dynamodbav:"CollectionID"`
	Name         string          `dynamodbav:"Name"`
	Entries      []menuEntryItem `dynamodbav:"Entries"`
	CreatedAt    string          `dynamodbav:"CreatedAt"`
}

func menuPK(collectionID string) string { return fmt.Sprintf("COLLECTION#%s", collectionID) }

// Save persists a menu and its entries
func (r *MenuRepository) Save(ctx context.Context, menu *entities.Menu) error {
	entries := menu.OrderedEntries()
	entryItems := make([]menuEntryItem, 0, len(entries))
	for _, entry := range entries {
		entryItems = append(entryItems, menuEntryItem{
			ArticleID:   entry.ArticleID.String(),
			SortOrder:   entry.SortOrder,
			DisplayName: entry.DisplayName,
		})
	}

	item := menuItem{
		PK:           menuPK(menu.CollectionID()),
		SK:           fmt.Sprintf("MENU#%s", menu.ID()),
		GSI1PK:       fmt.Sprintf("COLLECTION#%s#MENUNAME", menu.CollectionID()),
		GSI1SK:       menu.Name(),
		EntityType:   "MENU",
		MenuID:       menu.ID(),
		CollectionID: menu.CollectionID(),
		Name:         menu.Name(),
		Entries:      entryItems,
		CreatedAt:    menu.CreatedAt().Format(time.RFC3339Nano),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal menu", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("failed to save menu",
			zap.Error(err),
			zap.String("menuID", menu.ID()),
		)
		return pkgerrors.NewDatabaseError("save menu", err)
	}
	return nil
}

// GetByName retrieves a menu by collection and name via GSI1
func (r *MenuRepository) GetByName(ctx context.Context, collectionID, name string) (*entities.Menu, error) {
	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND GSI1SK = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("COLLECTION#%s#MENUNAME", collectionID)},
			":sk": &types.AttributeValueMemberS{Value: name},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query menu by name", err)
	}
	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("menu " + name)
	}
	return r.unmarshalMenu(result.Items[0])
}

// ListByCollection retrieves all menus of a collection
func (r *MenuRepository) ListByCollection(ctx context.Context, collectionID string) ([]*entities.Menu, error) {
	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: menuPK(collectionID)},
			":sk": &types.AttributeValueMemberS{Value: "MENU#"},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list menus", err)
	}

	menus := make([]*entities.Menu, 0, len(result.Items))
	for _, item := range result.Items {
		menu, err := r.unmarshalMenu(item)
		if err != nil {
			return nil, err
		}
		menus = append(menus, menu)
	}
	return menus, nil
}

// Delete removes a menu
func (r *MenuRepository) Delete(ctx context.Context, collectionID, id string) error {
	result, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: menuPK(collectionID)},
			"SK": &types.AttributeValueMemberS{Value: fmt.Sprintf("MENU#%s", id)},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("delete menu", err)
	}
	if len(result.Attributes) == 0 {
		return pkgerrors.NewNotFoundError("menu " + id)
	}
	return nil
}

func (r *MenuRepository) unmarshalMenu(av map[string]types.AttributeValue) (*entities.Menu, error) {
	var item menuItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal menu", err)
	}

	entries := make([]entities.MenuEntry, 0, len(item.Entries))
	for _, ei := range item.Entries {
		articleID, err := valueobjects.NewArticleIDFromString(ei.ArticleID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entities.MenuEntry{
			ArticleID:   articleID,
			SortOrder:   ei.SortOrder,
			DisplayName: ei.DisplayName,
		})
	}

	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}

	return entities.ReconstituteMenu(
		item.MenuID,
		item.CollectionID,
		item.Name,
		entries,
		createdAt,
	), nil
}
