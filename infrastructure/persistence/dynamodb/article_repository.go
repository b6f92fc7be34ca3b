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

// ArticleRepository implements the ArticleRepository port using
// DynamoDB. PK = CLIENT#<clientID>, SK = ARTICLE#<articleID>; the atom
// reference list is embedded in the item, since it is only ever read
// and written together with the article. GSI1 resolves article names.
type ArticleRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewArticleRepository creates a new ArticleRepository
func NewArticleRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.ArticleRepository {
	return &ArticleRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// atomRefItem is one embedded atom reference
type atomRefItem struct {
	AtomID    string `dynamodbav:"AtomID"`
	SortOrder int    `dynamodbav:"SortOrder"`
}

// articleItem represents the DynamoDB item structure for an article
type articleItem struct {
	PK         string        `dynamodbav:"PK"`
	SK         string        `dynamodbav:"SK"`
	GSI1PK     string        `dynamodbav:"GSI1PK"`
	GSI1SK     string        `dynamodbav:"GSI1SK"`
	EntityType string        `dynamodbav:"EntityType"`
	ArticleID  string        `dynamodbav:"ArticleID"`
	ClientID   string        `dynamodbav:"ClientID"`
	Name       string        `dynamodbav:"Name"`
	Atoms      []atomRefItem `dynamodbav:"Atoms"`
	Version    int64         `dynamodbav:"Version"`
	CreatedAt  string        `dynamodbav:"CreatedAt"`
}

func articleSK(id string) string { return fmt.Sprintf("ARTICLE#%s", id) }

// Save persists an article and its atom references
func (r *ArticleRepository) Save(ctx context.Context, article *entities.Article) error {
	refs := article.OrderedAtoms()
	refItems := make([]atomRefItem, 0, len(refs))
	for _, ref := range refs {
		refItems = append(refItems, atomRefItem{
			AtomID:    ref.AtomID.String(),
			SortOrder: ref.SortOrder,
		})
	}

	item := articleItem{
		PK:         atomPK(article.ClientID()),
		SK:         articleSK(article.ID().String()),
		GSI1PK:     fmt.Sprintf("CLIENT#%s#ARTICLENAME", article.ClientID()),
		GSI1SK:     article.Name(),
		EntityType: "ARTICLE",
		ArticleID:  article.ID().String(),
		ClientID:   article.ClientID(),
		Name:       article.Name(),
		Atoms:      refItems,
		Version:    int64(article.Version()),
		CreatedAt:  article.CreatedAt().Format(time.RFC3339Nano),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal article", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("failed to save article",
			zap.Error(err),
			zap.String("articleID", article.ID().String()),
		)
		return pkgerrors.NewDatabaseError("save article", err)
	}
	return nil
}

// GetByID retrieves an article by its ID
func (r *ArticleRepository) GetByID(ctx context.Context, clientID string, id valueobjects.ArticleID) (*entities.Article, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: atomPK(clientID)},
			"SK": &types.AttributeValueMemberS{Value: articleSK(id.String())},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get article", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("article " + id.String())
	}
	return r.unmarshalArticle(result.Item)
}

// GetByName retrieves an article by name via GSI1
func (r *ArticleRepository) GetByName(ctx context.Context, clientID, name string) (*entities.Article, error) {
	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND GSI1SK = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("CLIENT#%s#ARTICLENAME", clientID)},
			":sk": &types.AttributeValueMemberS{Value: name},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query article by name", err)
	}
	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("article " + name)
	}
	return r.unmarshalArticle(result.Items[0])
}

// ListByClient retrieves all articles for a client
func (r *ArticleRepository) ListByClient(ctx context.Context, clientID string) ([]*entities.Article, error) {
	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: atomPK(clientID)},
			":sk": &types.AttributeValueMemberS{Value: "ARTICLE#"},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list articles", err)
	}

	articles := make([]*entities.Article, 0, len(result.Items))
	for _, item := range result.Items {
		article, err := r.unmarshalArticle(item)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// Delete removes an article and its atom references
func (r *ArticleRepository) Delete(ctx context.Context, clientID string, id valueobjects.ArticleID) error {
	result, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: atomPK(clientID)},
			"SK": &types.AttributeValueMemberS{Value: articleSK(id.String())},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("delete article", err)
	}
	if len(result.Attributes) == 0 {
		return pkgerrors.NewNotFoundError("article " + id.String())
	}
	return nil
}

func (r *ArticleRepository) unmarshalArticle(av map[string]types.AttributeValue) (*entities.Article, error) {
	var item articleItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal article", err)
	}

	id, err := valueobjects.NewArticleIDFromString(item.ArticleID)
	if err != nil {
		return nil, err
	}

	refs := make([]entities.AtomRef, 0, len(item.Atoms))
	for _, refItem := range item.Atoms {
		atomID, err := valueobjects.NewAtomIDFromString(refItem.AtomID)
		if err != nil {
			return nil, err
		}
		refs = append(refs, entities.AtomRef{
			AtomID:    atomID,
			SortOrder: refItem.SortOrder,
		})
	}

	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}

	return entities.ReconstituteArticle(
		id,
		item.ClientID,
		item.Name,
		refs,
		valueobjects.VersionToken(item.Version),
		createdAt,
	), nil
}
