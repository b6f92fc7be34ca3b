package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"atomcms/application/ports"
	"atomcms/domain/core/entities"
	pkgerrors "atomcms/pkg/errors"
)

// baseClientSegment is the PK segment under which shared base types
// live; the empty client ID is not usable as a key segment.
const baseClientSegment = "_BASE"

// AtomTypeRepository implements the AtomTypeRepository port using
// DynamoDB. PK = CLIENT#<clientID>, SK = TYPE#<typeID>; GSI1 resolves
// type names. Base types are stored under the CLIENT#_BASE partition
// and are consulted as a fallback on every lookup.
type AtomTypeRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewAtomTypeRepository creates a new AtomTypeRepository
func NewAtomTypeRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.AtomTypeRepository {
	return &AtomTypeRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// typeItem represents the DynamoDB item structure for an atom type
type typeItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	GSI1PK     string `dynamodbav:"GSI1PK"`
	GSI1SK     string `dynamodbav:"GSI1SK"`
	EntityType string `dynamodbav:"EntityType"`
	TypeID     string `dynamodbav:"TypeID"`
	ClientID   string `dynamodbav:"ClientID"`
	Name       string `dynamodbav:"Name"`
	Schema     string `dynamodbav:"Schema"`
	Template   string `dynamodbav:"Template"`
}

func typeClientSegment(clientID string) string {
	if clientID == "" {
		return baseClientSegment
	}
	return clientID
}

// Save persists an atom type
func (r *AtomTypeRepository) Save(ctx context.Context, atomType *entities.AtomType) error {
	segment := typeClientSegment(atomType.ClientID())
	item := typeItem{
		PK:         fmt.Sprintf("CLIENT#%s", segment),
		SK:         fmt.Sprintf("TYPE#%s", atomType.ID()),
		GSI1PK:     fmt.Sprintf("CLIENT#%s#TYPENAME", segment),
		GSI1SK:     atomType.Name(),
		EntityType: "TYPE",
		TypeID:     atomType.ID(),
		ClientID:   atomType.ClientID(),
		Name:       atomType.Name(),
		Schema:     atomType.RawSchema(),
		Template:   atomType.Template(),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal type", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("save type", err)
	}
	return nil
}

// GetByID retrieves an atom type, falling back to base types
func (r *AtomTypeRepository) GetByID(ctx context.Context, clientID, id string) (*entities.AtomType, error) {
	for _, segment := range r.segments(clientID) {
		result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(r.tableName),
			Key: map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("CLIENT#%s", segment)},
				"SK": &types.AttributeValueMemberS{Value: fmt.Sprintf("TYPE#%s", id)},
			},
		})
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("get type", err)
		}
		if result.Item != nil {
			return r.unmarshalType(result.Item)
		}
	}
	return nil, pkgerrors.NewNotFoundError("type " + id)
}

// GetByName retrieves an atom type by name, falling back to base types
func (r *AtomTypeRepository) GetByName(ctx context.Context, clientID, name string) (*entities.AtomType, error) {
	for _, segment := range r.segments(clientID) {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(r.indexName),
			KeyConditionExpression: aws.String("GSI1PK = :pk AND GSI1SK = :sk"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("CLIENT#%s#TYPENAME", segment)},
				":sk": &types.AttributeValueMemberS{Value: name},
			},
			Limit: aws.Int32(1),
		})
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("query type by name", err)
		}
		if len(result.Items) > 0 {
			return r.unmarshalType(result.Items[0])
		}
	}
	return nil, pkgerrors.NewNotFoundError("type " + name)
}

// ListByClient retrieves a client's types plus the shared base types
func (r *AtomTypeRepository) ListByClient(ctx context.Context, clientID string) ([]*entities.AtomType, error) {
	var atomTypes []*entities.AtomType
	for _, segment := range r.segments(clientID) {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("CLIENT#%s", segment)},
				":sk": &types.AttributeValueMemberS{Value: "TYPE#"},
			},
		})
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("list types", err)
		}
		for _, item := range result.Items {
			atomType, err := r.unmarshalType(item)
			if err != nil {
				return nil, err
			}
			atomTypes = append(atomTypes, atomType)
		}
	}
	return atomTypes, nil
}

// Delete removes an atom type
func (r *AtomTypeRepository) Delete(ctx context.Context, clientID, id string) error {
	result, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("CLIENT#%s", typeClientSegment(clientID))},
			"SK": &types.AttributeValueMemberS{Value: fmt.Sprintf("TYPE#%s", id)},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("delete type", err)
	}
	if len(result.Attributes) == 0 {
		return pkgerrors.NewNotFoundError("type " + id)
	}
	return nil
}

// segments returns the partitions a lookup consults, client first
func (r *AtomTypeRepository) segments(clientID string) []string {
	if clientID == "" {
		return []string{baseClientSegment}
	}
	return []string{clientID, baseClientSegment}
}

func (r *AtomTypeRepository) unmarshalType(av map[string]types.AttributeValue) (*entities.AtomType, error) {
	var item typeItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal type", err)
	}
	return entities.NewAtomType(item.TypeID, item.ClientID, item.Name, item.Schema, item.Template)
}
