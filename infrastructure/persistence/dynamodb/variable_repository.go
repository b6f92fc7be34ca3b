package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"atomcms/application/ports"
	"atomcms/domain/core/valueobjects"
	pkgerrors "atomcms/pkg/errors"
)

// VariableRepository implements the VariableRepository port using
// DynamoDB. PK = CLIENT#<clientID>, SK = VAR#<tag>; one item per
// stored variable so single-tag writes never race whole-set reads.
type VariableRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewVariableRepository creates a new VariableRepository
func NewVariableRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.VariableRepository {
	return &VariableRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// variableItem represents the DynamoDB item structure for a variable
type variableItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	ClientID   string `dynamodbav:"ClientID"`
	Tag        string `dynamodbav:"Tag"`
	Value      string `dynamodbav:"Value"`
}

func variableSK(tag string) string { return fmt.Sprintf("VAR#%s", tag) }

// Set writes one stored variable
func (r *VariableRepository) Set(ctx context.Context, clientID, tag, value string) error {
	item := variableItem{
		PK:         atomPK(clientID),
		SK:         variableSK(tag),
		EntityType: "VARIABLE",
		ClientID:   clientID,
		Tag:        tag,
		Value:      value,
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal variable", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("set variable", err)
	}
	return nil
}

// GetAll retrieves every stored variable of a client
func (r *VariableRepository) GetAll(ctx context.Context, clientID string) (valueobjects.VariableSet, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(atomPK(clientID))).
		And(expression.Key("SK").BeginsWith("VAR#"))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return valueobjects.EmptyVariableSet(), pkgerrors.NewDatabaseError("build variable query", err)
	}

	values := make(map[string]string)
	var startKey map[string]types.AttributeValue
	for {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return valueobjects.EmptyVariableSet(), pkgerrors.NewDatabaseError("query variables", err)
		}

		for _, av := range result.Items {
			var item variableItem
			if err := attributevalue.UnmarshalMap(av, &item); err != nil {
				return valueobjects.EmptyVariableSet(), pkgerrors.NewDatabaseError("unmarshal variable", err)
			}
			values[item.Tag] = item.Value
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	return valueobjects.NewVariableSet(values)
}

// Delete removes one stored variable
func (r *VariableRepository) Delete(ctx context.Context, clientID, tag string) error {
	result, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: atomPK(clientID)},
			"SK": &types.AttributeValueMemberS{Value: variableSK(tag)},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("delete variable", err)
	}
	if len(result.Attributes) == 0 {
		return pkgerrors.NewNotFoundError("variable " + tag)
	}
	return nil
}
