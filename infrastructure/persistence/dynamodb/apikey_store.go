package dynamodb

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"atomcms/application/ports"
	pkgerrors "atomcms/pkg/errors"
)

// APIKeyStore implements the APIKeyStore port using DynamoDB.
// Keys are stored under their SHA-256 digest so the table never
// holds a raw credential: PK = APIKEY#<hex digest>, SK = METADATA.
type APIKeyStore struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewAPIKeyStore creates a new APIKeyStore
func NewAPIKeyStore(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.APIKeyStore {
	return &APIKeyStore{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// apiKeyItem represents the DynamoDB item structure for an API key
type apiKeyItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	KeyID      string `dynamodbav:"KeyID"`
	ClientID   string `dynamodbav:"ClientID"`
	UserID     string `dynamodbav:"UserID"`
	Active     bool   `dynamodbav:"Active"`
}

func apiKeyPK(rawKey string) string {
	digest := sha256.Sum256([]byte(rawKey))
	return fmt.Sprintf("APIKEY#%s", hex.EncodeToString(digest[:]))
}

// Resolve maps a raw key to the identity it authenticates
func (s *APIKeyStore) Resolve(ctx context.Context, rawKey string) (*ports.APIKeyRecord, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: apiKeyPK(rawKey)},
			"SK": &types.AttributeValueMemberS{Value: "METADATA"},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("resolve api key", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("api key")
	}

	var item apiKeyItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal api key", err)
	}
	if !item.Active {
		s.logger.Warn("revoked api key presented", zap.String("keyId", item.KeyID))
		return nil, pkgerrors.NewNotFoundError("api key")
	}

	return &ports.APIKeyRecord{
		KeyID:    item.KeyID,
		ClientID: item.ClientID,
		UserID:   item.UserID,
		Active:   item.Active,
	}, nil
}
