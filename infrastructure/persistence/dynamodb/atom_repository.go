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

// AtomRepository implements the AtomRepository port using DynamoDB.
// Single-table layout: PK = CLIENT#<clientID>, SK = ATOM#<atomID>;
// GSI1 maps the optional client-scoped key onto the atom for direct
// lookups by key.
type AtomRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewAtomRepository creates a new AtomRepository
func NewAtomRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.AtomRepository {
	return &AtomRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// atomItem represents the DynamoDB item structure for an atom
type atomItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	GSI1PK     string `dynamodbav:"GSI1PK,omitempty"`
	GSI1SK     string `dynamodbav:"GSI1SK,omitempty"`
	EntityType string `dynamodbav:"EntityType"`
	AtomID     string `dynamodbav:"AtomID"`
	ClientID   string `dynamodbav:"ClientID"`
	Key        string `dynamodbav:"AtomKey,omitempty"`
	TypeID     string `dynamodbav:"TypeID"`
	Content    string `dynamodbav:"Content"`
	Version    int64  `dynamodbav:"Version"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
}

func atomPK(clientID string) string { return fmt.Sprintf("CLIENT#%s", clientID) }
func atomSK(id string) string       { return fmt.Sprintf("ATOM#%s", id) }

// Save persists an atom to DynamoDB
func (r *AtomRepository) Save(ctx context.Context, atom *entities.Atom) error {
	item := atomItem{
		PK:         atomPK(atom.ClientID()),
		SK:         atomSK(atom.ID().String()),
		EntityType: "ATOM",
		AtomID:     atom.ID().String(),
		ClientID:   atom.ClientID(),
		Key:        atom.Key(),
		TypeID:     atom.TypeID(),
		Content:    atom.Content().Raw(),
		Version:    int64(atom.Version()),
		CreatedAt:  atom.CreatedAt().Format(time.RFC3339Nano),
	}
	if atom.Key() != "" {
		item.GSI1PK = fmt.Sprintf("CLIENT#%s#ATOMKEY", atom.ClientID())
		item.GSI1SK = atom.Key()
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal atom", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("failed to save atom",
			zap.Error(err),
			zap.String("atomID", atom.ID().String()),
		)
		return pkgerrors.NewDatabaseError("save atom", err)
	}

	return nil
}

// GetByID retrieves an atom by its ID
func (r *AtomRepository) GetByID(ctx context.Context, clientID string, id valueobjects.AtomID) (*entities.Atom, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: atomPK(clientID)},
			"SK": &types.AttributeValueMemberS{Value: atomSK(id.String())},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get atom", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("atom " + id.String())
	}

	return r.unmarshalAtom(result.Item)
}

// GetByKey retrieves an atom by its client-scoped key via GSI1
func (r *AtomRepository) GetByKey(ctx context.Context, clientID, key string) (*entities.Atom, error) {
	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND GSI1SK = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("CLIENT#%s#ATOMKEY", clientID)},
			":sk": &types.AttributeValueMemberS{Value: key},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query atom by key", err)
	}
	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("atom with key " + key)
	}

	return r.unmarshalAtom(result.Items[0])
}

// GetBatch retrieves several atoms with BatchGetItem. DynamoDB caps a
// batch at 100 keys; articles stay far below that in practice, so the
// batches are chunked defensively rather than rejected.
func (r *AtomRepository) GetBatch(ctx context.Context, clientID string, ids []valueobjects.AtomID) (map[valueobjects.AtomID]*entities.Atom, error) {
	atoms := make(map[valueobjects.AtomID]*entities.Atom, len(ids))

	const batchLimit = 100
	for start := 0; start < len(ids); start += batchLimit {
		end := start + batchLimit
		if end > len(ids) {
			end = len(ids)
		}

		keys := make([]map[string]types.AttributeValue, 0, end-start)
		for _, id := range ids[start:end] {
			keys = append(keys, map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: atomPK(clientID)},
				"SK": &types.AttributeValueMemberS{Value: atomSK(id.String())},
			})
		}

		input := &dynamodb.BatchGetItemInput{
			RequestItems: map[string]types.KeysAndAttributes{
				r.tableName: {Keys: keys},
			},
		}

		// Unprocessed keys are retried until DynamoDB drains them.
		for len(input.RequestItems) > 0 {
			result, err := r.client.BatchGetItem(ctx, input)
			if err != nil {
				return nil, pkgerrors.NewDatabaseError("batch get atoms", err)
			}
			for _, item := range result.Responses[r.tableName] {
				atom, err := r.unmarshalAtom(item)
				if err != nil {
					return nil, err
				}
				atoms[atom.ID()] = atom
			}
			if len(result.UnprocessedKeys) == 0 {
				break
			}
			input.RequestItems = result.UnprocessedKeys
		}
	}

	return atoms, nil
}

// ListByClient retrieves all atoms for a client
func (r *AtomRepository) ListByClient(ctx context.Context, clientID string) ([]*entities.Atom, error) {
	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: atomPK(clientID)},
			":sk": &types.AttributeValueMemberS{Value: "ATOM#"},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list atoms", err)
	}

	atoms := make([]*entities.Atom, 0, len(result.Items))
	for _, item := range result.Items {
		atom, err := r.unmarshalAtom(item)
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, atom)
	}
	return atoms, nil
}

// Delete removes an atom
func (r *AtomRepository) Delete(ctx context.Context, clientID string, id valueobjects.AtomID) error {
	result, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: atomPK(clientID)},
			"SK": &types.AttributeValueMemberS{Value: atomSK(id.String())},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("delete atom", err)
	}
	if len(result.Attributes) == 0 {
		return pkgerrors.NewNotFoundError("atom " + id.String())
	}
	return nil
}

func (r *AtomRepository) unmarshalAtom(av map[string]types.AttributeValue) (*entities.Atom, error) {
	var item atomItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal atom", err)
	}

	id, err := valueobjects.NewAtomIDFromString(item.AtomID)
	if err != nil {
		return nil, err
	}
	content, err := valueobjects.NewAtomContent(item.Content)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}

	return entities.ReconstituteAtom(
		id,
		item.ClientID,
		item.Key,
		item.TypeID,
		content,
		valueobjects.VersionToken(item.Version),
		createdAt,
	), nil
}
