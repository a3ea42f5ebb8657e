package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tair/pantry/internal/pantry/domain"
)

// DynamoDB attribute names. userId is the partition key, itemId the sort key.
const (
	attrUserID     = "userId"
	attrItemID     = "itemId"
	attrName       = "name"
	attrQuantity   = "quantity"
	attrUnit       = "unit"
	attrCategory   = "category"
	attrExpiryDate = "expiryDate"
	attrUpdatedAt  = "updatedAt"
)

// DynamoDBAPI is the subset of the DynamoDB client the repository uses
type DynamoDBAPI interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

var _ DynamoDBAPI = (*dynamodb.Client)(nil)

type dynamoItem struct {
	UserID     string   `dynamodbav:"userId"`
	ItemID     string   `dynamodbav:"itemId"`
	Name       string   `dynamodbav:"name"`
	Quantity   *float64 `dynamodbav:"quantity,omitempty"`
	Unit       *string  `dynamodbav:"unit,omitempty"`
	Category   *string  `dynamodbav:"category,omitempty"`
	ExpiryDate *string  `dynamodbav:"expiryDate,omitempty"`
	CreatedAt  string   `dynamodbav:"createdAt"`
	UpdatedAt  string   `dynamodbav:"updatedAt"`
}

func toDynamoItem(it *domain.Item) dynamoItem {
	return dynamoItem{
		UserID:     it.OwnerID,
		ItemID:     it.ItemID,
		Name:       it.Name,
		Quantity:   it.Quantity,
		Unit:       it.Unit,
		Category:   it.Category,
		ExpiryDate: it.ExpiryDate,
		CreatedAt:  formatTime(it.CreatedAt),
		UpdatedAt:  formatTime(it.UpdatedAt),
	}
}

func (d dynamoItem) toDomain() (domain.Item, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, d.CreatedAt)
	if err != nil {
		return domain.Item{}, fmt.Errorf("invalid createdAt %q: %w", d.CreatedAt, err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, d.UpdatedAt)
	if err != nil {
		return domain.Item{}, fmt.Errorf("invalid updatedAt %q: %w", d.UpdatedAt, err)
	}
	return domain.Item{
		OwnerID:    d.UserID,
		ItemID:     d.ItemID,
		Name:       d.Name,
		Quantity:   d.Quantity,
		Unit:       d.Unit,
		Category:   d.Category,
		ExpiryDate: d.ExpiryDate,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

// DynamoItemRepository stores items in a DynamoDB table
type DynamoItemRepository struct {
	client DynamoDBAPI
	table  string
}

// NewDynamoItemRepository creates a repository over the named table
func NewDynamoItemRepository(client DynamoDBAPI, table string) *DynamoItemRepository {
	return &DynamoItemRepository{client: client, table: table}
}

// ListByOwner queries the owner's partition in descending sort-key order, following pagination
func (r *DynamoItemRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key(attrUserID).Equal(expression.Value(ownerID))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
	})

	items := []domain.Item{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query items: %w", err)
		}

		var records []dynamoItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &records); err != nil {
			return nil, fmt.Errorf("failed to unmarshal items: %w", err)
		}
		for _, rec := range records {
			it, err := rec.toDomain()
			if err != nil {
				return nil, err
			}
			items = append(items, it)
		}
	}
	return items, nil
}

// Create puts the item on condition that the key does not exist
func (r *DynamoItemRepository) Create(ctx context.Context, item *domain.Item) error {
	av, err := attributevalue.MarshalMap(toDynamoItem(item))
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	cond := expression.AttributeNotExists(expression.Name(attrUserID)).
		And(expression.AttributeNotExists(expression.Name(attrItemID)))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("failed to build condition: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.table),
		Item:                     av,
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		return translateDynamoError("put item", err)
	}
	return nil
}

// Update sets provided fields, removes cleared ones, and returns the new image
func (r *DynamoItemRepository) Update(ctx context.Context, ownerID, itemID string, patch domain.ItemPatch, updatedAt time.Time) (*domain.Item, error) {
	update := expression.Set(expression.Name(attrUpdatedAt), expression.Value(formatTime(updatedAt)))
	if patch.Name != nil {
		update = update.Set(expression.Name(attrName), expression.Value(*patch.Name))
	}
	update = setOrRemove(update, attrQuantity, patch.Quantity)
	update = setOrRemove(update, attrUnit, patch.Unit)
	update = setOrRemove(update, attrCategory, patch.Category)
	update = setOrRemove(update, attrExpiryDate, patch.ExpiryDate)

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(existsCondition()).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build update: %w", err)
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       itemKey(ownerID, itemID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, translateDynamoError("update item", err)
	}

	var rec dynamoItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated item: %w", err)
	}
	it, err := rec.toDomain()
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Delete removes the item on condition that it exists
func (r *DynamoItemRepository) Delete(ctx context.Context, ownerID, itemID string) error {
	expr, err := expression.NewBuilder().WithCondition(existsCondition()).Build()
	if err != nil {
		return fmt.Errorf("failed to build condition: %w", err)
	}

	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(r.table),
		Key:                      itemKey(ownerID, itemID),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		return translateDynamoError("delete item", err)
	}
	return nil
}

// Ping describes the table
func (r *DynamoItemRepository) Ping(ctx context.Context) error {
	if r.table == "" {
		return errors.New("table name not configured")
	}
	_, err := r.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(r.table)})
	return err
}

func itemKey(ownerID, itemID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrUserID: &types.AttributeValueMemberS{Value: ownerID},
		attrItemID: &types.AttributeValueMemberS{Value: itemID},
	}
}

func existsCondition() expression.ConditionBuilder {
	return expression.AttributeExists(expression.Name(attrUserID)).
		And(expression.AttributeExists(expression.Name(attrItemID)))
}

func setOrRemove[T any](update expression.UpdateBuilder, attr string, f domain.Field[T]) expression.UpdateBuilder {
	if !f.Present {
		return update
	}
	if f.Value == nil {
		return update.Remove(expression.Name(attr))
	}
	return update.Set(expression.Name(attr), expression.Value(*f.Value))
}

func translateDynamoError(op string, err error) error {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return domain.ErrConditionFailed
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
