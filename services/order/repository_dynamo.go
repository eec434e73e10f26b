package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/MarcGrol/marketplace/lib/mylog"
)

const (
	customerIndexName = "customer_uid-index"
	vendorIndexName   = "vendor_uid-index"
)

// DynamoDBAPI is the subset of the DynamoDB client the repository uses.
type DynamoDBAPI interface {
	GetItem(c context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(c context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(c context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(c context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(c context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// dynamoRepository keeps one item per order keyed by order_uid.
// Listing relies on the global secondary indexes customer_uid-index and vendor_uid-index, both sorted on created_at.
type dynamoRepository struct {
	client    DynamoDBAPI
	tableName string
	logger    mylog.Logger
}

type ctxUndoKey struct{}

// undoLog collects the compensating writes of one RunInTransaction call.
type undoLog struct {
	steps []func(c context.Context) error
}

func NewDynamoClient(c context.Context, region string) (*dynamodb.Client, error) {
	if region == "" {
		region = "us-east-1"
	}
	cfg, err := config.LoadDefaultConfig(c, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg), nil
}

func NewDynamoRepository(client DynamoDBAPI, tableName string) *dynamoRepository {
	return &dynamoRepository{
		client:    client,
		tableName: tableName,
		logger:    mylog.New("order-dynamo"),
	}
}

// RunInTransaction commits every write immediately and undoes them, newest first, when f fails.
// Nested calls join the outermost one.
func (r *dynamoRepository) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	if _, nested := c.Value(ctxUndoKey{}).(*undoLog); nested {
		return f(c)
	}

	undo := &undoLog{}
	err := f(context.WithValue(c, ctxUndoKey{}, undo))
	if err == nil {
		return nil
	}

	c = context.WithoutCancel(c)
	for i := len(undo.steps) - 1; i >= 0; i-- {
		undoErr := undo.steps[i](c)
		if undoErr != nil {
			r.logger.Log(c, "", mylog.SeverityError, "Error undoing order write after %s: %s", err, undoErr)
			return errors.Join(err, fmt.Errorf("%w: %w", ErrRollbackIncomplete, undoErr))
		}
	}
	return err
}

func onRollback(c context.Context, step func(c context.Context) error) {
	if undo, ok := c.Value(ctxUndoKey{}).(*undoLog); ok {
		undo.steps = append(undo.steps, step)
	}
}

func (r *dynamoRepository) key(orderUID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"order_uid": &types.AttributeValueMemberS{Value: orderUID},
	}
}

func (r *dynamoRepository) Insert(c context.Context, order Order) error {
	item, err := attributevalue.MarshalMap(toRecord(order))
	if err != nil {
		return fmt.Errorf("marshal order %s: %w", order.UID, err)
	}

	_, err = r.client.PutItem(c, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(order_uid)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return fmt.Errorf("order %s already exists", order.UID)
		}
		return fmt.Errorf("put order %s: %w", order.UID, err)
	}

	onRollback(c, func(c context.Context) error {
		_, err := r.client.DeleteItem(c, &dynamodb.DeleteItemInput{
			TableName:           aws.String(r.tableName),
			Key:                 r.key(order.UID),
			ConditionExpression: aws.String("attribute_exists(order_uid)"),
		})
		if err != nil && !isConditionalCheckFailed(err) {
			return fmt.Errorf("delete order %s: %w", order.UID, err)
		}
		return nil
	})
	return nil
}

func (r *dynamoRepository) Get(c context.Context, orderUID string) (Order, bool, error) {
	out, err := r.client.GetItem(c, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            r.key(orderUID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return Order{}, false, fmt.Errorf("get order %s: %w", orderUID, err)
	}
	if len(out.Item) == 0 {
		return Order{}, false, nil
	}

	order, err := unmarshalOrder(out.Item)
	if err != nil {
		return Order{}, false, err
	}
	return order, true, nil
}

func (r *dynamoRepository) UpdateStatus(c context.Context, orderUID string, expected OrderStatus, next OrderStatus, lastModified time.Time) (Order, error) {
	updated, err := r.compareAndSetStatus(c, orderUID, expected, next, lastModified)
	if err != nil {
		return Order{}, err
	}

	onRollback(c, func(c context.Context) error {
		_, err := r.compareAndSetStatus(c, orderUID, next, expected, lastModified)
		return err
	})
	return updated, nil
}

func (r *dynamoRepository) compareAndSetStatus(c context.Context, orderUID string, expected OrderStatus, next OrderStatus, lastModified time.Time) (Order, error) {
	modified, err := attributevalue.Marshal(lastModified)
	if err != nil {
		return Order{}, fmt.Errorf("marshal last-modified: %w", err)
	}

	out, err := r.client.UpdateItem(c, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 r.key(orderUID),
		UpdateExpression:    aws.String("SET #s = :next, last_modified = :lm"),
		ConditionExpression: aws.String("attribute_exists(order_uid) AND #s = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#s": "order_status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":next":     &types.AttributeValueMemberS{Value: string(next)},
			":expected": &types.AttributeValueMemberS{Value: string(expected)},
			":lm":       modified,
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if !isConditionalCheckFailed(err) {
			return Order{}, fmt.Errorf("update status of order %s: %w", orderUID, err)
		}
		current, exists, getErr := r.Get(c, orderUID)
		if getErr != nil {
			return Order{}, getErr
		}
		if !exists {
			return Order{}, fmt.Errorf("order %s: %w", orderUID, ErrOrderNotFound)
		}
		return Order{}, fmt.Errorf("order %s is %s, not %s: %w", orderUID, current.OrderStatus, expected, ErrStatusMismatch)
	}

	return unmarshalOrder(out.Attributes)
}

func (r *dynamoRepository) ListByCustomer(c context.Context, customerUID string) ([]Order, error) {
	return r.queryIndex(c, customerIndexName, "customer_uid", customerUID)
}

func (r *dynamoRepository) ListByVendor(c context.Context, vendorUID string) ([]Order, error) {
	return r.queryIndex(c, vendorIndexName, "vendor_uid", vendorUID)
}

// queryIndex returns the newest orders first and follows pagination until exhausted.
func (r *dynamoRepository) queryIndex(c context.Context, indexName string, attributeName string, value string) ([]Order, error) {
	orders := []Order{}
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(c, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(indexName),
			KeyConditionExpression: aws.String("#k = :v"),
			ExpressionAttributeNames: map[string]string{
				"#k": attributeName,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":v": &types.AttributeValueMemberS{Value: value},
			},
			ScanIndexForward:  aws.Bool(false),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query %s for %s: %w", indexName, value, err)
		}
		for _, item := range out.Items {
			order, err := unmarshalOrder(item)
			if err != nil {
				return nil, err
			}
			orders = append(orders, order)
		}
		if len(out.LastEvaluatedKey) == 0 {
			return orders, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func unmarshalOrder(item map[string]types.AttributeValue) (Order, error) {
	r := orderRecord{}
	err := attributevalue.UnmarshalMap(item, &r)
	if err != nil {
		return Order{}, fmt.Errorf("unmarshal order: %w", err)
	}
	return fromRecord(r)
}

func isConditionalCheckFailed(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "ConditionalCheckFailedException"
}
