// Package store persists importance heatmaps to DynamoDB for the rendering
// layer.
package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tyler180/combine-rankings/internal/analysis"
)

type DynamoDBAPI interface {
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// runPosition is the partition holding per-run summaries.
const runPosition = "#RUN"

// ImportanceItem is one heatmap cell: PK=Position (S), SK=Rank#Event (S).
type ImportanceItem struct {
	Position     string  `dynamodbav:"Position"`
	SK           string  `dynamodbav:"SK"`
	Rank         int     `dynamodbav:"Rank"`
	Metric       string  `dynamodbav:"Metric"`
	Event        string  `dynamodbav:"Event"`
	Importance   float64 `dynamodbav:"Importance"`
	Samples      int     `dynamodbav:"Samples"`
	Undetermined bool    `dynamodbav:"Undetermined"`
	RunID        string  `dynamodbav:"RunID"`
	UpdatedAt    int64   `dynamodbav:"UpdatedAt"`
}

// SortKey orders a position's partition by rank.
func SortKey(rank int, event string) string {
	return fmt.Sprintf("%02d#%s", rank, event)
}

func PutImportance(ctx context.Context, ddb DynamoDBAPI, table, runID string, entries []analysis.ImportanceEntry) error {
	if len(entries) == 0 {
		return nil
	}
	const maxBatch = 25
	now := time.Now().Unix()

	for i := 0; i < len(entries); i += maxBatch {
		end := i + maxBatch
		if end > len(entries) {
			end = len(entries)
		}

		reqs := make([]types.WriteRequest, 0, end-i)
		for _, e := range entries[i:end] {
			if e.Position == "" {
				continue
			}
			item, err := attributevalue.MarshalMap(ImportanceItem{
				Position:     e.Position,
				SK:           SortKey(e.Rank, e.Event),
				Rank:         e.Rank,
				Metric:       string(e.Metric),
				Event:        e.Event,
				Importance:   e.Importance,
				Samples:      e.Samples,
				Undetermined: e.Undetermined,
				RunID:        runID,
				UpdatedAt:    now,
			})
			if err != nil {
				return fmt.Errorf("marshal importance %s/%s: %w", e.Position, e.Metric, err)
			}
			reqs = append(reqs, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}
		if len(reqs) == 0 {
			continue
		}
		if err := batchWriteWithRetry(ctx, ddb, table, reqs); err != nil {
			return fmt.Errorf("batch write importance rows: %w", err)
		}
	}
	return nil
}

// PutRunSummary upserts the run's bookkeeping item under the #RUN partition.
func PutRunSummary(ctx context.Context, ddb DynamoDBAPI, table, runID string, subset analysis.Subset, key analysis.GroupKey, players, entries int) error {
	now := strconv.FormatInt(time.Now().Unix(), 10)
	_, err := ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"Position": &types.AttributeValueMemberS{Value: runPosition}, // PK
			"SK":       &types.AttributeValueMemberS{Value: runID},       // SK
		},
		UpdateExpression:         aws.String("SET #sub=:sub, GroupKey=:gk, Players=:p, Entries=:e, UpdatedAt=:now"),
		ExpressionAttributeNames: map[string]string{"#sub": "Subset"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sub": &types.AttributeValueMemberS{Value: string(subset)},
			":gk":  &types.AttributeValueMemberS{Value: string(key)},
			":p":   &types.AttributeValueMemberN{Value: strconv.Itoa(players)},
			":e":   &types.AttributeValueMemberN{Value: strconv.Itoa(entries)},
			":now": &types.AttributeValueMemberN{Value: now},
		},
	})
	if err != nil {
		return fmt.Errorf("update run summary %s: %w", runID, err)
	}
	return nil
}

// QueryImportance reads one position's heatmap column back in rank order.
func QueryImportance(ctx context.Context, ddb DynamoDBAPI, table, position string) ([]ImportanceItem, error) {
	var out []ImportanceItem
	var lastKey map[string]types.AttributeValue
	for {
		page, err := ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(table),
			KeyConditionExpression:    aws.String("#P = :p"),
			ExpressionAttributeNames:  map[string]string{"#P": "Position"},
			ExpressionAttributeValues: map[string]types.AttributeValue{":p": &types.AttributeValueMemberS{Value: position}},
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query importance %s: %w", position, err)
		}
		var items []ImportanceItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("unmarshal importance %s: %w", position, err)
		}
		out = append(out, items...)
		if len(page.LastEvaluatedKey) == 0 {
			return out, nil
		}
		lastKey = page.LastEvaluatedKey
	}
}

func batchWriteWithRetry(ctx context.Context, ddb DynamoDBAPI, table string, reqs []types.WriteRequest) error {
	input := &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{table: reqs},
	}
	const maxAttempts = 6
	backoff := 120 * time.Millisecond

	for attempt := 0; attempt < maxAttempts; attempt++ {
		out, err := ddb.BatchWriteItem(ctx, input)
		if err != nil {
			return err
		}
		if len(out.UnprocessedItems) == 0 {
			return nil
		}
		input.RequestItems = out.UnprocessedItems
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < 2*time.Second {
			backoff += 120 * time.Millisecond
		}
	}
	return fmt.Errorf("unprocessed items remained after retries for table %s", table)
}
