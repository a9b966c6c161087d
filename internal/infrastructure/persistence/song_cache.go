package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

// The item of a cached song document.
// ExpiresAt is stored in epoch seconds so it can serve as the table's TTL attribute.
type songItem struct {
	Id        string
	Document  string
	CachedAt  int64
	ExpiresAt int64
}

// SongCache keeps song documents in a DynamoDB table keyed by video ID.
type SongCache struct {
	db        dynamodbiface.DynamoDBAPI
	tableName string
	ttl       time.Duration
	now       func() time.Time
}

func NewSongCache(sess *session.Session, tableName string, ttl time.Duration) *SongCache {
	return newSongCache(dynamodb.New(sess), tableName, ttl)
}

func newSongCache(db dynamodbiface.DynamoDBAPI, tableName string, ttl time.Duration) *SongCache {
	return &SongCache{db: db, tableName: tableName, ttl: ttl, now: time.Now}
}

// Get the song document by the video ID. Expired items are reported as misses,
// DynamoDB removes them lazily.
func (c *SongCache) Get(ctx context.Context, videoId string) (json.RawMessage, error) {
	out, err := c.db.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		Key:       map[string]*dynamodb.AttributeValue{"Id": {S: aws.String(videoId)}},
		TableName: aws.String(c.tableName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get song %s from dynamodb: %w", videoId, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var item songItem
	if err := dynamodbattribute.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal song %s: %w", videoId, err)
	}
	if item.ExpiresAt > 0 && c.now().Unix() >= item.ExpiresAt {
		return nil, nil
	}
	return json.RawMessage(item.Document), nil
}

// Save the song document to the cache.
func (c *SongCache) Put(ctx context.Context, videoId string, doc json.RawMessage) error {
	now := c.now()
	item := songItem{Id: videoId, Document: string(doc), CachedAt: now.Unix()}
	if c.ttl > 0 {
		item.ExpiresAt = now.Add(c.ttl).Unix()
	}
	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		return err
	}
	_, err = c.db.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(c.tableName),
	})
	if err != nil {
		return fmt.Errorf("failed to save song %s to dynamodb: %w", videoId, err)
	}
	return nil
}
