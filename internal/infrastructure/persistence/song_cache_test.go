package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSongCache(t *testing.T) {
	db := newMockDynamoDB()
	now := time.Unix(1700000000, 0)
	c := newSongCache(db, "songs", time.Hour)
	c.now = func() time.Time { return now }

	doc, err := c.Get(context.Background(), "4NRXx6U8ABQ")
	require.NoError(t, err)
	assert.Nil(t, doc)

	require.NoError(t, c.Put(context.Background(), "4NRXx6U8ABQ", json.RawMessage(`{"videoDetails":{"title":"Blinding Lights"}}`)))
	assert.Equal(t, "songs", db.table)
	item := db.items["4NRXx6U8ABQ"]
	require.NotNil(t, item)
	assert.Equal(t, "1700003600", *item["ExpiresAt"].N)

	doc, err = c.Get(context.Background(), "4NRXx6U8ABQ")
	require.NoError(t, err)
	assert.JSONEq(t, `{"videoDetails":{"title":"Blinding Lights"}}`, string(doc))

	now = now.Add(2 * time.Hour)
	doc, err = c.Get(context.Background(), "4NRXx6U8ABQ")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestSongCacheWithoutTTL(t *testing.T) {
	db := newMockDynamoDB()
	c := newSongCache(db, "songs", 0)

	require.NoError(t, c.Put(context.Background(), "4NRXx6U8ABQ", json.RawMessage(`{}`)))
	assert.Equal(t, "0", *db.items["4NRXx6U8ABQ"]["ExpiresAt"].N)

	doc, err := c.Get(context.Background(), "4NRXx6U8ABQ")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(doc))
}

func TestSongCacheFailure(t *testing.T) {
	db := newMockDynamoDB()
	db.err = errors.New("ProvisionedThroughputExceededException")
	c := newSongCache(db, "songs", time.Hour)

	_, err := c.Get(context.Background(), "4NRXx6U8ABQ")
	assert.ErrorIs(t, err, db.err)
	assert.ErrorIs(t, c.Put(context.Background(), "4NRXx6U8ABQ", json.RawMessage(`{}`)), db.err)
}

type mockDynamoDB struct {
	dynamodbiface.DynamoDBAPI
	table string
	items map[string]map[string]*dynamodb.AttributeValue
	err   error
}

func newMockDynamoDB() *mockDynamoDB {
	return &mockDynamoDB{items: map[string]map[string]*dynamodb.AttributeValue{}}
}

func (m *mockDynamoDB) GetItemWithContext(ctx aws.Context, in *dynamodb.GetItemInput, opts ...request.Option) (*dynamodb.GetItemOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &dynamodb.GetItemOutput{Item: m.items[*in.Key["Id"].S]}, nil
}

func (m *mockDynamoDB) PutItemWithContext(ctx aws.Context, in *dynamodb.PutItemInput, opts ...request.Option) (*dynamodb.PutItemOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.table = *in.TableName
	m.items[*in.Item["Id"].S] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}
