package db

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/tonas/constants"
	"github.com/jsphweid/tonas/model"
	"github.com/jsphweid/tonas/util"
)

// Store keeps the metadata table in a DynamoDB table keyed by track id.
type Store struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewStore(endpoint, region, table string) (*Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create a new DynamoDB session: %w", err)
	}
	return NewStoreWithClient(dynamodb.New(sess), table), nil
}

func NewStoreWithClient(client dynamodbiface.DynamoDBAPI, table string) *Store {
	return &Store{client: client, table: table}
}

func toItem(m model.TrackMetadata) (map[string]*dynamodb.AttributeValue, error) {
	return dynamodbattribute.MarshalMap(m)
}

func fromItem(item map[string]*dynamodb.AttributeValue) (model.TrackMetadata, error) {
	var m model.TrackMetadata
	err := dynamodbattribute.UnmarshalMap(item, &m)
	return m, err
}

// Put writes every row of table. Items DynamoDB leaves unprocessed are
// reported as an error rather than retried.
func (s *Store) Put(table model.MetadataTable) error {
	ids := util.SortedKeys(table)
	for _, batch := range util.Chunk(ids, constants.MaxBatchWrite) {
		var requests []*dynamodb.WriteRequest
		for _, id := range batch {
			m := table[id]
			m.TrackID = id
			item, err := toItem(m)
			if err != nil {
				return fmt.Errorf("could not marshal metadata for %s: %w", id, err)
			}
			requests = append(requests, &dynamodb.WriteRequest{
				PutRequest: &dynamodb.PutRequest{Item: item},
			})
		}

		out, err := s.client.BatchWriteItem(&dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]*dynamodb.WriteRequest{s.table: requests},
		})
		if err != nil {
			return fmt.Errorf("error from DynamoDB: %w", err)
		}
		if n := len(out.UnprocessedItems[s.table]); n > 0 {
			return fmt.Errorf("DynamoDB left %d of %d items unprocessed", n, len(requests))
		}
	}
	return nil
}

// Get fetches the rows of the given ids. Unknown ids are absent from the
// result.
func (s *Store) Get(ids []string) (model.MetadataTable, error) {
	res := make(model.MetadataTable)
	for _, batch := range util.Chunk(ids, constants.MaxBatchGet) {
		var keys []map[string]*dynamodb.AttributeValue
		for _, id := range batch {
			keys = append(keys, map[string]*dynamodb.AttributeValue{
				"PK": {S: aws.String(id)},
			})
		}

		out, err := s.client.BatchGetItem(&dynamodb.BatchGetItemInput{
			RequestItems: map[string]*dynamodb.KeysAndAttributes{
				s.table: {Keys: keys},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("error from DynamoDB: %w", err)
		}
		for _, item := range out.Responses[s.table] {
			m, err := fromItem(item)
			if err != nil {
				return nil, err
			}
			res[m.TrackID] = m
		}
	}
	return res, nil
}

// Scan reads the whole table.
func (s *Store) Scan() (model.MetadataTable, error) {
	res := make(model.MetadataTable)
	var itemErr error
	err := s.client.ScanPages(&dynamodb.ScanInput{TableName: aws.String(s.table)},
		func(page *dynamodb.ScanOutput, lastPage bool) bool {
			for _, item := range page.Items {
				m, err := fromItem(item)
				if err != nil {
					itemErr = err
					return false
				}
				res[m.TrackID] = m
			}
			return true
		})
	if err != nil {
		return nil, fmt.Errorf("error from DynamoDB: %w", err)
	}
	if itemErr != nil {
		return nil, itemErr
	}
	return res, nil
}

// Loader returns a metadata source for a Dataset. With ids it fetches only
// those rows, otherwise the whole table is scanned.
func (s *Store) Loader(ids ...string) func() (model.MetadataTable, error) {
	if len(ids) == 0 {
		return s.Scan
	}
	return func() (model.MetadataTable, error) { return s.Get(ids) }
}
