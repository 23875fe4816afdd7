package model

// TrackMetadata is one row of the dataset metadata table.
type TrackMetadata struct {
	TrackID string `json:"track_id" dynamodbav:"PK"`
	Style   string `json:"style" dynamodbav:"Style"`
	Title   string `json:"title" dynamodbav:"Title"`
	Singer  string `json:"singer" dynamodbav:"Singer"`
}

type MetadataTable = map[string]TrackMetadata
