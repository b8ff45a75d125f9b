package repository

import (
	"context"
	"errors"

	"ticketsearch-service/internal/domain/entity"
	"ticketsearch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSearchResultRepository implements SearchResultRepository
type MongoSearchResultRepository struct {
	collection *mongo.Collection
}

// NewMongoSearchResultRepository creates a new search result repository
func NewMongoSearchResultRepository(db *mongo.Database) repository.SearchResultRepository {
	return &MongoSearchResultRepository{
		collection: db.Collection("search_results"),
	}
}

// Get loads the aggregation document for a search id
func (r *MongoSearchResultRepository) Get(ctx context.Context, searchID string) (*entity.SearchResultDocument, error) {
	res := r.collection.FindOne(ctx, bson.M{"_id": searchID})
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrResultNotFound
		}
		return nil, err
	}

	var doc entity.SearchResultDocument
	if err := res.Decode(&doc); err != nil {
		// The document exists but no longer matches the expected shape
		return nil, &entity.CorruptedDocumentError{SearchID: searchID, Err: err}
	}
	return &doc, nil
}

// Put replaces the whole document for the search id, inserting if absent
func (r *MongoSearchResultRepository) Put(ctx context.Context, doc *entity.SearchResultDocument) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.SearchID}, doc, opts)
	return err
}
