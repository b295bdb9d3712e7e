package repository

import (
	"context"
	"errors"

	"learnpath-web/internal/models"
	"learnpath-web/internal/session"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoProfileRepo is the self-hosted alternative to the PostgREST table.
// Tokens are ignored; the session only supplies the key.
type MongoProfileRepo struct {
	collection *mongo.Collection
}

func NewMongoProfileRepo(db *mongo.Database) *MongoProfileRepo {
	return &MongoProfileRepo{
		collection: db.Collection(ProfileTable),
	}
}

func (r *MongoProfileRepo) Find(ctx context.Context, s *session.Session) (*models.Profile, error) {
	if s == nil {
		return nil, errNoSession
	}
	var p models.Profile
	err := r.collection.FindOne(ctx, bson.M{"user_id": s.UserID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoProfileRepo) Insert(ctx context.Context, s *session.Session, p *models.Profile) error {
	if s == nil {
		return errNoSession
	}
	p.UserID = s.UserID
	_, err := r.collection.InsertOne(ctx, p)
	return err
}

func (r *MongoProfileRepo) Upsert(ctx context.Context, s *session.Session, p *models.Profile) error {
	if s == nil {
		return errNoSession
	}
	p.UserID = s.UserID
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"user_id": s.UserID},
		bson.M{"$set": p},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

// EnsureIndexes creates the unique user_id index backing one-row-per-user.
func (r *MongoProfileRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
