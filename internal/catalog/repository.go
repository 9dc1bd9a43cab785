package catalog

import (
	"context"
	"errors"

	"fruitbasket_back_end/internal/database"
	"fruitbasket_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Aucun article ne correspond à l'id visé par la mutation.
var ErrItemNotFound = errors.New("article introuvable")

// ItemStore expose la collection items au service catalogue.
type ItemStore interface {
	All(ctx context.Context) ([]models.Item, error)
	BySeller(ctx context.Context, seller string) ([]models.Item, error)
	Insert(ctx context.Context, item *models.Item) error
	UpdatePrice(ctx context.Context, id primitive.ObjectID, price float64) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	SearchByName(ctx context.Context, query string) ([]models.Item, error)
}

type mongoItemStore struct {
	items *mongo.Collection
}

func NewMongoItemStore(db *database.Databases) ItemStore {
	return &mongoItemStore{items: db.Items}
}

func (s *mongoItemStore) All(ctx context.Context) ([]models.Item, error) {
	cursor, err := s.items.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var items []models.Item
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *mongoItemStore) BySeller(ctx context.Context, seller string) ([]models.Item, error) {
	cursor, err := s.items.Find(ctx, bson.M{"seller": seller})
	if err != nil {
		return nil, err
	}

	var items []models.Item
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *mongoItemStore) Insert(ctx context.Context, item *models.Item) error {
	res, err := s.items.InsertOne(ctx, item)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid
	}
	return nil
}

func (s *mongoItemStore) UpdatePrice(ctx context.Context, id primitive.ObjectID, price float64) error {
	res, err := s.items.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"price": price}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *mongoItemStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.items.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

// SearchByName — repli MongoDB quand Elasticsearch est absent ou vide.
func (s *mongoItemStore) SearchByName(ctx context.Context, query string) ([]models.Item, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"name": bson.M{"$regex": query, "$options": "i"}},
			{"seller": bson.M{"$regex": query, "$options": "i"}},
		},
	}

	cursor, err := s.items.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	var items []models.Item
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
