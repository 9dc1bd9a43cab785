package cart

import (
	"context"
	"errors"

	"fruitbasket_back_end/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Le username visé ne correspond à aucun acheteur.
var ErrBuyerNotFound = errors.New("acheteur introuvable")

// CartStore mute la séquence items du document acheteur. Chaque opération est
// une mise à jour atomique d'un seul document — aucune autre garantie d'ordre
// entre requêtes concurrentes.
type CartStore interface {
	PushItem(ctx context.Context, buyerUsername, itemID string) error
	// PullItem retire TOUTES les occurrences de itemID ($pull).
	PullItem(ctx context.Context, buyerUsername, itemID string) error
	ItemRefs(ctx context.Context, buyerUsername string) ([]string, error)
}

type mongoCartStore struct {
	buyers *mongo.Collection
}

func NewMongoCartStore(db *database.Databases) CartStore {
	return &mongoCartStore{buyers: db.Buyers}
}

func (s *mongoCartStore) PushItem(ctx context.Context, buyerUsername, itemID string) error {
	res, err := s.buyers.UpdateOne(ctx,
		bson.M{"username": buyerUsername},
		bson.M{"$push": bson.M{"items": itemID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrBuyerNotFound
	}
	return nil
}

func (s *mongoCartStore) PullItem(ctx context.Context, buyerUsername, itemID string) error {
	res, err := s.buyers.UpdateOne(ctx,
		bson.M{"username": buyerUsername},
		bson.M{"$pull": bson.M{"items": itemID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrBuyerNotFound
	}
	return nil
}

func (s *mongoCartStore) ItemRefs(ctx context.Context, buyerUsername string) ([]string, error) {
	var buyer struct {
		Items []string `bson:"items"`
	}
	err := s.buyers.FindOne(ctx, bson.M{"username": buyerUsername}).Decode(&buyer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBuyerNotFound
	}
	if err != nil {
		return nil, err
	}
	return buyer.Items, nil
}
