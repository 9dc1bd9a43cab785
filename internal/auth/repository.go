package auth

import (
	"context"
	"errors"

	"fruitbasket_back_end/internal/database"
	"fruitbasket_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AccountStore expose les collections de comptes au résolveur d'identité et
// au gestionnaire de sessions. Les méthodes Find* retournent (nil, nil) quand
// aucun compte ne correspond ; une erreur signale un échec de la base.
type AccountStore interface {
	FindSellerByUsername(ctx context.Context, username string) (*models.Seller, error)
	FindBuyerByUsername(ctx context.Context, username string) (*models.Buyer, error)
	FindSellerByID(ctx context.Context, id primitive.ObjectID) (*models.Seller, error)
	FindBuyerByID(ctx context.Context, id primitive.ObjectID) (*models.Buyer, error)
	InsertSeller(ctx context.Context, seller *models.Seller) error
	InsertBuyer(ctx context.Context, buyer *models.Buyer) error
}

type mongoAccountStore struct {
	sellers *mongo.Collection
	buyers  *mongo.Collection
}

// NewMongoAccountStore construit le store Mongo sur les collections
// sellers et buyers.
func NewMongoAccountStore(db *database.Databases) AccountStore {
	return &mongoAccountStore{sellers: db.Sellers, buyers: db.Buyers}
}

func (s *mongoAccountStore) FindSellerByUsername(ctx context.Context, username string) (*models.Seller, error) {
	var seller models.Seller
	err := s.sellers.FindOne(ctx, bson.M{"username": username}).Decode(&seller)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &seller, nil
}

func (s *mongoAccountStore) FindBuyerByUsername(ctx context.Context, username string) (*models.Buyer, error) {
	var buyer models.Buyer
	err := s.buyers.FindOne(ctx, bson.M{"username": username}).Decode(&buyer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &buyer, nil
}

func (s *mongoAccountStore) FindSellerByID(ctx context.Context, id primitive.ObjectID) (*models.Seller, error) {
	var seller models.Seller
	err := s.sellers.FindOne(ctx, bson.M{"_id": id}).Decode(&seller)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &seller, nil
}

func (s *mongoAccountStore) FindBuyerByID(ctx context.Context, id primitive.ObjectID) (*models.Buyer, error) {
	var buyer models.Buyer
	err := s.buyers.FindOne(ctx, bson.M{"_id": id}).Decode(&buyer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &buyer, nil
}

func (s *mongoAccountStore) InsertSeller(ctx context.Context, seller *models.Seller) error {
	res, err := s.sellers.InsertOne(ctx, seller)
	if mongo.IsDuplicateKeyError(err) {
		// L'index unique sur username a tranché : inscription concurrente perdue.
		return ErrAlreadyExists
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		seller.ID = oid
	}
	return nil
}

func (s *mongoAccountStore) InsertBuyer(ctx context.Context, buyer *models.Buyer) error {
	res, err := s.buyers.InsertOne(ctx, buyer)
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		buyer.ID = oid
	}
	return nil
}
