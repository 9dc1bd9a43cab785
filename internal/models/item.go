package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Item — article en vente (collection "items").
// Seller est une copie dénormalisée du username du vendeur (minuscules),
// sans clé étrangère ni réconciliation ultérieure.
type Item struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Seller   string             `bson:"seller" json:"seller"`
	ImageURL string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}
