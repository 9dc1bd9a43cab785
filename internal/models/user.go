package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Seller — compte vendeur (collection "sellers").
// Le username est toujours stocké en minuscules.
type Seller struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username" json:"username"`
	Password string             `bson:"password" json:"-"`
	Phone    int64              `bson:"phone" json:"phone"`
	Role     Role               `bson:"role" json:"role"`
}

// Buyer — compte acheteur (collection "buyers").
// Items contient les références du panier (hex des ObjectID d'articles),
// dans l'ordre d'ajout, doublons autorisés. Les références peuvent pointer
// vers des articles supprimés — elles sont simplement ignorées à la résolution.
type Buyer struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username" json:"username"`
	Password string             `bson:"password" json:"-"`
	Phone    int64              `bson:"phone" json:"phone"`
	Items    []string           `bson:"items" json:"items"`
	Role     Role               `bson:"role" json:"role"`
}
