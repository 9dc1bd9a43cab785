package auth

import (
	"context"
	"fmt"
	"strings"

	"fruitbasket_back_end/internal/models"
	"fruitbasket_back_end/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity — compte résolu, taggé par son rôle. C'est ce que produit une
// vérification d'identifiants réussie et ce que les gates consomment.
type Identity struct {
	ID       primitive.ObjectID
	Username string
	Phone    int64
	Role     models.Role
}

// Service est le résolveur d'identité : vérification d'identifiants au login
// et création de compte à l'inscription, pour les deux rôles.
type Service struct {
	store AccountStore
}

func NewService(store AccountStore) *Service {
	return &Service{store: store}
}

// Authenticate vérifie un couple username/mot de passe dans la collection du
// rôle demandé. Le username est normalisé en minuscules avant lookup.
func (s *Service) Authenticate(ctx context.Context, role models.Role, username, password string) (*Identity, error) {
	username = strings.ToLower(username)

	switch role {
	case models.RoleSeller:
		seller, err := s.store.FindSellerByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("recherche vendeur: %w", err)
		}
		if seller == nil {
			return nil, ErrNotFound
		}
		if err := s.verify(password, seller.Password); err != nil {
			return nil, err
		}
		return &Identity{ID: seller.ID, Username: seller.Username, Phone: seller.Phone, Role: models.RoleSeller}, nil

	case models.RoleBuyer:
		buyer, err := s.store.FindBuyerByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("recherche acheteur: %w", err)
		}
		if buyer == nil {
			return nil, ErrNotFound
		}
		if err := s.verify(password, buyer.Password); err != nil {
			return nil, err
		}
		return &Identity{ID: buyer.ID, Username: buyer.Username, Phone: buyer.Phone, Role: models.RoleBuyer}, nil

	default:
		return nil, ErrUnknownRole
	}
}

func (s *Service) verify(password, hash string) error {
	ok, err := utils.VerifyPassword(password, hash)
	if err != nil {
		return fmt.Errorf("vérification mot de passe: %w", err)
	}
	if !ok {
		return ErrBadCredentials
	}
	return nil
}

// Register crée un compte dans la collection du rôle demandé. Le pré-contrôle
// d'existence sert uniquement au message d'erreur rapide — la vraie garantie
// d'unicité est l'index unique sur username (voir InsertSeller/InsertBuyer).
func (s *Service) Register(ctx context.Context, role models.Role, username, password string, phone int64) (*Identity, error) {
	username = strings.ToLower(username)

	switch role {
	case models.RoleSeller:
		existing, err := s.store.FindSellerByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("contrôle d'existence vendeur: %w", err)
		}
		if existing != nil {
			return nil, ErrAlreadyExists
		}

		hash, err := utils.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("hash mot de passe: %w", err)
		}

		seller := &models.Seller{
			Username: username,
			Password: hash,
			Phone:    phone,
			Role:     models.RoleSeller,
		}
		if err := s.store.InsertSeller(ctx, seller); err != nil {
			return nil, err
		}
		return &Identity{ID: seller.ID, Username: seller.Username, Phone: seller.Phone, Role: models.RoleSeller}, nil

	case models.RoleBuyer:
		existing, err := s.store.FindBuyerByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("contrôle d'existence acheteur: %w", err)
		}
		if existing != nil {
			return nil, ErrAlreadyExists
		}

		hash, err := utils.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("hash mot de passe: %w", err)
		}

		buyer := &models.Buyer{
			Username: username,
			Password: hash,
			Phone:    phone,
			Items:    []string{},
			Role:     models.RoleBuyer,
		}
		if err := s.store.InsertBuyer(ctx, buyer); err != nil {
			return nil, err
		}
		return &Identity{ID: buyer.ID, Username: buyer.Username, Phone: buyer.Phone, Role: models.RoleBuyer}, nil

	default:
		return nil, ErrUnknownRole
	}
}
