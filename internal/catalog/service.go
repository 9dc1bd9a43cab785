package catalog

import (
	"context"
	"fmt"
	"strings"

	"fruitbasket_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service — opérations CRUD du catalogue d'articles. Le cache et l'indexeur
// sont optionnels (nil désactive proprement la fonctionnalité).
type Service struct {
	store   ItemStore
	cache   Cache
	indexer *Indexer
}

func NewService(store ItemStore, cache Cache, indexer *Indexer) *Service {
	return &Service{store: store, cache: cache, indexer: indexer}
}

// ListAll — lecture non filtrée, servie par le cache quand il est chaud.
// Alimente le catalogue public et la résolution du panier.
func (s *Service) ListAll(ctx context.Context) ([]models.Item, error) {
	if s.cache != nil {
		if items, ok := s.cache.GetAll(ctx); ok {
			return items, nil
		}
	}

	items, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("lecture catalogue: %w", err)
	}

	if s.cache != nil {
		s.cache.SetAll(ctx, items)
	}
	return items, nil
}

// ListBySeller — articles du tableau de bord vendeur.
func (s *Service) ListBySeller(ctx context.Context, username string) ([]models.Item, error) {
	items, err := s.store.BySeller(ctx, strings.ToLower(username))
	if err != nil {
		return nil, fmt.Errorf("lecture articles du vendeur: %w", err)
	}
	return items, nil
}

// Create insère un nouvel article. Le champ seller est une copie du username
// du vendeur, en minuscules. Prix et quantité sont acceptés tels que soumis.
func (s *Service) Create(ctx context.Context, name string, price float64, quantity int, sellerUsername, imageURL string) (*models.Item, error) {
	item := &models.Item{
		Name:     name,
		Price:    price,
		Quantity: quantity,
		Seller:   strings.ToLower(sellerUsername),
		ImageURL: imageURL,
	}

	if err := s.store.Insert(ctx, item); err != nil {
		return nil, fmt.Errorf("création article: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	go s.indexer.IndexItem(*item)

	return item, nil
}

// UpdatePrice change le prix d'un article, ciblé par id uniquement.
func (s *Service) UpdatePrice(ctx context.Context, id primitive.ObjectID, price float64) error {
	if err := s.store.UpdatePrice(ctx, id, price); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	return nil
}

// Delete supprime un article, ciblé par id uniquement. Les références encore
// présentes dans des paniers d'acheteurs deviennent simplement muettes.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	go s.indexer.RemoveItem(id.Hex())

	return nil
}

// Search interroge Elasticsearch, avec repli sur une recherche regex MongoDB
// quand l'index est absent, vide ou en erreur.
func (s *Service) Search(ctx context.Context, query string) ([]models.Item, error) {
	if results, err := s.indexer.Search(ctx, query); err == nil && len(results) > 0 {
		return results, nil
	}

	items, err := s.store.SearchByName(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("recherche MongoDB: %w", err)
	}
	return items, nil
}
