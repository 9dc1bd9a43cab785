package cart

import (
	"context"
	"fmt"
	"strings"

	"fruitbasket_back_end/internal/models"
)

// ItemLister fournit la liste complète des articles pour la jointure du
// panier. En pratique c'est le service catalogue (et donc son cache Redis).
type ItemLister interface {
	ListAll(ctx context.Context) ([]models.Item, error)
}

// Service — mutations du panier d'un acheteur et résolution des références
// en articles complets pour l'affichage.
type Service struct {
	store CartStore
	items ItemLister
}

func NewService(store CartStore, items ItemLister) *Service {
	return &Service{store: store, items: items}
}

// Add ajoute la référence au panier, sans condition : ni contrôle d'existence
// de l'article, ni déduplication.
func (s *Service) Add(ctx context.Context, buyerUsername, itemID string) error {
	if err := s.store.PushItem(ctx, strings.ToLower(buyerUsername), itemID); err != nil {
		return fmt.Errorf("ajout au panier: %w", err)
	}
	return nil
}

// Remove retire toutes les occurrences de la référence du panier
// (sémantique $pull : ajouté deux fois, retiré d'un coup).
func (s *Service) Remove(ctx context.Context, buyerUsername, itemID string) error {
	if err := s.store.PullItem(ctx, strings.ToLower(buyerUsername), itemID); err != nil {
		return fmt.Errorf("retrait du panier: %w", err)
	}
	return nil
}

// Resolve joint les références du panier au catalogue complet : une ligne de
// sortie par référence correspondante (un doublon dans le panier produit deux
// lignes). Les références vers des articles supprimés ne produisent rien.
func (s *Service) Resolve(ctx context.Context, buyerUsername string) ([]models.Item, error) {
	refs, err := s.store.ItemRefs(ctx, strings.ToLower(buyerUsername))
	if err != nil {
		return nil, fmt.Errorf("lecture panier: %w", err)
	}

	all, err := s.items.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("résolution panier: %w", err)
	}

	resolved := []models.Item{}
	for _, item := range all {
		hex := item.ID.Hex()
		for _, ref := range refs {
			if ref == hex {
				resolved = append(resolved, item)
			}
		}
	}
	return resolved, nil
}
