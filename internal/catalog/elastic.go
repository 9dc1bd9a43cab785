package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"fruitbasket_back_end/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const itemsIndex = "items"

// Indexer maintient l'index Elasticsearch des articles. Toutes les écritures
// sont best-effort : l'index est un accélérateur de recherche, pas la source
// de vérité (c'est MongoDB).
type Indexer struct {
	es *elasticsearch.Client
}

func NewIndexer(es *elasticsearch.Client) *Indexer {
	return &Indexer{es: es}
}

// IndexItem indexe un article créé. Appelé en goroutine depuis le service.
func (ix *Indexer) IndexItem(item models.Item) {
	if ix == nil || ix.es == nil {
		return
	}

	data, _ := json.Marshal(item)
	req := esapi.IndexRequest{
		Index:      itemsIndex,
		DocumentID: item.ID.Hex(),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), ix.es)
	if err != nil {
		log.Println("❌ Erreur envoi Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic a renvoyé une erreur pour %s: %s", item.Name, res.String())
	} else {
		log.Printf("✅ Article indexé dans Elasticsearch: %s", item.Name)
	}
}

// RemoveItem retire un article supprimé de l'index.
func (ix *Indexer) RemoveItem(id string) {
	if ix == nil || ix.es == nil {
		return
	}

	req := esapi.DeleteRequest{Index: itemsIndex, DocumentID: id}
	res, err := req.Do(context.Background(), ix.es)
	if err != nil {
		log.Println("❌ Erreur suppression Elastic:", err)
		return
	}
	defer res.Body.Close()
}

// Search interroge l'index par nom et vendeur.
func (ix *Indexer) Search(ctx context.Context, query string) ([]models.Item, error) {
	if ix == nil || ix.es == nil {
		return nil, errors.New("client Elasticsearch non initialisé")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name", "seller"},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("erreur encodage requête: %v", err)
	}

	req := esapi.SearchRequest{
		Index: []string{itemsIndex},
		Body:  &buf,
	}
	res, err := req.Do(ctx, ix.es)
	if err != nil {
		return nil, fmt.Errorf("erreur requête Elastic: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.New("index non trouvé ou vide")
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Item `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("erreur décodage JSON: %v", err)
	}

	items := make([]models.Item, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		items = append(items, hit.Source)
	}
	return items, nil
}
