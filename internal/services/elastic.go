package services

import (
	"bytes"
	"context"
	"encoding/json"
	"log"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"boutique_back_end/internal/models"
)

// Indexer pousse les produits dans Elasticsearch au fil de l'eau.
// Optionnel : un Indexer nil désactive l'indexation sans toucher au
// catalogue. Toujours appelé en goroutine, jamais sur le chemin critique.
type Indexer struct {
	client *elasticsearch.Client
	index  string
}

func NewIndexer(client *elasticsearch.Client) *Indexer {
	return &Indexer{client: client, index: "products"}
}

// IndexProduct indexe un produit. Les erreurs sont loggées, pas propagées :
// le catalogue reste la source de vérité, l'index est reconstructible.
func (ix *Indexer) IndexProduct(p models.Product) {
	if ix == nil || ix.client == nil {
		return
	}

	data, _ := json.Marshal(p)
	req := esapi.IndexRequest{
		Index:      ix.index,
		DocumentID: p.ID,
		Body:       bytes.NewReader(data),
	}

	res, err := req.Do(context.Background(), ix.client)
	if err != nil {
		log.Println("❌ Erreur envoi Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic a renvoyé une erreur pour %s: %s", p.Name, res.String())
	}
}

// IndexProducts indexe un lot importé (produit par produit, l'index n'a
// pas besoin d'atomicité).
func (ix *Indexer) IndexProducts(ps []models.Product) {
	if ix == nil || ix.client == nil {
		return
	}
	for _, p := range ps {
		ix.IndexProduct(p)
	}
	log.Printf("✅ %d produits indexés dans Elasticsearch", len(ps))
}
