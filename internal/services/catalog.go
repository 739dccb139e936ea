package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"boutique_back_end/internal/cache"
	"boutique_back_end/internal/models"
	"boutique_back_end/internal/storage"
)

// CatalogService : lecture du catalogue, création de produits et import en
// masse. Le cache et l'indexation sont optionnels (nil = désactivé).
type CatalogService struct {
	store   storage.Store
	newID   IDGenerator
	cache   *cache.ProductCache
	indexer *Indexer
	archive *FeedArchiver
}

func NewCatalogService(store storage.Store, newID IDGenerator, productCache *cache.ProductCache, indexer *Indexer, archive *FeedArchiver) *CatalogService {
	if newID == nil {
		newID = NewID
	}
	return &CatalogService{
		store:   store,
		newID:   newID,
		cache:   productCache,
		indexer: indexer,
		archive: archive,
	}
}

// ListProducts retourne tout le catalogue, depuis le cache quand il est chaud.
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	if products, ok := s.cache.Get(ctx); ok {
		return products, nil
	}

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}

	s.cache.Set(ctx, products)
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (models.Product, error) {
	return s.store.FindProduct(ctx, id)
}

// CreateProduct assigne un id neuf et stocke le produit. Le prix est pris
// tel quel, aucune validation au-delà de sa présence.
func (s *CatalogService) CreateProduct(ctx context.Context, name, description, category string, price float64) (models.Product, error) {
	p := models.Product{
		ID:          s.newID(),
		Name:        name,
		Description: description,
		Category:    category,
		Price:       price,
	}

	if err := s.store.InsertProduct(ctx, p); err != nil {
		return models.Product{}, err
	}

	s.cache.Invalidate(ctx)
	go s.indexer.IndexProduct(p)

	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return models.Product{}, err
	}
	s.cache.Invalidate(ctx)
	go s.indexer.IndexProduct(p)
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

// ImportProducts ingère un flux CSV name,description,category,price et
// ajoute le lot entier au catalogue. Tout-ou-rien : la moindre ligne
// illisible rejette le lot avant qu'une seule ligne ne soit écrite.
func (s *CatalogService) ImportProducts(ctx context.Context, filename string, feed io.Reader) ([]models.Product, error) {
	log.Println("📦 Import catalogue démarré :", filename)

	raw, err := io.ReadAll(feed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFeed, err)
	}

	go s.archive.Archive(filename, raw)

	products, err := s.parseFeed(raw)
	if err != nil {
		log.Println("❌ Import catalogue rejeté :", err)
		return nil, err
	}

	if err := s.store.InsertProducts(ctx, products); err != nil {
		log.Println("❌ Import catalogue échoué à l'écriture :", err)
		return nil, err
	}

	s.cache.Invalidate(ctx)
	go s.indexer.IndexProducts(products)

	log.Printf("✅ Import catalogue terminé : %d produits ajoutés", len(products))
	return products, nil
}

// parseFeed lit toutes les lignes avant d'assigner le moindre id : un flux
// partiellement valide ne produit jamais un catalogue partiel.
func (s *CatalogService) parseFeed(raw []byte) ([]models.Product, error) {
	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFeed, err)
	}

	products := make([]models.Product, 0, len(records))
	for i, rec := range records {
		// Ligne d'en-tête optionnelle.
		if i == 0 && len(rec) >= 4 && strings.EqualFold(strings.TrimSpace(rec[3]), "price") {
			continue
		}
		if len(rec) < 4 {
			return nil, fmt.Errorf("%w: ligne %d incomplète (%d champs)", ErrBadFeed, i+1, len(rec))
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: ligne %d, prix illisible %q", ErrBadFeed, i+1, rec[3])
		}

		products = append(products, models.Product{
			ID:          s.newID(),
			Name:        strings.TrimSpace(rec[0]),
			Description: strings.TrimSpace(rec[1]),
			Category:    strings.TrimSpace(rec[2]),
			Price:       price,
		})
	}

	return products, nil
}
