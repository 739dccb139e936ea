package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"boutique_back_end/internal/storage"
)

// seqIDs retourne un générateur déterministe : id-1, id-2, ...
func seqIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newCatalog() (*CatalogService, *storage.Memory) {
	store := storage.NewMemory()
	return NewCatalogService(store, seqIDs(), nil, nil, nil), store
}

func TestGetProductNotFound(t *testing.T) {
	catalog, _ := newCatalog()

	_, err := catalog.GetProduct(context.Background(), "jamais-insere")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("ErrNotFound attendu, reçu %v", err)
	}
}

func TestCreateProduct(t *testing.T) {
	catalog, _ := newCatalog()
	ctx := context.Background()

	p, err := catalog.CreateProduct(ctx, "Clavier", "mécanique", "informatique", 49.9)
	if err != nil {
		t.Fatal(err)
	}
	if p.ID == "" {
		t.Fatal("id non assigné")
	}

	got, err := catalog.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Price != 49.9 || got.Name != "Clavier" {
		t.Fatalf("produit relu différent : %+v", got)
	}
}

func TestImportProductsAppendsBatch(t *testing.T) {
	catalog, _ := newCatalog()
	ctx := context.Background()

	existing, err := catalog.CreateProduct(ctx, "Souris", "", "informatique", 19.9)
	if err != nil {
		t.Fatal(err)
	}

	feed := strings.NewReader(
		"name,description,category,price\n" +
			"Clavier,mécanique,informatique,49.9\n" +
			"Écran,27 pouces,informatique,199.0\n")

	imported, err := catalog.ImportProducts(ctx, "feed.csv", feed)
	if err != nil {
		t.Fatal(err)
	}
	if len(imported) != 2 {
		t.Fatalf("2 produits importés attendus, reçu %d", len(imported))
	}
	if imported[0].ID == imported[1].ID || imported[0].ID == existing.ID {
		t.Fatal("les ids importés doivent être neufs et uniques")
	}
	if imported[1].Price != 199.0 {
		t.Fatalf("prix mal parsé : %v", imported[1].Price)
	}

	// L'existant est intact, le catalogue contient le tout.
	products, err := catalog.ListProducts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 3 {
		t.Fatalf("3 produits attendus au catalogue, reçu %d", len(products))
	}
	if got, err := catalog.GetProduct(ctx, existing.ID); err != nil || got.Price != 19.9 {
		t.Fatalf("produit existant modifié par l'import : %+v (%v)", got, err)
	}
}

func TestImportProductsRejectsWholeBatch(t *testing.T) {
	catalog, _ := newCatalog()
	ctx := context.Background()

	// Deuxième ligne illisible : rien ne doit être écrit.
	feed := strings.NewReader(
		"Clavier,mécanique,informatique,49.9\n" +
			"Écran,27 pouces,informatique,pas-un-prix\n")

	_, err := catalog.ImportProducts(ctx, "feed.csv", feed)
	if !errors.Is(err, ErrBadFeed) {
		t.Fatalf("ErrBadFeed attendu, reçu %v", err)
	}

	products, err := catalog.ListProducts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 0 {
		t.Fatalf("catalogue partiel après import rejeté : %+v", products)
	}
}

func TestImportProductsShortRow(t *testing.T) {
	catalog, _ := newCatalog()

	feed := strings.NewReader("Clavier,mécanique\n")
	_, err := catalog.ImportProducts(context.Background(), "feed.csv", feed)
	if !errors.Is(err, ErrBadFeed) {
		t.Fatalf("ErrBadFeed attendu, reçu %v", err)
	}
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	catalog, _ := newCatalog()
	ctx := context.Background()

	p, err := catalog.CreateProduct(ctx, "Clavier", "", "informatique", 49.9)
	if err != nil {
		t.Fatal(err)
	}

	p.Price = 39.9
	if _, err := catalog.UpdateProduct(ctx, p); err != nil {
		t.Fatal(err)
	}
	if got, _ := catalog.GetProduct(ctx, p.ID); got.Price != 39.9 {
		t.Fatalf("prix non mis à jour : %v", got.Price)
	}

	if err := catalog.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := catalog.GetProduct(ctx, p.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("produit supprimé encore présent : %v", err)
	}
}
