package storage

import (
	"context"
	"errors"
	"testing"

	"boutique_back_end/internal/models"
)

func TestMemoryProducts(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if _, err := store.FindProduct(ctx, "absent"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("FindProduct sur id inconnu : ErrNotFound attendu, reçu %v", err)
	}

	p := models.Product{ID: "p1", Name: "Clavier", Category: "informatique", Price: 49.9}
	if err := store.InsertProduct(ctx, p); err != nil {
		t.Fatal(err)
	}

	got, err := store.FindProduct(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if got != p {
		t.Fatalf("produit relu différent : %+v", got)
	}

	if err := store.InsertProducts(ctx, []models.Product{
		{ID: "p2", Name: "Souris", Price: 19.9},
		{ID: "p3", Name: "Écran", Price: 199.0},
	}); err != nil {
		t.Fatal(err)
	}

	products, err := store.ListProducts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 3 {
		t.Fatalf("3 produits attendus, reçu %d", len(products))
	}
	// L'ordre d'insertion est préservé.
	if products[0].ID != "p1" || products[2].ID != "p3" {
		t.Fatalf("ordre d'insertion non préservé : %+v", products)
	}

	p.Price = 44.9
	if err := store.UpdateProduct(ctx, p); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.FindProduct(ctx, "p1"); got.Price != 44.9 {
		t.Fatalf("prix non mis à jour : %v", got.Price)
	}
	if err := store.UpdateProduct(ctx, models.Product{ID: "absent"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateProduct sur id inconnu : ErrNotFound attendu, reçu %v", err)
	}

	if err := store.DeleteProduct(ctx, "p2"); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteProduct(ctx, "p2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double suppression : ErrNotFound attendu, reçu %v", err)
	}
	products, _ = store.ListProducts(ctx)
	if len(products) != 2 {
		t.Fatalf("2 produits attendus après suppression, reçu %d", len(products))
	}
}

func TestMemoryUsers(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if _, err := store.FindUser(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ErrNotFound attendu, reçu %v", err)
	}

	u := models.User{ID: "u1", Email: "alice@example.com", Name: "Alice"}
	if err := store.InsertUser(ctx, u); err != nil {
		t.Fatal(err)
	}
	got, err := store.FindUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Email != "alice@example.com" {
		t.Fatalf("user relu différent : %+v", got)
	}
}

func TestMemoryCartIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	cart := models.Cart{ID: "c1", UserID: "u1", Products: []models.Product{{ID: "p1"}}}
	if err := store.SaveCart(ctx, cart); err != nil {
		t.Fatal(err)
	}

	// Muter le slice du caller ne doit pas toucher l'état canonique.
	cart.Products[0].ID = "corrompu"

	got, err := store.FindCartByUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Products[0].ID != "p1" {
		t.Fatal("le Store a partagé son slice interne avec le caller")
	}

	if _, err := store.FindCartByUser(ctx, "u2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("panier inexistant : ErrNotFound attendu, reçu %v", err)
	}
}

func TestMemoryOrders(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if err := store.InsertOrder(ctx, models.Order{ID: "o1", UserID: "u1", TotalPrice: 15.5}); err != nil {
		t.Fatal(err)
	}
	if err := store.InsertOrder(ctx, models.Order{ID: "o2", UserID: "u2", TotalPrice: 7.0}); err != nil {
		t.Fatal(err)
	}

	orders, err := store.ListOrdersByUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 || orders[0].ID != "o1" {
		t.Fatalf("commandes de u1 inattendues : %+v", orders)
	}
}
