package services

import (
	"context"
	"errors"
	"testing"

	"boutique_back_end/internal/models"
	"boutique_back_end/internal/storage"
)

func newCheckoutFixture(t *testing.T) (*CartService, *CheckoutService, *storage.Memory) {
	t.Helper()
	store := storage.NewMemory()
	locks := NewUserLocks()
	return NewCartService(store, seqIDs(), locks),
		NewCheckoutService(store, seqIDs(), locks),
		store
}

func TestCheckoutWithoutCart(t *testing.T) {
	_, checkout, store := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := checkout.Checkout(ctx, "u1")
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("ErrEmptyCart attendu, reçu %v", err)
	}

	// Aucune commande ne doit avoir été créée.
	orders, err := store.ListOrdersByUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 0 {
		t.Fatalf("commande créée malgré le panier absent : %+v", orders)
	}
}

func TestCheckoutComputesTotalAndEmptiesCart(t *testing.T) {
	cart, checkout, store := newCheckoutFixture(t)
	ctx := context.Background()

	for _, p := range []models.Product{
		{ID: "p1", Name: "Clavier", Price: 10.0},
		{ID: "p2", Name: "Souris", Price: 5.5},
	} {
		if err := store.InsertProduct(ctx, p); err != nil {
			t.Fatal(err)
		}
		if _, err := cart.AddToCart(ctx, "u1", p.ID); err != nil {
			t.Fatal(err)
		}
	}

	before, err := cart.GetCart(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}

	order, err := checkout.Checkout(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if order.TotalPrice != 15.5 {
		t.Fatalf("total 15.5 attendu, reçu %v", order.TotalPrice)
	}
	if len(order.Products) != 2 {
		t.Fatalf("2 snapshots attendus dans la commande : %+v", order.Products)
	}
	if order.UserID != "u1" {
		t.Fatalf("commande rattachée au mauvais user : %q", order.UserID)
	}

	// Le panier est vidé en place : même identité, liste vide.
	after, err := cart.GetCart(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if after.ID != before.ID {
		t.Fatal("l'identité du panier doit survivre au checkout")
	}
	if len(after.Products) != 0 {
		t.Fatalf("panier non vidé : %+v", after.Products)
	}

	// Second checkout sur le panier maintenant vide.
	if _, err := checkout.Checkout(ctx, "u1"); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("ErrEmptyCart attendu au second checkout, reçu %v", err)
	}

	// Une seule commande en base, celle du premier checkout.
	orders, err := checkout.ListOrders(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 || orders[0].ID != order.ID {
		t.Fatalf("commandes inattendues : %+v", orders)
	}
}

func TestOrderIsSnapshot(t *testing.T) {
	cart, checkout, store := newCheckoutFixture(t)
	ctx := context.Background()

	p := models.Product{ID: "p1", Name: "Clavier", Price: 10.0}
	if err := store.InsertProduct(ctx, p); err != nil {
		t.Fatal(err)
	}
	if _, err := cart.AddToCart(ctx, "u1", p.ID); err != nil {
		t.Fatal(err)
	}

	order, err := checkout.Checkout(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}

	// Changer le prix au catalogue ne touche pas la commande passée.
	p.Price = 99.0
	if err := store.UpdateProduct(ctx, p); err != nil {
		t.Fatal(err)
	}

	orders, err := checkout.ListOrders(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if orders[0].Products[0].Price != 10.0 || orders[0].TotalPrice != order.TotalPrice {
		t.Fatalf("la commande doit rester un snapshot immuable : %+v", orders[0])
	}
}
