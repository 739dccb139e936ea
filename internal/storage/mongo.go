package storage

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"boutique_back_end/internal/models"
)

// Mongo est le backend document du Store (le choix historique du projet).
// Un panier est identifié par son user_id : l'upsert garantit l'invariant
// "au plus un panier par utilisateur" côté base.
type Mongo struct {
	users    *mongo.Collection
	products *mongo.Collection
	carts    *mongo.Collection
	orders   *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		users:    db.Collection("users"),
		products: db.Collection("products"),
		carts:    db.Collection("carts"),
		orders:   db.Collection("orders"),
	}
}

// mongoErr traduit les erreurs driver vers la taxonomie du Store.
func mongoErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func (s *Mongo) InsertUser(ctx context.Context, u models.User) error {
	_, err := s.users.InsertOne(ctx, u)
	return mongoErr(err)
}

func (s *Mongo) FindUser(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	return u, mongoErr(err)
}

func (s *Mongo) InsertProduct(ctx context.Context, p models.Product) error {
	_, err := s.products.InsertOne(ctx, p)
	return mongoErr(err)
}

// InsertProducts ajoute le lot entier ou rien : si l'insertion échoue en
// cours de route, les lignes déjà écrites sont retirées pour ne pas laisser
// un catalogue partiel.
func (s *Mongo) InsertProducts(ctx context.Context, ps []models.Product) error {
	if len(ps) == 0 {
		return nil
	}
	docs := make([]interface{}, len(ps))
	ids := make([]string, len(ps))
	for i, p := range ps {
		docs[i] = p
		ids[i] = p.ID
	}
	if _, err := s.products.InsertMany(ctx, docs); err != nil {
		if _, delErr := s.products.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); delErr != nil {
			log.Println("❌ Rollback import impossible:", delErr)
		}
		return mongoErr(err)
	}
	return nil
}

func (s *Mongo) ListProducts(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.products.Find(ctx, bson.M{})
	if err != nil {
		return nil, mongoErr(err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, mongoErr(err)
	}
	return products, nil
}

func (s *Mongo) FindProduct(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	err := s.products.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	return p, mongoErr(err)
}

func (s *Mongo) UpdateProduct(ctx context.Context, p models.Product) error {
	res, err := s.products.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return mongoErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Mongo) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mongoErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Mongo) FindCartByUser(ctx context.Context, userID string) (models.Cart, error) {
	var cart models.Cart
	err := s.carts.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	return cart, mongoErr(err)
}

func (s *Mongo) SaveCart(ctx context.Context, cart models.Cart) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.carts.ReplaceOne(ctx, bson.M{"user_id": cart.UserID}, cart, opts)
	return mongoErr(err)
}

func (s *Mongo) InsertOrder(ctx context.Context, o models.Order) error {
	_, err := s.orders.InsertOne(ctx, o)
	return mongoErr(err)
}

func (s *Mongo) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	cursor, err := s.orders.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, mongoErr(err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, mongoErr(err)
	}
	return orders, nil
}
