package models

// Cart : au plus un panier par user_id. Les produits sont des snapshots
// pris au moment de l'ajout, pas des références vers le catalogue.
type Cart struct {
	ID       string    `json:"id" bson:"_id"`
	UserID   string    `json:"user_id" bson:"user_id"`
	Products []Product `json:"products" bson:"products"`
}
