package models

type User struct {
	ID       string `json:"user_id" bson:"_id"`
	Email    string `json:"email" bson:"email"`
	Name     string `json:"name" bson:"name"`
	Password string `json:"-" bson:"password"`
}
