package models

// User carries the contact fields the dispatcher needs; the user store itself
// is owned by another service.
type User struct {
	ID    string `bson:"_id,omitempty" json:"user_id"`
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name" json:"name"`
}

// Topic is the clustering output this service reads titles from and writes
// display status back onto.
type Topic struct {
	ID     string `bson:"_id,omitempty" json:"topic_id"`
	Title  string `bson:"title" json:"title"`
	Status string `bson:"status" json:"status"`
}
