// Package models holds the documents persisted in the store and returned by
// the API.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Todo is a single item owned by a user. CompletedAt is an epoch-millisecond
// timestamp, non-nil exactly when Completed is true.
type Todo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Text        string             `bson:"text" json:"text"`
	Completed   bool               `bson:"completed" json:"completed"`
	CompletedAt *int64             `bson:"completedAt" json:"completedAt"`
	Creator     primitive.ObjectID `bson:"_creator" json:"_creator"`
}

// TodoUpdate is the set of mutable fields written by an update. Text is
// left unchanged when nil; Completed and CompletedAt are always written.
type TodoUpdate struct {
	Text        *string
	Completed   bool
	CompletedAt *int64
}
