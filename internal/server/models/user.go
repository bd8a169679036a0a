package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Token is one issued credential stored on its owner.
type Token struct {
	Access string `bson:"access" json:"access"`
	Token  string `bson:"token" json:"token"`
}

// User is a registered account. Password holds the bcrypt hash; neither it
// nor Tokens is ever serialized to clients.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Tokens   []Token            `bson:"tokens" json:"-"`
}

// HasToken reports whether token is stored on u with the given purpose.
func (u *User) HasToken(token, access string) bool {
	for _, t := range u.Tokens {
		if t.Token == token && t.Access == access {
			return true
		}
	}
	return false
}
