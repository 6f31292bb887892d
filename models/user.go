package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

const AccessAuth = "auth"

type Token struct {
	Access string `bson:"access" json:"access"`
	Token  string `bson:"token" json:"token"`
}

type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"passwordHash" json:"-"` // never expose
	Tokens       []Token       `bson:"tokens" json:"-"`
}

// HasToken reports whether token is one of the user's active sessions for access.
func (u *User) HasToken(access, token string) bool {
	for _, t := range u.Tokens {
		if t.Access == access && t.Token == token {
			return true
		}
	}
	return false
}

// Public is the shape returned to clients.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email}
}

type PublicUser struct {
	ID    bson.ObjectID `json:"_id"`
	Email string        `json:"email"`
}
