package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	RoleClient    = "client"
	RoleDeveloper = "developer"
)

type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Role  string             `bson:"role" json:"role"`
}

// UserSummary is the shallow view of a user embedded in project and bid reads.
type UserSummary struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
}

func (u User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	ID    primitive.ObjectID
	Role  string
	Name  string
	Email string
}

// Owns compares identifiers by value.
func (i Identity) Owns(p *Project) bool {
	return p != nil && i.ID == p.CreatedBy
}
