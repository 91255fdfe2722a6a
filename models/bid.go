package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bid is owned by the bidding flow; this service reads bids and removes them
// together with their project.
type Bid struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Project   primitive.ObjectID `json:"project" bson:"project"`
	Developer primitive.ObjectID `json:"developer" bson:"developer"`
	Amount    float64            `json:"amount" bson:"amount"`
	Proposal  string             `json:"proposal,omitempty" bson:"proposal,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type BidView struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Project   primitive.ObjectID `json:"project" bson:"project"`
	Developer *UserSummary       `json:"developer" bson:"developer,omitempty"`
	Amount    float64            `json:"amount" bson:"amount"`
	Proposal  string             `json:"proposal,omitempty" bson:"proposal,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

func NewBidView(b Bid, developer *UserSummary) BidView {
	return BidView{
		ID:        b.ID,
		Project:   b.Project,
		Developer: developer,
		Amount:    b.Amount,
		Proposal:  b.Proposal,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
