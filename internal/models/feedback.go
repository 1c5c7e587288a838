package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Feedback struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CandidateID primitive.ObjectID `json:"candidateId" bson:"candidateId"`
	Comment     string             `json:"comment" bson:"comment"`
	Rating      int                `json:"rating" bson:"rating"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

type FeedbackRequest struct {
	Comment string `json:"comment" form:"comment" validate:"required,notblank"`
	Rating  int    `json:"rating" form:"rating" validate:"min=1,max=5"`
}

// LegacyReferencedFeedback is a document from the older "feedbacks" collection,
// which referenced its candidate as "candidate" and timestamped with "date".
type LegacyReferencedFeedback struct {
	ID        primitive.ObjectID `bson:"_id"`
	Candidate primitive.ObjectID `bson:"candidate"`
	Comment   string             `bson:"comment"`
	Rating    int                `bson:"rating"`
	Date      time.Time          `bson:"date"`
}
