package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Candidate struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Resume    *string            `json:"resume" bson:"resume"` // null until a file is uploaded
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// CandidateRequest carries the multipart form fields of a create request.
type CandidateRequest struct {
	Name  string `json:"name" form:"name" validate:"required,notblank"`
	Email string `json:"email" form:"email" validate:"required,notblank"`
	Phone string `json:"phone" form:"phone"`
}

// LegacyFeedback is the comment-only entry older documents kept embedded in
// candidates.feedback before feedback moved to its own collection.
type LegacyFeedback struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Comment string             `bson:"comment"`
	Date    time.Time          `bson:"date"`
}
