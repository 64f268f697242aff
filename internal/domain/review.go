package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	ContactNumber string             `bson:"contactNumber" json:"contactNumber"`
	Rating        int                `bson:"rating" json:"rating"`
	Description   string             `bson:"description" json:"description"`
	Images        []string           `bson:"images" json:"images"`
	ProductID     primitive.ObjectID `bson:"productId" json:"productId"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RatingSummary is the mean rating and count of a set of reviews; zero for none.
func RatingSummary(reviews []Review) (average float64, count int) {
	if len(reviews) == 0 {
		return 0, 0
	}

	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return float64(total) / float64(len(reviews)), len(reviews)
}
