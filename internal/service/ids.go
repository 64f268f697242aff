package service

import (
	"strings"

	"github.com/alimikegami/apparel-store/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errs.ErrInvalidID
	}
	return oid, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
