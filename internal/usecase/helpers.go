package usecase

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func parseObjectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// splitList turns delimited text into a trimmed list, dropping empty tokens.
func splitList(text, delimiter string) []string {
	var out []string
	for _, token := range strings.Split(text, delimiter) {
		token = strings.TrimSpace(token)
		if token != "" {
			out = append(out, token)
		}
	}
	return out
}
