package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// bsonKeys builds an ordered key document from name/direction pairs.
func bsonKeys(pairs ...any) bson.D {
	keys := make(bson.D, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		keys = append(keys, bson.E{Key: pairs[i].(string), Value: pairs[i+1]})
	}
	return keys
}

// containsFold matches v anywhere in the field, ignoring case. v is quoted so
// user input is never interpreted as a pattern.
func containsFold(v string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(v), Options: "i"}
}

// objectID parses hex; ok is false for anything that is not a valid id.
func objectID(hex string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(hex)
	return oid, err == nil
}

func skipFor(page, size int) int64 {
	if page < 1 {
		page = 1
	}
	return int64((page - 1) * size)
}
