package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Soft-delete contract shared by every collection: a live record has
// deletedAt == null, and all finders filter on that. SoftDelete stamps the
// tombstone through the same live filter, so deleting twice (or touching a
// deleted record) surfaces as not-found.

// liveByID matches a non-deleted record by id.
func liveByID(id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "deletedAt": nil}
}

// live returns the default filter with any extra criteria merged in.
func live(extra bson.M) bson.M {
	filter := bson.M{"deletedAt": nil}
	for k, v := range extra {
		filter[k] = v
	}
	return filter
}

// tombstone builds the soft-delete update document.
func tombstone(now time.Time) bson.M {
	return bson.M{"$set": bson.M{"deletedAt": now, "updatedAt": now}}
}

// returnUpdated makes FindOneAndUpdate yield the post-update document.
func returnUpdated() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}
