package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// backReferences maintains the "movies" array shared by the director, actor
// and genre collections.
type backReferences struct {
	col *mongo.Collection
}

// AddMovie adds movieID to every record in ids. $addToSet keeps the list
// free of duplicates when the same push is repeated.
func (b backReferences) AddMovie(ctx context.Context, ids []string, movieID string) error {
	return b.update(ctx, ids, movieID, "$addToSet")
}

// RemoveMovie pulls movieID from every record in ids.
func (b backReferences) RemoveMovie(ctx context.Context, ids []string, movieID string) error {
	return b.update(ctx, ids, movieID, "$pull")
}

func (b backReferences) update(ctx context.Context, ids []string, movieID, op string) error {
	movie, ok := objectID(movieID)
	if !ok {
		return fmt.Errorf("%s: invalid movie id %q", b.col.Name(), movieID)
	}
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := b.col.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": oids}},
		bson.M{op: bson.M{"movies": movie}},
	)
	if err != nil {
		return fmt.Errorf("%s %s: %w", b.col.Name(), op, err)
	}
	return nil
}
