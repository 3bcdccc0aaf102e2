package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reelhouse/movie-catalog/internal/core/domain"
)

const collectionGenres = "genres"

type genreDocument struct {
	ID          primitive.ObjectID   `bson:"_id"`
	Name        string               `bson:"name"`
	Description string               `bson:"description,omitempty"`
	TMDBID      int                  `bson:"tmdbId,omitempty"`
	Movies      []primitive.ObjectID `bson:"movies"`
	CreatedAt   time.Time            `bson:"createdAt"`
}

func (d genreDocument) toDomain() domain.Genre {
	return domain.Genre{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		TMDBID:      d.TMDBID,
		MovieIDs:    hexIDs(d.Movies),
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

// GenreRepository implements ports.GenreRepository on the genres collection.
type GenreRepository struct {
	backReferences
	col *mongo.Collection
}

func NewGenreRepository(db *mongo.Database) *GenreRepository {
	col := db.Collection(collectionGenres)
	return &GenreRepository{backReferences: backReferences{col: col}, col: col}
}

func (r *GenreRepository) Create(ctx context.Context, g *domain.Genre) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	createdAt := g.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	doc := genreDocument{
		ID:          primitive.NewObjectID(),
		Name:        g.Name,
		Description: g.Description,
		TMDBID:      g.TMDBID,
		Movies:      objectIDs(g.MovieIDs),
		CreatedAt:   createdAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateRecord
		}
		return err
	}
	g.ID, g.CreatedAt = doc.ID.Hex(), createdAt
	return nil
}

func (r *GenreRepository) FindByID(ctx context.Context, id string) (*domain.Genre, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrGenreNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *GenreRepository) FindByTMDBID(ctx context.Context, tmdbID int) (*domain.Genre, error) {
	return r.findOne(ctx, bson.M{"tmdbId": tmdbID})
}

// FindByName matches the name exactly.
func (r *GenreRepository) FindByName(ctx context.Context, name string) (*domain.Genre, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *GenreRepository) findOne(ctx context.Context, filter bson.M) (*domain.Genre, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc genreDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGenreNotFound
		}
		return nil, err
	}
	g := doc.toDomain()
	return &g, nil
}

func (r *GenreRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Genre, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []domain.Genre{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (r *GenreRepository) List(ctx context.Context) ([]domain.Genre, error) {
	return r.find(ctx, bson.M{})
}

func (r *GenreRepository) find(ctx context.Context, filter bson.M) ([]domain.Genre, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(byName))
	if err != nil {
		return nil, err
	}
	var docs []genreDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Genre, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// EnsureIndexes creates necessary indexes on the genres collection.
func (r *GenreRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: byName},
		{
			Keys:    bson.D{{Key: "tmdbId", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	return err
}
