package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reelhouse/movie-catalog/internal/core/domain"
	"github.com/reelhouse/movie-catalog/internal/core/ports"
)

const collectionMovies = "movies"

type movieDocument struct {
	ID          primitive.ObjectID   `bson:"_id"`
	Title       string               `bson:"title"`
	Plot        string               `bson:"plot"`
	ReleaseYear int                  `bson:"releaseYear"`
	Runtime     int                  `bson:"runtime"`
	Poster      string               `bson:"poster"`
	Director    primitive.ObjectID   `bson:"director"`
	Actors      []primitive.ObjectID `bson:"actors"`
	Genres      []primitive.ObjectID `bson:"genres"`
	TMDBID      int                  `bson:"tmdbId,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

func (d movieDocument) toDomain() domain.Movie {
	return domain.Movie{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Plot:        d.Plot,
		ReleaseYear: d.ReleaseYear,
		Runtime:     d.Runtime,
		Poster:      d.Poster,
		DirectorID:  hexID(d.Director),
		ActorIDs:    hexIDs(d.Actors),
		GenreIDs:    hexIDs(d.Genres),
		TMDBID:      d.TMDBID,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func movieFields(m *domain.Movie) bson.M {
	director, _ := objectID(m.DirectorID)
	return bson.M{
		"title":       m.Title,
		"plot":        m.Plot,
		"releaseYear": m.ReleaseYear,
		"runtime":     m.Runtime,
		"poster":      m.Poster,
		"director":    director,
		"actors":      objectIDs(m.ActorIDs),
		"genres":      objectIDs(m.GenreIDs),
		"updatedAt":   m.UpdatedAt,
	}
}

// MovieRepository implements ports.MovieRepository on the movies collection.
type MovieRepository struct {
	col *mongo.Collection
}

func NewMovieRepository(db *mongo.Database) *MovieRepository {
	return &MovieRepository{col: db.Collection(collectionMovies)}
}

// Create inserts m and sets its ID. A second movie with the same external id
// fails with domain.ErrDuplicateRecord.
func (r *MovieRepository) Create(ctx context.Context, m *domain.Movie) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid := primitive.NewObjectID()
	doc := movieFields(m)
	doc["_id"] = oid
	doc["createdAt"] = m.CreatedAt
	if m.TMDBID != 0 {
		doc["tmdbId"] = m.TMDBID
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateRecord
		}
		return err
	}
	m.ID = oid.Hex()
	return nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id string) (*domain.Movie, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrMovieNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MovieRepository) FindByTMDBID(ctx context.Context, tmdbID int) (*domain.Movie, error) {
	return r.findOne(ctx, bson.M{"tmdbId": tmdbID})
}

func (r *MovieRepository) findOne(ctx context.Context, filter bson.M) (*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc movieDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, err
	}
	m := doc.toDomain()
	return &m, nil
}

func (r *MovieRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Movie, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []domain.Movie{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	return decodeMovies(ctx, cursor)
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// List returns one page of movies matching f and the total number of
// matches, newest first with the id as tie-break.
func (r *MovieRepository) List(ctx context.Context, f ports.MovieFilter) ([]domain.Movie, int64, error) {
	filter, ok := movieListFilter(f)
	if !ok {
		return []domain.Movie{}, 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count movies: %w", err)
	}

	opts := options.Find().
		SetSort(newestFirst).
		SetSkip(int64(f.Skip)).
		SetLimit(int64(f.Limit))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find movies: %w", err)
	}
	movies, err := decodeMovies(ctx, cursor)
	if err != nil {
		return nil, 0, err
	}
	return movies, total, nil
}

// movieListFilter translates f into a query. It reports false when f can
// match nothing, such as a malformed director id.
func movieListFilter(f ports.MovieFilter) (bson.M, bool) {
	filter := bson.M{}
	if f.Keyword != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Keyword), Options: "i"}
	}
	if len(f.GenreIDs) > 0 {
		oids := objectIDs(f.GenreIDs)
		if len(oids) == 0 {
			return nil, false
		}
		filter["genres"] = bson.M{"$in": oids}
	}
	if f.DirectorID != "" {
		oid, ok := objectID(f.DirectorID)
		if !ok {
			return nil, false
		}
		filter["director"] = oid
	}
	return filter, true
}

// ForEach streams every movie to fn. Iteration stops at the first error.
// No per-call timeout is applied since a full scan may take long; ctx
// bounds it.
func (r *MovieRepository) ForEach(ctx context.Context, fn func(domain.Movie) error) error {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return fmt.Errorf("scan movies: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc movieDocument
		if err := cursor.Decode(&doc); err != nil {
			return fmt.Errorf("decode movie: %w", err)
		}
		if err := fn(doc.toDomain()); err != nil {
			return err
		}
	}
	return cursor.Err()
}

func (r *MovieRepository) Update(ctx context.Context, m *domain.Movie) error {
	oid, ok := objectID(m.ID)
	if !ok {
		return domain.ErrMovieNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": movieFields(m)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrMovieNotFound
	}
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrMovieNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrMovieNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the movies collection.
func (r *MovieRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: newestFirst},
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "genres", Value: 1}}},
		{Keys: bson.D{{Key: "director", Value: 1}}},
		{
			Keys:    bson.D{{Key: "tmdbId", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeMovies(ctx context.Context, cursor *mongo.Cursor) ([]domain.Movie, error) {
	var docs []movieDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode movies: %w", err)
	}
	out := make([]domain.Movie, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
