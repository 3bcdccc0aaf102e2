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

const (
	collectionDirectors = "directors"
	collectionActors    = "actors"
)

var byName = bson.D{{Key: "name", Value: 1}}

type personDocument struct {
	ID        primitive.ObjectID   `bson:"_id"`
	Name      string               `bson:"name"`
	BirthYear int                  `bson:"birthYear,omitempty"`
	Bio       string               `bson:"bio,omitempty"`
	Image     string               `bson:"image,omitempty"`
	TMDBID    int                  `bson:"tmdbId,omitempty"`
	Movies    []primitive.ObjectID `bson:"movies"`
	CreatedAt time.Time            `bson:"createdAt"`
}

func (d personDocument) toDomain() domain.Person {
	return domain.Person{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		BirthYear: d.BirthYear,
		Bio:       d.Bio,
		Image:     d.Image,
		TMDBID:    d.TMDBID,
		MovieIDs:  hexIDs(d.Movies),
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// PersonRepository implements ports.PersonRepository. Directors and actors
// share the document shape and differ only in collection and not-found error.
type PersonRepository struct {
	backReferences
	col      *mongo.Collection
	notFound error
}

func NewDirectorRepository(db *mongo.Database) *PersonRepository {
	return newPersonRepository(db.Collection(collectionDirectors), domain.ErrDirectorNotFound)
}

func NewActorRepository(db *mongo.Database) *PersonRepository {
	return newPersonRepository(db.Collection(collectionActors), domain.ErrActorNotFound)
}

func newPersonRepository(col *mongo.Collection, notFound error) *PersonRepository {
	return &PersonRepository{backReferences: backReferences{col: col}, col: col, notFound: notFound}
}

func (r *PersonRepository) Create(ctx context.Context, p *domain.Person) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	doc := personDocument{
		ID:        primitive.NewObjectID(),
		Name:      p.Name,
		BirthYear: p.BirthYear,
		Bio:       p.Bio,
		Image:     p.Image,
		TMDBID:    p.TMDBID,
		Movies:    objectIDs(p.MovieIDs),
		CreatedAt: createdAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateRecord
		}
		return err
	}
	p.ID, p.CreatedAt = doc.ID.Hex(), createdAt
	return nil
}

func (r *PersonRepository) FindByID(ctx context.Context, id string) (*domain.Person, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, r.notFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *PersonRepository) FindByTMDBID(ctx context.Context, tmdbID int) (*domain.Person, error) {
	return r.findOne(ctx, bson.M{"tmdbId": tmdbID})
}

func (r *PersonRepository) findOne(ctx context.Context, filter bson.M) (*domain.Person, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc personDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.notFound
		}
		return nil, err
	}
	p := doc.toDomain()
	return &p, nil
}

func (r *PersonRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Person, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []domain.Person{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

// List returns every record sorted by name.
func (r *PersonRepository) List(ctx context.Context) ([]domain.Person, error) {
	return r.find(ctx, bson.M{})
}

func (r *PersonRepository) find(ctx context.Context, filter bson.M) ([]domain.Person, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(byName))
	if err != nil {
		return nil, err
	}
	var docs []personDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Person, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// EnsureIndexes creates necessary indexes on the collection.
func (r *PersonRepository) EnsureIndexes(ctx context.Context) error {
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
