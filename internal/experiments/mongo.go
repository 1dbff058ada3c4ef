package experiments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/JaimeStill/paginalab/pkg/database"
)

type document struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"titulo"`
	Subtitle    string             `bson:"subtitulo"`
	Description string             `bson:"descripcion"`
	Image       *string            `bson:"imagen"`
	Category    string             `bson:"categoria"`
	Active      bool               `bson:"activo"`
	CreatedAt   time.Time          `bson:"fechaCreacion"`
	UpdatedAt   time.Time          `bson:"fechaActualizacion"`
}

func (d document) experiment() Experiment {
	return Experiment{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Subtitle:    d.Subtitle,
		Description: d.Description,
		Image:       d.Image,
		Category:    Category(d.Category),
		Active:      d.Active,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

type mongoStore struct {
	db database.System
}

func newMongoStore(db database.System) *mongoStore {
	return &mongoStore{db: db}
}

func (s *mongoStore) collection() (*mongo.Collection, error) {
	db := s.db.Mongo()
	if db == nil {
		return nil, database.ErrNotReady
	}
	return db.Collection(collection), nil
}

func (s *mongoStore) List(ctx context.Context, filters Filters) ([]Experiment, error) {
	coll, err := s.collection()
	if err != nil {
		return nil, err
	}

	filter := bson.D{{Key: "activo", Value: true}}
	if filters.Category != nil {
		filter = append(filter, bson.E{Key: "categoria", Value: string(*filters.Category)})
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "fechaCreacion", Value: -1},
		{Key: "_id", Value: -1},
	})

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find experiments: %w", err)
	}

	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode experiments: %w", err)
	}

	result := make([]Experiment, len(docs))
	for i, d := range docs {
		result[i] = d.experiment()
	}
	return result, nil
}

func (s *mongoStore) Find(ctx context.Context, id string) (*Experiment, error) {
	coll, err := s.collection()
	if err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc document
	if err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, mapMongoError(err)
	}

	e := doc.experiment()
	return &e, nil
}

func (s *mongoStore) Insert(ctx context.Context, e *Experiment) error {
	coll, err := s.collection()
	if err != nil {
		return err
	}

	doc := document{
		ID:          primitive.NewObjectID(),
		Title:       e.Title,
		Subtitle:    e.Subtitle,
		Description: e.Description,
		Image:       e.Image,
		Category:    string(e.Category),
		Active:      e.Active,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return mapMongoError(err)
	}

	e.ID = doc.ID.Hex()
	return nil
}

func (s *mongoStore) Update(ctx context.Context, id string, c Changes) (*Experiment, error) {
	coll, err := s.collection()
	if err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc document
	if err := coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, updateDocument(c), opts).Decode(&doc); err != nil {
		return nil, mapMongoError(err)
	}

	e := doc.experiment()
	return &e, nil
}

func (s *mongoStore) Deactivate(ctx context.Context, id string, at time.Time) error {
	coll, err := s.collection()
	if err != nil {
		return err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, deactivateDocument(at))
	if err != nil {
		return mapMongoError(err)
	}
	return matched(res)
}

// updateDocument sets the supplied fields. fechaActualizacion is only ever
// raised through $max, and $set is omitted when nothing else changes.
func updateDocument(c Changes) bson.D {
	set := bson.D{}
	if c.Title != nil {
		set = append(set, bson.E{Key: "titulo", Value: *c.Title})
	}
	if c.Subtitle != nil {
		set = append(set, bson.E{Key: "subtitulo", Value: *c.Subtitle})
	}
	if c.Description != nil {
		set = append(set, bson.E{Key: "descripcion", Value: *c.Description})
	}
	if c.Category != nil {
		set = append(set, bson.E{Key: "categoria", Value: string(*c.Category)})
	}
	if c.Active != nil {
		set = append(set, bson.E{Key: "activo", Value: *c.Active})
	}
	if c.Image != nil {
		set = append(set, bson.E{Key: "imagen", Value: *c.Image})
	}

	update := bson.D{{Key: "$max", Value: bson.D{{Key: "fechaActualizacion", Value: c.UpdatedAt}}}}
	if len(set) > 0 {
		update = append(update, bson.E{Key: "$set", Value: set})
	}
	return update
}

func deactivateDocument(at time.Time) bson.D {
	return bson.D{
		{Key: "$set", Value: bson.D{{Key: "activo", Value: false}}},
		{Key: "$max", Value: bson.D{{Key: "fechaActualizacion", Value: at}}},
	}
}

func matched(res *mongo.UpdateResult) error {
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func mapMongoError(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}
