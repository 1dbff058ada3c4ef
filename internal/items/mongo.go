package items

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
	Description string             `bson:"descripcion"`
	Category    string             `bson:"categoria"`
	Active      bool               `bson:"activo"`
	CreatedAt   time.Time          `bson:"fechaCreacion"`
	UpdatedAt   time.Time          `bson:"fechaActualizacion"`
}

func (d document) item() Item {
	return Item{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Active:      d.Active,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

type mongoStore struct {
	db database.System
}

func (s *mongoStore) collection() (*mongo.Collection, error) {
	db := s.db.Mongo()
	if db == nil {
		return nil, database.ErrNotReady
	}
	return db.Collection(collection), nil
}

func (s *mongoStore) List(ctx context.Context) ([]Item, error) {
	coll, err := s.collection()
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "fechaCreacion", Value: -1},
		{Key: "_id", Value: -1},
	})

	cur, err := coll.Find(ctx, bson.D{{Key: "activo", Value: true}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}

	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}

	result := make([]Item, len(docs))
	for i, d := range docs {
		result[i] = d.item()
	}
	return result, nil
}

func (s *mongoStore) Find(ctx context.Context, id string) (*Item, error) {
	coll, oid, err := s.target(id)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, mapMongoError(err)
	}

	item := doc.item()
	return &item, nil
}

func (s *mongoStore) Insert(ctx context.Context, item *Item) error {
	coll, err := s.collection()
	if err != nil {
		return err
	}

	doc := document{
		ID:          primitive.NewObjectID(),
		Title:       item.Title,
		Description: item.Description,
		Category:    item.Category,
		Active:      item.Active,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return mapMongoError(err)
	}

	item.ID = doc.ID.Hex()
	return nil
}

func (s *mongoStore) Update(ctx context.Context, id string, c Changes) (*Item, error) {
	coll, oid, err := s.target(id)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc document
	if err := coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, updateDocument(c), opts).Decode(&doc); err != nil {
		return nil, mapMongoError(err)
	}

	item := doc.item()
	return &item, nil
}

func (s *mongoStore) Deactivate(ctx context.Context, id string, at time.Time) error {
	coll, oid, err := s.target(id)
	if err != nil {
		return err
	}

	res, err := coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, deactivateDocument(at))
	if err != nil {
		return mapMongoError(err)
	}
	return matched(res)
}

// updateDocument sets the supplied fields and raises fechaActualizacion
// with $max.
func updateDocument(c Changes) bson.D {
	set := bson.D{}
	if c.Title != nil {
		set = append(set, bson.E{Key: "titulo", Value: *c.Title})
	}
	if c.Description != nil {
		set = append(set, bson.E{Key: "descripcion", Value: *c.Description})
	}
	if c.Category != nil {
		set = append(set, bson.E{Key: "categoria", Value: *c.Category})
	}
	if c.Active != nil {
		set = append(set, bson.E{Key: "activo", Value: *c.Active})
	}

	update := bson.D{{Key: "$max", Value: bson.D{{Key: "fechaActualizacion", Value: c.UpdatedAt}}}}
	if len(set) > 0 {
		update = append(update, bson.E{Key: "$set", Value: set})
	}
	return update
}

func matched(res *mongo.UpdateResult) error {
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func deactivateDocument(at time.Time) bson.D {
	return bson.D{
		{Key: "$set", Value: bson.D{{Key: "activo", Value: false}}},
		{Key: "$max", Value: bson.D{{Key: "fechaActualizacion", Value: at}}},
	}
}

// target resolves the collection and parses id. Malformed ids are not found.
func (s *mongoStore) target(id string) (*mongo.Collection, primitive.ObjectID, error) {
	coll, err := s.collection()
	if err != nil {
		return nil, primitive.NilObjectID, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, primitive.NilObjectID, ErrNotFound
	}
	return coll, oid, nil
}

func mapMongoError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}
