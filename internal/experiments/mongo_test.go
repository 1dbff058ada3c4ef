package experiments

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func lookup(d bson.D, key string) (any, bool) {
	for _, e := range d {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

func TestUpdateDocument(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	title := "Circuito"
	category := CategoryChemistry
	image := "experimento-1-2.png"

	tests := []struct {
		name    string
		changes Changes
		set     map[string]any
	}{
		{
			name:    "timestamp only",
			changes: Changes{UpdatedAt: at},
		},
		{
			name:    "title and category",
			changes: Changes{Title: &title, Category: &category, UpdatedAt: at},
			set:     map[string]any{"titulo": title, "categoria": "quimica"},
		},
		{
			name:    "image",
			changes: Changes{Image: &image, UpdatedAt: at},
			set:     map[string]any{"imagen": image},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := updateDocument(tt.changes)

			raised, ok := lookup(doc, "$max")
			if !ok {
				t.Fatal("update should raise fechaActualizacion with $max")
			}
			if got, _ := lookup(raised.(bson.D), "fechaActualizacion"); got != at {
				t.Errorf("$max.fechaActualizacion = %v, want %v", got, at)
			}

			raw, hasSet := lookup(doc, "$set")
			if len(tt.set) == 0 {
				if hasSet {
					t.Errorf("$set = %v, want omitted", raw)
				}
				return
			}

			set := raw.(bson.D)
			if len(set) != len(tt.set) {
				t.Errorf("$set = %v, want %v", set, tt.set)
			}
			for key, want := range tt.set {
				if got, _ := lookup(set, key); got != want {
					t.Errorf("$set.%s = %v, want %v", key, got, want)
				}
			}
			if _, ok := lookup(set, "fechaActualizacion"); ok {
				t.Error("$set must not write fechaActualizacion")
			}
		})
	}
}

func TestDeactivateDocument(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := deactivateDocument(at)

	set, _ := lookup(doc, "$set")
	if active, _ := lookup(set.(bson.D), "activo"); active != false {
		t.Errorf("$set.activo = %v, want false", active)
	}
	raised, _ := lookup(doc, "$max")
	if got, _ := lookup(raised.(bson.D), "fechaActualizacion"); got != at {
		t.Errorf("$max.fechaActualizacion = %v, want %v", got, at)
	}
}

func TestMatched(t *testing.T) {
	if err := matched(&mongo.UpdateResult{MatchedCount: 0}); !errors.Is(err, ErrNotFound) {
		t.Errorf("no match error = %v, want ErrNotFound", err)
	}
	if err := matched(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 0}); err != nil {
		t.Errorf("matched without modification error = %v, want nil", err)
	}
}

func TestMapMongoError(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	other := errors.New("connection reset")

	if err := mapMongoError(mongo.ErrNoDocuments); !errors.Is(err, ErrNotFound) {
		t.Errorf("ErrNoDocuments -> %v, want ErrNotFound", err)
	}
	if err := mapMongoError(dup); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate key -> %v, want ErrDuplicate", err)
	}
	if err := mapMongoError(other); err != other {
		t.Errorf("other error -> %v, want unchanged", err)
	}
}
