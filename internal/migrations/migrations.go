// Package migrations embeds the PostgreSQL schema and the MongoDB index set
// for the experimentos and items collections.
package migrations

import (
	"embed"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/JaimeStill/paginalab/pkg/database"
)

//go:embed *.sql
var FS embed.FS

// Indexes mirror the SQL indexes for the mongo driver.
var Indexes = []database.Index{
	{Collection: "experimentos", Keys: bson.D{{Key: "activo", Value: 1}, {Key: "fechaCreacion", Value: -1}}},
	{Collection: "experimentos", Keys: bson.D{{Key: "categoria", Value: 1}, {Key: "activo", Value: 1}, {Key: "fechaCreacion", Value: -1}}},
	{Collection: "items", Keys: bson.D{{Key: "activo", Value: 1}, {Key: "fechaCreacion", Value: -1}}},
}

// Options returns the schema setup for database.New.
func Options() database.Options {
	return database.Options{
		Migrations: FS,
		Indexes:    Indexes,
	}
}
