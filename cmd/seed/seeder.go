// Package main provides the seed command for populating the store with sample
// experiments and items. Seeders write through the domain systems so records
// get the same normalization and validation as API writes.
package main

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/JaimeStill/paginalab/internal/api"
)

//go:embed seeds/*.json
var seedFiles embed.FS

// Seeder populates one domain's data.
type Seeder interface {
	Name() string
	Description() string
	// Seed writes records unless the domain already holds active data and
	// force is false. It returns the number of records created.
	Seed(ctx context.Context, domain *api.Domain, force bool) (int, error)
	// SetFile replaces the embedded seed file with an external one.
	SetFile(path string)
}

var seeders = map[string]Seeder{}

func registerSeeder(s Seeder) {
	seeders[s.Name()] = s
}

func getSeeder(name string) (Seeder, bool) {
	s, ok := seeders[name]
	return s, ok
}

// listSeeders returns all registered seeders ordered by name.
func listSeeders() []Seeder {
	result := make([]Seeder, 0, len(seeders))
	for _, s := range seeders {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result
}

func runSeeder(ctx context.Context, domain *api.Domain, s Seeder, force bool) error {
	n, err := s.Seed(ctx, domain, force)
	if err != nil {
		return fmt.Errorf("seed %s: %w", s.Name(), err)
	}
	fmt.Printf("%s: %d records created\n", s.Name(), n)
	return nil
}

// loadSeedData reads file, or the embedded fallback when file is empty, into v.
func loadSeedData(file, embedded string, v any) error {
	var (
		content []byte
		err     error
	)

	if file != "" {
		content, err = os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read seed file: %w", err)
		}
	} else {
		content, err = seedFiles.ReadFile(embedded)
		if err != nil {
			return fmt.Errorf("read embedded seed file: %w", err)
		}
	}

	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("parse seed data: %w", err)
	}
	return nil
}
