package main

import (
	"context"
	"fmt"

	"github.com/JaimeStill/paginalab/internal/api"
	"github.com/JaimeStill/paginalab/internal/items"
)

func init() {
	registerSeeder(&ItemSeeder{})
}

// ItemSeedData is the JSON layout of item seed files.
type ItemSeedData struct {
	Items []items.CreateCommand `json:"items"`
}

// ItemSeeder creates sample lab items.
type ItemSeeder struct {
	file string
}

func (s *ItemSeeder) Name() string { return "items" }

func (s *ItemSeeder) Description() string {
	return "Seeds sample laboratory items"
}

func (s *ItemSeeder) SetFile(path string) { s.file = path }

func (s *ItemSeeder) Seed(ctx context.Context, domain *api.Domain, force bool) (int, error) {
	if !force {
		existing, err := domain.Items.List(ctx)
		if err != nil {
			return 0, err
		}
		if len(existing) > 0 {
			return 0, nil
		}
	}

	var data ItemSeedData
	if err := loadSeedData(s.file, "seeds/items.json", &data); err != nil {
		return 0, err
	}

	for i, cmd := range data.Items {
		if _, err := domain.Items.Create(ctx, cmd); err != nil {
			return i, fmt.Errorf("create %q: %w", cmd.Title, err)
		}
	}
	return len(data.Items), nil
}
