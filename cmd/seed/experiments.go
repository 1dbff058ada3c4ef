package main

import (
	"context"
	"fmt"

	"github.com/JaimeStill/paginalab/internal/api"
	"github.com/JaimeStill/paginalab/internal/experiments"
)

func init() {
	registerSeeder(&ExperimentSeeder{})
}

// ExperimentSeedData is the JSON layout of experiment seed files.
type ExperimentSeedData struct {
	Experiments []experiments.CreateCommand `json:"experimentos"`
}

// ExperimentSeeder creates sample experiments without images.
type ExperimentSeeder struct {
	file string
}

func (s *ExperimentSeeder) Name() string { return "experiments" }

func (s *ExperimentSeeder) Description() string {
	return "Seeds sample experiments across every category"
}

func (s *ExperimentSeeder) SetFile(path string) { s.file = path }

func (s *ExperimentSeeder) Seed(ctx context.Context, domain *api.Domain, force bool) (int, error) {
	if !force {
		existing, err := domain.Experiments.List(ctx)
		if err != nil {
			return 0, err
		}
		if len(existing) > 0 {
			return 0, nil
		}
	}

	var data ExperimentSeedData
	if err := loadSeedData(s.file, "seeds/experimentos.json", &data); err != nil {
		return 0, err
	}

	for i, cmd := range data.Experiments {
		if _, err := domain.Experiments.Create(ctx, cmd); err != nil {
			return i, fmt.Errorf("create %q: %w", cmd.Title, err)
		}
	}
	return len(data.Experiments), nil
}
