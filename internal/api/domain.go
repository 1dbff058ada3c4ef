package api

import (
	"fmt"

	"github.com/JaimeStill/paginalab/internal/experiments"
	"github.com/JaimeStill/paginalab/internal/items"
	"github.com/JaimeStill/paginalab/internal/uploads"
)

// Domain holds the domain systems that comprise the API.
type Domain struct {
	Images      *uploads.Receiver
	Experiments experiments.System
	Items       items.System
}

// NewDomain creates the domain systems over the runtime's database and storage.
func NewDomain(runtime *Runtime) (*Domain, error) {
	images := uploads.New(runtime.Uploads, runtime.Storage, runtime.Logger)

	experimentStore, err := experiments.NewStore(runtime.Database)
	if err != nil {
		return nil, fmt.Errorf("experiment store: %w", err)
	}

	itemStore, err := items.NewStore(runtime.Database)
	if err != nil {
		return nil, fmt.Errorf("item store: %w", err)
	}

	return &Domain{
		Images:      images,
		Experiments: experiments.New(experimentStore, images, runtime.Logger),
		Items:       items.New(itemStore, runtime.Logger),
	}, nil
}
