package vectordb

import (
	"context"
)

type EngineType string

const (
	Memory  EngineType = "memory"
	Chromem EngineType = "chromem"
)

type Engine interface {
	Insert(ctx context.Context, collection string, records ...Record) error
	Search(context.Context, []float64, ...SearchOption) ([]Record, error)
}
