package embedder

import (
	"context"
	"errors"

	"github.com/rs/xid"

	"github.com/tripweave/tripweave/components"
)

// Embedding is one embedded text with optional payload metadata.
type Embedding struct {
	Object    string            `json:"object,omitempty"`
	Embedding []float64         `json:"embedding"`
	Index     int               `json:"index"`
	Meta      map[string]string `json:"meta,omitempty"`
}

// UUID returns a fresh unique id for the embedding record.
func (e Embedding) UUID() string {
	return xid.New().String()
}

type Embedder interface {
	Provider() Provider
	Model() string
	Embed(context.Context, string, *Embedding, *components.ApiUsage) error
	BatchEmbed(ctx context.Context, parts []string, usage *components.ApiUsage) ([]Embedding, error)
}

// DotProduct calculates the dot product of the embedding vector with another
// embedding vector. Both vectors must have the same length; otherwise, an
// error is returned.
func (e *Embedding) DotProduct(other *Embedding) (float64, error) {
	if len(e.Embedding) != len(other.Embedding) {
		return 0, errors.New("vector length mismatch")
	}

	var dotProduct float64
	for i := range e.Embedding {
		dotProduct += e.Embedding[i] * other.Embedding[i]
	}

	return dotProduct, nil
}
