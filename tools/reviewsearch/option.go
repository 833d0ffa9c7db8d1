package reviewsearch

import (
	"github.com/tripweave/tripweave/components/embedder"
	"github.com/tripweave/tripweave/components/vectordb"
)

type Option func(*Config)

func WithEmbedder(e embedder.Embedder) Option {
	return func(c *Config) {
		c.embedder = e
	}
}

func WithEngine(engine vectordb.Engine) Option {
	return func(c *Config) {
		c.engine = engine
	}
}

func WithCollection(name string) Option {
	return func(c *Config) {
		c.collection = name
	}
}

func WithTopK(topK int) Option {
	return func(c *Config) {
		c.topK = topK
	}
}
