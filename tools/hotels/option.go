package hotels

import "github.com/tripweave/tripweave/tools/amadeus"

type Option func(*Config)

func WithClient(clt *amadeus.Client) Option {
	return func(c *Config) {
		c.client = clt
	}
}

func WithMaxResults(n int) Option {
	return func(c *Config) {
		c.maxResults = n
	}
}
