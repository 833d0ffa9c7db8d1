package providers

import (
	"github.com/tripweave/tripweave/components/embedder/providers/openai"
)

var (
	FromOpenAI = openai.New
)
