package openai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/tripweave/tripweave/components"
	"github.com/tripweave/tripweave/components/embedder"
)

type Embedder struct {
	*openai.Client

	embedder.Options
}

var _ embedder.Embedder = (*Embedder)(nil)

func New(client *openai.Client, opts ...embedder.Option) *Embedder {
	i := &Embedder{
		Client: client,
	}
	embedder.WithProvider(embedder.ProviderOpenAI)(&i.Options)
	for _, opt := range opts {
		opt(&i.Options)
	}
	return i
}

func (p *Embedder) SetClient(clt *openai.Client) {
	p.Client = clt
}

func (p *Embedder) Embed(ctx context.Context, text string, embedding *embedder.Embedding, usage *components.ApiUsage) error {
	req := openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(p.Model()),
	}
	resp, err := p.CreateEmbeddings(ctx, req)
	if err != nil {
		return err
	}
	if usage != nil {
		usage.InputTokens = resp.Usage.PromptTokens
	}
	if len(resp.Data) == 0 {
		return nil
	}
	ret := resp.Data[0]
	embedding.Object = text
	embedding.Embedding = make([]float64, 0, len(ret.Embedding))
	for _, v := range ret.Embedding {
		embedding.Embedding = append(embedding.Embedding, float64(v))
	}
	embedding.Index = 0
	return nil
}

func (p *Embedder) BatchEmbed(ctx context.Context, parts []string, usage *components.ApiUsage) ([]embedder.Embedding, error) {
	req := openai.EmbeddingRequest{
		Input: parts,
		Model: openai.EmbeddingModel(p.Model()),
	}
	resp, err := p.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, err
	}
	if usage != nil {
		usage.InputTokens = resp.Usage.PromptTokens
	}
	ret := make([]embedder.Embedding, 0, len(resp.Data))
	for _, v := range resp.Data {
		embeddings := make([]float64, 0, len(v.Embedding))
		for _, e := range v.Embedding {
			embeddings = append(embeddings, float64(e))
		}
		ret = append(ret, embedder.Embedding{
			Object:    parts[int(v.Index)],
			Embedding: embeddings,
			Index:     int(v.Index),
		})
	}
	return ret, nil
}
