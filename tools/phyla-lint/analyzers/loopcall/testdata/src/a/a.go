package a

import "context"

type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type VectorIndex interface {
	Save(ctx context.Context, id string) error
}

type LexiconStore interface {
	FindEntry(ctx context.Context, gloss string) (string, error)
}

func bad(ctx context.Context, items []string, e Embedder, idx VectorIndex) {
	for _, item := range items {
		e.Embed(ctx, []string{item}) // want "potential N\\+1: Embed called inside loop"
		idx.Save(ctx, item)          // want "potential N\\+1: Save called inside loop"
	}
}

func badFor(ctx context.Context, items []string, store LexiconStore) {
	for i := 0; i < len(items); i++ {
		store.FindEntry(ctx, items[i]) // want "potential N\\+1: FindEntry called inside loop"
	}
}

func suppressed(ctx context.Context, items []string, store LexiconStore, idx VectorIndex) {
	for _, item := range items {
		store.FindEntry(ctx, item) //nolint:loopcall // local reads
		//nolint:loopcall // one point per call
		idx.Save(ctx, item)
	}
}

func good(ctx context.Context, items []string, e Embedder) {
	_, _ = e.Embed(ctx, items)
	for _, item := range items {
		_ = len(item)
	}
}
