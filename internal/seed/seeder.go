package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/posts-feed/internal/domain"
)

// Importer is the part of the posts service the seeder drives.
type Importer interface {
	Import(ctx context.Context, batch []domain.NewPost) (int, error)
	GenerateRandom(ctx context.Context, author string, n int) (int, error)
}

type Seeder struct {
	importer  Importer
	batchSize int
}

func NewSeeder(importer Importer, batchSize int) *Seeder {
	if batchSize <= 0 {
		batchSize = 1_000
	}
	return &Seeder{importer: importer, batchSize: batchSize}
}

// Run creates the fixture's posts in batches, then the generated ones. Returns the total created.
func (s *Seeder) Run(ctx context.Context, fixture *Fixture) (int, error) {
	total := 0
	for start := 0; start < len(fixture.Posts); start += s.batchSize {
		end := min(start+s.batchSize, len(fixture.Posts))

		n, err := s.importer.Import(ctx, fixture.Posts[start:end])
		total += n
		if err != nil {
			return total, fmt.Errorf("failed to import posts %d-%d: %w", start, end-1, err)
		}
		slog.Info("Imported fixture batch", "from", start, "to", end-1, "created", n)
	}

	if g := fixture.Generate; g != nil && g.Count > 0 {
		n, err := s.importer.GenerateRandom(ctx, g.Author, g.Count)
		total += n
		if err != nil {
			return total, fmt.Errorf("failed to generate posts: %w", err)
		}
		slog.Info("Generated posts", "author", g.Author, "created", n)
	}

	return total, nil
}
