package ports

import (
	"context"

	"github.com/aretw0/figspec/pkg/domain"
)

// Engine is the set of workflow operations a transport drives against one state document.
// *figspec.Engine implements it.
type Engine interface {
	Status(ctx context.Context) (*domain.StatusReport, error)
	Next(ctx context.Context) (*domain.NextResult, error)
	Skeleton(ctx context.Context, id string, depth int) (*domain.SkeletonResult, error)
	Children(ctx context.Context, id string) (*domain.ChildrenResult, error)
	Facts(ctx context.Context, id string) (*domain.FactsResult, error)
	Batch(ctx context.Context, start, count int) (*domain.BatchResult, error)
	Apply(ctx context.Context, patch []byte) (*domain.ApplyResult, error)
	Validate(ctx context.Context) (*domain.ValidationReport, error)
	Export(ctx context.Context, absorb *bool) (*domain.ExportDocument, error)
}
