package ports

import "go.trai.ch/caves/internal/core/domain"

// Reporter renders the final results of a run.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// Report writes one row per solution. Solutions arrive already sorted.
	Report(solutions []domain.Solution) error
}
