// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/caves/internal/core/domain"

// PuzzleLoader defines the interface for loading cave systems to solve.
//
//go:generate mockgen -source=puzzle_loader.go -destination=mocks/mock_puzzle_loader.go -package=mocks
type PuzzleLoader interface {
	// LoadManifest reads the manifest at path and returns its puzzles sorted by name.
	LoadManifest(path string) ([]domain.Puzzle, error)

	// LoadEdgeFile reads a plain edge list (one "a-b" per line) into a puzzle
	// named after the file.
	LoadEdgeFile(path string) (domain.Puzzle, error)
}
