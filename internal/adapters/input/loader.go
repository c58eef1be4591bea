// Package input loads puzzles from a YAML manifest or from plain edge files.
package input

import (
	"bytes"
	"errors"
	"io/fs"
	"maps"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/caves/internal/core/domain"
	"go.trai.ch/caves/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultManifest is the manifest file name used when none is given.
const DefaultManifest = "caves.yaml"

var validPuzzleNameRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

var _ ports.PuzzleLoader = (*Loader)(nil)

// Loader implements ports.PuzzleLoader.
type Loader struct {
	fs FileSystem
}

// NewLoader creates a Loader reading through fsys.
func NewLoader(fsys FileSystem) *Loader {
	return &Loader{fs: fsys}
}

// New creates a Loader reading from the local file system.
func New() *Loader {
	return NewLoader(NewOSFS())
}

// LoadManifest reads the manifest at path and returns its puzzles sorted by name.
// Input paths are resolved relative to the manifest's directory.
func (l *Loader) LoadManifest(path string) ([]domain.Puzzle, error) {
	var manifest Manifest
	if err := l.readYAML(path, &manifest); err != nil {
		return nil, err
	}

	if manifest.Version != SupportedVersion {
		err := zerr.With(domain.ErrUnsupportedVersion, "version", manifest.Version)
		return nil, zerr.With(err, "path", path)
	}

	dir := filepath.Dir(path)
	puzzles := make([]domain.Puzzle, 0, len(manifest.Puzzles))
	for _, name := range slices.Sorted(maps.Keys(manifest.Puzzles)) {
		p, err := l.buildPuzzle(dir, path, name, manifest.Puzzles[name])
		if err != nil {
			return nil, zerr.With(err, "puzzle", name)
		}
		puzzles = append(puzzles, p)
	}
	return puzzles, nil
}

// LoadEdgeFile reads a file of "a-b" lines. The puzzle is named after the file
// without its extension.
func (l *Loader) LoadEdgeFile(path string) (domain.Puzzle, error) {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if err := validatePuzzleName(name); err != nil {
		return domain.Puzzle{}, zerr.With(err, "path", path)
	}

	lines, err := l.readLines(path)
	if err != nil {
		return domain.Puzzle{}, err
	}
	return domain.Puzzle{Name: name, Lines: lines, Source: path}, nil
}

func (l *Loader) buildPuzzle(dir, manifestPath, name string, dto *PuzzleDTO) (domain.Puzzle, error) {
	if err := validatePuzzleName(name); err != nil {
		return domain.Puzzle{}, err
	}
	if dto == nil || (dto.Input == "") == (len(dto.Edges) == 0) {
		return domain.Puzzle{}, domain.ErrEmptyPuzzle
	}

	p := domain.Puzzle{Name: name, Lines: dto.Edges, Source: manifestPath}
	if dto.Input != "" {
		source := dto.Input
		if !filepath.IsAbs(source) {
			source = filepath.Join(dir, source)
		}
		lines, err := l.readLines(source)
		if err != nil {
			return domain.Puzzle{}, err
		}
		p.Lines = lines
		p.Source = source
	}

	if len(dto.Expect) > 0 {
		p.Expect = make(map[domain.Mode]int, len(dto.Expect))
		for key, n := range dto.Expect {
			mode, err := domain.ParseMode(key)
			if err != nil {
				return domain.Puzzle{}, err
			}
			p.Expect[mode] = n
		}
	}

	return p, nil
}

func (l *Loader) readYAML(path string, target *Manifest) error {
	if _, err := l.fs.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(domain.ErrConfigNotFound, "path", path)
		}
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return nil
}

func (l *Loader) readLines(path string) ([]string, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInputReadFailed.Error()), "path", path)
	}
	return strings.Split(string(data), "\n"), nil
}

func validatePuzzleName(name string) error {
	if !validPuzzleNameRegex.MatchString(name) {
		return zerr.With(domain.ErrInvalidPuzzleName, "name", name)
	}
	return nil
}
