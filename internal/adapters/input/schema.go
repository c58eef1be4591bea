package input

// SupportedVersion is the only manifest schema version understood by the loader.
const SupportedVersion = "1"

// Manifest represents the structure of the caves.yaml file.
type Manifest struct {
	Version string                `yaml:"version"`
	Puzzles map[string]*PuzzleDTO `yaml:"puzzles"`
}

// PuzzleDTO is a puzzle definition in the manifest. Exactly one of Input and
// Edges must be set.
type PuzzleDTO struct {
	Input  string         `yaml:"input"`
	Edges  []string       `yaml:"edges"`
	Expect map[string]int `yaml:"expect"`
}
