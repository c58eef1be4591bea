package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedEdge is returned when an edge line is not exactly two tokens joined by the separator.
	ErrMalformedEdge = zerr.New("malformed edge")

	// ErrInvalidCaveName is returned when a cave label is neither all-lowercase nor all-uppercase.
	ErrInvalidCaveName = zerr.New("invalid cave name")

	// ErrBigCavesAdjacent is returned when an edge joins two big caves, which would allow an endless path.
	ErrBigCavesAdjacent = zerr.New("big caves must not be directly connected")

	// ErrDepthExceeded is returned when the search recurses deeper than its configured ceiling.
	ErrDepthExceeded = zerr.New("search depth exceeded")

	// ErrUnknownMode is returned when a revisit mode name is not recognized.
	ErrUnknownMode = zerr.New("unknown revisit mode, expected 'strict' or 'relaxed'")

	// ErrConfigReadFailed is returned when the manifest cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the manifest cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when the manifest does not exist.
	ErrConfigNotFound = zerr.New("could not find config file")

	// ErrUnsupportedVersion is returned when the manifest declares an unknown schema version.
	ErrUnsupportedVersion = zerr.New("unsupported config version")

	// ErrInputReadFailed is returned when an edge file cannot be read.
	ErrInputReadFailed = zerr.New("failed to read input file")

	// ErrDuplicatePuzzle is returned when two inputs resolve to the same puzzle name.
	ErrDuplicatePuzzle = zerr.New("duplicate puzzle name")

	// ErrInvalidPuzzleName is returned when a puzzle name contains characters outside [A-Za-z0-9_.-].
	ErrInvalidPuzzleName = zerr.New("invalid puzzle name")

	// ErrEmptyPuzzle is returned when a manifest puzzle declares neither or both of input and edges.
	ErrEmptyPuzzle = zerr.New("puzzle must declare exactly one of 'input' or 'edges'")

	// ErrNoInputs is returned when neither a manifest nor edge files provide any puzzle.
	ErrNoInputs = zerr.New("no inputs specified")

	// ErrUnexpectedCount is returned when a count disagrees with the expected value.
	ErrUnexpectedCount = zerr.New("unexpected path count")

	// ErrWatchFailed is returned when input files cannot be watched for changes.
	ErrWatchFailed = zerr.New("failed to watch input files")

	// ErrRunFailed is returned when at least one count job failed.
	ErrRunFailed = zerr.New("one or more counts failed")
)
