package generate

import "fmt"

// ErrorKind classifies why a stage could not run.
type ErrorKind uint8

const (
	KindMissingRooms ErrorKind = iota + 1
	KindMissingCorridors
	KindMissingStartPosition
	KindNoWalkableTile
	KindNoValidPath
	KindChainMisuse
	KindMapTooSmall
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingRooms:
		return "missing rooms"
	case KindMissingCorridors:
		return "missing corridors"
	case KindMissingStartPosition:
		return "missing starting position"
	case KindNoWalkableTile:
		return "no walkable tile"
	case KindNoValidPath:
		return "no valid path"
	case KindChainMisuse:
		return "chain misuse"
	case KindMapTooSmall:
		return "map too small"
	}
	return "unknown"
}

// BuildError reports a precondition violation in a stage. A chain that
// returns one has aborted; retrying with a different seed may succeed.
type BuildError struct {
	Stage  string
	Kind   ErrorKind
	Detail string
}

func (e *BuildError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Stage, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Stage, e.Kind, e.Detail)
}

// Is matches any *BuildError of the same kind, so callers can write
// errors.Is(err, generate.ErrMissingRooms).
func (e *BuildError) Is(target error) bool {
	t, ok := target.(*BuildError)
	return ok && t.Kind == e.Kind
}

var (
	ErrMissingRooms         = &BuildError{Kind: KindMissingRooms}
	ErrMissingCorridors     = &BuildError{Kind: KindMissingCorridors}
	ErrMissingStartPosition = &BuildError{Kind: KindMissingStartPosition}
	ErrNoWalkableTile       = &BuildError{Kind: KindNoWalkableTile}
	ErrNoValidPath          = &BuildError{Kind: KindNoValidPath}
	ErrChainMisuse          = &BuildError{Kind: KindChainMisuse}
	ErrMapTooSmall          = &BuildError{Kind: KindMapTooSmall}
)

func stageError(stage string, kind ErrorKind, detail string) error {
	return &BuildError{Stage: stage, Kind: kind, Detail: detail}
}
