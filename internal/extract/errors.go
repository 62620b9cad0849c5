package extract

import (
	"errors"
	"fmt"
)

// ErrMissingNode indicates a document lacks a node its schema requires.
// It is a configuration error: the run aborts and nothing is written.
var ErrMissingNode = errors.New("missing required node")

// MissingNodeError names the node that was not found
type MissingNodeError struct {
	Path string // File being parsed
	Node string // Element path, e.g. "source_file/document"
}

func (e *MissingNodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: missing required node %s", e.Path, e.Node)
	}
	return fmt.Sprintf("missing required node %s", e.Node)
}

func (e *MissingNodeError) Unwrap() error {
	return ErrMissingNode
}
