package engine

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// ErrNoInput means the price directory held no candidate input files, or
// every file it held yielded zero records. The run fails without touching
// the sink, the local output, or any input file.
var ErrNoInput = eris.New("engine: no extractable input")

// PublishError marks a run whose extraction succeeded but whose sink write
// did not. The local results stand; only the publish step failed.
type PublishError struct {
	Err error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("engine: publish failed: %v", e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}
