package compile

import (
	"bytes"

	"github.com/natefinch/atomic"
)

// WriteFile atomically writes result's compiled bytes to path, grounded on
// the teacher's own use of github.com/natefinch/atomic in lock.go /
// internal/fs/real.go for "never leave a half-written file on disk": a
// crashed or interrupted `stenoc compile` must never leave a corrupt,
// partially-written dictionary for the firmware to load.
func WriteFile(path string, result Result) error {
	return atomic.WriteFile(path, bytes.NewReader(result.Bytes))
}
