package progrock

import (
	"io"

	"github.com/vito/progrock"
)

// NewLineWriter exposes the echoing writer for tests.
func NewLineWriter(next progrock.Writer, out io.Writer) progrock.Writer {
	w := newLineWriter(next)
	w.setOutput(out)
	return w
}
