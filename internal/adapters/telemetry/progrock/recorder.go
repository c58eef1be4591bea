// Package progrock records count jobs as progrock vertices.
package progrock

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/caves/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry on a progrock tape. Completed vertices
// can additionally be echoed as plain lines with SetOutput.
type Recorder struct {
	w   *lineWriter
	rec *progrock.Recorder
	seq atomic.Uint64
}

// New creates a Recorder writing to a fresh in-memory tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a Recorder forwarding every status update to w.
func NewRecorder(w progrock.Writer) *Recorder {
	lw := newLineWriter(w)
	return &Recorder{
		w:   lw,
		rec: progrock.NewRecorder(lw),
	}
}

// SetOutput echoes each completed vertex to out. A nil writer turns echoing off.
func (r *Recorder) SetOutput(out io.Writer) {
	r.w.setOutput(out)
}

// Record starts a vertex named after the job. A group, if given, prefixes the name.
func (r *Recorder) Record(ctx context.Context, name string, opts ...ports.VertexOption) (context.Context, ports.Vertex) {
	var cfg ports.VertexConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Group != "" {
		name = cfg.Group + "/" + name
	}

	// Each recording gets its own vertex, so repeated runs of a job are echoed again.
	id := digest.FromString(fmt.Sprintf("%s#%d", name, r.seq.Add(1)))
	v := &Vertex{vertex: r.rec.Vertex(id, name)}
	return ports.ContextWithVertex(ctx, v), v
}

// Close ends the recording session and closes the underlying writer.
func (r *Recorder) Close() error {
	return r.w.Close()
}
