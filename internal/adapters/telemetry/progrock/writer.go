package progrock

import (
	"fmt"
	"io"
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/caves/internal/ui/output"
	"go.trai.ch/caves/internal/ui/style"
)

// lineWriter forwards status updates to the tape and prints one line per
// vertex the first time it is seen completed.
type lineWriter struct {
	next progrock.Writer

	mu   sync.Mutex
	out  io.Writer
	done map[string]struct{}
}

func newLineWriter(next progrock.Writer) *lineWriter {
	return &lineWriter{
		next: next,
		done: make(map[string]struct{}),
	}
}

func (w *lineWriter) setOutput(out io.Writer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.out = out
}

// WriteStatus implements progrock.Writer.
func (w *lineWriter) WriteStatus(update *progrock.StatusUpdate) error {
	w.mu.Lock()
	if w.out != nil {
		w.echo(update)
	}
	w.mu.Unlock()

	return w.next.WriteStatus(update)
}

// Close implements progrock.Writer.
func (w *lineWriter) Close() error {
	return w.next.Close()
}

func (w *lineWriter) echo(update *progrock.StatusUpdate) {
	out := output.New(w.out)
	for _, v := range update.Vertexes {
		if v.Completed == nil {
			continue
		}
		if _, seen := w.done[v.Id]; seen {
			continue
		}
		w.done[v.Id] = struct{}{}

		if v.Error != nil {
			line := fmt.Sprintf("%s %s: %s", style.Cross, v.Name, *v.Error)
			_, _ = fmt.Fprintln(out, out.String(line).Foreground(out.Color(string(style.Red))))
			continue
		}
		line := fmt.Sprintf("%s %s", style.Check, v.Name)
		_, _ = fmt.Fprintln(out, out.String(line).Foreground(out.Color(string(style.Green))))
	}
}
