package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Dumper writes the full text of emitted units, each framed by a banner
// line naming the file.
type Dumper interface {
	Dump(filename, text string)
}

type dumper struct {
	w  io.Writer
	mu sync.Mutex
}

// NewDumper creates a Dumper. A nil writer discards everything.
func NewDumper(w io.Writer) Dumper {
	return &dumper{w: w}
}

func (d *dumper) Dump(filename, text string) {
	if d.w == nil {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "==== %s (%d bytes) ====\n", filename, len(text))
	b.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		b.WriteByte('\n')
	}

	d.mu.Lock()
	_, _ = io.WriteString(d.w, b.String())
	d.mu.Unlock()
}
