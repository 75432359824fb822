package draw

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
	// Any-motion reporting, SGR encoding.
	seqMouseOn  = "\033[?1003h\033[?1006h"
	seqMouseOff = "\033[?1006l\033[?1003l"
)

// ChunkWriter assembles one terminal frame from a canvas and the HUD text
// laid over it. Flush hands the frame to the connection in pieces of at
// most maxChunkSize bytes.
type ChunkWriter struct {
	out    io.Writer
	canvas *Canvas
	frame  []byte
}

// NewChunkWriter returns a ChunkWriter drawing canvas to out. Text
// coordinates are canvas cells; the canvas offset is added on output.
func NewChunkWriter(out io.Writer, canvas *Canvas) *ChunkWriter {
	return &ChunkWriter{out: out, canvas: canvas, frame: make([]byte, 0, 8192)}
}

// SetCanvas swaps in the canvas built after a resize. The pending frame
// is dropped since its cursor positions belong to the old layout.
func (cw *ChunkWriter) SetCanvas(c *Canvas) {
	cw.canvas = c
	cw.frame = cw.frame[:0]
}

// Clear queues a full terminal clear and makes the next RenderCanvas
// repaint every cell.
func (cw *ChunkWriter) Clear() {
	cw.frame = append(cw.frame, seqClear...)
	cw.canvas.ForceRedraw()
}

// RenderCanvas appends the changed canvas cells and, when the terminal is
// larger than the canvas, its border.
func (cw *ChunkWriter) RenderCanvas() {
	cw.canvas.Render(cw)
	cw.canvas.RenderBorder(cw)
}

// WriteAt places s at the 1-based canvas cell (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.frame = append(cw.frame, "\033["...)
	cw.frame = strconv.AppendInt(cw.frame, int64(row+cw.canvas.OffsetRow()), 10)
	cw.frame = append(cw.frame, ';')
	cw.frame = strconv.AppendInt(cw.frame, int64(col+cw.canvas.OffsetCol()), 10)
	cw.frame = append(cw.frame, 'H')
	cw.frame = append(cw.frame, s...)
}

// Write appends raw bytes to the frame.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.frame = append(cw.frame, p...)
	return len(p), nil
}

var _ io.Writer = (*ChunkWriter)(nil)

// Pending reports the size of the unflushed frame in bytes.
func (cw *ChunkWriter) Pending() int {
	return len(cw.frame)
}

// Flush sends the frame and starts the next one. On a write error the
// rest of the frame is discarded.
func (cw *ChunkWriter) Flush() error {
	data := cw.frame
	cw.frame = cw.frame[:0]
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.out.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc measures the local terminal on stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// EnterGameScreen hides the cursor, turns on mouse reporting and clears
// the terminal. LeaveGameScreen undoes the first two.
func EnterGameScreen(w io.Writer) {
	io.WriteString(w, seqHideCursor+seqMouseOn+seqClear)
}

// LeaveGameScreen restores the cursor and stops mouse reporting.
func LeaveGameScreen(w io.Writer) {
	io.WriteString(w, seqMouseOff+seqShowCursor)
}

// ClearScreen clears the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	io.WriteString(w, seqClear)
}
