package draw

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkRecorder keeps every write separately.
type chunkRecorder struct {
	writes []string
	err    error
}

func (r *chunkRecorder) Write(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.writes = append(r.writes, string(p))
	return len(p), nil
}

func (r *chunkRecorder) String() string {
	return strings.Join(r.writes, "")
}

func TestChunkWriter_WriteAtAppliesCanvasOffset(t *testing.T) {
	c := NewCanvas(10, 4)
	c.SetOffset(3, 2)
	var out chunkRecorder
	cw := NewChunkWriter(&out, c)

	cw.WriteAt(1, 1, "HP")
	require.NoError(t, cw.Flush())

	assert.Equal(t, "\033[3;4HHP", out.String())
	assert.Zero(t, cw.Pending())
}

func TestChunkWriter_FlushSplitsLargeFrames(t *testing.T) {
	var out chunkRecorder
	cw := NewChunkWriter(&out, NewCanvas(4, 2))
	frame := strings.Repeat("x", 2*maxChunkSize+10)
	cw.Write([]byte(frame))

	require.NoError(t, cw.Flush())

	require.Len(t, out.writes, 3)
	for _, w := range out.writes {
		assert.LessOrEqual(t, len(w), maxChunkSize)
	}
	assert.Equal(t, frame, out.String())
}

func TestChunkWriter_ClearRepaintsWholeCanvas(t *testing.T) {
	c := NewCanvas(4, 2)
	var out chunkRecorder
	cw := NewChunkWriter(&out, c)

	cw.RenderCanvas()
	require.NoError(t, cw.Flush())
	first := out.String()
	require.NotEmpty(t, first)

	out.writes = nil
	cw.RenderCanvas()
	require.NoError(t, cw.Flush())
	assert.Empty(t, out.String(), "an unchanged canvas sends nothing")

	cw.Clear()
	cw.RenderCanvas()
	require.NoError(t, cw.Flush())
	assert.Equal(t, seqClear+first, out.String())
}

func TestChunkWriter_SetCanvasDropsPendingFrame(t *testing.T) {
	var out chunkRecorder
	cw := NewChunkWriter(&out, NewCanvas(4, 2))
	cw.WriteAt(1, 1, "stale")

	bigger := NewCanvas(8, 4)
	bigger.SetOffset(1, 1)
	cw.SetCanvas(bigger)
	cw.WriteAt(1, 1, "new")
	require.NoError(t, cw.Flush())

	assert.Equal(t, "\033[2;2Hnew", out.String())
}

func TestChunkWriter_FlushErrorDiscardsFrame(t *testing.T) {
	out := chunkRecorder{err: errors.New("channel closed")}
	cw := NewChunkWriter(&out, NewCanvas(4, 2))
	cw.WriteAt(1, 1, "lost")

	assert.Error(t, cw.Flush())
	assert.Zero(t, cw.Pending())
}

func TestGameScreen_EnterAndLeave(t *testing.T) {
	var out strings.Builder
	EnterGameScreen(&out)
	assert.Equal(t, "\033[?25l\033[?1003h\033[?1006h\033[H\033[2J", out.String())

	out.Reset()
	LeaveGameScreen(&out)
	assert.Equal(t, "\033[?1006l\033[?1003l\033[?25h", out.String())
}
