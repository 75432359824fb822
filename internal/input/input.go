// Package input turns raw terminal bytes into per-frame key and pointer state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// It spans the gap between terminal auto-repeat events.
const keyHoldDuration = 60 * time.Millisecond

// maxMouseDigits bounds each numeric field of an SGR mouse report. Longer
// fields are dropped, which also caps the bytes held over between frames.
const maxMouseDigits = 5

// Input represents the current frame's input state.
type Input struct {
	Quit   bool
	Left   bool
	Right  bool
	Up     bool
	Down   bool
	Space  bool
	Enter  bool
	Number int
	// Pressed holds every byte read this frame, escape sequences included.
	Pressed []byte
	// Typed holds the plain key bytes of this frame (escape sequences removed).
	Typed []byte
	// Pointer is the last known mouse position; Moved is set when it changed this frame.
	Pointer Pointer
	Moved   bool
	// Closed is set once the underlying reader reached EOF.
	Closed bool
}

// Pointer is a 1-based terminal cell reported by SGR mouse tracking.
type Pointer struct {
	Col, Row int
	Valid    bool
}

// Tapped reports whether any of the given keys was typed this frame.
func (in Input) Tapped(keys ...byte) bool {
	for _, b := range in.Typed {
		for _, k := range keys {
			if b == k {
				return true
			}
		}
	}
	return false
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit      time.Time
	left      time.Time
	right     time.Time
	up        time.Time
	down      time.Time
	space     time.Time
	enter     time.Time
	number    time.Time
	numberVal int
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	pointer Pointer
	pending []byte
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:    make(chan byte, 128),
		state: keyState{numberVal: -1},
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ResetKeyInput forgets held keys, so a key used to leave one screen is not
// seen as held by the next.
func ResetKeyInput(s *Stream) {
	s.state = keyState{numberVal: -1}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and SGR mouse reports, and
// accumulates all pressed keys.
// Uses key state persistence to allow detecting simultaneous key combinations.
func ReadInput(s *Stream) Input {
	return readAt(s, time.Now())
}

func readAt(s *Stream, now time.Time) Input {
	buf := s.pending
	carried := len(buf)
	s.pending = nil

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	var typed []byte
	moved := false

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+1 == len(buf) && i >= carried && !s.closed {
			// Possibly the start of a sequence split across reads. A lone ESC
			// carried over once is taken as a key next frame.
			s.pending = append(s.pending, b)
			break
		}

		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			if i+2 >= len(buf) {
				// Sequence split across reads; finish it next frame.
				s.pending = append(s.pending, buf[i:]...)
				break
			}
			switch buf[i+2] {
			case 'A': // Up arrow
				s.state.up = now
				i += 2
				continue
			case 'B': // Down arrow
				s.state.down = now
				i += 2
				continue
			case 'C': // Right arrow
				s.state.right = now
				i += 2
				continue
			case 'D': // Left arrow
				s.state.left = now
				i += 2
				continue
			case '<':
				n, p, complete := parseSGRMouse(buf[i+3:])
				if !complete {
					s.pending = append(s.pending, buf[i:]...)
					i = len(buf)
					continue
				}
				if p.Valid {
					s.pointer = p
					moved = true
				}
				i += 2 + n
				continue
			}
		}

		typed = append(typed, b)
		applyByteToState(&s.state, b, now)
	}

	// Build input from key state - keys are "pressed" if seen within hold duration
	input := Input{
		Quit:    now.Sub(s.state.quit) < keyHoldDuration,
		Left:    now.Sub(s.state.left) < keyHoldDuration,
		Right:   now.Sub(s.state.right) < keyHoldDuration,
		Up:      now.Sub(s.state.up) < keyHoldDuration,
		Down:    now.Sub(s.state.down) < keyHoldDuration,
		Space:   now.Sub(s.state.space) < keyHoldDuration,
		Enter:   now.Sub(s.state.enter) < keyHoldDuration,
		Number:  -1,
		Pressed: buf,
		Typed:   typed,
		Pointer: s.pointer,
		Moved:   moved,
		Closed:  s.closed,
	}

	// Number is only set if recently pressed
	if now.Sub(s.state.number) < keyHoldDuration {
		input.Number = s.state.numberVal
	}
	if s.closed {
		input.Quit = true
	}

	return input
}

// parseSGRMouse parses the body of "ESC [ < b ; col ; row (M|m)" starting after '<'.
// It returns the number of bytes consumed, the pointer, and whether the
// sequence was complete.
func parseSGRMouse(b []byte) (int, Pointer, bool) {
	var fields [3]int
	field, digits := 0, 0
	for i, c := range b {
		switch {
		case c >= '0' && c <= '9':
			digits++
			if digits > maxMouseDigits {
				return i + 1, Pointer{}, true
			}
			fields[field] = fields[field]*10 + int(c-'0')
		case c == ';':
			field++
			digits = 0
			if field > 2 {
				return i + 1, Pointer{}, true
			}
		case c == 'M' || c == 'm':
			if field != 2 {
				return i + 1, Pointer{}, true
			}
			return i + 1, Pointer{Col: fields[1], Row: fields[2], Valid: true}, true
		default:
			return i + 1, Pointer{}, true
		}
	}
	return 0, Pointer{}, false
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', 3: // 3 = Ctrl+C in raw mode
		state.quit = now
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'k', 'K':
		state.up = now
	case 's', 'S', 'j', 'J':
		state.down = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		state.number = now
		state.numberVal = int(b - '0')
	}
}
