package game

import "time"

// Slot is a UI message position. Each slot shows at most one message.
type Slot int

const (
	SlotHit   Slot = iota // "Ship hit!", "Out of Range"
	SlotLoss              // "-10 HP"
	SlotGain              // "+10 Points"
	SlotLevel             // "Level 2", intro text
	slotCount
)

type message struct {
	text  string
	until time.Time
}

// Notifier holds one message and deadline per slot. Showing a message
// replaces whatever the slot held, deadline included, so an older
// expiry can never hide a newer message.
type Notifier struct {
	slots [slotCount]message
}

// Show displays text in slot until now+d.
func (n *Notifier) Show(slot Slot, text string, now time.Time, d time.Duration) {
	n.slots[slot] = message{text: text, until: now.Add(d)}
}

// Active returns the slot's text if it has not expired.
func (n *Notifier) Active(slot Slot, now time.Time) (string, bool) {
	m := n.slots[slot]
	if m.text == "" || !now.Before(m.until) {
		return "", false
	}
	return m.text, true
}

// Clear empties every slot.
func (n *Notifier) Clear() {
	n.slots = [slotCount]message{}
}
