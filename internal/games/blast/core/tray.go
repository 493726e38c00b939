package core

import (
	"fmt"
	"math/rand"
	"strings"
)

// TrayEntry is one offered block with its spawn-time rotation.
type TrayEntry struct {
	Shape    Shape
	Rotation Rotation
}

// Empty returns true if the slot holds no shape.
func (e TrayEntry) Empty() bool {
	return e.Shape.IsZero()
}

// String returns e.g. "T4@90°" or "-" for an empty slot.
func (e TrayEntry) String() string {
	if e.Empty() {
		return "-"
	}
	return fmt.Sprintf("%s@%s", e.Shape.ID(), e.Rotation)
}

// Picker chooses the next shape and rotation for a tray slot.
type Picker interface {
	Pick() TrayEntry
}

// LargeShapeCells is the cell count at which a shape counts as large for
// difficulty weighting.
const LargeShapeCells = 5

// WeightedPicker picks shapes at random in proportion to their weights.
type WeightedPicker struct {
	rng     *rand.Rand
	shapes  []Shape
	weights []int

	// RandomRotation assigns one of four rotations at spawn time.
	RandomRotation bool

	// Level returns the current difficulty in [0,1]; nil means 0.
	Level func() float64

	// LargeBoost scales weights of large shapes by 1 + level*LargeBoost.
	LargeBoost float64
}

// NewWeightedPicker creates a picker over shapes. Missing or non-positive
// weights count as 1. It panics if shapes is empty.
func NewWeightedPicker(rng *rand.Rand, shapes []Shape, weights []int) *WeightedPicker {
	if len(shapes) == 0 {
		panic("core: picker needs at least one shape")
	}
	w := make([]int, len(shapes))
	for i := range shapes {
		w[i] = 1
		if i < len(weights) && weights[i] > 0 {
			w[i] = weights[i]
		}
	}
	return &WeightedPicker{
		rng:     rng,
		shapes:  append([]Shape(nil), shapes...),
		weights: w,
	}
}

// Pick implements Picker.
func (p *WeightedPicker) Pick() TrayEntry {
	level := 0.0
	if p.Level != nil {
		level = p.Level()
	}

	scaled := make([]float64, len(p.shapes))
	total := 0.0
	for i, s := range p.shapes {
		w := float64(p.weights[i])
		if s.Len() >= LargeShapeCells {
			w *= 1 + level*p.LargeBoost
		}
		scaled[i] = w
		total += w
	}

	roll := p.rng.Float64() * total
	chosen := p.shapes[len(p.shapes)-1]
	for i, w := range scaled {
		if roll < w {
			chosen = p.shapes[i]
			break
		}
		roll -= w
	}

	rot := Rot0
	if p.RandomRotation {
		rot = NormalizeRotation(p.rng.Intn(4))
	}
	return TrayEntry{Shape: chosen, Rotation: rot}
}

// SequencePicker hands out a fixed list of entries in order, cycling.
type SequencePicker struct {
	entries []TrayEntry
	next    int
}

// NewSequencePicker creates a deterministic picker.
func NewSequencePicker(entries ...TrayEntry) *SequencePicker {
	return &SequencePicker{entries: entries}
}

// Pick implements Picker. An empty sequence yields empty entries.
func (p *SequencePicker) Pick() TrayEntry {
	if len(p.entries) == 0 {
		return TrayEntry{}
	}
	e := p.entries[p.next%len(p.entries)]
	p.next++
	return e
}

// RefillMode selects when consumed tray slots are replaced.
type RefillMode uint8

const (
	// RefillSlot replaces a slot as soon as it is consumed.
	RefillSlot RefillMode = iota
	// RefillBatch replaces all slots once every slot has been consumed.
	RefillBatch
)

// String returns "slot" or "batch".
func (m RefillMode) String() string {
	if m == RefillBatch {
		return "batch"
	}
	return "slot"
}

// ParseRefillMode converts a config string to a RefillMode.
func ParseRefillMode(s string) (RefillMode, bool) {
	switch strings.ToLower(s) {
	case "", "slot":
		return RefillSlot, true
	case "batch":
		return RefillBatch, true
	default:
		return RefillSlot, false
	}
}

// Tray is the fixed set of blocks currently offered to the player.
type Tray struct {
	slots  []TrayEntry
	picker Picker
	mode   RefillMode
}

// NewTray creates an empty tray with n slots. Call Fill to populate it.
func NewTray(n int, picker Picker, mode RefillMode) *Tray {
	if n < 1 {
		n = 1
	}
	return &Tray{
		slots:  make([]TrayEntry, n),
		picker: picker,
		mode:   mode,
	}
}

// Len returns the number of slots.
func (t *Tray) Len() int { return len(t.slots) }

// Fill picks a fresh entry for every slot.
func (t *Tray) Fill() {
	for i := range t.slots {
		t.slots[i] = t.picker.Pick()
	}
}

// Clear empties every slot.
func (t *Tray) Clear() {
	for i := range t.slots {
		t.slots[i] = TrayEntry{}
	}
}

// Entry returns the entry in slot i, or an empty entry if i is out of range.
func (t *Tray) Entry(i int) TrayEntry {
	if i < 0 || i >= len(t.slots) {
		return TrayEntry{}
	}
	return t.slots[i]
}

// Entries returns a copy of all slots.
func (t *Tray) Entries() []TrayEntry {
	out := make([]TrayEntry, len(t.slots))
	copy(out, t.slots)
	return out
}

// Remaining returns the number of non-empty slots.
func (t *Tray) Remaining() int {
	n := 0
	for _, e := range t.slots {
		if !e.Empty() {
			n++
		}
	}
	return n
}

// Peek validates slot i and returns its entry without consuming it.
func (t *Tray) Peek(i int) (TrayEntry, error) {
	if i < 0 || i >= len(t.slots) {
		return TrayEntry{}, fmt.Errorf("slot %d of %d: %w", i, len(t.slots), ErrSlotOutOfRange)
	}
	if t.slots[i].Empty() {
		return TrayEntry{}, fmt.Errorf("slot %d: %w", i, ErrEmptySlot)
	}
	return t.slots[i], nil
}

// Take consumes slot i and returns its entry.
func (t *Tray) Take(i int) (TrayEntry, error) {
	e, err := t.Peek(i)
	if err != nil {
		return TrayEntry{}, err
	}
	t.slots[i] = TrayEntry{}
	return e, nil
}

// Refill replaces consumed slots according to the refill mode and returns
// the indices that received a new entry.
func (t *Tray) Refill() []int {
	if t.mode == RefillBatch && t.Remaining() > 0 {
		return nil
	}
	var filled []int
	for i := range t.slots {
		if t.slots[i].Empty() {
			t.slots[i] = t.picker.Pick()
			filled = append(filled, i)
		}
	}
	return filled
}
