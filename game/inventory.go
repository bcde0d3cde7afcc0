package game

// SlotState is the display state of an inventory slot.
type SlotState int

const (
	SlotStateEmpty SlotState = iota
	SlotStateNormal
	SlotStateSelected
)

func SlotStateFromData(count uint32, selected bool) SlotState {
	if count == 0 {
		return SlotStateEmpty
	}
	if selected {
		return SlotStateSelected
	}
	return SlotStateNormal
}

// Buildable describes one kind of object the player can place on the plate.
type Buildable struct {
	Name   string
	Model  string
	Frame  string
	Weight float32
}

// Slot holds a number of instances of one buildable.
type Slot struct {
	buildable string
	count     uint32
}

func NewSlot(buildable string, count uint32) Slot {
	return Slot{buildable: buildable, count: count}
}

func (s *Slot) Buildable() string {
	return s.buildable
}

func (s *Slot) Count() uint32 {
	return s.count
}

// PopItem takes one instance out of the slot, returning false if it is empty.
func (s *Slot) PopItem() (string, bool) {
	if s.count == 0 {
		return "", false
	}
	s.count--
	return s.buildable, true
}

func (s *Slot) IsEmpty() bool {
	return s.count == 0
}

// Inventory is the set of buildable slots for the current level, with at most
// one selected slot.
type Inventory struct {
	slots    []Slot
	selected int
}

func NewInventory() *Inventory {
	return &Inventory{
		selected: -1,
	}
}

// SetSlots replaces all slots and selects the first non-empty one.
func (inv *Inventory) SetSlots(slots []Slot) {
	inv.slots = slots
	inv.selected = inv.findNonEmptySlotIndex(0)
}

func (inv *Inventory) AddSlot(buildable string, count uint32) {
	inv.slots = append(inv.slots, NewSlot(buildable, count))
	if inv.selected < 0 && count > 0 {
		inv.selected = len(inv.slots) - 1
	}
}

func (inv *Inventory) Slots() []Slot {
	return inv.slots
}

func (inv *Inventory) Slot(index int) *Slot {
	if index < 0 || index >= len(inv.slots) {
		return nil
	}
	return &inv.slots[index]
}

// SelectedSlot returns the selected slot, or nil if nothing is selected.
func (inv *Inventory) SelectedSlot() *Slot {
	return inv.Slot(inv.selected)
}

func (inv *Inventory) SelectedIndex() int {
	return inv.selected
}

// SelectIndex selects the given slot if it is not empty.
func (inv *Inventory) SelectIndex(index int) bool {
	slot := inv.Slot(index)
	if slot == nil || slot.IsEmpty() {
		return false
	}
	inv.selected = index
	return true
}

// SelectNext moves the selection forward to the next non-empty slot, wrapping
// around. Returns false if no slot can be selected.
func (inv *Inventory) SelectNext() bool {
	return inv.selectOffset(1)
}

// SelectPrev moves the selection backward to the previous non-empty slot,
// wrapping around. Returns false if no slot can be selected.
func (inv *Inventory) SelectPrev() bool {
	return inv.selectOffset(-1)
}

func (inv *Inventory) selectOffset(offset int) bool {
	n := len(inv.slots)
	if n == 0 {
		return false
	}
	start := inv.selected
	if start < 0 {
		start = 0
	}
	for i := 1; i <= n; i++ {
		index := ((start+i*offset)%n + n) % n
		if !inv.slots[index].IsEmpty() {
			inv.selected = index
			return true
		}
	}
	inv.selected = -1
	return false
}

// IsEmpty reports whether every slot has been consumed.
func (inv *Inventory) IsEmpty() bool {
	return inv.findNonEmptySlotIndex(0) < 0
}

func (inv *Inventory) findNonEmptySlotIndex(from int) int {
	for i := from; i < len(inv.slots); i++ {
		if !inv.slots[i].IsEmpty() {
			return i
		}
	}
	return -1
}
