package game

import (
	"github.com/djeedai/libracity/engine/core"
)

// Event to load a level. Application codes start beyond the engine range.
const EVENT_CODE_LOAD_LEVEL core.SystemEventCode = 0x101

// LoadLevelKind selects how the target level of a load request is named.
/* Context usage:
 * u32 kind  = data.Data.U32[0];
 * i64 index = data.Data.I64[0]; // LoadLevelByIndex
 * c   name  = data.Data.C[0];   // LoadLevelByName
 */
type LoadLevelKind uint32

const (
	LoadLevelNext LoadLevelKind = iota
	LoadLevelByName
	LoadLevelByIndex
)

// LevelDesc describes one level: its display name and the buildable counts
// the player starts with.
type LevelDesc struct {
	Name      string
	Inventory map[string]uint32
}

// Level is the current level being played.
type Level struct {
	index int
	name  string
}

func (l *Level) Index() int {
	return l.index
}

func (l *Level) Name() string {
	return l.name
}

// LevelManager owns the level list and reacts to load-level events, fired from
// anywhere, at the very end of the frame. Loading a level repopulates the
// inventory from the level description.
type LevelManager struct {
	levels     []LevelDesc
	buildables map[string]Buildable
	current    Level
	inventory  *Inventory
	// Called when a Next request walks past the last level.
	OnTheEnd func()
	// Called after a level has been loaded.
	OnLevelLoaded func(level *Level)
}

func NewLevelManager(levels []LevelDesc, buildables map[string]Buildable, inventory *Inventory) *LevelManager {
	return &LevelManager{
		levels:     levels,
		buildables: buildables,
		inventory:  inventory,
		current:    Level{index: -1},
	}
}

func (lm *LevelManager) Current() *Level {
	return &lm.current
}

func (lm *LevelManager) Levels() []LevelDesc {
	return lm.levels
}

// OnEvent handles EVENT_CODE_LOAD_LEVEL. Registered with the core event system.
func (lm *LevelManager) OnEvent(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	if code != EVENT_CODE_LOAD_LEVEL {
		return false
	}
	switch LoadLevelKind(data.Data.U32[0]) {
	case LoadLevelNext:
		core.LogInfo("Load level: Next")
		next := lm.current.index + 1
		if next >= len(lm.levels) {
			if lm.OnTheEnd != nil {
				lm.OnTheEnd()
			}
			return true
		}
		lm.load(next)
	case LoadLevelByName:
		name := data.Data.C[0]
		core.LogInfo("Load level: %s", name)
		index := lm.findByName(name)
		if index < 0 {
			core.LogError("cannot find level '%s'", name)
			return true
		}
		lm.load(index)
	case LoadLevelByIndex:
		index := int(data.Data.I64[0])
		core.LogInfo("Load level: #%d", index)
		if index < 0 || index >= len(lm.levels) {
			core.LogError("level index #%d out of range (%d levels)", index, len(lm.levels))
			return true
		}
		lm.load(index)
	}
	return true
}

func (lm *LevelManager) load(index int) {
	desc := &lm.levels[index]
	lm.current = Level{index: index, name: desc.Name}

	// Repopulate the inventory for this level.
	slots := make([]Slot, 0, len(desc.Inventory))
	for name, count := range desc.Inventory {
		if _, ok := lm.buildables[name]; !ok {
			core.LogWarn("level '%s' references unknown buildable '%s'", desc.Name, name)
			continue
		}
		slots = append(slots, NewSlot(name, count))
	}
	lm.inventory.SetSlots(slots)

	core.LogInfo("=> Level #%d '%s' loaded (%d slots)", index, desc.Name, len(slots))
	if lm.OnLevelLoaded != nil {
		lm.OnLevelLoaded(&lm.current)
	}
}

func (lm *LevelManager) findByName(name string) int {
	for i := range lm.levels {
		if lm.levels[i].Name == name {
			return i
		}
	}
	return -1
}

// RequestNextLevel fires the event asking for the level after the current one.
func RequestNextLevel(sender interface{}) {
	data := core.EventContext{}
	data.Data.U32[0] = uint32(LoadLevelNext)
	core.EventFire(EVENT_CODE_LOAD_LEVEL, sender, data)
}

// RequestLevelByName fires the event asking for a level by display name.
func RequestLevelByName(sender interface{}, name string) {
	data := core.EventContext{}
	data.Data.U32[0] = uint32(LoadLevelByName)
	data.Data.C[0] = name
	core.EventFire(EVENT_CODE_LOAD_LEVEL, sender, data)
}

// RequestLevelByIndex fires the event asking for a level by index.
func RequestLevelByIndex(sender interface{}, index int) {
	data := core.EventContext{}
	data.Data.U32[0] = uint32(LoadLevelByIndex)
	data.Data.I64[0] = int64(index)
	core.EventFire(EVENT_CODE_LOAD_LEVEL, sender, data)
}
