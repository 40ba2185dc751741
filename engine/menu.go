package engine

// MenuItem is one named node in the minimal game-menu navigation model
// the Facade exposes to configuration and modifier code. Full menu-path calculation (offsets, tabs,
// xgroups, confirmation dialogs) is out of scope; this tracks just a
// named item's current state and the state it had before the last
// mutation, which is enough for a menu-aware modifier to change a
// setting and later put it back.
type MenuItem struct {
	Name  string
	State int
	prior int
}

// RegisterMenuItem declares name with an initial state, as the game
// loader does while reading a game description's [[menu]] section.
func (a *EngineActor) RegisterMenuItem(name string, initial int) *MenuItem {
	item := &MenuItem{Name: name, State: initial, prior: initial}
	a.menu[name] = item
	return item
}

// GetMenuItem looks up a previously registered menu item by name.
func (a *EngineActor) GetMenuItem(name string) (*MenuItem, bool) {
	item, ok := a.menu[name]
	return item, ok
}

// SetMenuState mutates item's navigation state, remembering the prior
// value so RestoreMenuState can undo it.
func (a *EngineActor) SetMenuState(item *MenuItem, newVal int) {
	if item == nil {
		return
	}
	item.prior = item.State
	item.State = newVal
}

// RestoreMenuState puts item back to the state it had before the most
// recent SetMenuState call.
func (a *EngineActor) RestoreMenuState(item *MenuItem) {
	if item == nil {
		return
	}
	item.State = item.prior
}
