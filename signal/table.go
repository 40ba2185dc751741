package signal

import "github.com/chaosrig/engine/event"

// table is the fixed signal inventory. Order and ids match what a real
// DualShock report produces.
var table = []Input{
	{Name: "X", Signal: X, Class: Button, ButtonID: 0},
	{Name: "CIRCLE", Signal: CIRCLE, Class: Button, ButtonID: 1},
	{Name: "TRIANGLE", Signal: TRIANGLE, Class: Button, ButtonID: 2},
	{Name: "SQUARE", Signal: SQUARE, Class: Button, ButtonID: 3},
	{Name: "L1", Signal: L1, Class: Button, ButtonID: 4},
	{Name: "R1", Signal: R1, Class: Button, ButtonID: 5},
	{Name: "L2", Signal: L2, Class: Hybrid, ButtonID: 6, HybridAxisID: 2},
	{Name: "R2", Signal: R2, Class: Hybrid, ButtonID: 7, HybridAxisID: 5},
	{Name: "SHARE", Signal: SHARE, Class: Button, ButtonID: 8},
	{Name: "OPTIONS", Signal: OPTIONS, Class: Button, ButtonID: 9},
	{Name: "PS", Signal: PS, Class: Button, ButtonID: 10},
	{Name: "L3", Signal: L3, Class: Button, ButtonID: 11},
	{Name: "R3", Signal: R3, Class: Button, ButtonID: 12},
	{Name: "TOUCHPAD", Signal: TOUCHPAD, Class: Button, ButtonID: 13},
	{Name: "TOUCHPAD_ACTIVE", Signal: TOUCHPADActive, Class: Button, ButtonID: 14},
	{Name: "TOUCHPAD_ACTIVE_2", Signal: TOUCHPADActive2, Class: Button, ButtonID: 15},

	{Name: "LX", Signal: LX, Class: Axis, ButtonID: 0},
	{Name: "LY", Signal: LY, Class: Axis, ButtonID: 1},
	{Name: "RX", Signal: RX, Class: Axis, ButtonID: 3},
	{Name: "RY", Signal: RY, Class: Axis, ButtonID: 4},
	{Name: "DX", Signal: DX, Class: ThreeState, ButtonID: 6},
	{Name: "DY", Signal: DY, Class: ThreeState, ButtonID: 7},

	{Name: "ACCX", Signal: ACCX, Class: Accelerometer, ButtonID: 8},
	{Name: "ACCY", Signal: ACCY, Class: Accelerometer, ButtonID: 9},
	{Name: "ACCZ", Signal: ACCZ, Class: Accelerometer, ButtonID: 10},
	{Name: "GYRX", Signal: GYRX, Class: Gyroscope, ButtonID: 11},
	{Name: "GYRY", Signal: GYRY, Class: Gyroscope, ButtonID: 12},
	{Name: "GYRZ", Signal: GYRZ, Class: Gyroscope, ButtonID: 13},

	{Name: "TOUCHPAD_X", Signal: TOUCHPADX, Class: Touchpad, ButtonID: 14},
	{Name: "TOUCHPAD_Y", Signal: TOUCHPADY, Class: Touchpad, ButtonID: 15},
	{Name: "TOUCHPAD_X_2", Signal: TOUCHPADX2, Class: Touchpad, ButtonID: 16},
	{Name: "TOUCHPAD_Y_2", Signal: TOUCHPADY2, Class: Touchpad, ButtonID: 17},

	{Name: "NOTHING", Signal: NOTHING, Class: Dummy, ButtonID: 0},
	{Name: "NONE", Signal: NONE, Class: Dummy, ButtonID: 0},
}

var (
	byName   = make(map[string]*Input, len(table))
	bySignal = make(map[Name]*Input, len(table))
	byIndex  = make(map[int]*Input, len(table)*2)
)

func init() {
	for i := range table {
		in := &table[i]
		byName[in.Name] = in
		bySignal[in.Signal] = in
		if in.Class == Dummy {
			// NOTHING and NONE own no wire slot; indexing them would
			// shadow LX on axis slot 0.
			continue
		}
		byIndex[in.Index()] = in
		if in.Class == Hybrid {
			byIndex[in.HybridAxisIndex()] = in
		}
	}
}

// GetByName looks up an input by its canonical string name as it
// appears in game-description TOML files.
func GetByName(name string) (*Input, bool) {
	in, ok := byName[name]
	return in, ok
}

// GetBySignal looks up an input by its Name enum value.
func GetBySignal(sig Name) (*Input, bool) {
	in, ok := bySignal[sig]
	return in, ok
}

// GetByEvent resolves the Input that owns the wire slot a DeviceEvent
// arrived on. A Hybrid input is resolvable from either of its two
// slots.
func GetByEvent(e event.DeviceEvent) (*Input, bool) {
	in, ok := byIndex[e.Index()]
	return in, ok
}

// Matches reports whether e landed on in's wire slot (either slot, for
// a Hybrid input).
func Matches(in *Input, e event.DeviceEvent) bool {
	idx := e.Index()
	return idx == in.Index() || (in.Class == Hybrid && idx == in.HybridAxisIndex())
}

// All returns every registered input, in table order.
func All() []*Input {
	out := make([]*Input, len(table))
	for i := range table {
		out[i] = &table[i]
	}
	return out
}
