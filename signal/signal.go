// Package signal implements the Signal Table: the static,
// read-only inventory of controller inputs, indexed by name, by signal
// enum, and by wire (type, id) pair.
package signal

// Name is the closed enumeration of controller input identities,
// ordered to match the DualShock report layout.
type Name int

const (
	X Name = iota
	CIRCLE
	TRIANGLE
	SQUARE
	L1
	R1
	L2
	R2
	SHARE
	OPTIONS
	PS
	L3
	R3
	TOUCHPAD
	TOUCHPADActive
	TOUCHPADActive2
	LX
	LY
	RX
	RY
	DX
	DY
	ACCX
	ACCY
	ACCZ
	GYRX
	GYRY
	GYRZ
	TOUCHPADX
	TOUCHPADY
	TOUCHPADX2
	TOUCHPADY2
	NOTHING
	NONE
)

// Class is the extended type used to decide cross-class translation
// rules.
type Class int

const (
	Button Class = iota
	ThreeState
	Axis
	Hybrid
	Accelerometer
	Gyroscope
	Touchpad
	Dummy
)

// WireType is the low-level report kind a (type, id) pair belongs to.
type WireType uint8

const (
	TypeButton WireType = 0
	TypeAxis   WireType = 1
)

// JoystickMax is the saturating bound for any Axis-class value.
// JoystickMin is its symmetric counterpart. Clipping is to ±32767
// rather than the full int16 range, so inverting twice round-trips
// cleanly.
const (
	JoystickMax int32 = 32767
	JoystickMin int32 = -32767
)

// WireType returns the low-level report kind for this class: Button and
// Hybrid signals arrive as a button slot, everything else as an axis
// slot (a ThreeState D-pad axis included).
func (c Class) WireType() WireType {
	switch c {
	case Button, Hybrid:
		return TypeButton
	default:
		return TypeAxis
	}
}

// Min and Max give the valid value range for one class. axisFace
// selects which half of a Hybrid input is being asked about.
func (c Class) Min(axisFace bool) int32 {
	switch c {
	case Button, Dummy:
		return 0
	case ThreeState:
		return -1
	case Hybrid:
		if axisFace {
			return JoystickMin
		}
		return 0
	case Axis:
		return JoystickMin
	default: // Accelerometer, Gyroscope, Touchpad: full signed 16-bit range
		return -32768
	}
}

func (c Class) Max(axisFace bool) int32 {
	switch c {
	case Button, ThreeState:
		return 1
	case Hybrid:
		if axisFace {
			return JoystickMax
		}
		return 1
	case Axis:
		return JoystickMax
	case Dummy:
		return 0
	default:
		return 32767
	}
}

// JoystickLimit saturates n to [JoystickMin, JoystickMax].
func JoystickLimit(n int32) int16 {
	if n >= JoystickMax {
		return int16(JoystickMax)
	}
	if n <= JoystickMin {
		return int16(JoystickMin)
	}
	return int16(n)
}

// Input is the identity of one physical controller input.
type Input struct {
	Name         string
	Signal       Name
	Class        Class
	ButtonID     uint8
	HybridAxisID uint8 // only meaningful when Class == Hybrid
}

// Index is the primary (type, id) slot this input occupies on the wire.
func (in *Input) Index() int {
	return (int(in.Class.WireType()) << 8) | int(in.ButtonID)
}

// HybridAxisIndex is the secondary slot a Hybrid input occupies; it is
// meaningless for any other class.
func (in *Input) HybridAxisIndex() int {
	return (int(TypeAxis) << 8) | int(in.HybridAxisID)
}

// ID returns the id appropriate to wireType; for non-Hybrid inputs the
// wireType argument is ignored.
func (in *Input) ID(wireType WireType) uint8 {
	if in.Class == Hybrid && wireType == TypeAxis {
		return in.HybridAxisID
	}
	return in.ButtonID
}
