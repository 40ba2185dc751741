// Package event defines the wire-level DeviceEvent that flows through
// the Chaos Rig pipeline, from the controller source to the console
// sink.
package event

// DeviceEvent is one controller-report slot change: "button 3 went to
// 1", "axis 0 is now -12000", etc. The zero value with Type==255,
// ID==255 is the reserved sequence-delay sentinel.
type DeviceEvent struct {
	Time  uint32
	Value int16
	Type  uint8
	ID    uint8
}

// DelayType and DelayID mark the sentinel event meaning "advance time by
// Time microseconds without touching the controller".
const (
	DelayType uint8 = 255
	DelayID   uint8 = 255
)

// Index uniquely locates one (type, id) slot on the wire.
func (e DeviceEvent) Index() int {
	return (int(e.Type) << 8) | int(e.ID)
}

// IsDelay reports whether this event is the sequence delay sentinel.
func (e DeviceEvent) IsDelay() bool {
	return e.Value == 0 && e.Type == DelayType && e.ID == DelayID
}

// Delay builds a sequence delay sentinel lasting micros microseconds.
func Delay(micros uint32) DeviceEvent {
	return DeviceEvent{Time: micros, Type: DelayType, ID: DelayID}
}

func (e DeviceEvent) Equal(other DeviceEvent) bool {
	return e.Type == other.Type && e.ID == other.ID
}
