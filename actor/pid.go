package actor

// PID addresses a running actor inside one Engine. PIDs are opaque and
// comparable; the zero value is never valid.
type PID struct {
	ID string
}

func (p *PID) String() string {
	if p == nil {
		return "<nil-pid>"
	}
	return p.ID
}
