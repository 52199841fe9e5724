package core

// Scroll is the viewer's vertical position. ReachedEnd is taken from the
// most recently painted frame.
type Scroll struct {
	Offset     int
	ReachedEnd bool
}

// Up moves one line towards the top, stopping at zero.
func (s *Scroll) Up() {
	if s.Offset > 0 {
		s.Offset--
	}
}

// Down moves one line towards the bottom unless the last line is already visible.
func (s *Scroll) Down() {
	if !s.ReachedEnd {
		s.Offset++
	}
}
