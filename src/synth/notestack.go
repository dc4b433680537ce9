package synth

// ----- Note Stack ----- //

const noteStackSize = 16

// noteStack holds the currently held notes, most recent last. Pushing a
// note that is already held moves it to the end. Notes beyond the capacity
// are silently dropped. No allocation after construction.
type noteStack struct {
	notes [noteStackSize]int
	size  int
}

func (s *noteStack) push(note int) {
	s.remove(note)
	if s.size < noteStackSize {
		s.notes[s.size] = note
		s.size++
	}
}

func (s *noteStack) remove(note int) {
	for i := 0; i < s.size; i++ {
		if s.notes[i] == note {
			for j := i; j < s.size-1; j++ {
				s.notes[j] = s.notes[j+1]
			}
			s.size--
			return
		}
	}
}

func (s *noteStack) top() int {
	if s.size == 0 {
		return -1
	}
	return s.notes[s.size-1]
}

func (s *noteStack) empty() bool {
	return s.size == 0
}
