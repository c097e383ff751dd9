package market

// Source yields uniform draws in [0,1). *math/rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// SequenceSource replays a fixed list of draws, cycling when exhausted.
type SequenceSource struct {
	values []float64
	next   int
	draws  int
}

// NewSequenceSource creates a SequenceSource over values.
func NewSequenceSource(values ...float64) *SequenceSource {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &SequenceSource{values: values}
}

// Float64 implements Source.
func (s *SequenceSource) Float64() float64 {
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	s.draws++
	return v
}

// Draws returns how many values have been consumed.
func (s *SequenceSource) Draws() int {
	return s.draws
}
