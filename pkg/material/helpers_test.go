package material

// fixedSampler returns the same value for every draw
type fixedSampler struct {
	value float64
}

func (f fixedSampler) Get1D() float64 {
	return f.value
}

// sequenceSampler replays values in order and then repeats the last one
type sequenceSampler struct {
	values []float64
	index  int
}

func (s *sequenceSampler) Get1D() float64 {
	v := s.values[min(s.index, len(s.values)-1)]
	s.index++
	return v
}
