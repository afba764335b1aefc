package engine

// sequence deals a fixed, repeating list of shapes.
type sequence struct {
	kinds []Kind
	i     int
}

func (s *sequence) Next() Shape {
	k := s.kinds[s.i%len(s.kinds)]
	s.i++
	return ShapeOf(k)
}

func newTestEngine(kinds ...Kind) *Engine {
	return New(DefaultConfig(), &sequence{kinds: kinds})
}
