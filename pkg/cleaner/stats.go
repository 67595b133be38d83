package cleaner

// Stats accumulates size metrics over a series of Clean calls.
type Stats struct {
	Calls       int   `json:"calls" yaml:"calls"`
	Emptied     int   `json:"emptied" yaml:"emptied"` // calls whose output was empty
	InputBytes  int64 `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int64 `json:"output_bytes" yaml:"output_bytes"`
}

// Record adds one Clean call to the totals.
func (s *Stats) Record(input, output string) {
	s.Calls++
	s.InputBytes += int64(len(input))
	s.OutputBytes += int64(len(output))
	if output == "" {
		s.Emptied++
	}
}

// Merge adds other's totals into s.
func (s *Stats) Merge(other Stats) {
	s.Calls += other.Calls
	s.Emptied += other.Emptied
	s.InputBytes += other.InputBytes
	s.OutputBytes += other.OutputBytes
}

// ReductionPercent returns the percentage reduction in size.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}
