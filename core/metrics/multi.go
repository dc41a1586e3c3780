package metrics

// MultiSink fans out records to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRun forwards the record to all sinks, returning the first error encountered.
func (m *MultiSink) RecordRun(rec RunRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordRun(rec); err != nil {
			return err
		}
	}
	return nil
}

// RecordAttempt forwards attempts to sinks that support them.
func (m *MultiSink) RecordAttempt(rec AttemptRecord) error {
	for _, s := range m.Sinks {
		if ar, ok := s.(AttemptRecorder); ok {
			if err := ar.RecordAttempt(rec); err != nil {
				return err
			}
		}
	}
	return nil
}
