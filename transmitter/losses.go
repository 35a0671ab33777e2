package transmitter

// LossCounters counts packets that were not acknowledged by the receiver
type LossCounters struct {
	// Total is the number of packets lost since start. It never decreases except through Reset
	Total uint32
	// Consecutive is the number of packets lost since the last acknowledged one
	Consecutive uint32
}

// Lost records an unacknowledged packet
func (l *LossCounters) Lost() {
	l.Total++
	l.Consecutive++
}

// Delivered records an acknowledged packet, ending the current loss streak
func (l *LossCounters) Delivered() {
	l.Consecutive = 0
}

// Reset clears both counters. It backs the console's reset command
func (l *LossCounters) Reset() {
	*l = LossCounters{}
}
