package domain

// momentumCapacity is how many recent scoring events the window keeps.
const momentumCapacity = 5

// momentumMinSample is the minimum number of retained events before a
// bias is reported at all.
const momentumMinSample = 3

// Momentum is a fixed-capacity record of which team produced the most
// recent scoring events. Once full, the oldest entry is evicted.
type Momentum struct {
	scorers [momentumCapacity]string
	head    int
	count   int
}

// Push appends a scorer ("home" or "away"), evicting the oldest entry
// when the window is full.
func (m *Momentum) Push(homeAway string) {
	m.scorers[m.head] = homeAway
	m.head = (m.head + 1) % momentumCapacity
	if m.count < momentumCapacity {
		m.count++
	}
}

// Bias reports one-sided momentum: +1 when every retained event was
// scored by the home team, -1 when every one was scored by the away
// team, 0 otherwise. The check covers the whole retained window, not
// just the newest entries, and stays neutral below three events.
func (m *Momentum) Bias() int {
	if m.count < momentumMinSample {
		return 0
	}
	home, away := 0, 0
	for i := 0; i < m.count; i++ {
		idx := (m.head - 1 - i + momentumCapacity) % momentumCapacity
		if m.scorers[idx] == "home" {
			home++
		} else if m.scorers[idx] == "away" {
			away++
		}
	}
	switch {
	case home == m.count:
		return 1
	case away == m.count:
		return -1
	default:
		return 0
	}
}

// Len returns how many scoring events are currently retained.
func (m *Momentum) Len() int {
	return m.count
}

// Reset empties the window.
func (m *Momentum) Reset() {
	m.head = 0
	m.count = 0
}
