package game

// Settings are the optional rule extensions negotiated at setup.
type Settings struct {
	Futures  bool `json:"futures,omitempty"`
	Options  bool `json:"options,omitempty"`
	Splurges bool `json:"splurges,omitempty"`
}

// OptionQuota is the number of options each punter may buy: one per mine.
func OptionQuota(m *Map) int {
	return len(m.Mines)
}

// Setup is what a punter learns before the first move.
type Setup struct {
	Punter   int
	Punters  int
	Map      *Map
	Settings Settings
}
