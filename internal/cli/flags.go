package cli

import "xtp/internal/config"

// Flags holds command-line flags
type Flags struct {
	Workers      int
	SuitePath    string
	NameFilter   string
	Trait        string
	FailFast     bool
	Serialize    bool
	History      bool
	HistoryLimit int
	ShowTraits   bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Workers:      f.Workers,
		SuitePath:    f.SuitePath,
		NameFilter:   f.NameFilter,
		Trait:        f.Trait,
		FailFast:     f.FailFast,
		Serialize:    f.Serialize,
		History:      f.History,
		HistoryLimit: f.HistoryLimit,
		ShowTraits:   f.ShowTraits,
	}
}
