package nwapi

import "strings"

// Status is the outcome reported to a link-up callback.
type Status int

const (
	StatusSuccess Status = iota
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// SearchStatus tags each report delivered to a search callback.
type SearchStatus int

const (
	SearchContinue SearchStatus = iota
	SearchComplete
	SearchError
)

func (s SearchStatus) String() string {
	switch s {
	case SearchContinue:
		return "continue"
	case SearchComplete:
		return "complete"
	case SearchError:
		return "error"
	default:
		return "unknown"
	}
}

// Attr is the attribute bitset carried by a candidate report. The low 24
// bits are reserved for technology specific use.
type Attr uint32

const (
	AttrIAPName     Attr = 0x01000000
	AttrAutoconnect Attr = 0x02000000

	AttrLocalMask Attr = 0x00FFFFFF
)

func (a Attr) Has(flag Attr) bool { return a&flag == flag }

func (a Attr) String() string {
	var parts []string
	if a.Has(AttrIAPName) {
		parts = append(parts, "iapname")
	}
	if a.Has(AttrAutoconnect) {
		parts = append(parts, "autoconnect")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// SignalLevel is a coarse 0..10 signal strength.
type SignalLevel int

const (
	LevelNone SignalLevel = 0
	Level10   SignalLevel = 10
)

// Report is one unit of search output. A report with Status SearchComplete
// terminates a search and carries no candidate data.
type Report struct {
	Status SearchStatus
	Name   string
	Type   string
	Attrs  Attr
	ID     string
	Level  SignalLevel
	Extra  []byte
}

// CompleteReport returns the terminal report of a search.
func CompleteReport() Report {
	return Report{Status: SearchComplete}
}
