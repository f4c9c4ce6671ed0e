package model

import (
	"sort"
	"time"
)

// Metal is a priced precious metal.
type Metal string

const (
	MetalGold   Metal = "Gold"
	MetalSilver Metal = "Silver"
)

// Metals lists the known metals in display order.
var Metals = []Metal{MetalGold, MetalSilver}

// Rank returns the display position of the metal, unknown metals go last.
func (m Metal) Rank() int {
	for i, known := range Metals {
		if known == m {
			return i
		}
	}
	return len(Metals)
}

// Direction of a 24h price movement.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// CommodityRecord describes one priced metal for a single fetch.
type CommodityRecord struct {
	Metal    Metal   `json:"metal"`
	Price    float64 `json:"price"`    // ex: 2350.75
	Currency string  `json:"currency"` // ex: USD
	Unit     string  `json:"unit"`     // ex: per troy ounce
	Change   float64 `json:"change"`   // ex: -0.42, percent
}

// Direction returns the presentation direction of the change.
func (r CommodityRecord) Direction() Direction {
	switch {
	case r.Change > 0:
		return DirectionUp
	case r.Change < 0:
		return DirectionDown
	default:
		return DirectionFlat
	}
}

// SortRecords orders records Gold first, then Silver.
func SortRecords(records []CommodityRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Metal.Rank() < records[j].Metal.Rank()
	})
}

// ErrorKind classifies the last failed fetch.
type ErrorKind string

const (
	ErrorKindNone    ErrorKind = ""
	ErrorKindQuota   ErrorKind = "quota"
	ErrorKindGeneric ErrorKind = "generic"
)

// Default English messages for each error kind.
const (
	QuotaExceededMessage = "API quota exceeded. Please wait a moment before trying again."
	FetchFailedMessage   = "Failed to fetch latest precious metals prices. Please try again later."
)

// Message returns the default message for the kind.
func (k ErrorKind) Message() string {
	switch k {
	case ErrorKindNone:
		return ""
	case ErrorKindQuota:
		return QuotaExceededMessage
	default:
		return FetchFailedMessage
	}
}

// PollerState is a snapshot of the currently known prices.
type PollerState struct {
	Records     []CommodityRecord `json:"records"`
	IsLoading   bool              `json:"is_loading"`
	Error       string            `json:"error,omitempty"`
	ErrorKind   ErrorKind         `json:"error_kind,omitempty"`
	LastUpdated time.Time         `json:"last_updated"`
	Locale      string            `json:"locale,omitempty"`
	Attempts    int64             `json:"attempts"`
	Failures    int64             `json:"failures"`
}

// HasRecords reports whether any successful fetch has happened.
func (s PollerState) HasRecords() bool {
	return len(s.Records) > 0
}

// ShowSpinner is true only while the very first fetch is in flight.
func (s PollerState) ShowSpinner() bool {
	return s.IsLoading && !s.HasRecords()
}

// ShowError is true when the error is the only thing there is to show.
// Stale records always win over an error.
func (s PollerState) ShowError() bool {
	return s.Error != "" && !s.HasRecords()
}

// IsLive reports a successful fetch with no error since.
func (s PollerState) IsLive() bool {
	return !s.LastUpdated.IsZero() && s.Error == ""
}

// Clone returns a copy that shares no memory with s.
func (s PollerState) Clone() PollerState {
	if s.Records != nil {
		records := make([]CommodityRecord, len(s.Records))
		copy(records, s.Records)
		s.Records = records
	}
	return s
}
