package structure

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// BlindLevel is one entry of a blind schedule: either a playable level with
// blind values, or a break. Breaks carry zero blinds and no level number.
type BlindLevel struct {
	Level           int  `json:"level"`
	SmallBlind      int  `json:"smallBlind"`
	BigBlind        int  `json:"bigBlind"`
	Ante            int  `json:"ante"`
	DurationMinutes int  `json:"durationMinutes"`
	IsBreak         bool `json:"isBreak"`
}

// Structure is an ordered sequence of blind levels. It is persisted as a JSON
// document column, the same shape legacy records used.
type Structure []BlindLevel

// Day is one day of a multi-day tournament, optionally with its own structure.
type Day struct {
	Label        string    `json:"label"`
	StartTimeUTC time.Time `json:"startTimeUTC"`
	Structure    Structure `json:"structure"`
}

type Days []Day

func (s Structure) Value() (driver.Value, error) {
	if s == nil {
		s = Structure{}
	}
	return json.Marshal(s)
}

func (s *Structure) Scan(src interface{}) error {
	return scanJSON(src, s)
}

func (d Days) Value() (driver.Value, error) {
	if d == nil {
		d = Days{}
	}
	return json.Marshal(d)
}

func (d *Days) Scan(src interface{}) error {
	return scanJSON(src, d)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("cannot scan %T into JSON column", src)
	}
}
