package core

import (
	"errors"
	"strings"
)

// InputKind distinguishes yes/no practices from counted ones.
type InputKind string

const (
	// InputBool marks a practice recorded as done / not done.
	InputBool InputKind = "bool"
	// InputQuantity marks a practice recorded as a non-negative count
	// (rakaat, juz, repetitions).
	InputQuantity InputKind = "number"
)

// Cadence is the required recurrence of a practice.
type Cadence string

const (
	// CadenceDaily practices are expected every day.
	CadenceDaily Cadence = "daily"
	// CadenceWeekly practices need one qualifying day per ISO week.
	CadenceWeekly Cadence = "weekly"
	// CadenceFriday practices apply only on the weekly holy day.
	CadenceFriday Cadence = "friday"
)

var (
	ErrEmptyCode     = errors.New("empty practice code")
	ErrEmptyName     = errors.New("empty practice name")
	ErrInvalidTarget = errors.New("invalid practice target")
)

// Practice is one catalog entry. Code is the stable join key between the
// catalog and daily records; persisted codes may vary in spelling, so all
// matching goes through catalog.NormalizeCode.
type Practice struct {
	ID        int64
	Code      string
	Name      string
	Icon      string
	Input     InputKind
	TargetMin int // success threshold; <=0 means the default of 1
	TargetMax int // upper clamp for quantity input; 0 means none
	Weight    int // share in weighted day progress; <=0 means 1
	Category  string
	SortOrder int
	Active    bool

	// Curated presentation fields, filled by override resolution.
	DisplayName string
	Note        string
	// Cadence is the explicit recurrence tag when curated; empty means the
	// aggregation engine infers it from the code.
	Cadence Cadence
}

// Target returns the effective success threshold (minimum 1).
func (p Practice) Target() int {
	if p.TargetMin <= 0 {
		return 1
	}
	return p.TargetMin
}

// EffectiveWeight returns the weight used in weighted day progress
// (minimum 1).
func (p Practice) EffectiveWeight() int {
	if p.Weight <= 0 {
		return 1
	}
	return p.Weight
}

// Label returns the curated display name when present, the raw name
// otherwise.
func (p Practice) Label() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Name
}

// Validate checks the fields a catalog row must carry.
func (p Practice) Validate() error {
	if strings.TrimSpace(p.Code) == "" {
		return ErrEmptyCode
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.TargetMax < 0 || p.TargetMin < 0 {
		return ErrInvalidTarget
	}
	if p.TargetMax > 0 && p.TargetMin > p.TargetMax {
		return ErrInvalidTarget
	}
	return nil
}
