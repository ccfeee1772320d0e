// Package catalog normalizes raw practice rows into the curated catalog the
// engines consume: code normalization, override resolution and cadence
// classification.
package catalog

import (
	"strings"

	"yaumiyah/internal/core"
)

// NormalizeCode reduces a raw practice code to its canonical matching form:
// lowercase with every non-alphanumeric rune removed. Persisted codes vary
// in spelling ("Shalat Jama'ah", "sholat_jamaah"), so every code comparison
// in catalog and aggregation goes through this.
func NormalizeCode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// override carries the curated fields merged onto a matching catalog row.
// Every entry sets the full presentation field set, so applying it is total
// replacement rather than field-by-field patching; Cadence is assigned only
// when the entry declares one.
type override struct {
	DisplayName string
	Note        string
	TargetMin   int
	Input       core.InputKind
	Cadence     core.Cadence
}

func (o override) apply(p *core.Practice) {
	p.DisplayName = o.DisplayName
	p.Note = o.Note
	p.TargetMin = o.TargetMin
	p.Input = o.Input
	if o.Cadence != "" {
		p.Cadence = o.Cadence
	}
}

// overrides is keyed by normalized alias. Several raw spellings map to one
// canonical practice (transliteration drift between "shalat" and "sholat",
// "matsurat" and "matsurot").
var overrides = map[string]override{
	"jamaah":        {DisplayName: "Shalat Jamaah", Note: "Min 5 kali", TargetMin: 5, Input: core.InputQuantity},
	"shalatjamaah":  {DisplayName: "Shalat Jamaah", Note: "Min 5 kali", TargetMin: 5, Input: core.InputQuantity},
	"sholatjamaah":  {DisplayName: "Shalat Jamaah", Note: "Min 5 kali", TargetMin: 5, Input: core.InputQuantity},

	"dzikirbadashalat": {DisplayName: "Dzikir Ba'da Shalat", Note: "Min 5 kali", TargetMin: 5, Input: core.InputQuantity},
	"dzikirbadasalat":  {DisplayName: "Dzikir Ba'da Shalat", Note: "Min 5 kali", TargetMin: 5, Input: core.InputQuantity},

	"rawatib":       {DisplayName: "Shalat Rawatib", Note: "Min 6 rakaat", TargetMin: 6, Input: core.InputQuantity},
	"shalatrawatib": {DisplayName: "Shalat Rawatib", Note: "Min 6 rakaat", TargetMin: 6, Input: core.InputQuantity},
	"sholatrawatib": {DisplayName: "Shalat Rawatib", Note: "Min 6 rakaat", TargetMin: 6, Input: core.InputQuantity},

	"tahajjud": {DisplayName: "Tahajjud", Note: "Min 2 rakaat", TargetMin: 2, Input: core.InputQuantity},
	"dhuha":    {DisplayName: "Dhuha", Note: "Min 2 rakaat", TargetMin: 2, Input: core.InputQuantity},
	"tilawah":  {DisplayName: "Tilawah", Note: "Min 1 juz", TargetMin: 1, Input: core.InputQuantity},

	"matsurat": {DisplayName: "Ma'tsurat", Note: "Min 1x", TargetMin: 1, Input: core.InputQuantity},
	"matsurot": {DisplayName: "Ma'tsurat", Note: "Min 1x", TargetMin: 1, Input: core.InputQuantity},

	"puasa":    {DisplayName: "Puasa", Note: "Min 1 kali/pekan", TargetMin: 1, Input: core.InputBool, Cadence: core.CadenceWeekly},
	"olahraga": {DisplayName: "Olahraga", Note: "Min 1 kali/pekan", TargetMin: 1, Input: core.InputBool, Cadence: core.CadenceWeekly},
}

// ResolveInPlace applies curated overrides to the raw catalog rows. The name
// is deliberate: the input slice's elements are mutated and the same slice is
// returned so callers can keep a single reference; callers needing the
// unmodified rows must copy first. Applying it twice yields the same result
// as once.
func ResolveInPlace(items []core.Practice) []core.Practice {
	for i := range items {
		if o, ok := overrides[NormalizeCode(items[i].Code)]; ok {
			o.apply(&items[i])
			continue
		}
		if items[i].Input == core.InputBool && items[i].Note == "" {
			items[i].Note = "Ya/Tidak"
		}
	}
	return items
}

// holidayCategory tags catalog rows that only apply on the weekly holy day.
const holidayCategory = "holiday"

// ApplicableOn filters the catalog to the practices applicable on the given
// day: rows in the holiday category are included only on Fridays. The
// engines assume they already received the correct day's applicable set, so
// day views must pass their catalog through this first.
func ApplicableOn(items []core.Practice, date core.DateKey) []core.Practice {
	if date.IsFriday() {
		return items
	}
	out := make([]core.Practice, 0, len(items))
	for _, p := range items {
		if p.Category != holidayCategory {
			out = append(out, p)
		}
	}
	return out
}

// Weekly-by-nature codes: practiced some days per week rather than daily.
var weeklyCodes = map[string]bool{
	"puasa":    true,
	"olahraga": true,
}

// Friday-only markers inside a normalized code.
var fridaySubstrings = []string{"jumat", "jumuah", "kahfi", "alkahfi", "shalawatjumat"}

// DetectCadence returns the practice's recurrence. An explicit curated tag
// wins; otherwise the cadence is inferred from the normalized code. The
// inference runs identically for practices absent from the override table,
// so retired or uncurated codes still classify.
func DetectCadence(p core.Practice) core.Cadence {
	if p.Cadence != "" {
		return p.Cadence
	}
	k := NormalizeCode(p.Code)
	if weeklyCodes[k] {
		return core.CadenceWeekly
	}
	for _, sub := range fridaySubstrings {
		if strings.Contains(k, sub) {
			return core.CadenceFriday
		}
	}
	return core.CadenceDaily
}
