package catalog

import (
	"reflect"
	"testing"

	"yaumiyah/internal/core"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "already normal", in: "tilawah", want: "tilawah"},
		{name: "uppercase", in: "Tilawah", want: "tilawah"},
		{name: "spaces and apostrophe", in: "Shalat Jama'ah", want: "shalatjamaah"},
		{name: "underscores", in: "dzikir_bada_shalat", want: "dzikirbadashalat"},
		{name: "digits kept", in: "Qiyamul-Lail 2", want: "qiyamullail2"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeCode(tt.in); got != tt.want {
				t.Errorf("NormalizeCode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveInPlace(t *testing.T) {
	items := []core.Practice{
		{Code: "Sholat Jamaah", Name: "Jamaah", Input: core.InputBool},
		{Code: "puasa", Name: "Puasa", Input: core.InputQuantity},
		{Code: "sedekah", Name: "Sedekah", Input: core.InputBool},
		{Code: "quran", Name: "Tilawah Harian", Input: core.InputQuantity, TargetMin: 1},
	}

	got := ResolveInPlace(items)

	// Same backing slice is returned.
	if &got[0] != &items[0] {
		t.Fatal("ResolveInPlace did not return the input slice")
	}

	// Alias spelling resolves to the curated entry, override wins on conflict.
	if items[0].DisplayName != "Shalat Jamaah" || items[0].TargetMin != 5 || items[0].Input != core.InputQuantity {
		t.Errorf("jamaah override not applied: %+v", items[0])
	}
	// Curated cadence lands on the row.
	if items[1].Cadence != core.CadenceWeekly || items[1].Input != core.InputBool {
		t.Errorf("puasa override not applied: %+v", items[1])
	}
	// Uncurated bool practice gets the generic note.
	if items[2].Note != "Ya/Tidak" {
		t.Errorf("sedekah note = %q, want Ya/Tidak", items[2].Note)
	}
	// Uncurated quantity practice is untouched.
	if items[3].Note != "" || items[3].DisplayName != "" {
		t.Errorf("quran unexpectedly modified: %+v", items[3])
	}
}

func TestResolveInPlaceIdempotent(t *testing.T) {
	items := []core.Practice{
		{Code: "shalatrawatib", Name: "Rawatib", Input: core.InputBool},
		{Code: "matsurot", Name: "Matsurot", Input: core.InputQuantity},
		{Code: "sedekah", Name: "Sedekah", Input: core.InputBool},
	}

	once := ResolveInPlace(append([]core.Practice(nil), items...))
	twice := ResolveInPlace(ResolveInPlace(append([]core.Practice(nil), items...)))

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("resolution not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestApplicableOn(t *testing.T) {
	items := []core.Practice{
		{Code: "tilawah", Name: "Tilawah"},
		{Code: "alkahfi", Name: "Baca Al-Kahfi", Category: "holiday"},
	}

	// 2024-01-05 is a Friday, 2024-01-06 is not.
	friday := ApplicableOn(items, "2024-01-05")
	if len(friday) != 2 {
		t.Errorf("Friday set has %d items, want 2", len(friday))
	}

	saturday := ApplicableOn(items, "2024-01-06")
	if len(saturday) != 1 || saturday[0].Code != "tilawah" {
		t.Errorf("non-Friday set = %+v, want only tilawah", saturday)
	}
}

func TestDetectCadence(t *testing.T) {
	tests := []struct {
		name     string
		practice core.Practice
		want     core.Cadence
	}{
		{name: "explicit tag wins", practice: core.Practice{Code: "puasa", Cadence: core.CadenceDaily}, want: core.CadenceDaily},
		{name: "weekly by code", practice: core.Practice{Code: "Puasa"}, want: core.CadenceWeekly},
		{name: "weekly exercise", practice: core.Practice{Code: "olahraga"}, want: core.CadenceWeekly},
		{name: "friday kahfi", practice: core.Practice{Code: "Baca Al-Kahfi"}, want: core.CadenceFriday},
		{name: "friday jumuah", practice: core.Practice{Code: "shalat_jumuah"}, want: core.CadenceFriday},
		{name: "friday shalawat", practice: core.Practice{Code: "Shalawat Jumat"}, want: core.CadenceFriday},
		{name: "default daily", practice: core.Practice{Code: "tilawah"}, want: core.CadenceDaily},
		{name: "uncurated code still classifies", practice: core.Practice{Code: "amalan-baru"}, want: core.CadenceDaily},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCadence(tt.practice); got != tt.want {
				t.Errorf("DetectCadence(%q) = %s, want %s", tt.practice.Code, got, tt.want)
			}
		})
	}
}
