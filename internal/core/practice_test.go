package core

import (
	"errors"
	"testing"
)

func TestPracticeValidate(t *testing.T) {
	valid := Practice{Code: "tilawah", Name: "Tilawah", Input: InputQuantity, TargetMin: 1}

	tests := []struct {
		name    string
		mutate  func(*Practice)
		wantErr error
	}{
		{name: "valid", mutate: func(*Practice) {}, wantErr: nil},
		{name: "empty code", mutate: func(p *Practice) { p.Code = " " }, wantErr: ErrEmptyCode},
		{name: "empty name", mutate: func(p *Practice) { p.Name = "" }, wantErr: ErrEmptyName},
		{name: "negative target", mutate: func(p *Practice) { p.TargetMin = -1 }, wantErr: ErrInvalidTarget},
		{name: "min above max", mutate: func(p *Practice) { p.TargetMin = 5; p.TargetMax = 3 }, wantErr: ErrInvalidTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPracticeDefaults(t *testing.T) {
	p := Practice{Code: "dzikir", Name: "Dzikir"}
	if got := p.Target(); got != 1 {
		t.Errorf("Target() with zero TargetMin = %d, want 1", got)
	}
	if got := p.EffectiveWeight(); got != 1 {
		t.Errorf("EffectiveWeight() with zero Weight = %d, want 1", got)
	}
	if got := p.Label(); got != "Dzikir" {
		t.Errorf("Label() without override = %q, want raw name", got)
	}
	p.DisplayName = "Dzikir Pagi/Petang"
	if got := p.Label(); got != "Dzikir Pagi/Petang" {
		t.Errorf("Label() with override = %q", got)
	}
}
