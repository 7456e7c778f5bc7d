package scenario

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/comalice/malariasim"
)

func TestScenarioValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Scenario)
		wantErr bool
	}{
		{name: "defaults valid", mutate: func(s *Scenario) {}},
		{name: "zero days valid", mutate: func(s *Scenario) { s.Days = 0 }},
		{name: "all infected valid", mutate: func(s *Scenario) { s.Population.InitialInfected = s.Population.Size }},
		{name: "missing ID", mutate: func(s *Scenario) { s.ID = " " }, wantErr: true},
		{name: "zero size", mutate: func(s *Scenario) { s.Population.Size = 0 }, wantErr: true},
		{name: "too many infected", mutate: func(s *Scenario) { s.Population.InitialInfected = 1001 }, wantErr: true},
		{name: "negative infected", mutate: func(s *Scenario) { s.Population.InitialInfected = -1 }, wantErr: true},
		{name: "transmission above one", mutate: func(s *Scenario) { s.Population.TransmissionRate = 1.2 }, wantErr: true},
		{name: "recovery NaN", mutate: func(s *Scenario) { s.Population.RecoveryRate = math.NaN() }, wantErr: true},
		{name: "coverage negative", mutate: func(s *Scenario) { s.Interventions.BedNetCoverage = -0.5 }, wantErr: true},
		{name: "medication above one", mutate: func(s *Scenario) { s.Interventions.MedicationEffectiveness = 1.5 }, wantErr: true},
		{name: "negative days", mutate: func(s *Scenario) { s.Days = -3 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestScenarioValidateWrapsInvalidParameter(t *testing.T) {
	s := Default()
	s.Interventions.BedNetCoverage = 2
	err := s.Validate()
	if !errors.Is(err, malariasim.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	var perr *malariasim.ParameterError
	if !errors.As(err, &perr) || perr.Name != "interventions.bedNetCoverage" {
		t.Errorf("expected bedNetCoverage to be named, got %v", err)
	}
}

func TestScenarioFactory(t *testing.T) {
	s := Default()
	s.Days = 12
	r, err := s.Factory()(malariasim.NewRandom(5))
	if err != nil {
		t.Fatal(err)
	}
	if r.Population().Size() != 1000 {
		t.Errorf("expected population size 1000, got %d", r.Population().Size())
	}
	h, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(h) != 12 {
		t.Errorf("expected 12 days, got %d", len(h))
	}
}

func TestScenarioFactoryRejectsInvalid(t *testing.T) {
	s := Default()
	s.Population.InitialInfected = 5000
	if _, err := s.Factory()(malariasim.NewRandom(1)); !errors.Is(err, malariasim.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestComputeVersion(t *testing.T) {
	a, b := Default(), Default()
	if ComputeVersion(&a) != ComputeVersion(&b) {
		t.Error("equal scenarios should hash to the same version")
	}
	b.Days = 99
	if ComputeVersion(&a) == ComputeVersion(&b) {
		t.Error("different scenarios should hash differently")
	}
	if len(ComputeVersion(&a)) != 16 {
		t.Errorf("expected 16 hex chars, got %q", ComputeVersion(&a))
	}
	a.Version = "v2"
	if ComputeVersion(&a) != "v2" {
		t.Error("explicit version takes priority")
	}
}
