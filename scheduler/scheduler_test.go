package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/vetscribe/vetreports-api/data"
	"github.com/vetscribe/vetreports-api/interfaces"
	"github.com/vetscribe/vetreports-api/reportparser/entities"
	"github.com/vetscribe/vetreports-api/validation"
)

// mockParser returns canned bundles or a canned error.
type mockParser struct {
	bundles []entities.Bundle
	err     error
	calls   int
}

func (m *mockParser) ParseAllAppointments(inputDir string) ([]entities.Bundle, error) {
	m.calls++
	return m.bundles, m.err
}

func (m *mockParser) BuildAppointmentIndex(bundles []entities.Bundle) map[string]entities.Appointment {
	index := make(map[string]entities.Appointment)
	for _, b := range bundles {
		for _, a := range b.Payload.Data {
			index[a.AppointmentID] = a
		}
	}
	return index
}

// mockGenerator records what it was asked to generate.
type mockGenerator struct {
	err       error
	calls     int
	lastCount int
}

func (m *mockGenerator) GenerateAll(bundles []entities.Bundle) ([]interfaces.ReportMeta, map[string]interfaces.ReportMeta, error) {
	m.calls++
	m.lastCount = len(bundles)
	if m.err != nil {
		return nil, nil, m.err
	}

	reports := make([]interfaces.ReportMeta, 0, len(bundles))
	reportsMap := make(map[string]interfaces.ReportMeta)
	for _, b := range bundles {
		meta := interfaces.ReportMeta{Name: b.Stem, SourceFile: b.SourceFile, GeneratedAt: time.Now()}
		reports = append(reports, meta)
		reportsMap[b.Stem] = meta
	}
	return reports, reportsMap, nil
}

func testBundles() []entities.Bundle {
	return []entities.Bundle{{
		SourceFile: "visit-1.json",
		Stem:       "visit-1",
		Payload: entities.Payload{
			Data: []entities.Appointment{{AppointmentID: "A-1", PetName: "Rex"}},
		},
	}}
}

func TestSchedulerStartRunsInitialGeneration(t *testing.T) {
	dc := data.NewDataContainer()
	parser := &mockParser{bundles: testBundles()}
	gen := &mockGenerator{}

	s := NewScheduler(dc, parser, gen, validation.NewDataValidator(), "exports", 60)
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	if parser.calls != 1 || gen.calls != 1 {
		t.Errorf("Expected one parse and one generate, got %d/%d", parser.calls, gen.calls)
	}

	if len(dc.GetBundles()) != 1 {
		t.Error("Expected the container to hold the parsed bundles")
	}
	if _, ok := dc.GetReportsMap()["visit-1"]; !ok {
		t.Error("Expected the container to hold the generated report meta")
	}
	if dc.GetLastGenerated().IsZero() {
		t.Error("Expected last-generated to be stamped")
	}
	if dc.IsGenerating() {
		t.Error("Expected generation flag to be cleared after the run")
	}

	if next := s.NextRun(); next.IsZero() {
		t.Error("Expected a scheduled next run")
	}
}

func TestSchedulerStartFailsWhenParserFails(t *testing.T) {
	dc := data.NewDataContainer()
	parser := &mockParser{err: fmt.Errorf("input directory vanished")}
	gen := &mockGenerator{}

	s := NewScheduler(dc, parser, gen, validation.NewDataValidator(), "exports", 60)
	if err := s.Start(); err == nil {
		t.Fatal("Expected Start to fail when the initial parse fails")
	}

	if gen.calls != 0 {
		t.Error("Expected no generation after a parse failure")
	}
	if dc.IsGenerating() {
		t.Error("Expected generation flag to be cleared after a failed run")
	}
}

func TestSchedulerDropsInvalidBundles(t *testing.T) {
	dc := data.NewDataContainer()
	parser := &mockParser{bundles: append(testBundles(), entities.Bundle{
		SourceFile: "empty.json",
		Stem:       "empty",
		// No appointments: nothing to report on, the bundle is dropped.
	})}
	gen := &mockGenerator{}

	s := NewScheduler(dc, parser, gen, validation.NewDataValidator(), "exports", 60)
	if err := s.regenerate(); err != nil {
		t.Fatalf("regenerate failed: %v", err)
	}

	if gen.lastCount != 1 {
		t.Errorf("Expected only the valid bundle to generate, got %d", gen.lastCount)
	}
	if len(dc.GetBundles()) != 1 {
		t.Errorf("Expected only the valid bundle in the container, got %d", len(dc.GetBundles()))
	}
	if _, ok := dc.GetReportsMap()["empty"]; ok {
		t.Error("Expected no report for the dropped bundle")
	}
}

func TestSchedulerSkipsOverlappingRuns(t *testing.T) {
	dc := data.NewDataContainer()
	parser := &mockParser{bundles: testBundles()}
	gen := &mockGenerator{}

	s := NewScheduler(dc, parser, gen, validation.NewDataValidator(), "exports", 60)

	// Simulate a run already in progress
	if !dc.BeginGeneration() {
		t.Fatal("Failed to claim the generation flag")
	}

	if err := s.regenerate(); err != nil {
		t.Fatalf("Expected the overlapping run to be skipped quietly: %v", err)
	}
	if parser.calls != 0 {
		t.Error("Expected the overlapping run to not parse")
	}

	dc.EndGeneration()
}
