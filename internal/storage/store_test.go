package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Names: []string{"Sun", "Earth"},
		Samples: []sim.Sample{
			{Tick: 0, Time: 0, Positions: []r2.Vec{{X: 960, Y: 540}, {X: 1805.95, Y: 540}}},
			{Tick: 10, Time: 100, Positions: []r2.Vec{{X: 960, Y: 540}, {X: 1805.5, Y: 582.25}}},
		},
		Metrics:    map[string]float64{"energy_drift": 1.5e-6},
		StepsTaken: 10,
		Errors:     []error{errors.New("boom")},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Preset: "solar", Seed: 42, TimeStep: 10}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "solar_") {
		t.Errorf("unexpected run id %s", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Seed != 42 || meta.Steps != 10 || meta.ID != runID {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Metrics["energy_drift"] != 1.5e-6 {
		t.Errorf("metric lost: %v", meta.Metrics)
	}
	if len(meta.Errors) != 1 || meta.Errors[0] != "boom" {
		t.Errorf("errors lost: %v", meta.Errors)
	}
	if len(meta.Bodies) != 2 {
		t.Errorf("bodies lost: %v", meta.Bodies)
	}

	earth, err := st.LoadTrack(runID, "Earth")
	if err != nil {
		t.Fatalf("load track failed: %v", err)
	}
	if len(earth.Points) != 2 || earth.Points[1] != (r2.Vec{X: 1805.5, Y: 582.25}) {
		t.Errorf("unexpected track %+v", earth)
	}
	if earth.Times[1] != 100 {
		t.Errorf("unexpected times %v", earth.Times)
	}

	if _, err := st.LoadTrack(runID, "Pluto"); err == nil {
		t.Error("expected error for missing track")
	}

	lower, err := st.LoadTrack(runID, "earth")
	if err != nil {
		t.Fatalf("lowercase lookup failed: %v", err)
	}
	if lower.Name != "Earth" {
		t.Errorf("expected Earth, got %s", lower.Name)
	}
}

func TestFindTrack(t *testing.T) {
	tracks := []Track{{Name: "Sun"}, {Name: "Earth"}}
	if tr := FindTrack(tracks, "EARTH"); tr == nil || tr != &tracks[1] {
		t.Errorf("expected Earth track, got %+v", tr)
	}
	if tr := FindTrack(tracks, "Mars"); tr != nil {
		t.Errorf("expected nil, got %+v", tr)
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("expected empty list, got %v (%v)", runs, err)
	}

	if _, err := st.Save(RunMetadata{Preset: "quiet"}, testResult()); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Preset != "quiet" {
		t.Errorf("expected one quiet run, got %+v", runs)
	}
}

func TestListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "missing")).List()
	if err != nil || len(runs) != 0 {
		t.Errorf("missing dir should list empty, got %v (%v)", runs, err)
	}
}

func TestWriteTracksCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTracksCSV(&buf, testResult()); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "tick,time,Sun_x,Sun_y,Earth_x,Earth_y" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[2] != "10,100.000000,960.000000,540.000000,1805.500000,582.250000" {
		t.Errorf("unexpected row %q", lines[2])
	}
}
