package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/sim"
)

const (
	metadataFile = "metadata.json"
	tracksFile   = "tracks.csv"
)

// Store keeps one directory per headless run. Records are written once and
// read back for plotting and export; a run is never resumed from them.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID          string             `json:"id"`
	Preset      string             `json:"preset"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        uint64             `json:"seed"`
	G           float64            `json:"g"`
	TimeStep    float64            `json:"timestep"`
	Steps       int                `json:"steps"`
	SampleEvery int                `json:"sample_every"`
	Asteroids   int                `json:"asteroids"`
	Bodies      []string           `json:"bodies"`
	Metrics     map[string]float64 `json:"metrics"`
	Errors      []string           `json:"errors,omitempty"`
}

type Track struct {
	Name   string
	Times  []float64
	Points []r2.Vec
}

// Save fills in the id, timestamp, bodies and metrics of meta from result and
// writes both files.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	name := meta.Preset
	if name == "" {
		name = "run"
	}
	runID := fmt.Sprintf("%s_%d", name, now.UnixMilli())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Steps = result.StepsTaken
	meta.Bodies = result.Names
	meta.Metrics = result.Metrics
	for _, err := range result.Errors {
		meta.Errors = append(meta.Errors, err.Error())
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, tracksFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteTracksCSV(f, result); err != nil {
		return "", err
	}
	return runID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// WriteTracksCSV writes one row per sample: tick, time, then x and y for
// every tracked body.
func WriteTracksCSV(out io.Writer, result *sim.Result) error {
	w := csv.NewWriter(out)

	header := []string{"tick", "time"}
	for _, n := range result.Names {
		header = append(header, n+"_x", n+"_y")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, smp := range result.Samples {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(smp.Tick), strconv.FormatFloat(smp.Time, 'f', 6, 64))
		for _, p := range smp.Positions {
			row = append(row,
				strconv.FormatFloat(p.X, 'f', 6, 64),
				strconv.FormatFloat(p.Y, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// TracksPath is where a run's samples live, for raw export.
func (s *Store) TracksPath(runID string) string {
	return filepath.Join(s.baseDir, runID, tracksFile)
}

func (s *Store) LoadTracks(runID string) ([]Track, error) {
	file, err := os.Open(s.TracksPath(runID))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("run %s: empty tracks file", runID)
	}

	header := records[0]
	if len(header) < 2 || (len(header)-2)%2 != 0 {
		return nil, fmt.Errorf("run %s: malformed header", runID)
	}

	tracks := make([]Track, (len(header)-2)/2)
	for i := range tracks {
		tracks[i].Name = strings.TrimSuffix(header[2+2*i], "_x")
	}

	for line, record := range records[1:] {
		t, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("run %s line %d: %w", runID, line+2, err)
		}
		for i := range tracks {
			x, errX := strconv.ParseFloat(record[2+2*i], 64)
			y, errY := strconv.ParseFloat(record[3+2*i], 64)
			if errX != nil || errY != nil {
				return nil, fmt.Errorf("run %s line %d: bad position for %s", runID, line+2, tracks[i].Name)
			}
			tracks[i].Times = append(tracks[i].Times, t)
			tracks[i].Points = append(tracks[i].Points, r2.Vec{X: x, Y: y})
		}
	}

	return tracks, nil
}

// LoadTrack loads one body's track. Names match case-insensitively.
func (s *Store) LoadTrack(runID, name string) (*Track, error) {
	tracks, err := s.LoadTracks(runID)
	if err != nil {
		return nil, err
	}
	tr := FindTrack(tracks, name)
	if tr == nil {
		return nil, fmt.Errorf("run %s: no track for %s", runID, name)
	}
	return tr, nil
}

// FindTrack returns the track whose name matches case-insensitively, or nil.
func FindTrack(tracks []Track, name string) *Track {
	for i := range tracks {
		if strings.EqualFold(tracks[i].Name, name) {
			return &tracks[i]
		}
	}
	return nil
}
