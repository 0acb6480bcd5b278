package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/pierrec/lz4/v4"
	"github.com/san-kum/submoonsim/internal/dynamo"
	"github.com/san-kum/submoonsim/internal/physics"
	"github.com/san-kum/submoonsim/internal/sim"
	"github.com/san-kum/submoonsim/internal/stability"
)

const (
	metadataFile   = "metadata.json"
	positionsFile  = "positions.csv"
	compressedFile = "positions.csv.lz4"
)

var ErrNoPositions = errors.New("storage: run has no positions file")

var positionsHeader = []string{"tick", "planet_x", "planet_z", "moon_x", "moon_z", "submoon_x", "submoon_z"}

type Store struct {
	baseDir  string
	compress bool
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// WithCompression makes Save write lz4-compressed position files.
func (s *Store) WithCompression(on bool) *Store {
	s.compress = on
	return s
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string              `json:"id"`
	Preset      string              `json:"preset"`
	Timestamp   time.Time           `json:"timestamp"`
	Fingerprint string              `json:"fingerprint"`
	Params      physics.Params      `json:"params"`
	Derived     physics.Derived     `json:"derived"`
	Stats       stability.Stats     `json:"stats"`
	Ticks       int                 `json:"ticks"`
	Speed       float64             `json:"speed"`
	SampleEvery int                 `json:"sample_every"`
	Compressed  bool                `json:"compressed"`
	Final       dynamo.OrbitalState `json:"final_state"`
}

// maxRunSuffix bounds the search for a free run directory name.
const maxRunSuffix = 1000

// Save writes a run directory holding metadata.json and the sampled positions.
// A run never replaces an existing one: when the id is taken a numeric suffix
// is added. On failure the partial run directory is removed.
func (s *Store) Save(preset string, speed float64, sampleEvery int, result *sim.Result) (string, error) {
	final := result.Final
	fp := Fingerprint(final.Params)
	now := time.Now()

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}
	runID, runDir, err := s.claimRunDir(fmt.Sprintf("%s_%d_%s", preset, now.Unix(), fp[:8]))
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Preset:      preset,
		Timestamp:   now,
		Fingerprint: fp,
		Params:      final.Params,
		Derived:     final.Derived,
		Stats:       final.Stats,
		Ticks:       result.Frames,
		Speed:       speed,
		SampleEvery: sampleEvery,
		Compressed:  s.compress,
		Final:       final.State,
	}

	if err := s.writeRun(runDir, meta, result); err != nil {
		_ = os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func (s *Store) claimRunDir(base string) (string, string, error) {
	for i := 1; i <= maxRunSuffix; i++ {
		runID := base
		if i > 1 {
			runID = fmt.Sprintf("%s_%d", base, i)
		}
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
	}
	return "", "", fmt.Errorf("storage: no free run id for %s", base)
}

func (s *Store) writeRun(runDir string, meta RunMetadata, result *sim.Result) error {
	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	name := positionsFile
	if s.compress {
		name = compressedFile
	}
	csvFile, err := os.Create(filepath.Join(runDir, name))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	if !s.compress {
		return WritePositionsCSV(csvFile, result.Ticks, result.Positions)
	}

	zw := lz4.NewWriter(csvFile)
	if err := WritePositionsCSV(zw, result.Ticks, result.Positions); err != nil {
		return err
	}
	return zw.Close()
}

// List returns the saved runs, newest first. Unreadable entries are skipped.
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadPositions reads the sampled positions of a run, compressed or not.
func (s *Store) LoadPositions(runID string) ([]int, []dynamo.Positions, error) {
	runDir := filepath.Join(s.baseDir, runID)

	if f, err := os.Open(filepath.Join(runDir, positionsFile)); err == nil {
		defer f.Close()
		return ReadPositionsCSV(f)
	} else if !os.IsNotExist(err) {
		return nil, nil, err
	}

	f, err := os.Open(filepath.Join(runDir, compressedFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNoPositions, runID)
		}
		return nil, nil, err
	}
	defer f.Close()
	return ReadPositionsCSV(lz4.NewReader(f))
}

// WritePositionsCSV writes one row per sample. Floats are written in their
// shortest exact form so a reload reproduces them bit for bit.
func WritePositionsCSV(w io.Writer, ticks []int, positions []dynamo.Positions) error {
	if len(ticks) != len(positions) {
		return fmt.Errorf("storage: %d ticks for %d positions", len(ticks), len(positions))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(positionsHeader); err != nil {
		return err
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for i, p := range positions {
		row := []string{
			strconv.Itoa(ticks[i]),
			format(p.Planet.X), format(p.Planet.Z),
			format(p.Moon.X), format(p.Moon.Z),
			format(p.Submoon.X), format(p.Submoon.Z),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func ReadPositionsCSV(r io.Reader) ([]int, []dynamo.Positions, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(positionsHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []int{}, []dynamo.Positions{}, nil
	}

	ticks := make([]int, 0, len(records)-1)
	positions := make([]dynamo.Positions, 0, len(records)-1)

	for line, record := range records[1:] {
		tick, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line+2, err)
		}

		var v [6]float64
		for j := range v {
			v[j], err = strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", line+2, err)
			}
		}

		ticks = append(ticks, tick)
		positions = append(positions, dynamo.Positions{
			Planet:  dynamo.Vec3{X: v[0], Z: v[1]},
			Moon:    dynamo.Vec3{X: v[2], Z: v[3]},
			Submoon: dynamo.Vec3{X: v[4], Z: v[5]},
		})
	}

	return ticks, positions, nil
}
