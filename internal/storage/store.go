package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/san-kum/fusionsketch/internal/config"
	"github.com/san-kum/fusionsketch/internal/fusion"
)

const (
	metadataFile = "metadata.json"
	pointsFile   = "points.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// CoolantSummary is the derived scalar set of one coolant evaluation.
type CoolantSummary struct {
	Rise        float64 `json:"rise_k"`
	Outlet      float64 `json:"outlet_k"`
	TotalLength float64 `json:"total_length_m"`
	Velocity    float64 `json:"velocity_m_s"`
	Status      string  `json:"status"`
}

type RunMetadata struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Timestamp time.Time       `json:"timestamp"`
	Config    *config.Config  `json:"config"`
	Coolant   *CoolantSummary `json:"coolant,omitempty"`
	Series    map[string]int  `json:"series"`
}

// Run is everything archived for one invocation.
type Run struct {
	Config  *config.Config
	Coolant *CoolantSummary
	Figures []fusion.Figure
}

// PointRecord is one row of points.csv.
type PointRecord struct {
	Figure string  `csv:"figure"`
	Series string  `csv:"series"`
	Index  int     `csv:"index"`
	X      float64 `csv:"x"`
	Y      float64 `csv:"y"`
}

// Records flattens the figures into CSV rows, series in figure order. Series
// sharing a name are numbered so rows stay distinguishable.
func Records(figs []fusion.Figure) []*PointRecord {
	var rows []*PointRecord
	for _, fig := range figs {
		seen := map[string]int{}
		for _, s := range fig.Series {
			name := s.Name
			if n := seen[s.Name]; n > 0 {
				name = fmt.Sprintf("%s#%d", s.Name, n+1)
			}
			seen[s.Name]++
			for i, p := range s.Points {
				rows = append(rows, &PointRecord{Figure: fig.Title, Series: name, Index: i, X: p.X, Y: p.Y})
			}
		}
	}
	return rows
}

func (s *Store) Save(run *Run) (string, error) {
	name := "run"
	if run.Config != nil && run.Config.Name != "" {
		name = run.Config.Name
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%s_%s", name, now.Format("20060102-150405"), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	rows := Records(run.Figures)
	counts := map[string]int{}
	for _, r := range rows {
		counts[r.Series]++
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: now,
		Config:    run.Config,
		Coolant:   run.Coolant,
		Series:    counts,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, pointsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if len(rows) == 0 {
		rows = []*PointRecord{}
	}
	if err := gocsv.MarshalFile(&rows, csvFile); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns every readable run, oldest first.
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

func (s *Store) LoadPoints(runID string) ([]*PointRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, pointsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows := []*PointRecord{}
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// WritePoints streams the archived points of a run as CSV.
func (s *Store) WritePoints(runID string, w io.Writer) error {
	rows, err := s.LoadPoints(runID)
	if err != nil {
		return err
	}
	return gocsv.Marshal(&rows, w)
}
