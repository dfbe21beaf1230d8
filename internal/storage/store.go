package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/graph"
	"github.com/san-kum/algoviz/internal/trace"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.json"
	stepsFile    = "steps.csv"
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

func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

type RunMetadata struct {
	ID        string       `json:"id"`
	Algorithm string       `json:"algorithm"`
	Kind      trace.Kind   `json:"kind"`
	Timestamp time.Time    `json:"timestamp"`
	Seed      int64        `json:"seed"`
	Steps     int          `json:"steps"`
	Array     []float64    `json:"array,omitempty"`
	Graph     *graph.Graph `json:"graph,omitempty"`
	Start     string       `json:"start,omitempty"`
	End       string       `json:"end,omitempty"`
	// Metrics holds the finite metric values; JSON has no infinity.
	Metrics map[string]float64 `json:"metrics"`
	Elapsed time.Duration      `json:"elapsed"`
}

func finite(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if !math.IsInf(v, 0) && !math.IsNaN(v) {
			out[k] = v
		}
	}
	return out
}

// Save writes a run directory holding metadata.json, trace.json and
// steps.csv, and returns the run id.
func (s *Store) Save(res *experiment.Result, seed int64) (string, error) {
	runID := fmt.Sprintf("%s_%s", res.Algorithm, uuid.NewString())
	runDir := s.Dir(runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Algorithm: res.Algorithm,
		Kind:      res.Trace.Kind,
		Timestamp: time.Now(),
		Seed:      seed,
		Steps:     res.Trace.Len(),
		Array:     res.Input.Array,
		Graph:     res.Input.Graph,
		Start:     res.Input.Start,
		End:       res.Input.End,
		Metrics:   finite(res.Metrics),
		Elapsed:   res.Elapsed,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, traceFile), res.Trace); err != nil {
		return "", err
	}
	if err := writeSteps(filepath.Join(runDir, stepsFile), res.Trace); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var stepsHeader = []string{"index", "type", "target", "data", "message"}

func writeSteps(path string, tr *trace.Trace) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(stepsHeader); err != nil {
		return err
	}
	for i, step := range tr.Steps {
		target, data := stepColumns(step)
		row := []string{strconv.Itoa(i), string(step.StepType()), target, data, step.Text()}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// stepColumns flattens a step into its target (indices or node/edge) and
// its data (array contents or visited nodes).
func stepColumns(s trace.Step) (string, string) {
	switch s := s.(type) {
	case *trace.NumberStep:
		idx := make([]string, len(s.Indices))
		for i, v := range s.Indices {
			idx[i] = strconv.Itoa(v)
		}
		return strings.Join(idx, " "), formatFloats(s.Array)
	case *trace.BFSStep:
		return graphTarget(&s.GraphState), strings.Join(s.Visited, " ")
	case *trace.DijkstraStep:
		return graphTarget(&s.GraphState), strings.Join(s.Visited, " ")
	default:
		panic(fmt.Sprintf("storage: unhandled step %T", s))
	}
}

func graphTarget(gs *trace.GraphState) string {
	if gs.EdgeID != "" {
		return gs.NodeID + "@" + gs.EdgeID
	}
	return gs.NodeID
}

func formatFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, " ")
}

// List returns the stored runs, oldest first. Directories without readable
// metadata are skipped.
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

	slices.SortStableFunc(runs, func(a, b RunMetadata) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadTrace(runID string) (*trace.Trace, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), traceFile))
	if err != nil {
		return nil, err
	}

	var tr trace.Trace
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	return &tr, nil
}

// LoadSteps returns the rows of steps.csv without the header.
func (s *Store) LoadSteps(runID string) ([][]string, error) {
	f, err := os.Open(filepath.Join(s.Dir(runID), stepsFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(stepsHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]string{}, nil
	}
	return records[1:], nil
}
