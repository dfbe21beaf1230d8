package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/trace"
)

type ExportData struct {
	Algorithm string             `json:"algorithm"`
	Steps     int                `json:"steps"`
	Array     []float64          `json:"array,omitempty"`
	Start     string             `json:"start,omitempty"`
	End       string             `json:"end,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
	Trace     *trace.Trace       `json:"trace"`
}

func exportData(res *experiment.Result) ExportData {
	return ExportData{
		Algorithm: res.Algorithm,
		Steps:     res.Trace.Len(),
		Array:     res.Input.Array,
		Start:     res.Input.Start,
		End:       res.Input.End,
		Metrics:   finite(res.Metrics),
		Trace:     res.Trace,
	}
}

func ExportJSON(path string, res *experiment.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, res)
}

func WriteJSON(w io.Writer, res *experiment.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(res))
}
