package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/aviasim/internal/dynamo"
	"github.com/san-kum/aviasim/internal/experiment"
	"github.com/san-kum/aviasim/internal/model"
	"github.com/san-kum/aviasim/internal/scenario"
)

// Record is the exported form of one run.
type Record struct {
	ID            string             `json:"id"`
	Timestamp     time.Time          `json:"timestamp"`
	Mode          string             `json:"mode"`
	Integrator    string             `json:"integrator"`
	Samples       int                `json:"samples"`
	StepsTaken    int                `json:"steps_taken"`
	StepsRejected int                `json:"steps_rejected"`
	Scenario      *scenario.Scenario `json:"scenario"`
	Times         []float64          `json:"times"`
	States        [][]float64        `json:"states"`
	Metrics       map[string]float64 `json:"metrics"`
}

func NewRecord(out *experiment.Outcome) *Record {
	return &Record{
		ID:            out.ID,
		Timestamp:     out.Started.UTC(),
		Mode:          out.Mode.String(),
		Integrator:    out.Integrator,
		Samples:       out.Result.Len(),
		StepsTaken:    out.Result.StepsTaken,
		StepsRejected: out.Result.StepsRejected,
		Scenario:      out.Scenario,
		Times:         out.Result.Times,
		States:        out.Result.Matrix(),
		Metrics:       out.Result.Metrics,
	}
}

func WriteJSON(w io.Writer, rec *Record) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rec)
}

func ReadJSON(r io.Reader) (*Record, error) {
	var rec Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Trajectory rebuilds the sampled trajectory stored in the record.
func (r *Record) Trajectory() (*dynamo.Trajectory, error) {
	if len(r.Times) != len(r.States) {
		return nil, fmt.Errorf("%w: %d times for %d states", dynamo.ErrParse, len(r.Times), len(r.States))
	}
	traj := &dynamo.Trajectory{
		Times:  append([]float64(nil), r.Times...),
		States: make([]dynamo.State, len(r.States)),
	}
	for i, row := range r.States {
		if len(row) != dynamo.NumIndicators {
			return nil, fmt.Errorf("%w: state %d has %d components", dynamo.ErrParse, i, len(row))
		}
		traj.States[i] = append(dynamo.State(nil), row...)
	}
	return traj, nil
}

// CSVHeader is time followed by x1..x8.
func CSVHeader() []string {
	header := []string{"time"}
	for i := 0; i < dynamo.NumIndicators; i++ {
		header = append(header, fmt.Sprintf("x%d", i+1))
	}
	return header
}

func WriteCSV(w io.Writer, traj *dynamo.Trajectory) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader()); err != nil {
		return err
	}
	for i := range traj.States {
		row := []string{strconv.FormatFloat(traj.Times[i], 'f', 6, 64)}
		for _, val := range traj.States[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file written by WriteCSV. Rows with unparsable cells are
// rejected rather than skipped so a truncated file is not mistaken for data.
func ReadCSV(r io.Reader) (*dynamo.Trajectory, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = dynamo.NumIndicators + 1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty csv", dynamo.ErrParse)
	}

	traj := &dynamo.Trajectory{
		Times:  make([]float64, 0, len(records)-1),
		States: make([]dynamo.State, 0, len(records)-1),
	}
	for line, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: time %q", dynamo.ErrParse, line+2, record[0])
		}
		state := make(dynamo.State, dynamo.NumIndicators)
		for j := range state {
			val, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %s %q", dynamo.ErrParse, line+2, model.IndicatorSymbol(j), record[j+1])
			}
			state[j] = val
		}
		traj.Times = append(traj.Times, t)
		traj.States = append(traj.States, state)
	}
	return traj, nil
}

// Save writes <id>.json and <id>.csv into dir and returns their paths.
func Save(dir string, out *experiment.Outcome) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	jsonPath := filepath.Join(dir, out.ID+".json")
	if err := writeFile(jsonPath, func(w io.Writer) error { return WriteJSON(w, NewRecord(out)) }); err != nil {
		return nil, err
	}

	csvPath := filepath.Join(dir, out.ID+".csv")
	if err := writeFile(csvPath, func(w io.Writer) error { return WriteCSV(w, &out.Result.Trajectory) }); err != nil {
		return nil, err
	}

	return []string{jsonPath, csvPath}, nil
}

// Load reads the trajectory of an exported run, choosing the decoder by
// file extension.
func Load(path string) (*dynamo.Trajectory, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		rec, err := ReadJSON(file)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", dynamo.ErrParse, path, err)
		}
		return rec.Trajectory()
	case ".csv":
		return ReadCSV(file)
	default:
		return nil, fmt.Errorf("unsupported run file %s (want .json or .csv)", path)
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
