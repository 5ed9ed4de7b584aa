package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"cefr-training-go/internal/types"
)

// metadataColumns always close the header, after every feature column.
var metadataColumns = []string{types.KeyCandidateID, types.KeyCEFRLevel, types.KeyVoiceNotePath}

// Table is the ordered set of feature vectors produced by one extraction run.
type Table struct {
	rows []types.FeatureVector
}

func NewTable() *Table {
	return &Table{}
}

func (t *Table) Append(v types.FeatureVector) {
	t.rows = append(t.rows, v)
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) Rows() []types.FeatureVector {
	return t.rows
}

// Columns is the union of all feature keys in first-seen order (keys of one vector are
// visited sorted), followed by candidate_id, cefr_level and voice_note_path.
func (t *Table) Columns() []string {
	seen := map[string]bool{}
	var cols []string
	for _, row := range t.rows {
		keys := make([]string, 0, len(row))
		for k := range row {
			if !types.IsMetadataKey(k) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	return append(cols, metadataColumns...)
}

// Records renders the table as a header row followed by one string row per vector.
// Keys a vector lacks render as empty cells.
func (t *Table) Records() [][]string {
	cols := t.Columns()
	out := make([][]string, 0, len(t.rows)+1)
	out = append(out, cols)
	for _, row := range t.rows {
		rec := make([]string, len(cols))
		for i, c := range cols {
			if v, ok := row[c]; ok {
				rec[i] = FormatValue(v)
			}
		}
		out = append(out, rec)
	}
	return out
}

// FormatValue renders a feature value as a cell. NaN and nil become empty cells.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return formatFloat(x, 64)
	case float32:
		return formatFloat(float64(x), 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case json.Number:
		return x.String()
	case fmt.Stringer:
		return x.String()
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}

func formatFloat(f float64, bits int) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}
