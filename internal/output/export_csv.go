package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	LegacyCSV     = "v20_distribution.csv"
	SimplifiedCSV = "v5_distribution.csv"
	MappingCSV    = "v20_to_v5_mapping.csv"
)

var (
	legacyHeader     = []string{"dice", "successes", "difficulty", "probability"}
	simplifiedHeader = []string{"dice", "difficulty", "probability"}
	mappingHeader    = []string{"dice", "successes", "difficulty", "v5_difficulty"}
)

// ExportCSV writes the three tables as CSV files into outDir and returns their paths.
func ExportCSV(outDir string, r Report) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	legacy := make([][]string, 0, len(r.Legacy))
	for _, row := range r.Legacy {
		legacy = append(legacy, []string{itoa(row.Dice), itoa(row.Successes), itoa(row.Difficulty), row.Percent})
	}
	simplified := make([][]string, 0, len(r.Simplified))
	for _, row := range r.Simplified {
		simplified = append(simplified, []string{itoa(row.Dice), itoa(row.Difficulty), row.Percent})
	}
	mapping := make([][]string, 0, len(r.Mapping))
	for _, row := range r.Mapping {
		mapping = append(mapping, []string{itoa(row.Dice), itoa(row.Successes), itoa(row.Difficulty), itoa(row.SimplifiedDifficulty)})
	}

	files := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{LegacyCSV, legacyHeader, legacy},
		{SimplifiedCSV, simplifiedHeader, simplified},
		{MappingCSV, mappingHeader, mapping},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(outDir, f.name)
		if err := writeCSV(path, f.header, f.rows); err != nil {
			return paths, fmt.Errorf("write %s: %w", f.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
