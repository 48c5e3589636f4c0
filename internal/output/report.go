package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const JSONFile = "vtm_mapping.json"

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
)

var KnownFormats = []string{FormatCSV, FormatXLSX, FormatJSON}

func IsKnownFormat(name string) bool {
	return slices.Contains(KnownFormats, strings.ToLower(strings.TrimSpace(name)))
}

// WriteReportJSON writes the report as indented JSON into outDir.
func WriteReportJSON(outDir string, r Report) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	outPath := filepath.Join(outDir, JSONFile)

	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	b = append(b, '\n')
	if err := os.WriteFile(outPath, b, 0o644); err != nil {
		return "", err
	}
	return outPath, nil
}

// Export writes r in every requested format and returns the written paths.
func Export(outDir string, formats []string, r Report) ([]string, error) {
	var paths []string
	for _, format := range formats {
		switch strings.ToLower(strings.TrimSpace(format)) {
		case FormatCSV:
			p, err := ExportCSV(outDir, r)
			paths = append(paths, p...)
			if err != nil {
				return paths, fmt.Errorf("export csv: %w", err)
			}
		case FormatXLSX:
			p, err := ExportXLSX(outDir, r)
			if err != nil {
				return paths, fmt.Errorf("export xlsx: %w", err)
			}
			paths = append(paths, p)
		case FormatJSON:
			p, err := WriteReportJSON(outDir, r)
			if err != nil {
				return paths, fmt.Errorf("export json: %w", err)
			}
			paths = append(paths, p)
		default:
			return paths, fmt.Errorf("unknown export format %q (expected one of %s)", format, strings.Join(KnownFormats, ", "))
		}
	}
	return paths, nil
}
