// Package reportparser reads veterinary appointment export files from a
// directory and parses them into bundles ready for report generation.
package reportparser

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/vetscribe/vetreports-api/logging"
	"github.com/vetscribe/vetreports-api/reportparser/entities"
)

// ParseAllAppointments scans inputDir (non-recursive) for .json and .txt
// export files and parses each into a bundle. Files that cannot be read or
// decoded are logged and skipped so one bad export never blocks the run.
func ParseAllAppointments(inputDir string) ([]entities.Bundle, error) {
	dirEntries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", inputDir, err)
	}

	var files []string
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".json" || ext == ".txt" {
			files = append(files, entry.Name())
		}
	}

	// Parse every file concurrently, collecting by index so the fan-out
	// never needs a lock around the results.
	results := make([]*entities.Bundle, len(files))
	var wg sync.WaitGroup
	wg.Add(len(files))

	for i, name := range files {
		go func(i int, name string) {
			defer wg.Done()

			bundle, err := parseFile(filepath.Join(inputDir, name))
			if err != nil {
				logging.Warn("Skipping unparseable export file", "file", name, "error", err)
				return
			}
			results[i] = bundle
		}(i, name)
	}

	wg.Wait()

	bundles := make([]entities.Bundle, 0, len(files))
	for _, b := range results {
		if b != nil {
			bundles = append(bundles, *b)
		}
	}

	// Directory order is filesystem-dependent, keep the output stable.
	sort.Slice(bundles, func(i, j int) bool {
		return bundles[i].Stem < bundles[j].Stem
	})

	return bundles, nil
}

// parseFile reads, decodes and unmarshals a single export file.
func parseFile(path string) (*entities.Bundle, error) {
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	decoded, err := decodeExportBytes(raw, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	var payload entities.Payload
	if err := json.Unmarshal(decoded, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}

	name := filepath.Base(path)
	return &entities.Bundle{
		SourceFile: name,
		Stem:       strings.TrimSuffix(name, filepath.Ext(name)),
		Payload:    payload,
	}, nil
}

// BuildAppointmentIndex builds the appointment lookup map used by the HTTP
// layer. Later files win on duplicate IDs, matching generation order.
func BuildAppointmentIndex(bundles []entities.Bundle) map[string]entities.Appointment {
	index := make(map[string]entities.Appointment)
	for _, bundle := range bundles {
		for _, appt := range bundle.Payload.Data {
			if appt.AppointmentID == "" {
				continue
			}
			index[appt.AppointmentID] = appt
		}
	}
	return index
}
