// Package generator renders parsed appointment bundles and writes the
// resulting HTML report files into the output directory.
package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vetscribe/vetreports-api/interfaces"
	"github.com/vetscribe/vetreports-api/logging"
	"github.com/vetscribe/vetreports-api/metrics"
	"github.com/vetscribe/vetreports-api/reportparser/entities"
)

// Compile-time check to ensure ReportGenerator implements Generator interface
var _ interfaces.Generator = (*ReportGenerator)(nil)

// ReportGenerator writes one HTML document per bundle under
// outputDir/<stem>/. With timestamping enabled the file name carries the
// generation time so successive runs never overwrite each other.
type ReportGenerator struct {
	outputDir string
	timestamp bool
	renderer  interfaces.Renderer
}

// NewReportGenerator creates a generator writing into outputDir.
func NewReportGenerator(outputDir string, timestamp bool, renderer interfaces.Renderer) *ReportGenerator {
	return &ReportGenerator{
		outputDir: outputDir,
		timestamp: timestamp,
		renderer:  renderer,
	}
}

// GenerateAll renders and writes every bundle. A failure on one bundle is
// logged and counted but never aborts the remaining reports. The returned
// slice keeps bundle order; the map is keyed by report name.
func (g *ReportGenerator) GenerateAll(bundles []entities.Bundle) ([]interfaces.ReportMeta, map[string]interfaces.ReportMeta, error) {
	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create output directory %s: %w", g.outputDir, err)
	}

	reports := make([]interfaces.ReportMeta, 0, len(bundles))
	reportsMap := make(map[string]interfaces.ReportMeta, len(bundles))

	for i := range bundles {
		meta, err := g.generateOne(&bundles[i])
		if err != nil {
			logging.Error("Failed to generate report", "source", bundles[i].SourceFile, "error", err)
			metrics.ReportFailuresTotal.Inc()
			continue
		}
		reports = append(reports, *meta)
		reportsMap[meta.Name] = *meta
		metrics.ReportsGeneratedTotal.Inc()
	}

	return reports, reportsMap, nil
}

func (g *ReportGenerator) generateOne(bundle *entities.Bundle) (*interfaces.ReportMeta, error) {
	subdir := filepath.Join(g.outputDir, bundle.Stem)
	if err := os.MkdirAll(subdir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	now := time.Now()
	fileName := bundle.Stem + ".html"
	if g.timestamp {
		fileName = bundle.Stem + "-" + now.Format("20060102-150405") + ".html"
	}

	html := g.renderer.RenderBundle(bundle)
	path := filepath.Join(subdir, fileName)
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return nil, fmt.Errorf("failed to write report %s: %w", path, err)
	}

	logging.Info("Report written", "path", path, "appointments", len(bundle.Payload.Data))

	return &interfaces.ReportMeta{
		Name:        bundle.Stem,
		SourceFile:  bundle.SourceFile,
		Path:        path,
		Size:        int64(len(html)),
		GeneratedAt: now,
	}, nil
}
