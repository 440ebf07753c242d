// Package report persists run summaries and renders the plain-language
// interpretation shown after a run.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/corebench/corebench/internal/models"
)

// Save writes the summary as indented JSON. Paths ending in .gz are
// gzip-compressed.
func Save(summary *models.RunSummary, path string) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	var w io.Writer = f
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(f)
		w = gz
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("flushing %s: %w", path, err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// Load reads a summary saved by Save, transparently decompressing .gz
// files.
func Load(path string) (*models.RunSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	var summary models.RunSummary
	if err := json.NewDecoder(r).Decode(&summary); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &summary, nil
}

// Interpret renders a short plain-language reading of the run.
func Interpret(s *models.RunSummary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Rated %s %s with a final score of %.1f.\n",
		s.Rating, s.Rating.Stars(), s.FinalScore)

	switch {
	case s.CoreRatio >= float64(s.Setup.Workers)*0.7:
		fmt.Fprintf(&sb, "Multi-core scaling is strong (%.1fx over single-core on %d workers).\n",
			s.CoreRatio, s.Setup.Workers)
	case s.CoreRatio > 1:
		fmt.Fprintf(&sb, "Multi-core scaling is modest (%.1fx over single-core on %d workers); thermal or scheduling limits are likely.\n",
			s.CoreRatio, s.Setup.Workers)
	default:
		sb.WriteString("Multi-core did not outperform single-core; the device may be throttling or contended.\n")
	}

	if invalid := s.InvalidResults(); len(invalid) > 0 {
		ids := make([]string, 0, len(invalid))
		for _, kr := range invalid {
			ids = append(ids, fmt.Sprintf("%s/%s", kr.ID, kr.Mode))
		}
		fmt.Fprintf(&sb, "%d of %d kernel results failed validation and scored zero: %s.\n",
			len(invalid), len(s.KernelResults), strings.Join(ids, ", "))
	}

	if s.Degraded {
		sb.WriteString("Affinity or priority control was unavailable; treat scores as lower-fidelity.\n")
	}
	return sb.String()
}
