package adapter

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/butterfly/internal/model"
)

const (
	reportExt     = ".yaml"
	indexFileName = "_index.yaml"
)

// ReportStore persists and retrieves instrumentation reports.
type ReportStore interface {
	SaveReports(path m.Path, reports []m.Report) error
	LoadReports(path m.Path) ([]m.Report, error)
	// CleanReports deletes the reports of sources, or every report when
	// sources is nil, and refreshes the index.
	CleanReports(path m.Path, sources []m.Source) error
	RegenerateIndex(path m.Path) error
}

// LocalReportStore keeps one YAML file per report in a directory.
type LocalReportStore struct{}

// NewReportStore constructs a ReportStore implementation.
func NewReportStore() ReportStore {
	return &LocalReportStore{}
}

type indexEntry struct {
	TotalFiles  int         `yaml:"total_files"`
	Transformed int         `yaml:"transformed"`
	Entries     int         `yaml:"entries"`
	Unchanged   int         `yaml:"unchanged"`
	Skipped     int         `yaml:"skipped"`
	Failed      int         `yaml:"failed"`
	Injections  int         `yaml:"injections"`
	Files       []indexFile `yaml:"files"`
}

type indexFile struct {
	Path       m.Path        `yaml:"path"`
	Kind       m.OutcomeKind `yaml:"kind"`
	Injections int           `yaml:"injections"`
	Report     string        `yaml:"report"`
}

// SaveReports writes every report to <path>/<hash>.yaml, where hash is the
// first 16 hex characters of the SHA-256 of the encoded report.
func (rs *LocalReportStore) SaveReports(path m.Path, reports []m.Report) error {
	if path == "" {
		return errors.New("reports path is empty")
	}

	if err := os.MkdirAll(string(path), 0o750); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	for _, report := range reports {
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("encode report for %s: %w", reportOrigin(report), err)
		}

		name := rs.computeReportHash(data) + reportExt
		if err := os.WriteFile(filepath.Join(string(path), name), data, 0o600); err != nil {
			return fmt.Errorf("write report %s: %w", name, err)
		}
	}

	return nil
}

// LoadReports reads every report under path, ordered by source path. A
// missing directory yields no reports.
func (rs *LocalReportStore) LoadReports(path m.Path) ([]m.Report, error) {
	named, err := rs.readReports(path)
	if err != nil {
		return nil, err
	}

	reports := make([]m.Report, 0, len(named))
	for _, nr := range named {
		reports = append(reports, nr.report)
	}

	return reports, nil
}

// CleanReports removes the reports of the given sources.
func (rs *LocalReportStore) CleanReports(path m.Path, sources []m.Source) error {
	if path == "" {
		return errors.New("reports path is empty")
	}

	named, err := rs.readReports(path)
	if err != nil {
		return err
	}

	if len(named) == 0 {
		return nil
	}

	selected := make(map[m.Path]struct{}, len(sources))
	for _, source := range sources {
		if source.Origin != nil {
			selected[source.Origin.Path] = struct{}{}
		}
	}

	for _, nr := range named {
		if sources != nil {
			if _, ok := selected[reportOrigin(nr.report)]; !ok {
				continue
			}
		}

		if err := os.Remove(filepath.Join(string(path), nr.name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove report %s: %w", nr.name, err)
		}
	}

	return rs.RegenerateIndex(path)
}

// RegenerateIndex rewrites _index.yaml from the reports on disk, or removes
// it when no report is left.
func (rs *LocalReportStore) RegenerateIndex(path m.Path) error {
	named, err := rs.readReports(path)
	if err != nil {
		return err
	}

	indexPath := filepath.Join(string(path), indexFileName)

	if len(named) == 0 {
		if err := os.Remove(indexPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove index: %w", err)
		}

		return nil
	}

	idx := indexEntry{TotalFiles: len(named)}

	for _, nr := range named {
		report := nr.report

		switch report.Kind {
		case m.OutcomeTransformed:
			idx.Transformed++
		case m.OutcomeEntry:
			idx.Entries++
		case m.OutcomeUnchanged:
			idx.Unchanged++
		case m.OutcomeSkipped:
			idx.Skipped++
		case m.OutcomeFailed:
			idx.Failed++
		}

		idx.Injections += len(report.Injections)
		idx.Files = append(idx.Files, indexFile{
			Path:       reportOrigin(report),
			Kind:       report.Kind,
			Injections: len(report.Injections),
			Report:     nr.name,
		})
	}

	data, err := yaml.Marshal(idx)
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}

	if err := os.WriteFile(indexPath, data, 0o600); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	return nil
}

type namedReport struct {
	name   string
	report m.Report
}

func (rs *LocalReportStore) readReports(path m.Path) ([]namedReport, error) {
	if path == "" {
		return nil, errors.New("reports path is empty")
	}

	entries, err := os.ReadDir(string(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read reports dir: %w", err)
	}

	var named []namedReport

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == indexFileName || !strings.HasSuffix(name, reportExt) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(string(path), name))
		if err != nil {
			return nil, fmt.Errorf("read report %s: %w", name, err)
		}

		var report m.Report
		if err := yaml.Unmarshal(data, &report); err != nil {
			return nil, fmt.Errorf("decode report %s: %w", name, err)
		}

		named = append(named, namedReport{name: name, report: report})
	}

	sort.SliceStable(named, func(i, j int) bool {
		pi, pj := reportOrigin(named[i].report), reportOrigin(named[j].report)
		if pi != pj {
			return pi < pj
		}

		return named[i].report.CreatedAt.Before(named[j].report.CreatedAt)
	})

	return named, nil
}

func (rs *LocalReportStore) computeReportHash(data []byte) string {
	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:])[:16]
}

func reportOrigin(report m.Report) m.Path {
	if report.Source.Origin == nil {
		return ""
	}

	return report.Source.Origin.Path
}
