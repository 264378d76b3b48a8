// internal/storage/archive/archiver.go
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/adamdoherty-arc/magnus/internal/tax"
	"go.uber.org/zap"
)

// Archiver writes year-end artifacts to a storage backend.
type Archiver struct {
	store Storage
	log   *zap.Logger
}

// NewArchiver wires an archiver over a backend.
func NewArchiver(store Storage, log *zap.Logger) *Archiver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Archiver{store: store, log: log}
}

// SaveTaxReport archives a generated tax report and returns its path.
func (a *Archiver) SaveTaxReport(ctx context.Context, report *tax.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", core.WrapError(core.ErrArchiveFailed, err)
	}

	path := fmt.Sprintf("tax/%d/report_%s.json", report.Year, report.FilingStatus)
	if err := a.store.Write(ctx, path, data); err != nil {
		return "", err
	}

	a.log.Info("archived tax report",
		zap.Int("year", report.Year),
		zap.String("path", path))
	return path, nil
}

// LoadTaxReport reads back an archived report. A year/status pair that
// was never archived surfaces as core.ErrArchiveNotFound.
func (a *Archiver) LoadTaxReport(ctx context.Context, year int, status core.FilingStatus) (*tax.Report, error) {
	path := fmt.Sprintf("tax/%d/report_%s.json", year, status)
	data, err := a.store.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	var report tax.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, core.WrapError(core.ErrArchiveFailed, err)
	}
	return &report, nil
}

// ListTaxReports returns the archive paths of all reports for a year.
func (a *Archiver) ListTaxReports(ctx context.Context, year int) ([]string, error) {
	return a.store.List(ctx, fmt.Sprintf("tax/%d", year))
}

// ArchivedYears returns the distinct years with at least one archived
// report, ascending.
func (a *Archiver) ArchivedYears(ctx context.Context) ([]int, error) {
	paths, err := a.store.List(ctx, "tax")
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	var years []int
	for _, p := range paths {
		var year int
		if _, err := fmt.Sscanf(p, "tax/%d/", &year); err != nil {
			continue
		}
		if !seen[year] {
			seen[year] = true
			years = append(years, year)
		}
	}
	sort.Ints(years)
	return years, nil
}
