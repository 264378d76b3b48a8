// internal/storage/archive/localfs_test.go
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/adamdoherty-arc/magnus/internal/tax"
)

func TestLocalFS_ImplementsStorage(t *testing.T) {
	var _ Storage = (*LocalFS)(nil)
}

func TestLocalFS_ReportRoundTrip(t *testing.T) {
	lfs, err := NewLocalFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalFS: %v", err)
	}
	ctx := context.Background()

	report := tax.Report{Year: 2025, FilingStatus: core.FilingSingle}
	report.PremiumIncome = 4200.50
	data, _ := json.Marshal(report)

	if err := lfs.Write(ctx, "tax/2025/report_single.json", data); err != nil {
		t.Fatalf("Write: %v", err)
	}

	raw, err := lfs.Read(ctx, "tax/2025/report_single.json")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	var got tax.Report
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Year != 2025 || got.PremiumIncome != 4200.50 {
		t.Errorf("report did not round-trip: %+v", got)
	}
}

func TestLocalFS_ReadMissing(t *testing.T) {
	lfs, _ := NewLocalFS(t.TempDir())

	_, err := lfs.Read(context.Background(), "tax/1999/report_single.json")
	if !errors.Is(err, core.ErrArchiveNotFound) {
		t.Errorf("expected ErrArchiveNotFound, got %v", err)
	}
}

func TestLocalFS_WriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	lfs, _ := NewLocalFS(dir)
	ctx := context.Background()

	if err := lfs.Write(ctx, "tax/2025/report_single.json", []byte(`{}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "tax", "2025"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestLocalFS_ListYearPartition(t *testing.T) {
	lfs, _ := NewLocalFS(t.TempDir())
	ctx := context.Background()

	lfs.Write(ctx, "tax/2024/report_single.json", []byte(`{}`))
	lfs.Write(ctx, "tax/2025/report_single.json", []byte(`{}`))
	lfs.Write(ctx, "tax/2025/report_married_joint.json", []byte(`{}`))

	paths, err := lfs.List(ctx, "tax/2025")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{
		"tax/2025/report_married_joint.json",
		"tax/2025/report_single.json",
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %d: %v", len(want), len(paths), paths)
	}
	for i, p := range paths {
		if p != want[i] {
			t.Errorf("path %d: expected %s, got %s", i, want[i], p)
		}
	}

	// Missing partitions list as empty, not as an error.
	empty, err := lfs.List(ctx, "tax/1999")
	if err != nil {
		t.Fatalf("List missing year: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty listing, got %v", empty)
	}
}

func TestLocalFS_DeleteAndExists(t *testing.T) {
	lfs, _ := NewLocalFS(t.TempDir())
	ctx := context.Background()

	lfs.Write(ctx, "tax/2025/report_single.json", []byte(`{}`))

	exists, err := lfs.Exists(ctx, "tax/2025/report_single.json")
	if err != nil || !exists {
		t.Fatalf("expected report to exist, got %v %v", exists, err)
	}

	if err := lfs.Delete(ctx, "tax/2025/report_single.json"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	exists, err = lfs.Exists(ctx, "tax/2025/report_single.json")
	if err != nil || exists {
		t.Errorf("expected report gone, got %v %v", exists, err)
	}

	if err := lfs.Delete(ctx, "tax/2025/report_single.json"); !errors.Is(err, core.ErrArchiveNotFound) {
		t.Errorf("expected ErrArchiveNotFound on double delete, got %v", err)
	}
}
