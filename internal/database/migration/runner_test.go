package migration

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadDir_SortsAndSkipsUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "V2__badges.sql", "CREATE TABLE badges (id uuid);")
	writeFile(t, dir, "V1__init.sql", "CREATE TABLE users (id uuid);")
	writeFile(t, dir, "README.md", "notes")

	migs, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 || migs[0].Version != 1 || migs[1].Name != "badges" {
		t.Fatalf("unexpected migrations: %+v", migs)
	}
	if migs[0].Checksum == "" || migs[0].Checksum == migs[1].Checksum {
		t.Fatalf("expected distinct checksums")
	}
}

func TestLoadDir_RejectsDuplicatesAndEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "V1__a.sql", "SELECT 1;")
	writeFile(t, dir, "V01__b.sql", "SELECT 2;")
	if _, err := LoadDir(dir); err == nil {
		t.Fatalf("expected duplicate version error")
	}

	dir = t.TempDir()
	writeFile(t, dir, "V1__empty.sql", "   ")
	if _, err := LoadDir(dir); err == nil {
		t.Fatalf("expected empty file error")
	}
}

func TestLoadDir_MissingDirIsEmpty(t *testing.T) {
	migs, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil || len(migs) != 0 {
		t.Fatalf("expected no migrations, got %v %v", migs, err)
	}
}

func TestPending(t *testing.T) {
	migs := []Migration{{Version: 1, Checksum: "a"}, {Version: 2, Checksum: "b"}}

	out, err := Pending(migs, map[int64]string{1: "a"})
	if err != nil || len(out) != 1 || out[0].Version != 2 {
		t.Fatalf("unexpected pending: %+v %v", out, err)
	}

	if _, err := Pending(migs, map[int64]string{1: "changed"}); !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
}
