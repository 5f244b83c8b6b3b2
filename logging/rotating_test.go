package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRotatingWriterWritesWeeklyFile(t *testing.T) {
	dir := t.TempDir()
	rw := NewRotatingWriter(dir, 4, 0)
	defer rw.Close()

	if _, err := rw.Write([]byte("first line\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := filepath.Join(dir, fmt.Sprintf("app-%s.log", weekKey(time.Now())))
	content, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("Expected weekly log file %s: %v", want, err)
	}
	if !strings.Contains(string(content), "first line") {
		t.Error("Expected the written line in the log file")
	}
}

func TestRotatingWriterSizeRollover(t *testing.T) {
	dir := t.TempDir()
	rw := NewRotatingWriter(dir, 4, 32)
	defer rw.Close()

	line := []byte("0123456789012345678901234567\n") // under the limit
	if _, err := rw.Write(line); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if _, err := rw.Write(line); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	week := weekKey(time.Now())
	rolled := filepath.Join(dir, fmt.Sprintf("app-%s_01.log", week))
	if _, err := os.Stat(rolled); err != nil {
		t.Errorf("Expected a numbered rollover file %s: %v", rolled, err)
	}
}

func TestRemoveExpired(t *testing.T) {
	dir := t.TempDir()
	rw := NewRotatingWriter(dir, 1, 0)
	defer rw.Close()

	old := filepath.Join(dir, "app-2020-W01.log")
	if err := os.WriteFile(old, []byte("ancient"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	stale := time.Now().Add(-30 * 24 * time.Hour)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatalf("Failed to age fixture: %v", err)
	}

	fresh := filepath.Join(dir, "app-2099-W01.log")
	if err := os.WriteFile(fresh, []byte("recent"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	if err := rw.removeExpired(); err != nil {
		t.Fatalf("removeExpired failed: %v", err)
	}

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("Expected the expired log file to be removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("Expected the fresh log file to survive")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"debug":   "DEBUG",
		"info":    "INFO",
		"warn":    "WARN",
		"error":   "ERROR",
		"unknown": "INFO",
	}

	for in, want := range cases {
		if got := ParseLevel(in).String(); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
