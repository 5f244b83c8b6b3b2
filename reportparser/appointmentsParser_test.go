package reportparser

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

const samplePayload = `{
	"data": [
		{
			"appointmentId": "A-2001",
			"appointmentReason": "Limping",
			"clientFirstName": "Jo",
			"clientLastName": "Pérez",
			"petName": "Môka",
			"resourceName": "Dr. Chen",
			"scribes": [
				{"scribeTitle": "Lameness Exam", "transcriptionText": "Grade 2/5 lameness left forelimb."}
			]
		}
	]
}`

func writeFile(t *testing.T, dir, name string, content []byte) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), content, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func TestParseAllAppointments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "visit-b.json", []byte(samplePayload))
	writeFile(t, dir, "visit-a.json", []byte(samplePayload))
	writeFile(t, dir, "notes.md", []byte("not an export"))

	bundles, err := ParseAllAppointments(dir)
	if err != nil {
		t.Fatalf("ParseAllAppointments failed: %v", err)
	}

	if len(bundles) != 2 {
		t.Fatalf("Expected 2 bundles, got %d", len(bundles))
	}

	// Output is sorted by stem regardless of directory order
	if bundles[0].Stem != "visit-a" || bundles[1].Stem != "visit-b" {
		t.Errorf("Expected sorted stems, got %q, %q", bundles[0].Stem, bundles[1].Stem)
	}

	appt := bundles[0].Payload.Data[0]
	if appt.AppointmentID != "A-2001" {
		t.Errorf("Expected appointment A-2001, got %q", appt.AppointmentID)
	}
	if appt.ClientName() != "Jo Pérez" {
		t.Errorf("Expected client name to join, got %q", appt.ClientName())
	}
	if bundles[0].SourceFile != "visit-a.json" {
		t.Errorf("Expected source file to be recorded, got %q", bundles[0].SourceFile)
	}
}

func TestParseAllAppointmentsSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.json", []byte(samplePayload))
	writeFile(t, dir, "broken.json", []byte("{definitely not json"))

	bundles, err := ParseAllAppointments(dir)
	if err != nil {
		t.Fatalf("ParseAllAppointments failed: %v", err)
	}

	if len(bundles) != 1 || bundles[0].Stem != "good" {
		t.Fatalf("Expected only the good bundle, got %d bundles", len(bundles))
	}
}

func TestParseAllAppointmentsMissingDir(t *testing.T) {
	if _, err := ParseAllAppointments(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected an error for a missing input directory")
	}
}

func TestParseWindows1252Export(t *testing.T) {
	// Encode a payload with accented characters the way old practice
	// management exports do.
	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(samplePayload))
	if err != nil {
		t.Fatalf("Failed to encode fixture: %v", err)
	}

	dir := t.TempDir()
	writeFile(t, dir, "legacy.txt", encoded)

	bundles, err := ParseAllAppointments(dir)
	if err != nil {
		t.Fatalf("ParseAllAppointments failed: %v", err)
	}
	if len(bundles) != 1 {
		t.Fatalf("Expected 1 bundle, got %d", len(bundles))
	}

	appt := bundles[0].Payload.Data[0]
	if appt.PetName != "Môka" {
		t.Errorf("Expected decoded pet name Môka, got %q", appt.PetName)
	}
	if appt.ClientLastName != "Pérez" {
		t.Errorf("Expected decoded client name Pérez, got %q", appt.ClientLastName)
	}
}

func TestBuildAppointmentIndex(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "visit.json", []byte(samplePayload))

	bundles, err := ParseAllAppointments(dir)
	if err != nil {
		t.Fatalf("ParseAllAppointments failed: %v", err)
	}

	index := BuildAppointmentIndex(bundles)
	if len(index) != 1 {
		t.Fatalf("Expected 1 indexed appointment, got %d", len(index))
	}
	if _, ok := index["A-2001"]; !ok {
		t.Error("Expected appointment A-2001 in the index")
	}
}

func TestDecodeExportBytesPassThrough(t *testing.T) {
	utf8Content := []byte(`{"data": []}`)
	decoded, err := decodeExportBytes(utf8Content, ".json")
	if err != nil {
		t.Fatalf("decodeExportBytes failed: %v", err)
	}
	if string(decoded) != string(utf8Content) {
		t.Error("Expected valid UTF-8 JSON to pass through unchanged")
	}
}

func TestDecodeExportBytesTxtAlwaysWindows1252(t *testing.T) {
	// 0xC3 0xA9 is valid UTF-8 ("é") but in a .txt export those bytes are
	// the Windows-1252 characters "Ã©". The extension rule must win.
	raw := []byte{0xC3, 0xA9}

	decoded, err := decodeExportBytes(raw, ".txt")
	if err != nil {
		t.Fatalf("decodeExportBytes failed: %v", err)
	}
	if string(decoded) != "Ã©" {
		t.Errorf("Expected .txt bytes decoded as Windows-1252, got %q", string(decoded))
	}

	asJSON, err := decodeExportBytes(raw, ".json")
	if err != nil {
		t.Fatalf("decodeExportBytes failed: %v", err)
	}
	if string(asJSON) != "é" {
		t.Errorf("Expected valid UTF-8 .json bytes untouched, got %q", string(asJSON))
	}
}
