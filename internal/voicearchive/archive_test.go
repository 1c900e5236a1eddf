package voicearchive

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// buildOVK writes an entry-count header followed by 16-byte OVK records
// (length, offset, sampleNo, 4 bytes padding), then the payload bytes at
// the given offsets. Field order matches VisualArts' own table layout:
// length@0, offset@4, sample_no@8.
func buildOVK(t *testing.T, entries []Entry, payloadAt func(e Entry) []byte) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "voice.ovk")

	header := make([]byte, 4)
	binary.LittleEndian.PutUint32(header, uint32(len(entries)))

	table := make([]byte, len(entries)*ovkRecordSize)
	for i, e := range entries {
		rec := table[i*ovkRecordSize : (i+1)*ovkRecordSize]
		binary.LittleEndian.PutUint32(rec[0:4], e.Length)
		binary.LittleEndian.PutUint32(rec[4:8], e.Offset)
		binary.LittleEndian.PutUint32(rec[8:12], e.SampleNo)
	}

	maxEnd := uint32(4 + len(table))
	for _, e := range entries {
		if end := e.Offset + e.Length; end > maxEnd {
			maxEnd = end
		}
	}
	body := make([]byte, maxEnd)
	copy(body, header)
	copy(body[4:], table)
	for _, e := range entries {
		copy(body[e.Offset:], payloadAt(e))
	}

	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestArchiveOpenAndFind(t *testing.T) {
	entries := []Entry{
		{SampleNo: 30, Offset: 100, Length: 4},
		{SampleNo: 10, Offset: 104, Length: 4},
		{SampleNo: 20, Offset: 108, Length: 4},
	}
	path := buildOVK(t, entries, func(e Entry) []byte {
		return []byte{byte(e.SampleNo), 0, 0, 0}
	})

	a, err := Open(path, FormatOVK)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()

	e, ok := a.Find(20)
	if !ok {
		t.Fatal("Find(20): want found")
	}
	data, err := a.ReadEntry(e)
	if err != nil {
		t.Fatalf("ReadEntry: %v", err)
	}
	if data[0] != 20 {
		t.Fatalf("payload: got %d, want 20", data[0])
	}

	if _, ok := a.Find(999); ok {
		t.Fatal("Find(999): want not found")
	}
}

func TestArchiveFindBinarySearchOrdersBySampleNo(t *testing.T) {
	entries := []Entry{
		{SampleNo: 5, Offset: 100, Length: 1},
		{SampleNo: 1, Offset: 101, Length: 1},
		{SampleNo: 3, Offset: 102, Length: 1},
	}
	path := buildOVK(t, entries, func(e Entry) []byte { return []byte{byte(e.SampleNo)} })
	a, err := Open(path, FormatOVK)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()

	for _, want := range []uint32{1, 3, 5} {
		e, ok := a.Find(want)
		if !ok || e.SampleNo != want {
			t.Fatalf("Find(%d): got %v,%v", want, e, ok)
		}
	}
	if _, ok := a.Find(2); ok {
		t.Fatal("Find(2): no such entry, want not found")
	}
}

func TestLooseFilePathLayout(t *testing.T) {
	got := LooseFilePath("/games/foo/KOE", 9, 0)
	want := filepath.Join("/games/foo/KOE", "z0009", "z000900000.ogg")
	if got != want {
		t.Fatalf("LooseFilePath: got %q, want %q", got, want)
	}
}

func TestLooseFilePathSmallSample(t *testing.T) {
	got := LooseFilePath("/koe", 1, 7)
	want := filepath.Join("/koe", "z0001", "z000100007.ogg")
	if got != want {
		t.Fatalf("LooseFilePath: got %q, want %q", got, want)
	}
}
