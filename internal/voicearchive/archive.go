// Package voicearchive implements the OVK/NWK voice-archive readers and
// the loose-file KOE/ fallback of §4.6.6: each archive maps a numeric
// sample_no to a byte range of its own container file, found by binary
// search over a sorted entry table.
//
// Grounded on the teacher's cartridge header+bank table parser
// (internal/memory/cartridge.go: "fixed-size record table after a
// header, look up by index"), generalized from a linear bank index to a
// binary-searched sample_no key.
package voicearchive

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Entry is one archive record: the sample number it holds and the byte
// range within the archive's data section.
type Entry struct {
	SampleNo uint32
	Offset   uint32
	Length   uint32
}

// Format selects the archive's on-disk record layout.
type Format uint8

const (
	FormatOVK Format = iota // 16-byte records
	FormatNWK               // 12-byte records
)

// Archive is an opened OVK or NWK voice archive.
type Archive struct {
	f       *os.File
	entries []Entry // sorted by SampleNo
	format  Format
}

const ovkRecordSize = 16
const nwkRecordSize = 12

// Open parses an archive's header+entry table and leaves the file open
// for later Find/Read calls.
func Open(path string, format Format) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("voicearchive: open %s: %w", path, err)
	}
	a := &Archive{f: f, format: format}
	if err := a.readTable(); err != nil {
		f.Close()
		return nil, err
	}
	sort.Slice(a.entries, func(i, j int) bool { return a.entries[i].SampleNo < a.entries[j].SampleNo })
	return a, nil
}

func (a *Archive) readTable() error {
	var countBuf [4]byte
	if _, err := a.f.ReadAt(countBuf[:], 0); err != nil {
		return fmt.Errorf("voicearchive: read entry count: %w", err)
	}
	count := binary.LittleEndian.Uint32(countBuf[:])

	recSize := ovkRecordSize
	if a.format == FormatNWK {
		recSize = nwkRecordSize
	}

	table := make([]byte, int(count)*recSize)
	if _, err := a.f.ReadAt(table, 4); err != nil {
		return fmt.Errorf("voicearchive: read entry table: %w", err)
	}

	a.entries = make([]Entry, count)
	for i := 0; i < int(count); i++ {
		rec := table[i*recSize : (i+1)*recSize]
		switch a.format {
		case FormatOVK:
			a.entries[i] = Entry{
				Length:   binary.LittleEndian.Uint32(rec[0:4]),
				Offset:   binary.LittleEndian.Uint32(rec[4:8]),
				SampleNo: binary.LittleEndian.Uint32(rec[8:12]),
			}
		case FormatNWK:
			a.entries[i] = Entry{
				Length:   binary.LittleEndian.Uint32(rec[0:4]),
				Offset:   binary.LittleEndian.Uint32(rec[4:8]),
				SampleNo: binary.LittleEndian.Uint32(rec[8:12]),
			}
		}
	}
	return nil
}

// Find binary-searches for sampleNo and returns its entry.
func (a *Archive) Find(sampleNo uint32) (Entry, bool) {
	i := sort.Search(len(a.entries), func(i int) bool { return a.entries[i].SampleNo >= sampleNo })
	if i < len(a.entries) && a.entries[i].SampleNo == sampleNo {
		return a.entries[i], true
	}
	return Entry{}, false
}

// ReadEntry returns the raw bytes for an entry previously returned by Find.
func (a *Archive) ReadEntry(e Entry) ([]byte, error) {
	buf := make([]byte, e.Length)
	if _, err := a.f.ReadAt(buf, int64(e.Offset)); err != nil && err != io.EOF {
		return nil, fmt.Errorf("voicearchive: read entry sample %d: %w", e.SampleNo, err)
	}
	return buf, nil
}

func (a *Archive) Close() error { return a.f.Close() }

// LooseFilePath builds the loose-file fallback path for an
// (archive_no, sample_no) pair under a KOE/ directory, per §4.6.6:
// "KOE/z####/z####nnnnn.ogg" where #### is archiveNo zero-padded to 4
// digits and nnnnn is sampleNo zero-padded to 5 digits.
func LooseFilePath(koeDir string, archiveNo, sampleNo uint32) string {
	dir := fmt.Sprintf("z%04d", archiveNo)
	file := fmt.Sprintf("z%04d%05d.ogg", archiveNo, sampleNo)
	return filepath.Join(koeDir, dir, file)
}
