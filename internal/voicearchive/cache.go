package voicearchive

import (
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
)

// idArchiveScale is the §4.6.6 id encoding: id = archive_no*idArchiveScale
// + sample_no, so VoiceCache.Find's caller-facing id carries both the
// archive and the sample number it names within it.
const idArchiveScale = 100000

// VoiceCache resolves a voice id to its decoded bytes, trying the
// matching opened archive before falling back to a loose KOE/ file, and
// caches the result so repeated playback of the same line (a common
// case during replay/backlog) doesn't re-hit disk (§4.6.6).
type VoiceCache struct {
	archives map[uint32]*Archive // keyed by archive_no
	koeDir   string
	cache    *lru.Cache[uint32, []byte]
}

// NewVoiceCache wires a set of already-opened archives, keyed by their
// archive_no, plus the game's KOE/ directory for the loose-file
// fallback. capacity bounds the number of decoded voice clips kept
// resident.
func NewVoiceCache(archives map[uint32]*Archive, koeDir string, capacity int) (*VoiceCache, error) {
	c, err := lru.New[uint32, []byte](capacity)
	if err != nil {
		return nil, fmt.Errorf("voicearchive: new cache: %w", err)
	}
	return &VoiceCache{archives: archives, koeDir: koeDir, cache: c}, nil
}

// Find returns the raw audio bytes for id = archive_no*100000 +
// sample_no, checking the cache, then the archive named by archive_no,
// then the loose-file fallback.
func (v *VoiceCache) Find(id uint32) ([]byte, error) {
	if data, ok := v.cache.Get(id); ok {
		return data, nil
	}

	archiveNo := id / idArchiveScale
	sampleNo := id % idArchiveScale

	if a, ok := v.archives[archiveNo]; ok {
		if entry, ok := a.Find(sampleNo); ok {
			data, err := a.ReadEntry(entry)
			if err != nil {
				return nil, err
			}
			v.cache.Add(id, data)
			return data, nil
		}
	}

	path := LooseFilePath(v.koeDir, archiveNo, sampleNo)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("voicearchive: sample %d (archive %d, sample_no %d) not found in archive or loose file %s: %w", id, archiveNo, sampleNo, path, err)
	}
	v.cache.Add(id, data)
	return data, nil
}
