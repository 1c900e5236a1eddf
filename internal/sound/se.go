package sound

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"rlvm/internal/config"
	"rlvm/internal/media"
)

// SEPlayer resolves a #SE.<n> Gameexe descriptor to a decoded WAV chunk
// and plays it on the descriptor's configured channel, caching decoded
// chunks since the same effect commonly replays many times per scene
// (§4.6.2, §4.6.5).
type SEPlayer struct {
	mixer   *Mixer
	table   map[int]config.SEEntry
	loader  func(fileStem string) ([]byte, error)
	cache   *lru.Cache[string, []int16]
}

// NewSEPlayer builds a player from a parsed #SE table. loader resolves
// a file stem (as named in the Gameexe entry) to raw WAV bytes — the
// caller supplies this so the package stays decoupled from the
// FileFinder's search-path details.
func NewSEPlayer(mixer *Mixer, table map[int]config.SEEntry, loader func(fileStem string) ([]byte, error), cacheSize int) (*SEPlayer, error) {
	c, err := lru.New[string, []int16](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("sound: new SE cache: %w", err)
	}
	return &SEPlayer{mixer: mixer, table: table, loader: loader, cache: c}, nil
}

// Play decodes (or fetches from cache) SE number n and plays it on its
// configured channel (or overrideChannel, if >= 0).
func (p *SEPlayer) Play(n int, overrideChannel int) error {
	entry, ok := p.table[n]
	if !ok {
		return fmt.Errorf("sound: no #SE.%d entry", n)
	}
	samples, err := p.decoded(entry.FileStem)
	if err != nil {
		return err
	}
	ch := ChannelID(entry.Channel)
	if overrideChannel >= 0 {
		ch = ChannelID(overrideChannel)
	}
	return p.mixer.Play(ch, samples, false, 0)
}

func (p *SEPlayer) decoded(fileStem string) ([]int16, error) {
	if s, ok := p.cache.Get(fileStem); ok {
		return s, nil
	}
	raw, err := p.loader(fileStem)
	if err != nil {
		return nil, fmt.Errorf("sound: load SE %q: %w", fileStem, err)
	}
	dec, err := media.DecodeWAV(newByteReader(raw))
	if err != nil {
		return nil, fmt.Errorf("sound: decode SE %q: %w", fileStem, err)
	}
	defer dec.Close()
	samples, err := decodeAll(dec)
	if err != nil {
		return nil, err
	}
	p.cache.Add(fileStem, samples)
	return samples, nil
}
