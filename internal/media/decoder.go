// Package media implements the audio codec interface (§3.9a) the sound
// mixer decodes against: a small Decoder contract plus concrete WAV,
// Ogg Vorbis, and MP3 decoders, and a partial NWA subset decoder for the
// archive format the voice/BGM packs actually ship in.
//
// Grounded on the teacher's AudioChannel sample-stream model
// (internal/apu/apu.go) for "a channel consumes int16 samples at a
// fixed rate", generalized from synthesized waveforms to decoded file
// formats. Third-party decoders (attested pack dependencies via
// other_examples/manifests/JetSetIlly-Gopher2600/go.mod,
// .../NaniteFactory-visual/go.mod, .../bradford-hamilton-chippy/go.mod):
// github.com/hajimehoshi/go-mp3 and github.com/jfreymuth/oggvorbis.
package media

import "io"

// Decoder streams interleaved int16 PCM samples from an audio source.
type Decoder interface {
	// Read fills buf with interleaved int16 samples (as little-endian
	// bytes, matching go-mp3/oggvorbis's io.Reader contract) and
	// returns the byte count read.
	Read(buf []byte) (int, error)

	// SeekSample seeks to the given sample index (per channel), used by
	// BGM loop points (§4.6.4).
	SeekSample(sample int64) error

	SampleRate() int
	Channels() int

	io.Closer
}
