package sound

import (
	"fmt"
	"path/filepath"
	"strings"

	"rlvm/internal/config"
	"rlvm/internal/media"
)

// bgmChannel is the first of the two adjacent channels (bgmChannel and
// bgmChannel+1) the streamer alternates between; BGM is a single logical
// stream, unlike SE's many simultaneous channels.
const bgmChannel ChannelID = ExtraChannelStart

// BGMStreamer plays named #DSTRACK entries, honoring their loop point
// and supporting a queued-track crossfade transition (§4.6.4): when a
// new track is requested while one is playing, the old track fades out
// while the new one fades in, both driven by the mixer's per-channel
// fade (generalized here to two adjacent channels since the mixer fades
// per-channel, not per-stream).
type BGMStreamer struct {
	mixer   *Mixer
	tracks  map[string]config.DSTrack
	cdOnly  map[string]bool
	loader  func(filePath string) ([]byte, error)

	current string
	currentChannel ChannelID
	altChannel     ChannelID
}

// NewBGMStreamer builds a streamer over a parsed #DSTRACK table. loader
// resolves a track's FilePath to raw file bytes. cdOnlyNames is the
// result of config.Gameexe.CDTrackNames: Play checks it only for names
// with no #DSTRACK entry, and rejects those found there with a
// CD-specific error rather than the generic "no such track" one (§4.6.4).
func NewBGMStreamer(mixer *Mixer, tracks map[string]config.DSTrack, cdOnlyNames []string, loader func(string) ([]byte, error)) *BGMStreamer {
	cdOnly := make(map[string]bool, len(cdOnlyNames))
	for _, name := range cdOnlyNames {
		cdOnly[name] = true
	}
	return &BGMStreamer{
		mixer:          mixer,
		tracks:         tracks,
		cdOnly:         cdOnly,
		loader:         loader,
		currentChannel: ExtraChannelStart,
		altChannel:     ExtraChannelStart + 1,
	}
}

// Play starts (or crossfades to) the named track. fadeMs of 0 means an
// immediate cut.
func (s *BGMStreamer) Play(name string, nowMs int64, fadeMs int64) error {
	track, ok := s.tracks[name]
	if !ok {
		if s.cdOnly[name] {
			return fmt.Errorf("sound: %q is a CD-audio track; CD audio is unsupported", name)
		}
		return fmt.Errorf("sound: no #DSTRACK entry named %q", name)
	}
	samples, sampleRate, err := s.decodeTrack(track)
	_ = sampleRate
	if err != nil {
		return err
	}

	loop := track.LoopSampleOffset != config.StopAtEnd
	loopStart := 0
	if loop {
		loopStart = int(track.LoopSampleOffset)
	}

	next := s.altChannel
	if s.current == "" || fadeMs <= 0 {
		if err := s.mixer.Play(next, samples, loop, loopStart); err != nil {
			return err
		}
		if s.current != "" {
			s.mixer.Stop(s.currentChannel)
		}
	} else {
		s.mixer.Fade(s.currentChannel, nowMs, 0, fadeMs)
		if err := s.mixer.Play(next, samples, loop, loopStart); err != nil {
			return err
		}
		// Start the new track silent so the fade ramps it up from 0.
		s.mixer.mu.Lock()
		s.mixer.channels[next].Volume = 0
		s.mixer.mu.Unlock()
		s.mixer.Fade(next, nowMs, 1, fadeMs)
	}
	s.currentChannel, s.altChannel = next, s.currentChannel
	s.current = name
	return nil
}

// Stop fades the current track out (or cuts immediately if fadeMs <= 0).
func (s *BGMStreamer) Stop(nowMs int64, fadeMs int64) {
	if s.current == "" {
		return
	}
	if fadeMs <= 0 {
		s.mixer.Stop(s.currentChannel)
	} else {
		s.mixer.Fade(s.currentChannel, nowMs, 0, fadeMs)
	}
	s.current = ""
}

// Current reports the name of the currently playing track, or "".
func (s *BGMStreamer) Current() string { return s.current }

func (s *BGMStreamer) decodeTrack(track config.DSTrack) ([]int16, int, error) {
	raw, err := s.loader(track.FilePath)
	if err != nil {
		return nil, 0, fmt.Errorf("sound: load BGM track %q: %w", track.Name, err)
	}

	var dec media.Decoder
	switch strings.ToLower(filepath.Ext(track.FilePath)) {
	case ".wav":
		dec, err = media.DecodeWAV(newByteReader(raw))
	case ".ogg":
		dec, err = media.DecodeOgg(newByteReadCloser(raw))
	case ".mp3":
		dec, err = media.DecodeMP3(newByteReadCloser(raw))
	case ".nwa":
		dec, err = media.DecodeNWA(newByteReader(raw))
	default:
		return nil, 0, fmt.Errorf("sound: unrecognized BGM file extension %q", track.FilePath)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("sound: decode BGM track %q: %w", track.Name, err)
	}
	defer dec.Close()

	if track.FromSample > 0 {
		if err := dec.SeekSample(track.FromSample); err != nil {
			return nil, 0, err
		}
	}

	samples, err := decodeAll(dec)
	if err != nil {
		return nil, 0, err
	}
	return samples, dec.SampleRate(), nil
}
