package host

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"rlvm/internal/sound"
)

// AudioOut owns the SDL2 audio device and pulls mixed frames from a
// sound.Mixer, grounded on the teacher's audio-device-open/queue-audio
// idiom in internal/ui/ui.go (converted there from the emulator's
// float32 APU buffer; here from the mixer's int16 stereo frames).
type AudioOut struct {
	dev        sdl.AudioDeviceID
	sampleRate int
	nowMs      func() int64
}

const audioSamplesPerFrame = 735 // 44100 Hz / 60 fps, matches the teacher's buffer sizing

// NewAudioOut opens a 44.1kHz stereo 16-bit device. If no device is
// available, it returns a disabled AudioOut whose QueueFrame is a no-op
// (audio is optional, per the teacher's "continue without it" fallback).
func NewAudioOut(nowMs func() int64) *AudioOut {
	spec := sdl.AudioSpec{
		Freq:     44100,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 2,
		Samples:  uint16(audioSamplesPerFrame),
	}
	dev, err := sdl.OpenAudioDevice("", false, &spec, nil, 0)
	if err != nil {
		return &AudioOut{nowMs: nowMs}
	}
	sdl.PauseAudioDevice(dev, false)
	return &AudioOut{dev: dev, sampleRate: 44100, nowMs: nowMs}
}

// QueueFrame mixes one frame's worth of audio from mixer and queues it,
// skipping the push once the device's queue already holds more than
// ~2 frames to avoid unbounded latency growth (mirrors the teacher's
// "queue full, skip this frame" backpressure).
func (a *AudioOut) QueueFrame(mixer *sound.Mixer) error {
	if a.dev == 0 {
		return nil
	}
	buf := make([]int16, audioSamplesPerFrame*2)
	mixer.MixFrame(buf, a.nowMs())

	queued := sdl.GetQueuedAudioSize(a.dev)
	maxQueued := uint32(len(buf) * 2 * 2) // 2 bytes/sample, ~2 frames worth
	if queued >= maxQueued {
		return nil
	}

	bytes := make([]byte, len(buf)*2)
	for i, s := range buf {
		bytes[i*2] = byte(uint16(s))
		bytes[i*2+1] = byte(uint16(s) >> 8)
	}
	if err := sdl.QueueAudio(a.dev, bytes); err != nil {
		return fmt.Errorf("host: queue audio: %w", err)
	}
	return nil
}

// Close shuts down the audio device, if one was opened.
func (a *AudioOut) Close() {
	if a.dev != 0 {
		sdl.CloseAudioDevice(a.dev)
	}
}
