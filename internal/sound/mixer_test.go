package sound

import "testing"

func TestMixerPlayStopOutOfRangeChannel(t *testing.T) {
	m := NewMixer()
	if err := m.Play(TotalChannels, []int16{1}, false, 0); err == nil {
		t.Fatal("Play on an out-of-range channel: want error")
	}
	if err := m.Stop(-1); err == nil {
		t.Fatal("Stop on a negative channel: want error")
	}
}

func TestMixerPlayAndIsPlaying(t *testing.T) {
	m := NewMixer()
	if err := m.Play(BaseChannelStart, []int16{100, 200}, false, 0); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if !m.IsPlaying(BaseChannelStart) {
		t.Fatal("want channel playing after Play")
	}
	if err := m.Stop(BaseChannelStart); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if m.IsPlaying(BaseChannelStart) {
		t.Fatal("want channel stopped after Stop")
	}
}

func TestMixerMixFrameSumsChannelsAndAppliesVolume(t *testing.T) {
	m := NewMixer()
	m.MasterVolume = 1
	m.SEVolume = 1
	if err := m.Play(BaseChannelStart, []int16{10000}, true, 0); err != nil {
		t.Fatalf("Play base: %v", err)
	}
	if err := m.Play(BaseChannelStart+1, []int16{5000}, true, 0); err != nil {
		t.Fatalf("Play base+1: %v", err)
	}

	out := make([]int16, 1)
	m.MixFrame(out, 0)
	if out[0] != 15000 {
		t.Fatalf("mixed sample: got %d, want 15000", out[0])
	}
}

func TestMixerMixFrameClampsOverflow(t *testing.T) {
	m := NewMixer()
	m.Play(BaseChannelStart, []int16{32000}, true, 0)
	m.Play(BaseChannelStart+1, []int16{32000}, true, 0)

	out := make([]int16, 1)
	m.MixFrame(out, 0)
	if out[0] != 32767 {
		t.Fatalf("clamped sample: got %d, want 32767", out[0])
	}
}

func TestMixerKoeChannelUsesPCMVolumeNotSE(t *testing.T) {
	m := NewMixer()
	m.SEVolume = 0
	m.PCMVolume = 1
	m.MasterVolume = 1
	if err := m.Play(KoeChannelStart, []int16{1000}, true, 0); err != nil {
		t.Fatalf("Play koe: %v", err)
	}

	out := make([]int16, 1)
	m.MixFrame(out, 0)
	if out[0] != 1000 {
		t.Fatalf("KOE channel should scale by PCMVolume, not SEVolume: got %d, want 1000", out[0])
	}
}

func TestMixerFadeToZeroStopsChannelDuringMix(t *testing.T) {
	m := NewMixer()
	m.Play(BaseChannelStart, []int16{1000}, true, 0)
	if err := m.Fade(BaseChannelStart, 0, 0, 100); err != nil {
		t.Fatalf("Fade: %v", err)
	}

	out := make([]int16, 1)
	m.MixFrame(out, 100) // at fade end
	if m.IsPlaying(BaseChannelStart) {
		t.Fatal("channel should stop once its fade-to-zero completes")
	}
}
