package media

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

// buildNWA constructs a 44-byte NWA header around raw PCM body bytes.
func buildNWA(channels, bits int, sampleRate, compression int32, body []byte) []byte {
	h := make([]byte, 44)
	binary.LittleEndian.PutUint16(h[0:2], uint16(channels))
	binary.LittleEndian.PutUint16(h[2:4], uint16(bits))
	binary.LittleEndian.PutUint32(h[4:8], uint32(compression))
	binary.LittleEndian.PutUint32(h[8:12], 0) // blockCount
	binary.LittleEndian.PutUint32(h[12:16], uint32(sampleRate))
	binary.LittleEndian.PutUint32(h[32:36], uint32(len(body)/2)) // sampleCount
	binary.LittleEndian.PutUint32(h[36:40], 0)                   // blockSize
	binary.LittleEndian.PutUint32(h[40:44], 0)                   // restSize
	return append(h, body...)
}

func TestDecodeNWARawPCM(t *testing.T) {
	var body bytes.Buffer
	binary.Write(&body, binary.LittleEndian, int16(100))
	binary.Write(&body, binary.LittleEndian, int16(200))

	raw := buildNWA(1, 16, 22050, -1, body.Bytes())
	d, err := DecodeNWA(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("DecodeNWA: %v", err)
	}
	if d.SampleRate() != 22050 {
		t.Fatalf("SampleRate: got %d, want 22050", d.SampleRate())
	}
	if d.Channels() != 1 {
		t.Fatalf("Channels: got %d, want 1", d.Channels())
	}

	out := make([]byte, 4)
	n, err := d.Read(out)
	if err != nil || n != 4 {
		t.Fatalf("Read: n=%d err=%v", n, err)
	}
	if _, err := d.Read(out); err != io.EOF {
		t.Fatalf("Read past end: got %v, want io.EOF", err)
	}
}

func TestDecodeNWARejectsCompression(t *testing.T) {
	raw := buildNWA(1, 16, 22050, 1, []byte{0, 0})
	if _, err := DecodeNWA(bytes.NewReader(raw)); err == nil {
		t.Fatal("want error naming the unsupported compression level")
	}
}

func TestDecodeNWARejectsNon16Bit(t *testing.T) {
	raw := buildNWA(1, 8, 22050, -1, []byte{0})
	if _, err := DecodeNWA(bytes.NewReader(raw)); err == nil {
		t.Fatal("want error for non-16-bit NWA")
	}
}

func TestDecodeNWATruncatedHeader(t *testing.T) {
	if _, err := DecodeNWA(bytes.NewReader(make([]byte, 10))); err == nil {
		t.Fatal("want error for a header shorter than 44 bytes")
	}
}

func TestNWASeekSample(t *testing.T) {
	var body bytes.Buffer
	for _, s := range []int16{1, 2, 3, 4} {
		binary.Write(&body, binary.LittleEndian, s)
	}
	raw := buildNWA(2, 16, 44100, -1, body.Bytes())
	d, err := DecodeNWA(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("DecodeNWA: %v", err)
	}
	if err := d.SeekSample(1); err != nil {
		t.Fatalf("SeekSample: %v", err)
	}
	out := make([]byte, 4)
	d.Read(out)
	if got := int16(binary.LittleEndian.Uint16(out[0:2])); got != 3 {
		t.Fatalf("sample after seeking one stereo frame: got %d, want 3", got)
	}
}
