package media

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WAVDecoder decodes uncompressed PCM WAV data (§4.6.5 "WAV chunks").
type WAVDecoder struct {
	data       []byte
	pos        int
	sampleRate int
	channels   int
	bitsPerSample int
}

// DecodeWAV parses a RIFF/WAVE container's header and returns a decoder
// positioned at the start of the data chunk.
func DecodeWAV(r io.Reader) (*WAVDecoder, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("media: read wav: %w", err)
	}
	if len(raw) < 12 || string(raw[0:4]) != "RIFF" || string(raw[8:12]) != "WAVE" {
		return nil, fmt.Errorf("media: not a RIFF/WAVE file")
	}

	d := &WAVDecoder{}
	pos := 12
	var dataStart, dataLen int
	for pos+8 <= len(raw) {
		id := string(raw[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(raw[pos+4 : pos+8]))
		body := pos + 8
		switch id {
		case "fmt ":
			if body+16 > len(raw) {
				return nil, fmt.Errorf("media: truncated fmt chunk")
			}
			d.channels = int(binary.LittleEndian.Uint16(raw[body+2 : body+4]))
			d.sampleRate = int(binary.LittleEndian.Uint32(raw[body+4 : body+8]))
			d.bitsPerSample = int(binary.LittleEndian.Uint16(raw[body+14 : body+16]))
		case "data":
			dataStart = body
			dataLen = size
		}
		pos = body + size + size%2
	}
	if dataStart == 0 {
		return nil, fmt.Errorf("media: wav has no data chunk")
	}
	if dataStart+dataLen > len(raw) {
		dataLen = len(raw) - dataStart
	}
	d.data = raw[dataStart : dataStart+dataLen]
	if d.bitsPerSample != 16 {
		return nil, fmt.Errorf("media: only 16-bit PCM WAV is supported, got %d-bit", d.bitsPerSample)
	}
	return d, nil
}

func (d *WAVDecoder) Read(buf []byte) (int, error) {
	if d.pos >= len(d.data) {
		return 0, io.EOF
	}
	n := copy(buf, d.data[d.pos:])
	d.pos += n
	return n, nil
}

func (d *WAVDecoder) SeekSample(sample int64) error {
	bytesPerSample := int64(2 * d.channels)
	offset := sample * bytesPerSample
	if offset < 0 || offset > int64(len(d.data)) {
		return fmt.Errorf("media: seek sample %d out of range", sample)
	}
	d.pos = int(offset)
	return nil
}

func (d *WAVDecoder) SampleRate() int { return d.sampleRate }
func (d *WAVDecoder) Channels() int   { return d.channels }
func (d *WAVDecoder) Close() error    { d.data = nil; return nil }

var _ Decoder = (*WAVDecoder)(nil)
