package media

import (
	"encoding/binary"
	"fmt"
	"io"
)

// nwaHeader is the fixed 44-byte NWA container header.
type nwaHeader struct {
	channels      int16
	bitsPerSample int16
	sampleRate    int32
	compression   int32 // -1 = uncompressed PCM; other values are the
	                    // run-length/ADPCM-family compression this
	                    // decoder does not implement (§3.9a non-goal).
	blockCount    int32
	sampleCount   int32
	blockSize     int32
	restSize      int32
}

// NWADecoder decodes the NWA archive container. Only compression level
// -1 (raw PCM, stored uncompressed) is supported; any other compression
// value is a clear, named error rather than a silent garbage decode
// (§3.9a non-goal: "bit-exact decode of every NWA compression level").
type NWADecoder struct {
	header nwaHeader
	pcm    []byte
	pos    int
}

// DecodeNWA parses an NWA container and returns a decoder, or an error
// naming the unsupported compression level if the file isn't raw PCM.
func DecodeNWA(r io.Reader) (*NWADecoder, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("media: read nwa: %w", err)
	}
	if len(raw) < 44 {
		return nil, fmt.Errorf("media: nwa header truncated")
	}
	h := nwaHeader{
		channels:      int16(binary.LittleEndian.Uint16(raw[0:2])),
		bitsPerSample: int16(binary.LittleEndian.Uint16(raw[2:4])),
		compression:   int32(binary.LittleEndian.Uint32(raw[4:8])),
		blockCount:    int32(binary.LittleEndian.Uint32(raw[8:12])),
		sampleRate:    int32(binary.LittleEndian.Uint32(raw[12:16])),
		sampleCount:   int32(binary.LittleEndian.Uint32(raw[32:36])),
		blockSize:     int32(binary.LittleEndian.Uint32(raw[36:40])),
		restSize:      int32(binary.LittleEndian.Uint32(raw[40:44])),
	}
	if h.compression != -1 {
		return nil, fmt.Errorf("media: nwa compression level %d is not supported (only raw PCM)", h.compression)
	}
	if h.bitsPerSample != 16 {
		return nil, fmt.Errorf("media: nwa bits-per-sample %d unsupported", h.bitsPerSample)
	}
	body := raw[44:]
	return &NWADecoder{header: h, pcm: body}, nil
}

func (d *NWADecoder) Read(buf []byte) (int, error) {
	if d.pos >= len(d.pcm) {
		return 0, io.EOF
	}
	n := copy(buf, d.pcm[d.pos:])
	d.pos += n
	return n, nil
}

func (d *NWADecoder) SeekSample(sample int64) error {
	bytesPerSample := int64(2 * d.header.channels)
	offset := sample * bytesPerSample
	if offset < 0 || offset > int64(len(d.pcm)) {
		return fmt.Errorf("media: seek sample %d out of range", sample)
	}
	d.pos = int(offset)
	return nil
}

func (d *NWADecoder) SampleRate() int { return int(d.header.sampleRate) }
func (d *NWADecoder) Channels() int   { return int(d.header.channels) }
func (d *NWADecoder) Close() error    { d.pcm = nil; return nil }

var _ Decoder = (*NWADecoder)(nil)
