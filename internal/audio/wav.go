package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/hammamikhairi/pomoclock/internal/domain"
)

// Format describes 16-bit little-endian PCM, the only format the
// player accepts.
type Format struct {
	SampleRate   int
	ChannelCount int
}

// Beep defaults: a short A5 tone at the sample rate oto handles well.
const (
	DefaultToneHz     = 880
	DefaultSampleRate = 44100
	DefaultBeepLength = 800 * time.Millisecond
)

// DecodeWAV walks the RIFF chunks and returns the PCM payload together
// with its format. Only uncompressed 16-bit PCM is supported.
func DecodeWAV(wav []byte) ([]byte, Format, error) {
	var format Format
	if len(wav) < 44 {
		return nil, format, fmt.Errorf("%w: %d bytes is too short", domain.ErrInvalidWAV, len(wav))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return nil, format, fmt.Errorf("%w: missing RIFF/WAVE header", domain.ErrInvalidWAV)
	}

	var sawFormat bool
	pos := 12
	for pos+8 <= len(wav) {
		chunkID := string(wav[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))
		start := pos + 8

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 || start+16 > len(wav) {
				return nil, format, fmt.Errorf("%w: truncated fmt chunk", domain.ErrInvalidWAV)
			}
			audioFormat := binary.LittleEndian.Uint16(wav[start : start+2])
			channels := binary.LittleEndian.Uint16(wav[start+2 : start+4])
			rate := binary.LittleEndian.Uint32(wav[start+4 : start+8])
			bits := binary.LittleEndian.Uint16(wav[start+14 : start+16])
			if audioFormat != 1 || bits != 16 {
				return nil, format, fmt.Errorf("%w: want 16-bit PCM, got format %d with %d bits", domain.ErrInvalidWAV, audioFormat, bits)
			}
			if channels == 0 || rate == 0 {
				return nil, format, fmt.Errorf("%w: %d channels at %d Hz", domain.ErrInvalidWAV, channels, rate)
			}
			format = Format{SampleRate: int(rate), ChannelCount: int(channels)}
			sawFormat = true

		case "data":
			if !sawFormat {
				return nil, format, fmt.Errorf("%w: data chunk before fmt chunk", domain.ErrInvalidWAV)
			}
			end := start + chunkSize
			if end > len(wav) {
				end = len(wav)
			}
			return wav[start:end], format, nil
		}

		pos = start + chunkSize
		// Chunks are word-aligned.
		if chunkSize%2 != 0 {
			pos++
		}
	}

	return nil, format, fmt.Errorf("%w: data chunk not found", domain.ErrInvalidWAV)
}

// GenerateBeep renders a mono sine tone as a complete WAV file. The first
// and last few milliseconds are faded to avoid clicks.
func GenerateBeep(toneHz float64, length time.Duration, sampleRate int) []byte {
	if toneHz <= 0 {
		toneHz = DefaultToneHz
	}
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	samples := int(length.Seconds() * float64(sampleRate))
	fade := sampleRate / 100

	pcm := make([]byte, samples*2)
	for i := 0; i < samples; i++ {
		gain := 0.6
		if i < fade {
			gain *= float64(i) / float64(fade)
		} else if samples-i < fade {
			gain *= float64(samples-i) / float64(fade)
		}
		v := gain * math.Sin(2*math.Pi*toneHz*float64(i)/float64(sampleRate))
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(int16(v*math.MaxInt16)))
	}

	return encodeWAV(pcm, Format{SampleRate: sampleRate, ChannelCount: 1})
}

func encodeWAV(pcm []byte, f Format) []byte {
	const bitDepth = 16
	blockAlign := f.ChannelCount * bitDepth / 8

	var b bytes.Buffer
	b.Grow(44 + len(pcm))
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+len(pcm)))
	b.WriteString("WAVE")

	b.WriteString("fmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1))
	binary.Write(&b, binary.LittleEndian, uint16(f.ChannelCount))
	binary.Write(&b, binary.LittleEndian, uint32(f.SampleRate))
	binary.Write(&b, binary.LittleEndian, uint32(f.SampleRate*blockAlign))
	binary.Write(&b, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&b, binary.LittleEndian, uint16(bitDepth))

	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(len(pcm)))
	b.Write(pcm)
	return b.Bytes()
}
