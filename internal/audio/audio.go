// Package audio handles the transient audio artifacts of one analysis cycle:
// the downloaded source file, its WAV conversion, and PCM decoding.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"
	"github.com/google/uuid"
)

// ErrInvalidWAV marks files the decoder rejects.
var ErrInvalidWAV = errors.New("not a valid wav file")

// Submission is the transient artifact created for one inbound audio message.
// Both paths are exclusively owned by the handling cycle and must be removed
// before it returns.
type Submission struct {
	ID         string
	SourcePath string
	WAVPath    string
}

// NewSubmission creates the temp file for a download and returns the open
// handle so the caller can stream into it.
func NewSubmission() (*Submission, *os.File, error) {
	f, err := os.CreateTemp("", "speechbot_*.oga")
	if err != nil {
		return nil, nil, fmt.Errorf("create temp audio file: %w", err)
	}
	return &Submission{ID: uuid.NewString(), SourcePath: f.Name()}, f, nil
}

// Cleanup removes every file the submission owns. Missing files are fine.
func (s *Submission) Cleanup() {
	for _, path := range []string{s.SourcePath, s.WAVPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			// Best effort; the OS temp sweeper is the backstop.
			_ = err
		}
	}
}

// WriteTo streams r into the submission's source file.
func (s *Submission) WriteTo(f *os.File, r io.Reader) error {
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("write audio payload: %w", err)
	}
	return nil
}

// DecodeWAV reads a PCM WAV file into normalized float64 samples in [-1, 1]
// and returns the sample rate.
func DecodeWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, ErrInvalidWAV
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decode wav: %w", err)
	}
	if buf == nil || buf.Format == nil || len(buf.Data) == 0 {
		return nil, 0, ErrInvalidWAV
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) / scale
	}
	return samples, buf.Format.SampleRate, nil
}
