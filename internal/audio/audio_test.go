package audio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func writeTestWAV(t *testing.T, path string, samples []int, sampleRate int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create wav: %v", err)
	}
	defer f.Close()

	buf := &gaudio.IntBuffer{
		Format: &gaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:   samples,
	}
	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	if err := enc.Write(buf); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
}

func TestDecodeWAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	samples := []int{0, 16384, -16384, 32767, -32768}
	writeTestWAV(t, path, samples, 16000)

	decoded, rate, err := DecodeWAV(path)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rate != 16000 {
		t.Fatalf("expected sample rate 16000, got %d", rate)
	}
	if len(decoded) != len(samples) {
		t.Fatalf("expected %d samples, got %d", len(samples), len(decoded))
	}
	if decoded[1] < 0.49 || decoded[1] > 0.51 {
		t.Fatalf("expected ~0.5 for half-scale sample, got %f", decoded[1])
	}
	if decoded[3] < 0.99 {
		t.Fatalf("expected near full scale, got %f", decoded[3])
	}
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	if err := os.WriteFile(path, []byte("this is not audio"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, _, err := DecodeWAV(path); err == nil {
		t.Fatal("expected error for non-wav input")
	}
}

func TestSubmissionCleanup(t *testing.T) {
	sub, f, err := NewSubmission()
	if err != nil {
		t.Fatalf("new submission: %v", err)
	}
	if err := sub.WriteTo(f, strings.NewReader("payload")); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	wavPath := sub.SourcePath + ".wav"
	if err := os.WriteFile(wavPath, []byte("wav"), 0o644); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	sub.WAVPath = wavPath

	sub.Cleanup()

	for _, p := range []string{sub.SourcePath, sub.WAVPath} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Fatalf("expected %s to be removed", p)
		}
	}

	// Cleanup is idempotent.
	sub.Cleanup()
}

func TestSubmissionIDsUnique(t *testing.T) {
	a, fa, err := NewSubmission()
	if err != nil {
		t.Fatalf("new submission: %v", err)
	}
	fa.Close()
	defer a.Cleanup()
	b, fb, err := NewSubmission()
	if err != nil {
		t.Fatalf("new submission: %v", err)
	}
	fb.Close()
	defer b.Cleanup()
	if a.ID == b.ID {
		t.Fatal("expected unique submission ids")
	}
}
