package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/mattn/go-shellwords"

	"github.com/AmirMakir/speechbot/internal/config"
)

// Converter shells out to ffmpeg to turn arbitrary inbound audio into the
// mono PCM WAV the recognizer and analyzer expect.
type Converter struct {
	cmd        []string
	timeout    time.Duration
	sampleRate int
	channels   int
}

func NewConverter(cfg config.AudioConfig) (*Converter, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(cfg.FFmpegCommand)
	if err != nil {
		return nil, fmt.Errorf("parse ffmpeg command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("ffmpeg command is empty")
	}
	return &Converter{
		cmd:        args,
		timeout:    time.Duration(cfg.ConvertTimeoutSec) * time.Second,
		sampleRate: cfg.SampleRate,
		channels:   cfg.Channels,
	}, nil
}

// Convert transcodes sourcePath and returns the WAV path. A failed conversion
// means the input was not audio ffmpeg understands; the caller treats that as
// an input error.
func (c *Converter) Convert(ctx context.Context, sourcePath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	outputPath := sourcePath + ".wav"
	base := c.cmd[0]
	args := append([]string{}, c.cmd[1:]...)
	args = append(args,
		"-y",
		"-i", sourcePath,
		"-ar", fmt.Sprintf("%d", c.sampleRate),
		"-ac", fmt.Sprintf("%d", c.channels),
		"-c:a", "pcm_s16le",
		outputPath,
	)

	command := exec.CommandContext(ctx, base, args...)
	var stderr bytes.Buffer
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("audio conversion timed out: %w", ctx.Err())
		}
		return "", fmt.Errorf("audio conversion failed: %w: %s", err, stderr.String())
	}
	return outputPath, nil
}
