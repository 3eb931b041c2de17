package voice

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// Synthesizer converts narration text into an audio artifact on disk.
// Implementations signal failure per call; callers retry or skip the
// topic independently.
type Synthesizer interface {
	// Synthesize renders text with the given voice into outputPath
	Synthesize(ctx context.Context, text, voiceID, outputPath string) error
}

// KokoroSynthesizer shells out to the kokoro speak utility:
//
//	speak <text> <output-path> <voice>
type KokoroSynthesizer struct {
	speakBin string
	timeout  time.Duration
}

// NewKokoroSynthesizer creates a synthesizer wrapping the speak binary
func NewKokoroSynthesizer(speakBin string, timeout time.Duration) *KokoroSynthesizer {
	return &KokoroSynthesizer{speakBin: speakBin, timeout: timeout}
}

// Synthesize runs the speak utility and verifies the artifact exists
func (k *KokoroSynthesizer) Synthesize(ctx context.Context, text, voiceID, outputPath string) error {
	if text == "" {
		return fmt.Errorf("nothing to synthesize")
	}

	ctx, cancel := context.WithTimeout(ctx, k.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, k.speakBin, text, outputPath, voiceID)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("speak failed: %w: %s", err, string(out))
	}

	if _, err := os.Stat(outputPath); err != nil {
		return fmt.Errorf("speak reported success but produced no artifact: %w", err)
	}

	return nil
}
