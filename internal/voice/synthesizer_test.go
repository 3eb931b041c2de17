package voice

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestKokoroSynthesizer_RejectsEmptyText(t *testing.T) {
	synth := NewKokoroSynthesizer("speak", time.Second)
	err := synth.Synthesize(context.Background(), "", "bm_lewis", filepath.Join(t.TempDir(), "out.wav"))
	if err == nil {
		t.Error("Expected error for empty text")
	}
}

func TestKokoroSynthesizer_MissingBinaryFails(t *testing.T) {
	synth := NewKokoroSynthesizer(filepath.Join(t.TempDir(), "no-such-speak"), time.Second)
	err := synth.Synthesize(context.Background(), "hello", "bm_lewis", filepath.Join(t.TempDir(), "out.wav"))
	if err == nil {
		t.Error("Expected error when the speak binary does not exist")
	}
}
