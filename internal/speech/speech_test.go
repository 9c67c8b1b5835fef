package speech

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestChannelTranscriber_DeliversUtterance(t *testing.T) {
	in := make(chan string, 1)
	in <- "eggs and toast"
	tr := &ChannelTranscriber{In: in}

	got, err := tr.Listen(context.Background())
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	if got != "eggs and toast" {
		t.Errorf("Listen = %q", got)
	}
}

func TestChannelTranscriber_ClosedInput(t *testing.T) {
	in := make(chan string)
	close(in)
	tr := &ChannelTranscriber{In: in}

	_, err := tr.Listen(context.Background())
	var captureErr *ErrCaptureFailed
	if !errors.As(err, &captureErr) {
		t.Fatalf("err = %v, want ErrCaptureFailed", err)
	}
}

func TestChannelTranscriber_ContextCancel(t *testing.T) {
	tr := &ChannelTranscriber{In: make(chan string)}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := tr.Listen(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
}

func TestNullSynthesizer(t *testing.T) {
	if err := (NullSynthesizer{}).Speak(context.Background(), "hello"); err != nil {
		t.Errorf("Speak: %v", err)
	}
}
