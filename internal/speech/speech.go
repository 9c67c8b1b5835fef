// Package speech defines the voice I/O boundary. The session engine only
// sees text; capture and playback implementations plug in behind these
// interfaces. The default implementations are text passthroughs so the
// terminal and HTTP surfaces work without any audio stack.
package speech

import (
	"context"
	"fmt"
)

// ErrUnrecognized reports that audio was captured but no words could be
// extracted. Callers treat it as an indeterminate answer, not a failure.
type ErrUnrecognized struct{}

func (e *ErrUnrecognized) Error() string {
	return "speech: could not understand audio"
}

// ErrCaptureFailed reports a device or network fault during capture.
type ErrCaptureFailed struct {
	Reason string
}

func (e *ErrCaptureFailed) Error() string {
	return fmt.Sprintf("speech: capture failed: %s", e.Reason)
}

// Transcriber turns one utterance into text.
type Transcriber interface {
	// Listen blocks until an utterance is captured or ctx ends. It returns
	// ErrUnrecognized when audio yields no words.
	Listen(ctx context.Context) (string, error)
}

// Synthesizer speaks one line to the patient.
type Synthesizer interface {
	Speak(ctx context.Context, text string) error
}

// NullSynthesizer drops all output. Used when the caller renders text
// itself, as the terminal and HTTP surfaces do.
type NullSynthesizer struct{}

func (NullSynthesizer) Speak(ctx context.Context, text string) error { return nil }

// ChannelTranscriber reads utterances from a channel. It adapts any
// text source, such as a websocket reader, to the Transcriber interface.
type ChannelTranscriber struct {
	In <-chan string
}

func (c *ChannelTranscriber) Listen(ctx context.Context) (string, error) {
	select {
	case text, ok := <-c.In:
		if !ok {
			return "", &ErrCaptureFailed{Reason: "input closed"}
		}
		return text, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
