// File: internal/services/ai/interface.go
package ai

import "context"

// CompletionProvider sends a system+user message pair to a language model
// and returns the top completion's text. One shot: no streaming, no tool
// use, no retry on transient failure.
type CompletionProvider interface {
	Complete(ctx context.Context, system, user string) (string, error)
	// CompleteWithImage runs a vision prompt over one image URL.
	CompleteWithImage(ctx context.Context, system, user, imageURL string) (string, error)
}

// TranscriptionProvider turns raw audio into plain text. The filename is
// used only to signal the audio format to the provider.
type TranscriptionProvider interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// Provider combines every capability the portal consumes from the model
// endpoint.
type Provider interface {
	CompletionProvider
	TranscriptionProvider
}
