package transcriber

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
	"github.com/nguyentantai21042004/podcast-flow/internal/transcript"
	"github.com/replicate/replicate-go"
)

// runner is the part of the Replicate client used here.
type runner interface {
	Run(ctx context.Context, identifier string, input replicate.PredictionInput, webhook *replicate.Webhook) (replicate.PredictionOutput, error)
}

type implReplicate struct {
	client runner
	model  string
	logger logger.Logger
}

// NewReplicate creates a Transcriber backed by a Replicate diarization
// model, identified as owner/name:version.
func NewReplicate(token, model string, log logger.Logger) (Transcriber, error) {
	if token == "" {
		return nil, fmt.Errorf("replicate API token not configured")
	}
	client, err := replicate.NewClient(replicate.WithToken(token))
	if err != nil {
		return nil, fmt.Errorf("create replicate client: %w", err)
	}
	return &implReplicate{client: client, model: model, logger: log}, nil
}

func (t *implReplicate) Transcribe(ctx context.Context, req Request) ([]byte, error) {
	t.logger.Info(ctx, "Transcribing %s (%d speakers)...", req.Episode, req.NumSpeakers)

	output, err := t.client.Run(ctx, t.model, replicate.PredictionInput{
		"file_url":     req.AudioURL,
		"num_speakers": req.NumSpeakers,
		"prompt":       req.Prompt,
	}, nil)
	if err != nil {
		return nil, &TranscriptionFailedError{Episode: req.Episode, Err: err}
	}

	raw, err := json.Marshal(output)
	if err != nil {
		return nil, &TranscriptionFailedError{Episode: req.Episode, Err: fmt.Errorf("encode output: %w", err)}
	}

	segments, err := transcript.Parse(raw)
	if err != nil {
		return nil, &TranscriptionFailedError{Episode: req.Episode, Err: err}
	}

	t.logger.Info(ctx, "Transcribing %s... done (%d segments)", req.Episode, len(segments))
	return raw, nil
}
