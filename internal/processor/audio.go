package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// isVideo reports whether path has one of the configured video extensions.
func (p *implProcessor) isVideo(path string) bool {
	return slices.Contains(p.cfg.Media.VideoExtensions, strings.ToLower(filepath.Ext(path)))
}

// extractAudio writes the audio track of a video container to
// {temp}/{name}.mp3 as mono MP3, small enough to upload.
func (p *implProcessor) extractAudio(ctx context.Context, videoPath, name string) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Temp, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	audioPath := filepath.Join(p.cfg.Paths.Temp, name+".mp3")

	p.logger.Info(ctx, "Extracting audio: %s -> %s", videoPath, audioPath)

	// -vn: drop video, -ac 1: mono, -q:a 4: ~165 kbps VBR
	args := []string{
		"-i", videoPath,
		"-vn",
		"-ac", "1",
		"-c:a", "libmp3lame",
		"-q:a", "4",
		"-y",
		audioPath,
	}

	if _, err := p.executor.Execute(ctx, p.cfg.Media.FFmpegPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	p.logger.Info(ctx, "Audio extracted successfully: %s", audioPath)
	return audioPath, nil
}
