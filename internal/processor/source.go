package processor

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/nguyentantai21042004/podcast-flow/internal/episode"
)

// resolveSource returns a URL the transcription provider can fetch. URL
// inputs are used as given; local files are uploaded under
// {prefix}/{name}, after audio extraction for video containers.
func (p *implProcessor) resolveSource(ctx context.Context, src episode.Source) (string, error) {
	if src.IsURL {
		p.logger.Info(ctx, "Using remote source %s", src.Input)
		return src.Input, nil
	}

	unavailable := func(err error) error {
		return &SourceUnavailableError{Episode: src.Name, Input: src.Input, Err: err}
	}

	info, err := os.Stat(src.Input)
	if err != nil {
		return "", unavailable(err)
	}
	if info.IsDir() {
		return "", unavailable(fmt.Errorf("%s is a directory", src.Input))
	}
	if p.uploader == nil {
		return "", unavailable(fmt.Errorf("no uploader configured for local files"))
	}

	local := src.Input
	if p.isVideo(local) {
		audio, err := p.extractAudio(ctx, local, src.Name)
		if err != nil {
			return "", unavailable(err)
		}
		defer p.cleanupTempFile(ctx, audio)
		local = audio
	}

	key := path.Join(p.cfg.Storage.Prefix, src.Name)
	if err := p.uploader.Upload(ctx, local, key); err != nil {
		return "", unavailable(err)
	}
	return p.uploader.PublicURL(key), nil
}
