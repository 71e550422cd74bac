package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/podcast-flow/internal/cache"
	"github.com/nguyentantai21042004/podcast-flow/internal/episode"
	"github.com/nguyentantai21042004/podcast-flow/internal/generator"
	"github.com/nguyentantai21042004/podcast-flow/internal/ledger"
	"github.com/nguyentantai21042004/podcast-flow/internal/report"
	"github.com/nguyentantai21042004/podcast-flow/internal/transcriber"
	"github.com/nguyentantai21042004/podcast-flow/internal/transcript"
)

// Process orchestrates the entire episode pipeline
func (p *implProcessor) Process(ctx context.Context, input string) (res Result, err error) {
	startTime := time.Now()

	src, err := episode.FromInput(input)
	if err != nil {
		return Result{}, err
	}
	res.Episode = src.Name

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Running podcast pipeline on %s", input)
	p.logger.Info(ctx, "========================================")

	run := ledger.NewRun(p.ledger, src.Name)
	p.mark(ctx, run, episode.StatusPending, input)
	defer func() {
		if err != nil {
			p.mark(ctx, run, episode.StatusFailed, err.Error())
		}
	}()

	// Step 1: Resolve a fetchable URL
	audioURL, err := p.resolveSource(ctx, src)
	if err != nil {
		return res, fmt.Errorf("resolve source %s: %w", src.Name, err)
	}
	p.mark(ctx, run, episode.StatusUploaded, audioURL)

	// Step 2: Raw transcript, computed at most once per episode
	raw, fresh, err := cache.GetOrCompute(ctx, p.stores.Raw, src.Name, func(ctx context.Context) ([]byte, error) {
		return p.transcriber.Transcribe(ctx, transcriber.Request{
			AudioURL:    audioURL,
			Prompt:      p.cfg.TranscriptionNudge(),
			NumSpeakers: p.cfg.Show.SpeakerCount,
			Episode:     src.Name,
		})
	})
	if err != nil {
		return res, fmt.Errorf("transcribe %s: %w", src.Name, err)
	}
	res.Transcribed = fresh
	if fresh {
		p.logger.Info(ctx, "Raw transcript saved to %s", p.stores.Raw.Location(src.Name))
	} else {
		p.logger.Info(ctx, "Loading existing transcript from %s", p.stores.Raw.Location(src.Name))
	}
	p.mark(ctx, run, episode.StatusTranscribed, p.stores.Raw.Location(src.Name))

	// Step 3: Normalized transcript, gated independently of step 2
	clean, fresh, err := cache.GetOrCompute(ctx, p.stores.Clean, src.Name, func(ctx context.Context) ([]byte, error) {
		segments, err := transcript.Parse(raw)
		if err != nil {
			return nil, err
		}
		return []byte(transcript.Normalize(segments)), nil
	})
	if err != nil {
		return res, fmt.Errorf("normalize %s: %w", src.Name, err)
	}
	res.Normalized = fresh
	if fresh {
		p.logger.Info(ctx, "Transcript saved to %s", p.stores.Clean.Location(src.Name))
	} else {
		p.logger.Info(ctx, "Loading clean transcript from %s", p.stores.Clean.Location(src.Name))
	}
	p.mark(ctx, run, episode.StatusNormalized, p.stores.Clean.Location(src.Name))

	// Step 4: Artifacts, regenerated every run
	sections, err := p.generate(ctx, generator.Input{
		Transcript:  string(clean),
		PriorTitles: p.cfg.Show.Titles,
	})
	if err != nil {
		return res, fmt.Errorf("generate %s: %w", src.Name, err)
	}
	res.Sections = sections
	p.mark(ctx, run, episode.StatusEnriched, "")

	// Step 5: Results, written once at the end
	if err := p.stores.Results.Put(ctx, src.Name, []byte(report.Render(sections))); err != nil {
		return res, fmt.Errorf("write results %s: %w", src.Name, err)
	}
	res.Results = p.stores.Results.Location(src.Name)

	// A failed docx export does not fail the run.
	if p.cfg.Output.Docx {
		if docxPath, derr := p.writeDocx(src.Name, sections); derr != nil {
			p.logger.Warn(ctx, "Failed to export docx for %s: %v", src.Name, derr)
		} else {
			res.Docx = docxPath
		}
	}
	p.mark(ctx, run, episode.StatusComplete, res.Results)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Results written to %s", res.Results)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return res, nil
}

// generate runs every generator, in parallel when configured, and collects
// their output in results order.
func (p *implProcessor) generate(ctx context.Context, in generator.Input) (report.Sections, error) {
	outputs := make([]string, len(p.generators))

	if p.cfg.Generation.Concurrent {
		g, gctx := errgroup.WithContext(ctx)
		for i, gen := range p.generators {
			g.Go(func() error {
				text, err := gen.Generate(gctx, in)
				if err != nil {
					return fmt.Errorf("%s: %w", gen.Name(), err)
				}
				outputs[i] = text
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return report.Sections{}, err
		}
	} else {
		for i, gen := range p.generators {
			text, err := gen.Generate(ctx, in)
			if err != nil {
				return report.Sections{}, fmt.Errorf("%s: %w", gen.Name(), err)
			}
			outputs[i] = text
		}
	}

	var sections report.Sections
	for i, gen := range p.generators {
		if err := sections.Set(gen.Name(), outputs[i]); err != nil {
			return report.Sections{}, err
		}
	}
	return sections, nil
}

// writeDocx exports the results next to the markdown results.
func (p *implProcessor) writeDocx(name string, sections report.Sections) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Results, 0755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}
	docxPath := filepath.Join(p.cfg.Paths.Results, name+".docx")
	if err := report.WriteDocx(name, sections, docxPath); err != nil {
		return "", err
	}
	return docxPath, nil
}

// mark records a lifecycle transition. Ledger failures are logged, never
// fatal.
func (p *implProcessor) mark(ctx context.Context, run *ledger.Run, status episode.Status, detail string) {
	if err := run.Mark(ctx, status, detail); err != nil {
		p.logger.Warn(ctx, "Failed to record %s for %s: %v", status, run.Episode, err)
	}
}
