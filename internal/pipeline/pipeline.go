// Package pipeline runs the image generation flow end to end:
// prompt synthesis → background generation → packshot fetch → composite →
// upload. The first failing stage aborts the request; there are no partial
// results and no retries.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	stdimage "image"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"server/internal/compose"
	"server/internal/infra"
	"server/internal/providers/image"
	"server/internal/providers/prompt"
	"server/internal/storage"
)

// Fetcher retrieves the caller's packshot image.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (stdimage.Image, error)
}

// Request carries one image generation job.
type Request struct {
	GeneralDescription    string
	BackgroundDescription string
	Copy                  string
	PackshotURL           string
	AspectRatio           string
}

// Result is what a successful run produces.
type Result struct {
	ImageURL string
	Prompt   string
}

// Pipeline wires the stages together. All dependencies are interfaces so the
// handler tests can exercise the flow without network access.
type Pipeline struct {
	Prompts     prompt.Generator
	Backgrounds image.Generator
	Packshots   Fetcher
	Store       storage.Store
	Logger      infra.Logger
}

// Run executes the stages in order and returns the stored image URL together
// with the synthesized prompt.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	log := p.Logger.With().Str("copy", req.Copy).Logger()

	log.Info().Str("style", req.GeneralDescription).Msg("generating image prompt")
	imagePrompt, err := p.Prompts.ImagePrompt(ctx, prompt.Brief{
		GeneralDescription:    req.GeneralDescription,
		BackgroundDescription: req.BackgroundDescription,
		Copy:                  req.Copy,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("prompt", imagePrompt).Msg("image prompt generated")

	log.Info().Msg("generating background")
	background, err := p.Backgrounds.Generate(ctx, imagePrompt, image.NormalizeAspectRatio(req.AspectRatio))
	if err != nil {
		return nil, err
	}

	log.Info().Str("url", req.PackshotURL).Msg("downloading packshot")
	shot, err := p.Packshots.Fetch(ctx, req.PackshotURL)
	if err != nil {
		return nil, err
	}

	final := compose.Center(background, shot, compose.DefaultScale)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, final, imaging.PNG); err != nil {
		return nil, fmt.Errorf("pipeline: encode final image: %w", err)
	}

	key := fmt.Sprintf("generated-image-%s.png", uuid.NewString())
	url, err := p.Store.Save(ctx, key, buf.Bytes(), "image/png")
	if err != nil {
		return nil, err
	}
	log.Info().Str("url", url).Msg("image uploaded")

	return &Result{ImageURL: url, Prompt: imagePrompt}, nil
}
