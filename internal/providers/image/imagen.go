// Package image generates background scenes with an image-generation model.
package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"google.golang.org/genai"
)

// DefaultAspectRatio matches the square ad format the compositor assumes.
const DefaultAspectRatio = "1:1"

var supportedAspectRatios = map[string]struct{}{
	"1:1":  {},
	"3:4":  {},
	"4:3":  {},
	"9:16": {},
	"16:9": {},
}

// Generator is the contract implemented by background providers.
type Generator interface {
	Generate(ctx context.Context, prompt, aspectRatio string) (image.Image, error)
}

// ImagenGenerator renders backgrounds with Imagen via the genai SDK.
type ImagenGenerator struct {
	client *genai.Client
	model  string
}

// NewImagenGenerator wraps an existing genai client.
func NewImagenGenerator(client *genai.Client, model string) (*ImagenGenerator, error) {
	if client == nil {
		return nil, errors.New("image: genai client is required")
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = "imagen-3.0-generate-002"
	}
	return &ImagenGenerator{client: client, model: model}, nil
}

// Generate requests exactly one image and decodes the returned bytes.
func (g *ImagenGenerator) Generate(ctx context.Context, prompt, aspectRatio string) (image.Image, error) {
	cfg := &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    NormalizeAspectRatio(aspectRatio),
	}

	resp, err := g.client.Models.GenerateImages(ctx, g.model, prompt, cfg)
	if err != nil {
		return nil, fmt.Errorf("image: generate images: %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, errors.New("image: model returned no images")
	}

	img, err := imaging.Decode(bytes.NewReader(resp.GeneratedImages[0].Image.ImageBytes))
	if err != nil {
		return nil, fmt.Errorf("image: decode generated image: %w", err)
	}
	return img, nil
}

// NormalizeAspectRatio maps free-form input onto a ratio the model accepts.
func NormalizeAspectRatio(ratio string) string {
	ratio = strings.TrimSpace(ratio)
	if _, ok := supportedAspectRatios[ratio]; ok {
		return ratio
	}
	return DefaultAspectRatio
}

var _ Generator = (*ImagenGenerator)(nil)
