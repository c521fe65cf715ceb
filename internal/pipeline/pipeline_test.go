package pipeline

import (
	"context"
	"errors"
	stdimage "image"
	"image/color"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"server/internal/providers/prompt"
)

type stubPrompts struct {
	prompt string
	err    error
	calls  int
}

func (s *stubPrompts) ImagePrompt(ctx context.Context, brief prompt.Brief) (string, error) {
	s.calls++
	return s.prompt, s.err
}

type stubBackgrounds struct {
	img    stdimage.Image
	err    error
	calls  int
	prompt string
	ratio  string
}

func (s *stubBackgrounds) Generate(ctx context.Context, p, ratio string) (stdimage.Image, error) {
	s.calls++
	s.prompt = p
	s.ratio = ratio
	return s.img, s.err
}

type stubFetcher struct {
	img   stdimage.Image
	err   error
	calls int
}

func (s *stubFetcher) Fetch(ctx context.Context, url string) (stdimage.Image, error) {
	s.calls++
	return s.img, s.err
}

type stubStore struct {
	url   string
	err   error
	calls int
	key   string
	mime  string
	data  []byte
}

func (s *stubStore) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	s.calls++
	s.key = key
	s.mime = contentType
	s.data = data
	return s.url, s.err
}

func testRequest() Request {
	return Request{
		GeneralDescription:    "premium minimal",
		BackgroundDescription: "marble table",
		Copy:                  "New!",
		PackshotURL:           "http://example.com/shot.png",
	}
}

func newPipeline(p *stubPrompts, b *stubBackgrounds, f *stubFetcher, st *stubStore) *Pipeline {
	return &Pipeline{
		Prompts:     p,
		Backgrounds: b,
		Packshots:   f,
		Store:       st,
		Logger:      zerolog.Nop(),
	}
}

func TestRunHappyPath(t *testing.T) {
	prompts := &stubPrompts{prompt: "a lush scene"}
	backgrounds := &stubBackgrounds{img: imaging.New(64, 64, color.NRGBA{R: 1, A: 255})}
	fetcher := &stubFetcher{img: imaging.New(16, 16, color.NRGBA{R: 2, A: 255})}
	store := &stubStore{url: "https://storage.googleapis.com/bucket/x.png"}

	res, err := newPipeline(prompts, backgrounds, fetcher, store).Run(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.ImageURL != store.url {
		t.Fatalf("ImageURL = %q, want %q", res.ImageURL, store.url)
	}
	if res.Prompt != "a lush scene" {
		t.Fatalf("Prompt = %q", res.Prompt)
	}
	if backgrounds.prompt != "a lush scene" {
		t.Fatalf("background received prompt %q", backgrounds.prompt)
	}
	if backgrounds.ratio != "1:1" {
		t.Fatalf("background ratio = %q, want default 1:1", backgrounds.ratio)
	}
	if !strings.HasPrefix(store.key, "generated-image-") || !strings.HasSuffix(store.key, ".png") {
		t.Fatalf("store key = %q", store.key)
	}
	if store.mime != "image/png" {
		t.Fatalf("content type = %q", store.mime)
	}
	if len(store.data) == 0 {
		t.Fatal("store received no data")
	}
}

func TestRunPassesAspectRatio(t *testing.T) {
	backgrounds := &stubBackgrounds{img: imaging.New(64, 36, color.NRGBA{A: 255})}
	p := newPipeline(&stubPrompts{prompt: "p"}, backgrounds, &stubFetcher{img: imaging.New(8, 8, color.NRGBA{A: 255})}, &stubStore{url: "u"})

	req := testRequest()
	req.AspectRatio = "16:9"
	if _, err := p.Run(context.Background(), req); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if backgrounds.ratio != "16:9" {
		t.Fatalf("background ratio = %q, want 16:9", backgrounds.ratio)
	}
}

func TestRunAbortsOnPromptFailure(t *testing.T) {
	wantErr := errors.New("model down")
	backgrounds := &stubBackgrounds{}
	store := &stubStore{}
	p := newPipeline(&stubPrompts{err: wantErr}, backgrounds, &stubFetcher{}, store)

	if _, err := p.Run(context.Background(), testRequest()); !errors.Is(err, wantErr) {
		t.Fatalf("Run() error = %v, want %v", err, wantErr)
	}
	if backgrounds.calls != 0 || store.calls != 0 {
		t.Fatal("later stages ran after prompt failure")
	}
}

func TestRunAbortsOnBackgroundFailure(t *testing.T) {
	wantErr := errors.New("imagen unavailable")
	fetcher := &stubFetcher{}
	store := &stubStore{}
	p := newPipeline(&stubPrompts{prompt: "p"}, &stubBackgrounds{err: wantErr}, fetcher, store)

	if _, err := p.Run(context.Background(), testRequest()); !errors.Is(err, wantErr) {
		t.Fatalf("Run() error = %v, want %v", err, wantErr)
	}
	if fetcher.calls != 0 || store.calls != 0 {
		t.Fatal("later stages ran after background failure")
	}
}

func TestRunAbortsOnPackshotFailure(t *testing.T) {
	wantErr := errors.New("404")
	store := &stubStore{}
	p := newPipeline(
		&stubPrompts{prompt: "p"},
		&stubBackgrounds{img: imaging.New(32, 32, color.NRGBA{A: 255})},
		&stubFetcher{err: wantErr},
		store,
	)

	if _, err := p.Run(context.Background(), testRequest()); !errors.Is(err, wantErr) {
		t.Fatalf("Run() error = %v, want %v", err, wantErr)
	}
	if store.calls != 0 {
		t.Fatal("upload ran after packshot failure")
	}
}

func TestRunSurfacesUploadFailure(t *testing.T) {
	wantErr := errors.New("bucket denied")
	p := newPipeline(
		&stubPrompts{prompt: "p"},
		&stubBackgrounds{img: imaging.New(32, 32, color.NRGBA{A: 255})},
		&stubFetcher{img: imaging.New(8, 8, color.NRGBA{A: 255})},
		&stubStore{err: wantErr},
	)

	if _, err := p.Run(context.Background(), testRequest()); !errors.Is(err, wantErr) {
		t.Fatalf("Run() error = %v, want %v", err, wantErr)
	}
}
