package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"google.golang.org/genai"

	"server/internal/middleware"
	"server/internal/packshot"
	"server/internal/pipeline"
)

type generateImageRequest struct {
	GeneralDescription    string `json:"general_description"`
	BackgroundDescription string `json:"background_description"`
	Copy                  string `json:"copy"`
	PackshotURL           string `json:"packshot_url"`
	AspectRatio           string `json:"aspect_ratio"`
}

type generateImageResponse struct {
	Success               bool   `json:"success"`
	ImageURL              string `json:"imageUrl"`
	GeminiGeneratedPrompt string `json:"geminiGeneratedPrompt"`
}

// missingFields returns the required field names absent from the payload,
// sorted so the error message is stable.
func (r generateImageRequest) missingFields() []string {
	var missing []string
	for name, value := range map[string]string{
		"general_description":    r.GeneralDescription,
		"background_description": r.BackgroundDescription,
		"copy":                   r.Copy,
		"packshot_url":           r.PackshotURL,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// GenerateImage runs the full pipeline for one request and answers with the
// stored image URL and the synthesized prompt.
func (a *App) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req generateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "Invalid JSON payload", "")
		return
	}
	if missing := req.missingFields(); len(missing) > 0 {
		a.error(w, http.StatusBadRequest, fmt.Sprintf("Missing required field(s): %s", strings.Join(missing, ", ")), "")
		return
	}

	res, err := a.Pipeline.Run(r.Context(), pipeline.Request{
		GeneralDescription:    req.GeneralDescription,
		BackgroundDescription: req.BackgroundDescription,
		Copy:                  req.Copy,
		PackshotURL:           req.PackshotURL,
		AspectRatio:           req.AspectRatio,
	})
	if err != nil {
		status, message := statusForError(err)
		a.Logger.Error().
			Err(err).
			Int("status", status).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Msg("image generation failed")
		a.error(w, status, message, err.Error())
		return
	}

	a.json(w, http.StatusOK, generateImageResponse{
		Success:               true,
		ImageURL:              res.ImageURL,
		GeminiGeneratedPrompt: res.Prompt,
	})
}

// statusForError maps a pipeline failure onto an HTTP status. Packshot
// problems are caller errors; generative API errors keep the upstream status
// code so a transient 503 is not rewritten into a 500.
func statusForError(err error) (int, string) {
	if errors.Is(err, packshot.ErrUnavailable) {
		return http.StatusBadRequest, "Unable to download packshot."
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.Code
		if code < 400 || code > 599 {
			code = http.StatusServiceUnavailable
		}
		return code, "Generative AI service error."
	}
	return http.StatusInternalServerError, "Internal server error."
}
