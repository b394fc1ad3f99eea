package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/ltmanh/vocaprep/config"
	"github.com/ltmanh/vocaprep/internal/dto"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// WordExtractionService reads word/definition pairs out of a photographed or
// scanned vocabulary sheet. The core treats it as an opaque producer of word
// records; everything downstream of the returned pairs is deterministic.
type WordExtractionService interface {
	ExtractWords(ctx context.Context, imageURL string) ([]dto.WordCreateDTO, error)
}

type wordExtractionService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewWordExtractionService(cfg *config.Config) (WordExtractionService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. WordExtractionService will be non-functional.")
		return &wordExtractionService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	return &wordExtractionService{client: model, cfg: cfg}, nil
}

func fetchImageData(imageURL string) ([]byte, string, error) {
	if imageURL == "" {
		return nil, "", fmt.Errorf("image URL is empty")
	}
	resp, err := http.Get(imageURL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch image from URL %s: %w", imageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch image (status %d) from URL %s", resp.StatusCode, imageURL)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image data from URL %s: %w", imageURL, err)
	}

	contentType := resp.Header.Get("Content-Type")
	var mimeType string
	if contentType != "" {
		parsedMime, _, parseErr := mime.ParseMediaType(contentType)
		if parseErr == nil && strings.HasPrefix(parsedMime, "image/") {
			mimeType = parsedMime
		}
	}
	if mimeType == "" {
		ext := filepath.Ext(imageURL)
		mimeType = mime.TypeByExtension(ext)
		if mimeType == "" || !strings.HasPrefix(mimeType, "image/") {
			log.Warn().Str("url", imageURL).Str("ext", ext).Msg("Could not determine valid MIME type from extension or Content-Type.")
			return imageData, "", fmt.Errorf("unsupported or undeterminable image MIME type for %s", imageURL)
		}
	}
	return imageData, mimeType, nil
}

const extractionPrompt = `You are reading a photographed or scanned vocabulary sheet.
Extract every word with its definition, in the order they appear on the sheet.

Output one pair per line, formatted strictly as:
word | definition

Do not number the lines, do not add commentary, do not invent words that are
not on the sheet. If a definition spans multiple lines on the sheet, join it
into a single line.`

// ExtractWords sends the sheet image to Gemini and parses the line-oriented
// response into ordered word/definition pairs.
func (s *wordExtractionService) ExtractWords(ctx context.Context, imageURL string) ([]dto.WordCreateDTO, error) {
	if s.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}

	imageData, mimeType, err := fetchImageData(imageURL)
	if err != nil {
		log.Error().Err(err).Str("imageURL", imageURL).Msg("Failed to fetch sheet image for extraction")
		return nil, err
	}

	resp, err := s.client.GenerateContent(ctx, genai.ImageData(mimeType, imageData), genai.Text(extractionPrompt))
	if err != nil {
		log.Error().Err(err).Str("imageURL", imageURL).Msg("Gemini API error during word extraction")
		return nil, fmt.Errorf("gemini extraction failed: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no content")
	}

	fullResponseText := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			fullResponseText += string(txt)
		}
	}

	words := parseWordLines(fullResponseText)
	if len(words) == 0 {
		log.Warn().Str("rawResponse", fullResponseText).Msg("No word pairs could be parsed from Gemini response")
		return nil, fmt.Errorf("no word/definition pairs found in extraction response")
	}
	log.Info().Int("wordCount", len(words)).Str("imageURL", imageURL).Msg("Extracted words from sheet image")
	return words, nil
}

// parseWordLines reads "word | definition" lines, skipping anything that does
// not match the shape.
func parseWordLines(raw string) []dto.WordCreateDTO {
	var words []dto.WordCreateDTO
	for _, line := range strings.Split(raw, "\n") {
		parts := strings.SplitN(line, "|", 2)
		if len(parts) != 2 {
			continue
		}
		word := strings.TrimSpace(parts[0])
		definition := strings.TrimSpace(parts[1])
		if word == "" || definition == "" {
			continue
		}
		words = append(words, dto.WordCreateDTO{Word: word, Definition: definition})
	}
	return words
}
