package generation

import (
	"fmt"

	"github.com/01moynul/ytgenius-golang/internal/video"
)

// ThumbnailInstruction accompanies the thumbnail image.
const ThumbnailInstruction = "Rate this thumbnail CTR (0-10) and suggest 3 fixes."

var metadataTemplates = map[string]string{
	"title":       "Generate 10 SEO titles for: '%s'",
	"description": "Write SEO description for: '%s'",
	"tags":        "Generate 30 comma-separated tags for: '%s'",
	"hashtags":    "Generate 15 hashtags for: '%s'",
	"disclaimer":  "Write a disclaimer for: '%s'",
}

func metadataPrompt(metadataType *string, prompt string) string {
	if metadataType != nil {
		if tmpl, ok := metadataTemplates[*metadataType]; ok {
			return fmt.Sprintf(tmpl, prompt)
		}
	}
	return "Metadata for: " + prompt
}

// auditPrompt embeds whatever the best-effort lookups found. A missing
// lookup and an empty transcript read the same to the model.
func auditPrompt(meta *video.Metadata, transcript string) string {
	title := "N/A"
	if meta != nil {
		title = meta.Title
	}
	if transcript == "" {
		transcript = "None"
	}
	return fmt.Sprintf("Audit this YT video. Title: %s. Transcript: %s. Return JSON.", title, transcript)
}

func scriptPrompt(prompt string) string {
	return fmt.Sprintf("Write a full YouTube script for: %s in JSON.", prompt)
}
