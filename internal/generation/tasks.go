package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/01moynul/ytgenius-golang/internal/metrics"
	"github.com/01moynul/ytgenius-golang/internal/video"
	"go.uber.org/zap"
)

// taskResult is a task's output before it is wrapped for storage.
type taskResult struct {
	value  any
	isJSON bool
}

func (s *Service) dispatch(ctx context.Context, log *zap.Logger, req Request) (*taskResult, error) {
	switch TaskType(req.TaskType) {
	case TaskMetadata:
		return s.runMetadata(ctx, log, req)
	case TaskAudit:
		return s.runAudit(ctx, log, req)
	case TaskThumbnail:
		return s.runThumbnail(ctx, log, req)
	case TaskScript:
		return s.runScript(ctx, log, req)
	default:
		log.Warn("unsupported task type")
		return nil, newError(KindBadRequest, msgUnsupported, fmt.Errorf("task type %q", req.TaskType))
	}
}

func (s *Service) runMetadata(ctx context.Context, log *zap.Logger, req Request) (*taskResult, error) {
	text, err := s.callModel(ctx, log, func(ctx context.Context) (string, error) {
		return s.model.GenerateText(ctx, metadataPrompt(req.MetadataType, req.Prompt))
	})
	if err != nil {
		return nil, err
	}
	return &taskResult{value: text}, nil
}

func (s *Service) runAudit(ctx context.Context, log *zap.Logger, req Request) (*taskResult, error) {
	id, ok := video.ExtractID(req.Prompt)
	if !ok {
		return nil, newError(KindBadRequest, msgInvalidURL, fmt.Errorf("no video id in %q", req.Prompt))
	}

	// Both lookups are optional context for the prompt.
	transcript := s.fetchTranscript(ctx, log, id)
	meta := s.fetchMetadata(ctx, log, id)

	return s.structured(ctx, log, auditPrompt(meta, transcript))
}

func (s *Service) runThumbnail(ctx context.Context, log *zap.Logger, req Request) (*taskResult, error) {
	// No id is not an error here; the fetch below fails instead.
	id, _ := video.ExtractID(req.Prompt)

	if s.thumbnails == nil {
		return nil, newError(KindGenerationFailure, msgGenerationFail, errors.New("thumbnail source not initialized"))
	}

	videoCtx, cancel := withTimeout(ctx, s.opts.Timeouts.Video)
	defer cancel()

	start := time.Now()
	img, err := s.thumbnails.Thumbnail(videoCtx, id)
	metrics.ObserveCall("thumbnail", start, err)
	if err != nil {
		log.Error("thumbnail fetch failed", zap.String("video_id", id), zap.Error(err))
		return nil, newError(KindGenerationFailure, msgGenerationFail, err)
	}

	text, err := s.callModel(ctx, log, func(ctx context.Context) (string, error) {
		return s.model.GenerateWithImage(ctx, ThumbnailInstruction, img.Format, img.Data)
	})
	if err != nil {
		return nil, err
	}
	return &taskResult{value: text}, nil
}

func (s *Service) runScript(ctx context.Context, log *zap.Logger, req Request) (*taskResult, error) {
	return s.structured(ctx, log, scriptPrompt(req.Prompt))
}

// structured requests a JSON response and parses it.
func (s *Service) structured(ctx context.Context, log *zap.Logger, prompt string) (*taskResult, error) {
	text, err := s.callModel(ctx, log, func(ctx context.Context) (string, error) {
		return s.model.GenerateJSON(ctx, prompt)
	})
	if err != nil {
		return nil, err
	}

	value, err := decodeJSON(text)
	if err != nil {
		log.Error("model returned invalid JSON", zap.Error(err), zap.Int("response_len", len(text)))
		return nil, newError(KindGenerationFailure, msgGenerationFail, err)
	}
	return &taskResult{value: value, isJSON: true}, nil
}

// decodeJSON parses a single JSON document. Numbers stay json.Number so
// large integers survive the round trip to the caller and the history row.
func decodeJSON(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return value, nil
}

func (s *Service) callModel(ctx context.Context, log *zap.Logger, call func(context.Context) (string, error)) (string, error) {
	aiCtx, cancel := withTimeout(ctx, s.opts.Timeouts.AI)
	defer cancel()

	start := time.Now()
	text, err := call(aiCtx)
	metrics.ObserveCall("model", start, err)
	if err != nil {
		log.Error("model call failed", zap.Error(err))
		return "", newError(KindGenerationFailure, msgGenerationFail, err)
	}
	return text, nil
}

func (s *Service) fetchTranscript(ctx context.Context, log *zap.Logger, id string) string {
	if s.transcripts == nil {
		return ""
	}
	videoCtx, cancel := withTimeout(ctx, s.opts.Timeouts.Video)
	defer cancel()

	start := time.Now()
	text, err := s.transcripts.Transcript(videoCtx, id)
	metrics.ObserveCall("transcript", start, err)
	if err != nil {
		log.Warn("transcript unavailable", zap.String("video_id", id), zap.Error(err))
		return ""
	}
	return video.Truncate(text, video.MaxTranscriptChars)
}

func (s *Service) fetchMetadata(ctx context.Context, log *zap.Logger, id string) *video.Metadata {
	if s.metadata == nil {
		return nil
	}
	videoCtx, cancel := withTimeout(ctx, s.opts.Timeouts.Video)
	defer cancel()

	start := time.Now()
	meta, err := s.metadata.VideoMetadata(videoCtx, id)
	metrics.ObserveCall("video_metadata", start, err)
	if err != nil {
		log.Warn("video metadata unavailable", zap.String("video_id", id), zap.Error(err))
		return nil
	}
	return meta
}
