package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/01moynul/ytgenius-golang/internal/auth"
	"github.com/01moynul/ytgenius-golang/internal/metrics"
	"github.com/01moynul/ytgenius-golang/internal/models"
	"github.com/01moynul/ytgenius-golang/internal/store"
	"github.com/01moynul/ytgenius-golang/internal/video"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Model is the generative model as the task handlers use it.
type Model interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	GenerateWithImage(ctx context.Context, instruction, format string, data []byte) (string, error)
}

type MetadataSource interface {
	VideoMetadata(ctx context.Context, id string) (*video.Metadata, error)
}

type TranscriptSource interface {
	Transcript(ctx context.Context, id string) (string, error)
}

type ThumbnailSource interface {
	Thumbnail(ctx context.Context, id string) (*video.Image, error)
}

// Deps are the collaborators of a Service. Store and Model may be nil when
// they could not be initialized; requests then fail with KindMisconfiguration.
type Deps struct {
	Store       store.Store
	Model       Model
	Metadata    MetadataSource
	Transcripts TranscriptSource
	Thumbnails  ThumbnailSource
	Logger      *zap.Logger
}

// Timeouts bound each call to a collaborator. Zero means no extra bound
// beyond the request context.
type Timeouts struct {
	DB    time.Duration
	Video time.Duration
	AI    time.Duration
}

type Options struct {
	StartingCoins int
	// StrictDebit settles with a conditional decrement instead of writing
	// back balance-cost.
	StrictDebit bool
	Timeouts    Timeouts
}

// Request is one generation call.
type Request struct {
	Prompt       string
	TaskType     string
	MetadataType *string
}

// Response is what the caller gets back. CoinsLeft is computed from the
// balance read at admission, never re-read from the store.
type Response struct {
	Result    any  `json:"result"`
	CoinsLeft int  `json:"coins_left"`
	IsJSON    bool `json:"is_json"`
}

// Service runs the generation pipeline: balance, admission, dispatch,
// settlement.
type Service struct {
	store       store.Store
	model       Model
	metadata    MetadataSource
	transcripts TranscriptSource
	thumbnails  ThumbnailSource
	logger      *zap.Logger
	opts        Options
	newID       func() string
}

func NewService(deps Deps, opts Options) *Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if opts.StartingCoins == 0 {
		opts.StartingCoins = DefaultStartingCoins
	}
	return &Service{
		store:       deps.Store,
		model:       deps.Model,
		metadata:    deps.Metadata,
		transcripts: deps.Transcripts,
		thumbnails:  deps.Thumbnails,
		logger:      deps.Logger,
		opts:        opts,
		newID:       uuid.NewString,
	}
}

// Generate runs one paid task for an already resolved identity.
func (s *Service) Generate(ctx context.Context, id *auth.Identity, req Request) (*Response, error) {
	log := s.logger.With(zap.String("user_id", id.ID), zap.String("task_type", req.TaskType))

	if s.model == nil {
		return nil, newError(KindMisconfiguration, msgNotConfigured, errors.New("generative model not initialized"))
	}

	// 1. --- Balance ---
	profile, err := s.ensureProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	coins := profile.Coins

	// 2. --- Admission ---
	cost := CostFor(req.TaskType)
	if coins < cost {
		metrics.GenerationsTotal.WithLabelValues(req.TaskType, "insufficient_funds").Inc()
		return nil, newError(KindInsufficientFunds, fmt.Sprintf("Insufficient coins. Need %d.", cost), nil)
	}

	// 3. --- Dispatch ---
	result, err := s.dispatch(ctx, log, req)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues(req.TaskType, KindOf(err).String()).Inc()
		return nil, err
	}

	// 4. --- Settlement (best-effort) ---
	s.settle(ctx, log, id, req, result, coins, cost)

	metrics.GenerationsTotal.WithLabelValues(req.TaskType, "ok").Inc()
	metrics.CoinsDebitedTotal.WithLabelValues(req.TaskType).Add(float64(cost))

	return &Response{
		Result:    result.value,
		CoinsLeft: coins - cost,
		IsJSON:    result.isJSON,
	}, nil
}

// Profile returns the caller's balance record, creating it on first access.
func (s *Service) Profile(ctx context.Context, id *auth.Identity) (*models.Profile, error) {
	return s.ensureProfile(ctx, id)
}

// History returns the caller's most recent generations.
func (s *Service) History(ctx context.Context, id *auth.Identity, limit int) ([]models.Generation, error) {
	if s.store == nil {
		return nil, newError(KindMisconfiguration, msgNotConfigured, errors.New("datastore not initialized"))
	}

	dbCtx, cancel := withTimeout(ctx, s.opts.Timeouts.DB)
	defer cancel()

	items, err := s.store.ListGenerations(dbCtx, id.ID, limit)
	if err != nil {
		return nil, newError(KindServiceUnavailable, msgDatabaseDown, err)
	}
	return items, nil
}

func (s *Service) ensureProfile(ctx context.Context, id *auth.Identity) (*models.Profile, error) {
	if s.store == nil {
		return nil, newError(KindMisconfiguration, msgNotConfigured, errors.New("datastore not initialized"))
	}

	dbCtx, cancel := withTimeout(ctx, s.opts.Timeouts.DB)
	defer cancel()

	start := time.Now()
	profile, err := s.store.GetProfile(dbCtx, id.ID)
	metrics.ObserveCall("datastore", start, ignoreNotFound(err))
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, newError(KindServiceUnavailable, msgDatabaseDown, err)
	}

	// First visit: open an account with the starting balance.
	profile = &models.Profile{ID: id.ID, Email: id.Email, Coins: s.opts.StartingCoins}
	if err := s.store.CreateProfile(dbCtx, profile); err != nil {
		if !errors.Is(err, store.ErrProfileExists) {
			return nil, newError(KindServiceUnavailable, msgDatabaseDown, err)
		}
		// A concurrent first request won the insert; use its row.
		existing, err := s.store.GetProfile(dbCtx, id.ID)
		if err != nil {
			return nil, newError(KindServiceUnavailable, msgDatabaseDown, err)
		}
		return existing, nil
	}
	metrics.ProfilesCreatedTotal.Inc()
	s.logger.Info("created profile", zap.String("user_id", id.ID), zap.Int("coins", profile.Coins))
	return profile, nil
}

func ignoreNotFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
