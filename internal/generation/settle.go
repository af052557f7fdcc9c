package generation

import (
	"context"
	"encoding/json"

	"github.com/01moynul/ytgenius-golang/internal/auth"
	"github.com/01moynul/ytgenius-golang/internal/metrics"
	"github.com/01moynul/ytgenius-golang/internal/models"
	"go.uber.org/zap"
)

// envelope is the stored form of a result: structured results as-is,
// free text wrapped as {"text": ...}.
func envelope(result *taskResult) any {
	if result.isJSON {
		return result.value
	}
	return map[string]any{"text": result.value}
}

// settle records the generation and charges for it. Both writes are
// fire-and-forget: failures are logged and counted, never returned, and
// the two writes are independent of each other.
//
// The balance write is read-modify-write against the value read at
// admission, so two concurrent requests from one identity can both spend
// the same coins. StrictDebit narrows this to a conditional decrement.
func (s *Service) settle(ctx context.Context, log *zap.Logger, id *auth.Identity, req Request, result *taskResult, coins, cost int) {
	// The caller already has an answer; finish the writes even if the
	// client hangs up now.
	dbCtx, cancel := withTimeout(context.WithoutCancel(ctx), s.opts.Timeouts.DB)
	defer cancel()

	payload, err := json.Marshal(envelope(result))
	if err != nil {
		log.Error("failed to encode generation result", zap.Error(err))
		metrics.SettlementFailuresTotal.WithLabelValues("history").Inc()
	} else {
		gen := &models.Generation{
			ID:       s.newID(),
			UserID:   id.ID,
			TaskType: req.TaskType,
			Prompt:   req.Prompt,
			Result:   payload,
		}
		if err := s.store.InsertGeneration(dbCtx, gen); err != nil {
			log.Warn("failed to save generation history", zap.Error(err))
			metrics.SettlementFailuresTotal.WithLabelValues("history").Inc()
		}
	}

	if s.opts.StrictDebit {
		err = s.store.DebitCoins(dbCtx, id.ID, cost)
	} else {
		err = s.store.UpdateCoins(dbCtx, id.ID, coins-cost)
	}
	if err != nil {
		log.Warn("failed to update balance", zap.Error(err), zap.Int("cost", cost), zap.Bool("strict", s.opts.StrictDebit))
		metrics.SettlementFailuresTotal.WithLabelValues("balance").Inc()
	}
}
