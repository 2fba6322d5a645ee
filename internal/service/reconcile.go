package service

import (
	"context"
	"fmt"

	"github.com/lifelens/backend/internal/logger"
	"github.com/lifelens/backend/internal/models"
	"github.com/lifelens/backend/internal/repository"
)

// reconcilePatterns upserts each candidate into the pattern repository by
// its (user, type, name) identity. The batch is best-effort, not atomic:
// a failed upsert does not roll back earlier writes, and the remaining
// candidates are still attempted. The first failure is returned after the
// whole batch has been tried, so a rerun on unchanged data simply refreshes
// whatever was already written.
func reconcilePatterns(
	ctx context.Context,
	patternRepo repository.PatternRepository,
	userID string,
	candidates []models.BehaviorPattern,
) ([]models.BehaviorPattern, error) {
	log := logger.Ctx(ctx)

	reconciled := make([]models.BehaviorPattern, 0, len(candidates))
	var firstErr error

	for i := range candidates {
		stored, err := patternRepo.Upsert(ctx, &candidates[i])
		if err != nil {
			log.Error("failed to reconcile behavior pattern",
				logger.Err(err),
				logger.String("user_id", userID),
				logger.String("pattern", candidates[i].Key()),
			)
			if firstErr == nil {
				firstErr = fmt.Errorf("upsert pattern %q: %w", candidates[i].Key(), err)
			}
			continue
		}
		reconciled = append(reconciled, *stored)
	}

	return reconciled, firstErr
}
