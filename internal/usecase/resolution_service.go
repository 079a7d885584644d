package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dishcart/backend/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResolutionConfig holds the knobs for one resolution run
type ResolutionConfig struct {
	PerIngredientLimit int           // max candidates kept per ingredient token
	MaxParallel        int           // bound on concurrent outbound searches
	PerCallTimeout     time.Duration // deadline for a single retailer call
}

// ResolutionService drives the pipeline for one (recipe, requester) pair:
// normalize the shopping list, fan out bounded retailer searches, filter out
// mock identifiers, and persist the resulting option matrix.
type ResolutionService struct {
	recipes     domain.RecipeRepository
	resolutions domain.ResolutionRepository
	retailer    domain.RetailerClient
	normalizer  *Normalizer
	filter      *AuthenticityFilter
	config      ResolutionConfig
	logger      *zap.Logger
}

// NewResolutionService creates a resolution service with its dependencies.
// Zero config values fall back to the documented defaults (3 candidates per
// ingredient, 6 parallel searches, 20 second per-call deadline).
func NewResolutionService(
	recipes domain.RecipeRepository,
	resolutions domain.ResolutionRepository,
	retailer domain.RetailerClient,
	normalizer *Normalizer,
	filter *AuthenticityFilter,
	config ResolutionConfig,
	logger *zap.Logger,
) *ResolutionService {
	if config.PerIngredientLimit <= 0 {
		config.PerIngredientLimit = 3
	}
	if config.MaxParallel <= 0 {
		config.MaxParallel = 6
	}
	if config.PerCallTimeout <= 0 {
		config.PerCallTimeout = 20 * time.Second
	}

	return &ResolutionService{
		recipes:     recipes,
		resolutions: resolutions,
		retailer:    retailer,
		normalizer:  normalizer,
		filter:      filter,
		config:      config,
		logger:      logger,
	}
}

// searchJob is one token to resolve, tagged with its position so output
// order can follow input order regardless of completion order
type searchJob struct {
	index    int
	token    string
	original string
}

// searchOutcome is the result slot for one job
type searchOutcome struct {
	candidates []domain.ProductCandidate
	err        error
}

// Resolve runs the full pipeline and persists the resulting record,
// overwriting any prior record for the same (recipe, requester) pair.
//
// Failure semantics: a transient failure for a single token drops that token
// with a warning; a credential rejection aborts the whole resolution with
// domain.ErrRetailerUnavailable; store failures abort with
// domain.ErrStorageUnavailable. If every ingredient ends with zero
// surviving candidates the sentinel domain.ErrNoProductsFound is returned.
func (s *ResolutionService) Resolve(ctx context.Context, recipeID, requesterID string) (*domain.ResolutionRecord, error) {
	shoppingList, err := s.recipes.GetShoppingList(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	jobs := s.buildJobs(shoppingList)
	if len(jobs) == 0 {
		return nil, domain.ErrNoProductsFound
	}

	outcomes := s.runSearches(ctx, jobs)

	// A credential rejection anywhere invalidates the run; partial output
	// would mask a misconfigured deployment
	for _, outcome := range outcomes {
		if errors.Is(outcome.err, domain.ErrRetailerAuth) {
			return nil, fmt.Errorf("%w: %v", domain.ErrRetailerUnavailable, outcome.err)
		}
	}

	groups, total := s.assembleGroups(jobs, outcomes)
	if len(groups) == 0 {
		return nil, domain.ErrNoProductsFound
	}

	record := &domain.ResolutionRecord{
		ID:                uuid.NewString(),
		RecipeID:          recipeID,
		RequesterID:       requesterID,
		CreatedAt:         time.Now().UTC(),
		IngredientOptions: groups,
		TotalProducts:     total,
	}

	if err := s.resolutions.Save(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("resolution persisted",
		zap.String("recipe_id", recipeID),
		zap.String("requester_id", requesterID),
		zap.Int("ingredients", len(groups)),
		zap.Int("products", total))

	return record, nil
}

// buildJobs normalizes every shopping-list line into search jobs, preserving
// (line, token) order. Lines that normalize to nothing are dropped here.
func (s *ResolutionService) buildJobs(shoppingList []string) []searchJob {
	var jobs []searchJob
	for _, line := range shoppingList {
		tokens := s.normalizer.Normalize(line)
		if len(tokens) == 0 {
			s.logger.Debug("ingredient line produced no search tokens", zap.String("line", line))
			continue
		}
		for _, token := range tokens {
			jobs = append(jobs, searchJob{index: len(jobs), token: token, original: line})
		}
	}
	return jobs
}

// runSearches fans the jobs out over a bounded pool of workers and rejoins.
// The whole fan-out runs under a soft deadline derived from the per-call
// timeout; searches cancelled by its expiry count as empty.
func (s *ResolutionService) runSearches(ctx context.Context, jobs []searchJob) []searchOutcome {
	budget := s.resolutionBudget(len(jobs))
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	outcomes := make([]searchOutcome, len(jobs))
	semaphore := make(chan struct{}, s.config.MaxParallel)
	var wg sync.WaitGroup

	for _, job := range jobs {
		wg.Add(1)
		go func(job searchJob) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
				defer func() { <-semaphore }()
			case <-ctx.Done():
				outcomes[job.index] = searchOutcome{err: ctx.Err()}
				return
			}

			callCtx, callCancel := context.WithTimeout(ctx, s.config.PerCallTimeout)
			defer callCancel()

			candidates, err := s.retailer.Search(callCtx, job.token, s.config.PerIngredientLimit)
			outcomes[job.index] = searchOutcome{candidates: candidates, err: err}
		}(job)
	}

	wg.Wait()
	return outcomes
}

// resolutionBudget computes the soft deadline for one resolution:
// one call's worth of slack plus two rounds of calls per pool batch.
func (s *ResolutionService) resolutionBudget(jobCount int) time.Duration {
	batches := (jobCount + s.config.MaxParallel - 1) / s.config.MaxParallel
	return s.config.PerCallTimeout + 2*s.config.PerCallTimeout*time.Duration(batches)
}

// assembleGroups applies the authenticity filter and builds the ordered
// option groups, skipping tokens with zero survivors
func (s *ResolutionService) assembleGroups(jobs []searchJob, outcomes []searchOutcome) ([]domain.IngredientOptionGroup, int) {
	var groups []domain.IngredientOptionGroup
	total := 0

	for i, job := range jobs {
		outcome := outcomes[i]
		if outcome.err != nil {
			s.logger.Warn("search failed for token, dropping ingredient",
				zap.String("token", job.token),
				zap.Error(outcome.err))
			continue
		}

		var options []domain.ProductCandidate
		for _, candidate := range outcome.candidates {
			if s.filter.IsAuthentic(candidate.ID) {
				options = append(options, candidate)
			} else {
				s.logger.Debug("dropped mock product candidate", zap.String("product_id", candidate.ID))
			}
		}

		if len(options) == 0 {
			continue
		}

		groups = append(groups, domain.IngredientOptionGroup{
			IngredientName:     job.token,
			OriginalIngredient: job.original,
			Options:            options,
		})
		total += len(options)
	}

	return groups, total
}
