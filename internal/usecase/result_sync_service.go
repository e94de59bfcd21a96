package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/golestat/prediction-league/internal/domain/match"
	"github.com/golestat/prediction-league/internal/platform/logging"
)

// JobQueue publishes delayed callbacks to the internal job routes.
type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type noopJobQueue struct{}

func (noopJobQueue) Enqueue(_ context.Context, _ string, _ any, _ time.Duration, _ string) error {
	return nil
}

func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}

// ExternalMatchResult is one finished match as reported by the result feed.
type ExternalMatchResult struct {
	Week      int
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
}

// ResultProvider fetches finished results for one provider-side season.
type ResultProvider interface {
	FetchFinishedResults(ctx context.Context, providerSeasonID int64) ([]ExternalMatchResult, error)
}

// ResultSyncSummary reports one season's feed pass.
type ResultSyncSummary struct {
	SeasonID  string `json:"season_id"`
	Fetched   int    `json:"fetched"`
	Finalized int    `json:"finalized"`
	Skipped   int    `json:"skipped"`
	Unmatched int    `json:"unmatched"`
	Failed    int    `json:"failed"`
}

// ResultSyncBatchSummary reports a feed pass across every mapped season.
type ResultSyncBatchSummary struct {
	SeasonCount  int                 `json:"season_count"`
	SuccessCount int                 `json:"success_count"`
	FailedCount  int                 `json:"failed_count"`
	Seasons      []ResultSyncSummary `json:"seasons"`
	NextRunIn    string              `json:"next_run_in,omitempty"`
	DurationMs   int64               `json:"duration_ms"`
}

// ResultSyncService pulls finished results from the external feed and pushes
// them through the same finalize path operators use, so feed-driven results
// trigger the identical rescoring and aggregation.
type ResultSyncService struct {
	provider          ResultProvider
	matchRepo         match.Repository
	admin             *AdminService
	queue             JobQueue
	providerSeasonIDs map[string]int64
	syncInterval      time.Duration
	logger            *logging.Logger
	now               func() time.Time
}

func NewResultSyncService(
	provider ResultProvider,
	matchRepo match.Repository,
	admin *AdminService,
	queue JobQueue,
	providerSeasonIDs map[string]int64,
	syncInterval time.Duration,
	logger *logging.Logger,
) *ResultSyncService {
	if queue == nil {
		queue = NewNoopJobQueue()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if syncInterval <= 0 {
		syncInterval = 10 * time.Minute
	}
	return &ResultSyncService{
		provider:          provider,
		matchRepo:         matchRepo,
		admin:             admin,
		queue:             queue,
		providerSeasonIDs: providerSeasonIDs,
		syncInterval:      syncInterval,
		logger:            logger,
		now:               time.Now,
	}
}

// SyncSeason fetches the feed for one season and finalizes every local match
// the feed reports as finished. Matches already stored with the same score
// are skipped, so repeated passes converge without rescoring anything.
func (s *ResultSyncService) SyncSeason(ctx context.Context, seasonID string) (ResultSyncSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultSyncService.SyncSeason")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return ResultSyncSummary{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if s.provider == nil {
		return ResultSyncSummary{}, fmt.Errorf("%w: result feed is not configured", ErrDependencyUnavailable)
	}
	providerSeasonID, ok := s.providerSeasonIDs[seasonID]
	if !ok {
		return ResultSyncSummary{}, fmt.Errorf("%w: season=%s has no result feed mapping", ErrNotFound, seasonID)
	}

	results, err := s.provider.FetchFinishedResults(ctx, providerSeasonID)
	if err != nil {
		return ResultSyncSummary{}, fmt.Errorf("fetch finished results season=%s: %w", seasonID, err)
	}

	matches, err := s.matchRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return ResultSyncSummary{}, fmt.Errorf("list matches season=%s: %w", seasonID, err)
	}
	byKey := make(map[string]match.Match, len(matches))
	for _, m := range matches {
		byKey[matchKey(m.Week, m.HomeTeam, m.AwayTeam)] = m
	}

	summary := ResultSyncSummary{SeasonID: seasonID, Fetched: len(results)}
	for _, item := range results {
		m, found := byKey[matchKey(item.Week, item.HomeTeam, item.AwayTeam)]
		if !found {
			summary.Unmatched++
			s.logger.DebugContext(ctx, "feed result has no local match",
				"season_id", seasonID,
				"week", item.Week,
				"home_team", item.HomeTeam,
				"away_team", item.AwayTeam,
			)
			continue
		}
		if hasSameResult(m, item) {
			summary.Skipped++
			continue
		}

		if _, err := s.admin.SetMatchResult(ctx, SetMatchResultInput{
			MatchID:   m.ID,
			HomeScore: item.HomeScore,
			AwayScore: item.AwayScore,
		}); err != nil {
			summary.Failed++
			s.logger.WarnContext(ctx, "finalize feed result failed",
				"season_id", seasonID, "match_id", m.ID, "error", err)
			continue
		}
		summary.Finalized++
	}

	s.logger.InfoContext(ctx, "season results synced",
		"season_id", seasonID,
		"fetched", summary.Fetched,
		"finalized", summary.Finalized,
		"skipped", summary.Skipped,
		"unmatched", summary.Unmatched,
		"failed", summary.Failed,
	)
	if summary.Failed > 0 {
		return summary, fmt.Errorf("%w: season=%s failed_matches=%d", ErrPartialBatchFailure, seasonID, summary.Failed)
	}
	return summary, nil
}

// SyncAll runs a feed pass for every mapped season. Seasons are independent
// units; a failing season is reported in the summary without blocking the
// rest.
func (s *ResultSyncService) SyncAll(ctx context.Context) (ResultSyncBatchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultSyncService.SyncAll")
	defer span.End()

	seasonIDs := make([]string, 0, len(s.providerSeasonIDs))
	for seasonID := range s.providerSeasonIDs {
		seasonIDs = append(seasonIDs, seasonID)
	}
	sort.Strings(seasonIDs)

	start := s.now()
	batch := ResultSyncBatchSummary{
		SeasonCount: len(seasonIDs),
		Seasons:     make([]ResultSyncSummary, 0, len(seasonIDs)),
	}
	for _, seasonID := range seasonIDs {
		summary, err := s.SyncSeason(ctx, seasonID)
		batch.Seasons = append(batch.Seasons, summary)
		if err != nil {
			batch.FailedCount++
			continue
		}
		batch.SuccessCount++
	}
	batch.DurationMs = time.Since(start).Milliseconds()

	if batch.FailedCount > 0 {
		return batch, fmt.Errorf("%w: %d of %d seasons failed", ErrPartialBatchFailure, batch.FailedCount, batch.SeasonCount)
	}
	return batch, nil
}

// RunScheduled is the recurring job entry point: it syncs every mapped season
// and queues the next run. The deduplication id is bucketed on the interval,
// so overlapping triggers collapse into one queued callback.
func (s *ResultSyncService) RunScheduled(ctx context.Context) (ResultSyncBatchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultSyncService.RunScheduled")
	defer span.End()

	batch, err := s.SyncAll(ctx)
	if err != nil && !errors.Is(err, ErrPartialBatchFailure) {
		return batch, err
	}

	now := s.now().UTC()
	dedupID := dedupKey("result-sync", "all", now.Add(s.syncInterval), s.syncInterval)
	if enqueueErr := s.queue.Enqueue(ctx, "/v1/internal/jobs/result-sync", map[string]any{
		"dispatch_id": dedupID,
	}, s.syncInterval, dedupID); enqueueErr != nil {
		s.logger.WarnContext(ctx, "enqueue next result sync failed", "error", enqueueErr)
	} else {
		batch.NextRunIn = s.syncInterval.String()
	}

	return batch, err
}

func hasSameResult(m match.Match, item ExternalMatchResult) bool {
	return m.IsScoreable() && *m.HomeScore == item.HomeScore && *m.AwayScore == item.AwayScore
}

func matchKey(week int, homeTeam, awayTeam string) string {
	return fmt.Sprintf("%d|%s|%s", week, normalizeTeamName(homeTeam), normalizeTeamName(awayTeam))
}

func normalizeTeamName(value string) string {
	return strings.ToLower(strings.Join(strings.Fields(value), " "))
}

var dedupUnsafeCharRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func dedupKey(prefix, scope string, at time.Time, bucket time.Duration) string {
	if bucket <= 0 {
		bucket = time.Minute
	}
	slot := at.UTC().Truncate(bucket).Format("20060102T150405Z")
	return sanitizeDedupSegment(prefix) + "-" + sanitizeDedupSegment(scope) + "-" + slot
}

func sanitizeDedupSegment(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return dedupUnsafeCharRegex.ReplaceAllString(value, "-")
}
