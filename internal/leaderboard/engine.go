package leaderboard

import (
	"go.uber.org/zap"

	"github.com/signlingo/backend/internal/models"
)

// MaxPageSize caps both the response size and the cost of a single store
// range query.
const MaxPageSize = 100

// Store is the persistent collaborator holding score records. The engine
// only reads; score mutation belongs to the progress recorder.
//
// All three operations observe the same total order over records:
// score descending, then created_at ascending, then id ascending. Changing
// this order changes observable rank values and needs a migration note.
type Store interface {
	// ListLeaderboardPage returns up to limit records starting at offset,
	// in leaderboard order. Fewer rows than limit means the end of the
	// table was reached; zero rows is a normal result.
	ListLeaderboardPage(offset, limit int) ([]models.User, error)

	// FindUserByID returns (nil, nil) when no record exists.
	FindUserByID(id string) (*models.User, error)

	// CountDistinctScoresAbove returns the exact number of distinct score
	// values strictly greater than score, across the entire table.
	CountDistinctScoresAbove(score int64) (int64, error)
}

// RankedEntry is a read-only projection of one score record with its dense
// rank. Never persisted.
type RankedEntry struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Avatar   *string `json:"avatar"`
	Score    int64   `json:"score"`
	Position int64   `json:"position"`
}

// Page is the result of one leaderboard page request. Items preserve store
// order; Page and PageSize echo the request.
type Page struct {
	Items    []RankedEntry
	Page     int
	PageSize int
}

// Engine computes dense ranks over a score store. Stateless: every call
// issues fresh store queries, so instances scale out with no coordination.
//
// The page fetch and the distinct-higher count are two separate queries
// with no snapshot between them. A score mutation landing in that window
// can skew the ranks of one response; this is an accepted tradeoff in
// exchange for lock-free reads.
type Engine struct {
	store Store
	log   *zap.Logger
}

func NewEngine(store Store, logger *zap.Logger) *Engine {
	return &Engine{
		store: store,
		log:   logger.Named("leaderboard"),
	}
}

// GetPage returns one leaderboard page with dense-rank positions.
//
// Dense rank: every distinct score value occupies exactly one rank slot no
// matter how many users share it. Counting rows instead of distinct values
// would push the score below a 50-way tie for first down to rank 51; here
// it stays at rank 2.
func (e *Engine) GetPage(page, pageSize int) (*Page, error) {
	if page < 1 {
		return nil, validationErrorf("page must be >= 1, got %d", page)
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return nil, validationErrorf("page size must be in [1, %d], got %d", MaxPageSize, pageSize)
	}

	offset := (page - 1) * pageSize
	rows, err := e.store.ListLeaderboardPage(offset, pageSize)
	if err != nil {
		e.log.Error("Failed to fetch leaderboard page", zap.Int("page", page), zap.Error(err))
		return nil, &StoreError{err}
	}

	result := &Page{
		Items:    make([]RankedEntry, 0, len(rows)),
		Page:     page,
		PageSize: pageSize,
	}
	if len(rows) == 0 {
		// Offset past the end of the table, or an empty table.
		return result, nil
	}

	// Rows arrive best-first, so the first row carries the page's top score
	// and distinct scores appear in strictly descending order.
	topScore := rows[0].Score
	higher, err := e.store.CountDistinctScoresAbove(topScore)
	if err != nil {
		e.log.Error("Failed to count distinct higher scores", zap.Int64("score", topScore), zap.Error(err))
		return nil, &StoreError{err}
	}
	baseRank := higher + 1

	offsets := make(map[int64]int64, len(rows))
	for i := range rows {
		if _, seen := offsets[rows[i].Score]; !seen {
			offsets[rows[i].Score] = int64(len(offsets))
		}
	}

	for i := range rows {
		result.Items = append(result.Items, rankedEntry(&rows[i], baseRank+offsets[rows[i].Score]))
	}
	return result, nil
}

// GetUserRank returns the dense rank of a single user.
func (e *Engine) GetUserRank(id string) (*RankedEntry, error) {
	user, err := e.store.FindUserByID(id)
	if err != nil {
		e.log.Error("Failed to fetch score record", zap.String("user_id", id), zap.Error(err))
		return nil, &StoreError{err}
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	higher, err := e.store.CountDistinctScoresAbove(user.Score)
	if err != nil {
		e.log.Error("Failed to count distinct higher scores", zap.Int64("score", user.Score), zap.Error(err))
		return nil, &StoreError{err}
	}

	entry := rankedEntry(user, higher+1)
	return &entry, nil
}

func rankedEntry(user *models.User, position int64) RankedEntry {
	return RankedEntry{
		ID:       user.ID,
		Username: user.Username,
		Avatar:   user.Avatar,
		Score:    user.Score,
		Position: position,
	}
}
