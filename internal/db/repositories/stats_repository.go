package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"lifewithchrist/community/internal/models/entities"
)

// StatsRepository runs the raw aggregate queries behind the admin dashboard.
// It reads through sqlx directly since none of the counts need ORM hydration.
type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// MemberCountsByStatus returns one row per profile status
func (r *StatsRepository) MemberCountsByStatus(ctx context.Context) ([]entities.MemberCountRow, error) {
	var rows []entities.MemberCountRow

	query := `SELECT status, COUNT(*) AS count FROM users GROUP BY status`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to count members by status: %w", err)
	}

	return rows, nil
}

// CountGroups returns the total number of groups
func (r *StatsRepository) CountGroups(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM groups`
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count groups: %w", err)
	}
	return count, nil
}

// CountUpcomingEvents returns the number of events starting from now on
func (r *StatsRepository) CountUpcomingEvents(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM events WHERE start_time >= NOW()`
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count upcoming events: %w", err)
	}
	return count, nil
}

// CountPublishedPosts returns the number of visible posts
func (r *StatsRepository) CountPublishedPosts(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM posts WHERE status = 'published'`
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count published posts: %w", err)
	}
	return count, nil
}

// CountOpenPrayers returns the number of prayer requests still active
func (r *StatsRepository) CountOpenPrayers(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM prayer_requests WHERE status = 'active'`
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count open prayers: %w", err)
	}
	return count, nil
}
