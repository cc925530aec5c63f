// Package memory implements every repository port in process memory, for
// development and tests. Data is lost on restart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu          sync.Mutex
	weights     []domain.WeightEntry
	waterEvents []domain.WaterEvent
	users       map[int64]domain.User
	userIDs     map[string]int64
	sessions    map[string]*domain.Session

	profile     *domain.UserProfile
	entries     map[string]domain.FoodLogEntry
	customFoods map[string]domain.CustomFood
	recipes     map[string]domain.Recipe

	weightIDCounter int64
	waterIDCounter  int64
	userIDCounter   int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		users:       make(map[int64]domain.User),
		userIDs:     make(map[string]int64),
		sessions:    make(map[string]*domain.Session),
		entries:     make(map[string]domain.FoodLogEntry),
		customFoods: make(map[string]domain.CustomFood),
		recipes:     make(map[string]domain.Recipe),
	}
}

// Ensure interfaces are met.
var (
	_ domain.WeightRepository     = (*DB)(nil)
	_ domain.WaterRepository      = (*DB)(nil)
	_ domain.UserRepository       = (*DB)(nil)
	_ domain.ProfileRepository    = (*DB)(nil)
	_ domain.FoodLogRepository    = (*DB)(nil)
	_ domain.CustomFoodRepository = (*DB)(nil)
	_ domain.RecipeRepository     = (*DB)(nil)
	_ domain.SessionRepository    = (*SessionRepo)(nil)
)

// --- WeightRepository ---

// AddWeightEvent adds a weight event.
func (db *DB) AddWeightEvent(ctx context.Context, value float64, unit string, createdAt time.Time) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.weightIDCounter++
	db.weights = append(db.weights, domain.WeightEntry{
		ID:        db.weightIDCounter,
		Value:     value,
		Unit:      unit,
		CreatedAt: createdAt.UTC(),
	})
	return db.weightIDCounter, nil
}

// newestWeightFirst orders by creation time, then by ID for equal times.
func newestWeightFirst(a, b domain.WeightEntry) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// DeleteLatestWeightEvent deletes the most recent weight event.
func (db *DB) DeleteLatestWeightEvent(ctx context.Context) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if len(db.weights) == 0 {
		return false, nil
	}
	last := 0
	for i := range db.weights {
		if newestWeightFirst(db.weights[i], db.weights[last]) {
			last = i
		}
	}
	db.weights = append(db.weights[:last], db.weights[last+1:]...)
	return true, nil
}

// LatestWeightForLocalDay returns the latest weight for the given day.
func (db *DB) LatestWeightForLocalDay(ctx context.Context, localDay string) (*domain.WeightEntry, error) {
	dayStart, dayEnd, err := domain.DayStartLocal(localDay)
	if err != nil {
		return nil, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	var latest *domain.WeightEntry
	for i := range db.weights {
		w := &db.weights[i]
		if w.CreatedAt.Before(dayStart) || !w.CreatedAt.Before(dayEnd) {
			continue
		}
		if latest == nil || newestWeightFirst(*w, *latest) {
			latest = w
		}
	}
	if latest == nil {
		return nil, nil
	}
	ret := *latest
	ret.Day = localDay
	return &ret, nil
}

// ListRecentWeightEvents lists the most recent weight events.
func (db *DB) ListRecentWeightEvents(ctx context.Context, limit int) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.WeightEntry, len(db.weights))
	copy(result, db.weights)
	sort.Slice(result, func(i, j int) bool { return newestWeightFirst(result[i], result[j]) })
	if len(result) > limit {
		result = result[:limit]
	}
	for i := range result {
		result[i].Day = domain.DayKey(result[i].CreatedAt)
	}
	return result, nil
}

// LatestWeightsBetween keeps the newest event of each local day in the window.
func (db *DB) LatestWeightsBetween(ctx context.Context, from, to string) (domain.WeightLog, error) {
	start, _, err := domain.DayStartLocal(from)
	if err != nil {
		return nil, err
	}
	_, end, err := domain.DayStartLocal(to)
	if err != nil {
		return nil, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	out := make(domain.WeightLog)
	for _, w := range db.weights {
		if w.CreatedAt.Before(start) || !w.CreatedAt.Before(end) {
			continue
		}
		day := domain.DayKey(w.CreatedAt)
		if cur, ok := out[day]; ok && !newestWeightFirst(w, cur) {
			continue
		}
		w.Day = day
		out[day] = w
	}
	return out, nil
}

// --- WaterRepository ---

// AddWaterEvent adds a water event.
func (db *DB) AddWaterEvent(ctx context.Context, day string, deltaMl int, createdAt time.Time) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.waterIDCounter++
	db.waterEvents = append(db.waterEvents, domain.WaterEvent{
		ID:        db.waterIDCounter,
		Day:       day,
		DeltaMl:   deltaMl,
		CreatedAt: createdAt.UTC(),
	})
	return db.waterIDCounter, nil
}

// DeleteWaterEvent deletes a water event by ID. Unknown IDs are ignored.
func (db *DB) DeleteWaterEvent(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, w := range db.waterEvents {
		if w.ID == id {
			db.waterEvents = append(db.waterEvents[:i], db.waterEvents[i+1:]...)
			return nil
		}
	}
	return nil
}

// ListRecentWaterEvents lists the most recent water events.
func (db *DB) ListRecentWaterEvents(ctx context.Context, limit int) ([]domain.WaterEvent, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.WaterEvent, len(db.waterEvents))
	copy(result, db.waterEvents)
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// WaterTotalForDay returns the summed deltas of day.
func (db *DB) WaterTotalForDay(ctx context.Context, day string) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var total int
	for _, w := range db.waterEvents {
		if w.Day == day {
			total += w.DeltaMl
		}
	}
	return total, nil
}

// WaterTotalsBetween returns per-day totals for from <= day <= to.
func (db *DB) WaterTotalsBetween(ctx context.Context, from, to string) (domain.WaterLog, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make(domain.WaterLog)
	for _, w := range db.waterEvents {
		if w.Day >= from && w.Day <= to {
			out[w.Day] += w.DeltaMl
		}
	}
	return out, nil
}

// ClearWaterEvents removes every water event.
func (db *DB) ClearWaterEvents(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.waterEvents = nil
	return nil
}

// --- UserRepository ---

// GetByUsername returns a copy of the named account, or nil, nil.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	id, ok := db.userIDs[username]
	if !ok {
		return nil, nil
	}
	u := db.users[id]
	return &u, nil
}

// GetByID returns a copy of the account, or nil, nil.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	u, ok := db.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// Create inserts an account; usernames are unique.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, taken := db.userIDs[username]; taken {
		return nil, fmt.Errorf("user %q already exists", username)
	}
	db.userIDCounter++
	u := domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	db.users[u.ID] = u
	db.userIDs[username] = u.ID
	return &u, nil
}

func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence. It is separate from DB because
// both user and session ports name their insert method Create.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if v.Expired(now) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
