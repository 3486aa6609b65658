package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/miservicio/auth-service/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Warn(string, map[string]interface{})  {}

type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*domain.User)}
}

func (r *memUserRepo) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	now := time.Now()
	stored := *user
	stored.ID = r.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.users[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *memUserRepo) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *user
	return &out, nil
}

func (r *memUserRepo) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			out := *user
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) SetRole(_ context.Context, id int64, role domain.UserRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Role = role
	return nil
}

func (r *memUserRepo) Summary(_ context.Context) (*domain.UsersSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	summary := &domain.UsersSummary{ByRole: make(map[string]int64)}
	for _, user := range r.users {
		summary.TotalUsers++
		if user.IsEmailVerified {
			summary.VerifiedUsers++
		}
		summary.ByRole[string(user.Role)]++
	}
	return summary, nil
}

func (r *memUserRepo) markVerified(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		user.IsEmailVerified = true
	}
}

type memRefreshRepo struct {
	mu      sync.Mutex
	records map[string]*domain.RefreshTokenRecord
}

func newMemRefreshRepo() *memRefreshRepo {
	return &memRefreshRepo{records: make(map[string]*domain.RefreshTokenRecord)}
}

func (r *memRefreshRepo) Create(_ context.Context, rec *domain.RefreshTokenRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *rec
	r.records[rec.JTI] = &stored
	return nil
}

// ConsumeLive holds the lock across check and flip, mirroring the single
// conditional UPDATE of the postgres repository.
func (r *memRefreshRepo) ConsumeLive(_ context.Context, jti, tokenHash string, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[jti]
	if !ok || rec.Revoked || rec.TokenHash != tokenHash || !rec.ExpiresAt.After(now) {
		return 0, domain.ErrRefreshRevoked
	}
	rec.Revoked = true
	return rec.UserID, nil
}

func (r *memRefreshRepo) RevokeByJTI(_ context.Context, jti string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.records[jti]; ok {
		rec.Revoked = true
	}
	return nil
}

func (r *memRefreshRepo) expire(jti string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.records[jti]; ok {
		rec.ExpiresAt = time.Now().Add(-time.Minute)
	}
}

type memVerificationRepo struct {
	mu     sync.Mutex
	users  *memUserRepo
	tokens map[string]*domain.VerificationToken
}

func newMemVerificationRepo(users *memUserRepo) *memVerificationRepo {
	return &memVerificationRepo{
		users:  users,
		tokens: make(map[string]*domain.VerificationToken),
	}
}

func (r *memVerificationRepo) Replace(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.tokens {
		if rec.UserID == userID && !rec.Used {
			rec.Used = true
		}
	}
	r.tokens[token] = &domain.VerificationToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	return nil
}

func (r *memVerificationRepo) Consume(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	r.mu.Lock()
	rec, ok := r.tokens[token]
	if !ok || rec.Used {
		r.mu.Unlock()
		return nil, domain.ErrInvalidToken
	}
	if rec.ExpiresAt.Before(now) {
		r.mu.Unlock()
		return nil, domain.ErrTokenExpired
	}
	rec.Used = true
	userID := rec.UserID
	r.mu.Unlock()

	r.users.markVerified(userID)
	return r.users.GetUserByID(ctx, userID)
}

func (r *memVerificationRepo) expire(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.tokens[token]; ok {
		rec.ExpiresAt = time.Now().Add(-time.Minute)
	}
}

// recordingMailer pushes delivered tokens onto a channel so tests can wait
// for the fire-and-forget send.
type recordingMailer struct {
	sent chan string
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{sent: make(chan string, 8)}
}

func (m *recordingMailer) SendVerificationEmail(_ context.Context, _, token string) error {
	m.sent <- token
	return nil
}

type staticProvider struct {
	result bool
}

func (p staticProvider) IsProvider(context.Context, int64) bool { return p.result }

type staticDomainChecker struct {
	exists bool
}

func (c staticDomainChecker) DomainExists(context.Context, string) bool { return c.exists }

type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (c *memCache) Get(key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	if !ok {
		return nil, domain.ErrInternal
	}
	return data, nil
}

func (c *memCache) Set(key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *memCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}
