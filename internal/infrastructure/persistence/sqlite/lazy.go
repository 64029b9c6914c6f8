package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/bnema/tabmatch/internal/application/port"
	"github.com/bnema/tabmatch/internal/domain/entity"
	"github.com/bnema/tabmatch/internal/domain/repository"
	"github.com/bnema/tabmatch/internal/logging"
)

// LazyDB opens the database on first access. Commands that only score
// explicit URLs never pay for the WASM compilation and migrations.
type LazyDB struct {
	dbPath string

	once sync.Once
	mu   sync.RWMutex
	db   *sql.DB
	err  error
}

var _ port.DatabaseProvider = (*LazyDB)(nil)

// NewLazyDB creates a new lazy database provider.
func NewLazyDB(dbPath string) *LazyDB {
	return &LazyDB{dbPath: dbPath}
}

// DB returns the database connection, opening it if necessary.
func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.once.Do(func() {
		log := logging.FromContext(ctx)
		log.Debug().Str("path", l.dbPath).Msg("opening database")

		db, err := NewConnection(ctx, l.dbPath)

		l.mu.Lock()
		l.db, l.err = db, err
		l.mu.Unlock()
	})

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.err != nil {
		return nil, fmt.Errorf("database initialization failed: %w", l.err)
	}
	return l.db, nil
}

// Close closes the database connection if it was opened.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

// IsInitialized reports whether the connection has been opened.
func (l *LazyDB) IsInitialized() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.db != nil
}

// Path returns the database path.
func (l *LazyDB) Path() string {
	return l.dbPath
}

// lazySessionStateRepo resolves its backing repository from the provider
// on the first call.
type lazySessionStateRepo struct {
	provider port.DatabaseProvider

	once sync.Once
	repo repository.SessionStateRepository
	err  error
}

// NewLazySessionStateRepository creates a session state repository that
// opens the database only when a method is called.
func NewLazySessionStateRepository(provider port.DatabaseProvider) repository.SessionStateRepository {
	return &lazySessionStateRepo{provider: provider}
}

func (r *lazySessionStateRepo) resolve(ctx context.Context) (repository.SessionStateRepository, error) {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.err = err
			return
		}
		r.repo = NewSessionStateRepository(db)
	})
	return r.repo, r.err
}

func (r *lazySessionStateRepo) SaveSnapshot(ctx context.Context, state *entity.SessionState) error {
	repo, err := r.resolve(ctx)
	if err != nil {
		return err
	}
	return repo.SaveSnapshot(ctx, state)
}

func (r *lazySessionStateRepo) GetSnapshot(ctx context.Context, sessionID entity.SessionID) (*entity.SessionState, error) {
	repo, err := r.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return repo.GetSnapshot(ctx, sessionID)
}

func (r *lazySessionStateRepo) DeleteSnapshot(ctx context.Context, sessionID entity.SessionID) error {
	repo, err := r.resolve(ctx)
	if err != nil {
		return err
	}
	return repo.DeleteSnapshot(ctx, sessionID)
}

func (r *lazySessionStateRepo) GetAllSnapshots(ctx context.Context) ([]*entity.SessionState, error) {
	repo, err := r.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return repo.GetAllSnapshots(ctx)
}

func (r *lazySessionStateRepo) GetTotalSnapshotsSize(ctx context.Context) (int64, error) {
	repo, err := r.resolve(ctx)
	if err != nil {
		return 0, err
	}
	return repo.GetTotalSnapshotsSize(ctx)
}
