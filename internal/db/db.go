package db

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/wastedyears/internal/models"
)

// urlPrefix is the only supported connection URL scheme, followed by the file path
const urlPrefix = "sqlite:///"

// schemaModels lists the tables in creation order; DestroySchema drops them in reverse
var schemaModels = []interface{}{
	&models.Task{},
	&models.Word{},
	&models.TaskWord{},
}

// Session owns a single database connection and at most one open transaction.
// It is not safe for concurrent use.
type Session struct {
	db  *gorm.DB
	tx  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the logger used for session events and SQL tracing
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the clock used to stamp update_ts
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// Open connects to the database at url (sqlite:///<path>) and verifies that it
// is usable before returning.
func Open(url string, opts ...Option) (*Session, error) {
	s := &Session{
		log: zap.NewNop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	path, err := ParseURL(url)
	if err != nil {
		return nil, err
	}

	gormLog := newGormLogger(s.log)
	if s.log.Core().Enabled(zapcore.DebugLevel) {
		gormLog.level = logger.Info
	}

	// foreign_keys is applied by the driver to every new physical connection
	dsn := path + "?_pragma=foreign_keys(1)"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
		NowFunc:        func() time.Time { return s.now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConnection, path, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	// fail now rather than on the first query: this touches the file and
	// rejects anything that is not a sqlite database
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrConnection, path, err)
	}
	var tables int64
	if err := gdb.Raw("SELECT count(*) FROM sqlite_master").Scan(&tables).Error; err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrConnection, path, err)
	}

	s.db = gdb
	s.log.Debug("database opened", zap.String("path", path), zap.Int64("objects", tables))
	return s, nil
}

// ParseURL returns the file path named by a sqlite:/// connection URL
func ParseURL(url string) (string, error) {
	if !strings.HasPrefix(url, urlPrefix) {
		return "", fmt.Errorf("%w: unsupported database url %q (want %s<path>)", ErrConnection, url, urlPrefix)
	}
	path := strings.TrimPrefix(url, urlPrefix)
	if path == "" {
		return "", fmt.Errorf("%w: database url %q has no path", ErrConnection, url)
	}
	return path, nil
}

// Nuke removes the database file behind url. A missing file is not an error.
func Nuke(url string) error {
	path, err := ParseURL(url)
	if err != nil {
		return err
	}
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return fmt.Errorf("cannot nuke database: %s", url)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove database: %w", err)
	}
	return nil
}

// conn returns the handle statements should run on: the open transaction if
// there is one, the connection otherwise
func (s *Session) conn() *gorm.DB {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// atomic runs fn in a transaction. Inside an open transaction gorm nests it as
// a savepoint, so a failing step never leaves half an operation behind.
func (s *Session) atomic(fn func(tx *gorm.DB) error) error {
	return s.conn().Transaction(fn)
}

// InTransaction reports whether a transaction is open
func (s *Session) InTransaction() bool {
	return s.tx != nil
}

// Begin opens a transaction
func (s *Session) Begin() error {
	if s.tx != nil {
		return fmt.Errorf("%w: a transaction is already open", ErrState)
	}
	tx := s.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	s.tx = tx
	s.log.Debug("transaction started")
	return nil
}

// Commit commits the open transaction
func (s *Session) Commit() error {
	if s.tx == nil {
		return fmt.Errorf("%w: no transaction to commit", ErrState)
	}
	tx := s.tx
	s.tx = nil
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.log.Debug("transaction committed")
	return nil
}

// Rollback discards the open transaction
func (s *Session) Rollback() error {
	if s.tx == nil {
		return fmt.Errorf("%w: no transaction to roll back", ErrState)
	}
	tx := s.tx
	s.tx = nil
	if err := tx.Rollback().Error; err != nil {
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}
	s.log.Debug("transaction rolled back")
	return nil
}

// InitSchema creates the tasks, words and task_words tables if they do not exist
func (s *Session) InitSchema() error {
	if err := s.conn().AutoMigrate(schemaModels...); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// DestroySchema drops all tables
func (s *Session) DestroySchema() error {
	migrator := s.conn().Migrator()
	for i := len(schemaModels) - 1; i >= 0; i-- {
		if err := migrator.DropTable(schemaModels[i]); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
	}
	return nil
}

// Close rolls back any open transaction and releases the connection
func (s *Session) Close() error {
	if s.db == nil {
		return nil
	}

	var errs []error
	if s.tx != nil {
		if err := s.Rollback(); err != nil {
			errs = append(errs, err)
		}
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		errs = append(errs, err)
	} else if err := sqlDB.Close(); err != nil {
		errs = append(errs, err)
	}
	s.db = nil
	s.log.Debug("database closed")
	return errors.Join(errs...)
}

// Release ends the session after use. With a nil err an open transaction is
// committed, otherwise it is rolled back; the connection is closed either way.
// The returned error joins err with anything that went wrong on the way out.
func (s *Session) Release(err error) error {
	if err == nil && s.tx != nil {
		if cerr := s.Commit(); cerr != nil {
			err = cerr
		}
	}
	return errors.Join(err, s.Close())
}

// Use opens a session, runs fn and releases the session. A panic in fn rolls
// back the open transaction and closes the connection before propagating.
func Use(url string, fn func(*Session) error, opts ...Option) error {
	s, err := Open(url, opts...)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			s.Close()
			panic(r)
		}
	}()

	return s.Release(fn(s))
}
