package store

import (
	"context"
	"strings"
	"time"

	"github.com/curtisnewbie/isodate/config"
	"github.com/curtisnewbie/isodate/isodate"
	"github.com/curtisnewbie/isodate/logging"
	"github.com/curtisnewbie/isodate/util/errs"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DialectSqlite = "sqlite"
	DialectMySQL  = "mysql"
)

var (
	ErrUnknownDialect = errs.NewErrfCode("UNKNOWN_DIALECT", "Unknown database dialect")
	ErrStore          = errs.NewErrfCode("STORE_FAILURE", "Store failure")
)

// Persisted timestamp, the value is stored twice: once as unwrapped ISO 8601 text and once using the legacy pattern.
type Record struct {
	Id         int64              `gorm:"primaryKey;autoIncrement"`
	Input      string             `gorm:"column:input;size:255"`
	Iso        string             `gorm:"column:iso;size:32"`
	Legacy     isodate.LegacyTime `gorm:"column:legacy;size:32"`
	RecordedAt isodate.LegacyTime `gorm:"column:recorded_at;size:32"`
}

func (Record) TableName() string {
	return "isodate_record"
}

type Param struct {
	Dialect      string
	Dsn          string
	WalEnabled   bool // sqlite only
	MaxOpenConns int  // mysql only
}

// Read Param from configuration.
func ParamFromConfig(c *config.AppConfig) Param {
	return Param{
		Dialect:      c.GetPropStr(config.PropStoreDialect),
		Dsn:          c.GetPropStr(config.PropStoreDsn),
		WalEnabled:   c.GetPropBool(config.PropStoreWalEnabled),
		MaxOpenConns: c.GetPropInt(config.PropStoreMaxOpenConns),
	}
}

type Store struct {
	db *gorm.DB
}

// Open connection to the database and migrate the schema.
func Open(p Param) (*Store, error) {
	db, err := newConn(p)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		closeConn(db)
		return nil, ErrStore.Wrapf(err, "failed to migrate table %v", Record{}.TableName())
	}
	return &Store{db: db}, nil
}

func newConn(p Param) (*gorm.DB, error) {
	gc := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if logging.IsDebugLevel() {
		gc.Logger = logger.Default.LogMode(logger.Info)
	}

	switch strings.ToLower(strings.TrimSpace(p.Dialect)) {
	case DialectSqlite:
		logging.Infof("Connecting to SQLite database '%s', enable WAL: %v", p.Dsn, p.WalEnabled)
		db, err := gorm.Open(sqlite.Open(p.Dsn), gc)
		if err != nil {
			return nil, ErrStore.Wrapf(err, "failed to open SQLite")
		}
		if err := ping(db); err != nil {
			closeConn(db)
			return nil, ErrStore.Wrapf(err, "failed to ping SQLite")
		}

		// https://www.sqlite.org/pragma.html#pragma_journal_mode
		if p.WalEnabled {
			var mode string
			if err := db.Raw("PRAGMA journal_mode=WAL").Scan(&mode).Error; err != nil {
				closeConn(db)
				return nil, ErrStore.Wrapf(err, "failed to enable WAL mode")
			}
			logging.Debugf("Enabled SQLite WAL mode, result: %v", mode)
		}
		return db, nil

	case DialectMySQL:
		logging.Infof("Connecting to MySQL database")
		gc.PrepareStmt = true
		db, err := gorm.Open(mysql.Open(p.Dsn), gc)
		if err != nil {
			return nil, ErrStore.Wrapf(err, "failed to connect to MySQL")
		}
		sqlDb, err := db.DB()
		if err != nil {
			return nil, ErrStore.Wrapf(err, "failed to obtain MySQL conn from gorm")
		}
		if p.MaxOpenConns > 0 {
			sqlDb.SetMaxOpenConns(p.MaxOpenConns)
			sqlDb.SetMaxIdleConns(p.MaxOpenConns)
		}
		sqlDb.SetConnMaxLifetime(30 * time.Minute)
		if err := sqlDb.Ping(); err != nil {
			sqlDb.Close()
			return nil, ErrStore.Wrapf(err, "failed to ping MySQL")
		}
		return db, nil
	}
	return nil, ErrUnknownDialect.WithInput(p.Dialect, "expecting '%v' or '%v'", DialectSqlite, DialectMySQL)
}

func closeConn(db *gorm.DB) {
	if tx, err := db.DB(); err == nil {
		if err := tx.Close(); err != nil {
			logging.Warnf("Failed to close connection, %v", err)
		}
	}
}

func ping(db *gorm.DB) error {
	tx, err := db.DB()
	if err != nil {
		return err
	}
	return tx.Ping()
}

// Persist the timestamp parsed from input.
func (s *Store) Save(ctx context.Context, input string, ts isodate.Timestamp) (Record, error) {
	r := Record{
		Input:      input,
		Iso:        isodate.Encode(ts, isodate.WithoutWrap()),
		Legacy:     isodate.WrapLegacy(ts),
		RecordedAt: isodate.WrapLegacy(isodate.FromTime(time.Now())),
	}
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return r, ErrStore.Wrapf(err, "failed to save record, input: '%v'", input)
	}
	logging.Debugf("Saved record %v, input: '%v', legacy: '%v'", r.Id, input, isodate.LegacyEncode(ts))
	return r, nil
}

// List records, the most recent first.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	var l []Record
	q := s.db.WithContext(ctx).Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&l).Error; err != nil {
		return nil, ErrStore.Wrapf(err, "failed to list records")
	}
	return l, nil
}

func (s *Store) Close() error {
	tx, err := s.db.DB()
	if err != nil {
		return ErrStore.Wrap(err)
	}
	return ErrStore.Wrap(tx.Close())
}
