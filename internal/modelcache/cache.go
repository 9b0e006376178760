// Package modelcache persists a trained frequency store between runs.
//
// The model lives in a single bolt database as one gob-encoded, versioned
// record under a fixed key. Save replaces the record in one write
// transaction, so a reader sees either the previous model or the new one.
// Load treats every problem as a cache miss.
package modelcache

import (
	"bytes"
	"encoding/gob"
	"os"
	"path/filepath"
	"time"

	"fjacquet/spending-nb/internal/bayes"
	"fjacquet/spending-nb/internal/fileutils"
	"fjacquet/spending-nb/internal/logging"
	"fjacquet/spending-nb/internal/models"
	"fjacquet/spending-nb/internal/tokenizer"
	"fjacquet/spending-nb/internal/validation"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
)

// FormatVersion is bumped whenever the record layout changes.
const FormatVersion = 1

// Reasons logged when a cached model is ignored.
const (
	ReasonUnreadable   = "unreadable"
	ReasonVersion      = "format_version"
	ReasonTokenizer    = "tokenizer"
	ReasonInconsistent = "inconsistent"
)

var (
	bucketName = []byte("model")
	recordKey  = []byte("snapshot")

	openTimeout = time.Second
)

var (
	errNoBucket = errors.New("cache bucket not found")
	errNoRecord = errors.New("cache record not found")
)

type record struct {
	Version  int
	SavedAt  time.Time
	Snapshot bayes.Snapshot
}

// Cache stores the model at a bolt file path.
type Cache struct {
	path   string
	mode   tokenizer.Mode
	logger logging.Logger
}

// New returns a cache at path for models built with the given tokenizer mode.
func New(path string, mode tokenizer.Mode, logger logging.Logger) *Cache {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if mode == "" {
		mode = tokenizer.ModeWhitespace
	}
	return &Cache{path: path, mode: mode, logger: logger}
}

// Path returns the database file location.
func (c *Cache) Path() string {
	return c.path
}

// Load returns the cached snapshot. ok is false when the file is missing,
// unreadable, from another format version or tokenizer mode, or does not
// hold a complete and consistent model.
func (c *Cache) Load() (bayes.Snapshot, bool) {
	log := c.logger.WithFields(
		logging.F(logging.FieldCacheFile, c.path),
		logging.F(logging.FieldOperation, "load"))

	info, err := os.Stat(c.path)
	if err != nil || info.IsDir() {
		log.Debug("No cached classifier")
		return bayes.Snapshot{}, false
	}
	if err := validation.IsValidFilePermissions(info.Mode()); err != nil {
		log.WithError(err).Warn("Model cache is readable by other users")
	}

	rec, err := c.read()
	if err != nil {
		log.WithError(err).Warn("Ignoring unreadable model cache",
			logging.F(logging.FieldReason, ReasonUnreadable))
		return bayes.Snapshot{}, false
	}

	if rec.Version != FormatVersion {
		log.Warn("Ignoring model cache from another format version",
			logging.F(logging.FieldReason, ReasonVersion),
			logging.F("version", rec.Version))
		return bayes.Snapshot{}, false
	}

	snapMode := rec.Snapshot.Tokenizer
	if snapMode == "" {
		snapMode = tokenizer.ModeWhitespace
	}
	if snapMode != c.mode {
		log.Warn("Ignoring model cache built with another tokenizer",
			logging.F(logging.FieldReason, ReasonTokenizer),
			logging.F(logging.FieldTokenizer, snapMode))
		return bayes.Snapshot{}, false
	}

	if err := bayes.ValidateSnapshot(rec.Snapshot); err != nil {
		log.WithError(err).Warn("Ignoring inconsistent model cache",
			logging.F(logging.FieldReason, ReasonInconsistent))
		return bayes.Snapshot{}, false
	}

	return rec.Snapshot, true
}

func (c *Cache) read() (record, error) {
	var rec record

	db, err := bolt.Open(c.path, models.PermissionCacheFile, &bolt.Options{
		Timeout:  openTimeout,
		ReadOnly: true,
	})
	if err != nil {
		return rec, errors.Wrapf(err, "unable to open model cache %s", c.path)
	}
	defer func() {
		if err := db.Close(); err != nil {
			c.logger.WithError(err).Debug("Failed to close model cache")
		}
	}()

	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return errNoBucket
		}
		v := b.Get(recordKey)
		if v == nil {
			return errNoRecord
		}
		dec := gob.NewDecoder(bytes.NewReader(v))
		return errors.Wrap(dec.Decode(&rec), "unable to decode cached model")
	})
	return rec, errors.WithStack(err)
}

// Save replaces the cached model with snap.
func (c *Cache) Save(snap bayes.Snapshot) error {
	if snap.Tokenizer == "" {
		snap.Tokenizer = c.mode
	}

	var val bytes.Buffer
	rec := record{Version: FormatVersion, SavedAt: time.Now().UTC(), Snapshot: snap}
	if err := gob.NewEncoder(&val).Encode(rec); err != nil {
		return errors.Wrap(err, "unable to encode model")
	}

	if err := fileutils.EnsureDirectoryExists(filepath.Dir(c.path)); err != nil {
		return errors.WithStack(err)
	}

	db, err := bolt.Open(c.path, models.PermissionCacheFile, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return errors.Wrapf(err, "unable to open model cache %s", c.path)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return errors.Wrap(err, "unable to create model bucket")
		}
		return errors.Wrap(b.Put(recordKey, val.Bytes()), "unable to store model")
	})
	if cerr := db.Close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, "unable to close model cache")
	}
	if err != nil {
		return err
	}

	c.logger.Info("Saved classifier cache",
		logging.F(logging.FieldCacheFile, c.path),
		logging.F(logging.FieldOperation, "save"),
		logging.F(logging.FieldCategories, len(snap.Categories)),
		logging.F(logging.FieldVocabulary, len(snap.Vocabulary)))
	return nil
}

// Clear removes the cache file. A missing file is not an error.
func (c *Cache) Clear() error {
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "unable to remove model cache %s", c.path)
	}
	c.logger.Debug("Removed classifier cache",
		logging.F(logging.FieldCacheFile, c.path),
		logging.F(logging.FieldOperation, "clear"))
	return nil
}
