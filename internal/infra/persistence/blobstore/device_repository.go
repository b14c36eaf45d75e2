// Package blobstore stores all device records as one JSON document in a gocloud bucket.
// The document layout is {"devices": {"<deviceId>": <record>}}.
package blobstore

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sync"

	"nudge/internal/domain/entity"
	"nudge/internal/domain/repository"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

const contentType = "application/json"

// document keeps records raw so one corrupt record does not poison the rest.
type document struct {
	Devices map[string]json.RawMessage `json:"devices"`
}

// Store is a DeviceRepository and TransactionManager over a single bucket object.
// The decoded document is cached and revalidated against the object's version on
// every access, so a run reads the object once unless something else rewrote it.
// Writes are serialised within the process; a single writer process is assumed.
type Store struct {
	mu      sync.Mutex
	bucket  *blob.Bucket
	key     string
	cached  *document
	version string
}

// NewStore creates a store over key in bucket. The bucket is not closed by the store.
func NewStore(bucket *blob.Bucket, key string) *Store {
	return &Store{bucket: bucket, key: key}
}

func (s *Store) Get(ctx context.Context, deviceID string) (*entity.DeviceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	return doc.get(deviceID)
}

func (s *Store) ListDeviceIDs(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	return slices.Sorted(maps.Keys(doc.Devices)), nil
}

func (s *Store) Merge(ctx context.Context, deviceID string, patch *entity.DevicePatch) (*entity.DeviceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	next := doc.clone()
	record, err := next.merge(deviceID, patch)
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, next); err != nil {
		return nil, err
	}

	return record, nil
}

// Execute lets fn read and merge against a copy of the document and writes it back
// in a single object write when fn succeeds.
func (s *Store) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.current(ctx)
	if err != nil {
		return err
	}

	tx := &txRepository{doc: doc.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	if !tx.dirty {
		return nil
	}

	return s.save(ctx, tx.doc)
}

// current returns the cached document while the object is unchanged. Callers hold mu
// and must not modify the result.
func (s *Store) current(ctx context.Context) (*document, error) {
	attrs, err := s.bucket.Attributes(ctx, s.key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			s.cached, s.version = nil, ""

			return &document{Devices: make(map[string]json.RawMessage)}, nil
		}

		return nil, errors.Wrapf(err, "failed to stat %s", s.key)
	}

	version := objectVersion(attrs)
	if s.cached != nil && version == s.version {
		return s.cached, nil
	}

	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	s.cached, s.version = doc, version

	return doc, nil
}

func (s *Store) read(ctx context.Context) (*document, error) {
	data, err := s.bucket.ReadAll(ctx, s.key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", s.key)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", s.key)
	}
	if doc.Devices == nil {
		doc.Devices = make(map[string]json.RawMessage)
	}

	return &doc, nil
}

func (s *Store) save(ctx context.Context, doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}

	if err := s.bucket.WriteAll(ctx, s.key, data, &blob.WriterOptions{ContentType: contentType}); err != nil {
		s.cached, s.version = nil, ""

		return errors.Wrapf(err, "failed to write %s", s.key)
	}

	s.cached, s.version = nil, ""
	if attrs, err := s.bucket.Attributes(ctx, s.key); err == nil {
		s.cached, s.version = doc, objectVersion(attrs)
	}

	return nil
}

func objectVersion(attrs *blob.Attributes) string {
	return fmt.Sprintf("%s|%d|%d", attrs.ETag, attrs.ModTime.UnixNano(), attrs.Size)
}

// clone copies the device index; stored raw records are replaced on merge, never mutated.
func (d *document) clone() *document {
	return &document{Devices: maps.Clone(d.Devices)}
}

func (d *document) get(deviceID string) (*entity.DeviceRecord, error) {
	raw, ok := d.Devices[deviceID]
	if !ok {
		return nil, repository.ErrDeviceNotFound
	}

	var record entity.DeviceRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, errors.Wrapf(repository.ErrCorruptRecord, "device %s: %v", deviceID, err)
	}

	return &record, nil
}

// merge applies patch in the document. A corrupt stored record is replaced by the patch
// applied to an empty record, since clients re-mirror their full data.
func (d *document) merge(deviceID string, patch *entity.DevicePatch) (*entity.DeviceRecord, error) {
	current, err := d.get(deviceID)
	if err != nil && !errors.Is(err, repository.ErrDeviceNotFound) && !errors.Is(err, repository.ErrCorruptRecord) {
		return nil, err
	}

	record := patch.Apply(current)

	raw, err := json.Marshal(record)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	d.Devices[deviceID] = raw

	return record.Clone(), nil
}

type txRepository struct {
	doc   *document
	dirty bool
}

func (t *txRepository) NewDeviceRepository() repository.DeviceRepository {
	return t
}

func (t *txRepository) Get(_ context.Context, deviceID string) (*entity.DeviceRecord, error) {
	return t.doc.get(deviceID)
}

func (t *txRepository) ListDeviceIDs(_ context.Context) ([]string, error) {
	return slices.Sorted(maps.Keys(t.doc.Devices)), nil
}

func (t *txRepository) Merge(_ context.Context, deviceID string, patch *entity.DevicePatch) (*entity.DeviceRecord, error) {
	record, err := t.doc.merge(deviceID, patch)
	if err != nil {
		return nil, err
	}
	t.dirty = true

	return record, nil
}
