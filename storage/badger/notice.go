package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/tenderit/core"
	"github.com/poiesic/tenderit/storage"
)

// NoticeRepository implements storage.NoticeRepository for BadgerDB.
type NoticeRepository struct {
	backend *Backend
}

var _ storage.NoticeRepository = (*NoticeRepository)(nil)

// NewNoticeRepository creates a new NoticeRepository.
func NewNoticeRepository(backend *Backend) (*NoticeRepository, error) {
	return &NoticeRepository{
		backend: backend,
	}, nil
}

// Close releases resources. NoticeRepository has no resources to release.
func (r *NoticeRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *NoticeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddNotices adds one or more notices to storage. A notice whose RecordID
// is already present overwrites the stored version.
func (r *NoticeRepository) AddNotices(ctx context.Context, notices ...*core.Notice) ([]*core.Notice, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, notice := range notices {
			if err := core.ValidateNotice(notice); err != nil {
				return err
			}

			// Content-based ID keeps re-ingestion of the same record stable
			if notice.Id == 0 {
				notice.Id = core.IDFromContent(notice.RecordID)
			}

			now := time.Now().UTC()
			if old, err := readNotice(tx, makeNoticeKey(notice.Id)); err != nil {
				return err
			} else if old != nil {
				notice.InsertedAt = old.InsertedAt
			} else {
				notice.InsertedAt = now
			}
			notice.UpdatedAt = now

			key := makeNoticeKey(notice.Id)
			value := storage.MarshalNotice(notice)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Record-identifier index
			ridKey := makeNoticeRecordIDKey(notice.RecordID)
			if err := tx.Set(ridKey, storage.MarshalID(notice.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return notices, err
}

// GetNotice retrieves a single notice by ID.
func (r *NoticeRepository) GetNotice(ctx context.Context, id core.ID) (*core.Notice, error) {
	var result *core.Notice
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readNotice(tx, makeNoticeKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetNoticeByRecordID retrieves a notice by its external record identifier.
func (r *NoticeRepository) GetNoticeByRecordID(ctx context.Context, recordID string) (*core.Notice, error) {
	var result *core.Notice
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeNoticeRecordIDKey(recordID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var noticeID core.ID
		err = item.Value(func(val []byte) error {
			noticeID, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		result, err = readNotice(tx, makeNoticeKey(noticeID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// DeleteNotices removes notices by their IDs.
func (r *NoticeRepository) DeleteNotices(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeNoticeKey(id)

			// Read notice to clean up the record-identifier index
			notice, err := readNotice(tx, key)
			if err != nil {
				return err
			}
			if notice == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeNoticeRecordIDKey(notice.RecordID)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// ListNotices returns all notice IDs, ordered by key.
func (r *NoticeRepository) ListNotices(ctx context.Context) ([]core.ID, error) {
	var ids []core.ID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Prefix = []byte(noticeRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var notice *core.Notice
			err := iter.Item().Value(func(val []byte) error {
				var err error
				notice, err = storage.UnmarshalNotice(val)
				return err
			})
			if err != nil {
				return err
			}
			if notice != nil {
				ids = append(ids, notice.Id)
			}
		}
		return nil
	}, false)
	return ids, err
}

// CountNotices returns the number of stored notices.
func (r *NoticeRepository) CountNotices(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(noticeRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// readNotice reads a notice from the transaction.
func readNotice(tx *badger.Txn, key []byte) (*core.Notice, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var notice *core.Notice
	err = item.Value(func(val []byte) error {
		var err error
		notice, err = storage.UnmarshalNotice(val)
		return err
	})
	return notice, err
}
