package store

import (
	stderrors "errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	errors "github.com/yago-123/burrow-rendez/pkg/error"
	"github.com/yago-123/burrow-rendez/pkg/peer"
)

const keyPrefixPeer = "peer:"

// LevelDBStore keeps entries in a goleveldb database opened over in-memory storage.
// Nothing is written to disk, so the mapping is gone once the process exits.
type LevelDBStore struct {
	db *leveldb.DB
}

func NewLevelDBStore() (*LevelDBStore, error) {
	opts := &opt.Options{
		Compression: opt.NoCompression,
	}

	db, err := leveldb.Open(storage.NewMemStorage(), opts)
	if err != nil {
		return nil, fmt.Errorf("open leveldb: %w", err)
	}

	return &LevelDBStore{db: db}, nil
}

func keyFromCode(code string) []byte {
	return append([]byte(keyPrefixPeer), []byte(code)...)
}

func (s *LevelDBStore) Register(code string, entry peer.Entry) error {
	value, err := cbor.Marshal(entry)
	if err != nil {
		return errors.Wrap(errors.ErrEncodeEntry, err)
	}

	if errPut := s.db.Put(keyFromCode(code), value, nil); errPut != nil {
		return translateErr(errPut)
	}

	return nil
}

func (s *LevelDBStore) Lookup(code string) (peer.Entry, error) {
	value, err := s.db.Get(keyFromCode(code), nil)
	if err != nil {
		return peer.Entry{}, translateErr(err)
	}

	var entry peer.Entry
	if errDecode := cbor.Unmarshal(value, &entry); errDecode != nil {
		return peer.Entry{}, errors.Wrap(errors.ErrDecodeEntry, errDecode)
	}

	return entry, nil
}

func (s *LevelDBStore) Close() error {
	if err := s.db.Close(); err != nil && !stderrors.Is(err, leveldb.ErrClosed) {
		return fmt.Errorf("close leveldb: %w", err)
	}
	return nil
}

func translateErr(err error) error {
	switch {
	case stderrors.Is(err, leveldb.ErrNotFound):
		return errors.ErrPeerNotFound
	case stderrors.Is(err, leveldb.ErrClosed):
		return errors.ErrStoreClosed
	default:
		return fmt.Errorf("leveldb: %w", err)
	}
}
