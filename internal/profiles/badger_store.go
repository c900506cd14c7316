// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package profiles

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const (
	likeKeyPrefix = "like:"
	likeSeqKey    = "seq:likes"

	// likeSeqBandwidth is how many sequence numbers are leased at once.
	likeSeqBandwidth = 100
)

// likeRecord is the value stored under like:<user>:<movie>.
type likeRecord struct {
	Seq     uint64    `json:"seq"`
	LikedAt time.Time `json:"liked_at"`
}

// BadgerStore keeps likes in Badger, one key per (user, movie) pair.
// A Badger sequence stamps each like so listings keep like order.
type BadgerStore struct {
	db  *badger.DB
	seq *badger.Sequence
}

// OpenBadgerStore opens (or creates) a store at path. An empty path opens an
// in-memory store, which loses its contents on Close.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger like store: %w", err)
	}

	seq, err := db.GetSequence([]byte(likeSeqKey), likeSeqBandwidth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open like sequence: %w", err)
	}
	return &BadgerStore{db: db, seq: seq}, nil
}

// Close releases the sequence lease and closes the database.
func (s *BadgerStore) Close() error {
	return errors.Join(s.seq.Release(), s.db.Close())
}

func likeKey(userID, movieID int64) []byte {
	return []byte(likeKeyPrefix + strconv.FormatInt(userID, 10) + ":" + strconv.FormatInt(movieID, 10))
}

func userPrefix(userID int64) []byte {
	return []byte(likeKeyPrefix + strconv.FormatInt(userID, 10) + ":")
}

// LikedMovieIDs returns the user's likes, oldest first.
func (s *BadgerStore) LikedMovieIDs(ctx context.Context, userID int64) ([]int64, error) {
	type like struct {
		movieID int64
		seq     uint64
	}
	var likes []like

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := userPrefix(userID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			movieID, err := strconv.ParseInt(strings.TrimPrefix(string(item.Key()), string(prefix)), 10, 64)
			if err != nil {
				return fmt.Errorf("parse like key %q: %w", item.Key(), err)
			}
			var rec likeRecord
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("decode like %q: %w", item.Key(), err)
			}
			likes = append(likes, like{movieID: movieID, seq: rec.Seq})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list likes for user %d: %w", userID, err)
	}

	sort.Slice(likes, func(i, j int) bool { return likes[i].seq < likes[j].seq })
	ids := make([]int64, len(likes))
	for i, l := range likes {
		ids[i] = l.movieID
	}
	return ids, nil
}

// ToggleLike removes the like if present and adds it otherwise.
func (s *BadgerStore) ToggleLike(ctx context.Context, userID, movieID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	key := likeKey(userID, movieID)
	var liked bool
	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		switch {
		case err == nil:
			liked = false
			return txn.Delete(key)
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}

		next, err := s.seq.Next()
		if err != nil {
			return fmt.Errorf("next like sequence: %w", err)
		}
		data, err := json.Marshal(likeRecord{Seq: next, LikedAt: time.Now().UTC()})
		if err != nil {
			return fmt.Errorf("marshal like: %w", err)
		}
		liked = true
		return txn.Set(key, data)
	})
	if err != nil {
		return false, fmt.Errorf("toggle like %d for user %d: %w", movieID, userID, err)
	}
	return liked, nil
}
