// Package store keeps a journal of the last fetch outcome per channel
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/hashicorp/go-multierror"
	bolt "go.etcd.io/bbolt"
)

var statusBkt = []byte("status")

// ErrNotFound returned by Get for a channel without journal record
var ErrNotFound = errors.New("not found")

// Source of the channel's videos
type Source string

// enum of all sources
const (
	SourceYtDlp  = Source("ytdlp")
	SourceScrape = Source("scrape")
	SourceNone   = Source("none")
)

// ChannelStatus is the outcome of the last fetch of a channel
type ChannelStatus struct {
	Channel string    `json:"channel"`
	RunID   string    `json:"run_id"`
	TS      time.Time `json:"ts"`
	Source  Source    `json:"source"`
	Videos  int       `json:"videos"`
	Error   string    `json:"error,omitempty"`
	Code    string    `json:"code,omitempty"`
}

// BoltDB journal, one record per channel, newer replaces older
type BoltDB struct {
	*bolt.DB
}

// New opens (or creates) journal db file
func New(path string) (*BoltDB, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("can't open journal %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(statusBkt)
		return e
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("can't create bucket %s: %w", string(statusBkt), err)
	}
	return &BoltDB{DB: db}, nil
}

// Save channel status, replacing the previous one
func (s *BoltDB) Save(st ChannelStatus) error {
	if st.Channel == "" {
		return errors.New("empty channel")
	}
	if st.TS.IsZero() {
		st.TS = time.Now()
	}
	jdata, err := json.Marshal(&st)
	if err != nil {
		return fmt.Errorf("marshal status %s: %w", st.Channel, err)
	}
	err = s.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(statusBkt).Put([]byte(st.Channel), jdata)
	})
	if err != nil {
		return fmt.Errorf("save status %s: %w", st.Channel, err)
	}
	log.Printf("[DEBUG] journal %s, source=%s, videos=%d, run=%s", st.Channel, st.Source, st.Videos, st.RunID)
	return nil
}

// Get status of a single channel
func (s *BoltDB) Get(channel string) (ChannelStatus, error) {
	var res ChannelStatus
	err := s.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(statusBkt).Get([]byte(channel))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &res)
	})
	if err != nil {
		return ChannelStatus{}, fmt.Errorf("can't get status for %s: %w", channel, err)
	}
	return res, nil
}

// List all statuses, sorted by channel. Broken records are skipped and reported in the error,
// good records are returned anyway.
func (s *BoltDB) List() ([]ChannelStatus, error) {
	res := []ChannelStatus{}
	errs := new(multierror.Error)
	err := s.View(func(tx *bolt.Tx) error {
		return tx.Bucket(statusBkt).ForEach(func(k, v []byte) error {
			var st ChannelStatus
			if err := json.Unmarshal(v, &st); err != nil {
				log.Printf("[WARN] failed to unmarshal %s, %q: %v", string(k), string(v), err)
				errs = multierror.Append(errs, fmt.Errorf("record %s: %w", string(k), err))
				return nil
			}
			res = append(res, st)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("can't list statuses: %w", err)
	}
	return res, errs.ErrorOrNil()
}
