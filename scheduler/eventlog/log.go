package eventlog

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
	"github.com/wbrown/janus-pattern/scheduler"
)

// Log is an embedded, append-only record of every event the scheduler
// has dispatched, keyed by a monotonically increasing sequence number.
// It is the concrete witness behind spec §8's "no duplication across
// a full run" property, and lets a host resume or replay a session.
// Grounded on datalog/storage's BadgerStore: a single keyspace here in
// place of its five index fan-out, since a dispatch record has no
// secondary access pattern to index against.
type Log struct {
	db  *badger.DB
	seq atomic.Uint64
}

// Open creates or reopens a Log at path.
func Open(path string) (*Log, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("eventlog: open: %w", err)
	}
	l := &Log{db: db}
	if err := l.loadSeq(); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

func (l *Log) Close() error { return l.db.Close() }

func (l *Log) loadSeq() error {
	return l.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Reverse: true})
		defer it.Close()
		it.Rewind()
		if it.Valid() {
			key := it.Item().KeyCopy(nil)
			l.seq.Store(binary.BigEndian.Uint64(key))
		}
		return nil
	})
}

// record is the JSON-serializable projection of a DispatchRecord;
// pattern.Value's interned Control keys are flattened to plain strings
// so the log format never depends on process-local interning state.
type record struct {
	HasWhole    bool               `json:"has_whole,omitempty"`
	WholeBegin  [2]int64           `json:"whole_begin,omitempty"`
	WholeEnd    [2]int64           `json:"whole_end,omitempty"`
	PartBegin   [2]int64           `json:"part_begin"`
	PartEnd     [2]int64           `json:"part_end"`
	Deadline    float64            `json:"deadline"`
	IsScalar    bool               `json:"is_scalar"`
	ScalarKind  string             `json:"scalar_kind,omitempty"`
	ScalarValue string             `json:"scalar_value,omitempty"`
	Controls    map[string]string  `json:"controls,omitempty"`
}

func toRecord(d scheduler.DispatchRecord) record {
	r := record{
		PartBegin: [2]int64{d.Part.Begin.Num(), d.Part.Begin.Den()},
		PartEnd:   [2]int64{d.Part.End.Num(), d.Part.End.Den()},
		Deadline:  d.Deadline,
	}
	if d.Whole != nil {
		r.HasWhole = true
		r.WholeBegin = [2]int64{d.Whole.Begin.Num(), d.Whole.Begin.Den()}
		r.WholeEnd = [2]int64{d.Whole.End.Num(), d.Whole.End.Den()}
	}
	if d.Value.IsScalar() {
		r.IsScalar = true
		sc := d.Value.Scalar()
		switch {
		case sc.IsNumber():
			r.ScalarKind = "number"
		case sc.IsBool():
			r.ScalarKind = "bool"
		default:
			r.ScalarKind = "string"
		}
		r.ScalarValue = sc.String()
	} else {
		r.Controls = make(map[string]string)
		for k, v := range d.Value.Controls() {
			r.Controls[k.String()] = v.String()
		}
	}
	return r
}

// Append persists one dispatch record under the next sequence key.
func (l *Log) Append(d scheduler.DispatchRecord) error {
	r := toRecord(d)
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("eventlog: marshal: %w", err)
	}
	seq := l.seq.Add(1)
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return l.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, payload)
	})
}

// Count returns how many records have been appended.
func (l *Log) Count() (int, error) {
	n := 0
	err := l.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}
