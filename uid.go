// Package uid generates compact, time-ordered binary identifiers.
//
// Identifiers sort byte-for-byte by creation time and stay unique with
// overwhelming probability across goroutines, processes and hosts, without
// any coordination between generators.
//
// Basic usage:
//
//	id := uid.MustNext()        // 16-byte ID from the default generator
//
//	buf := make([]byte, 24)
//	if err := uid.Fill(buf); err != nil { ... }
//
// Layout of a filled buffer (16 to 32 bytes):
//
//	+-------------+--------+-----------+----------+
//	|  Timestamp  |  Node  |  Counter  |  Random  |
//	+-------------+--------+-----------+----------+
//	|  6          |  6     |  4        |  0 - 16  |
//	+-------------+--------+-----------+----------+
//
//   - Timestamp: milliseconds since the Unix epoch, 48-bit big-endian
//   - Node: fixed per Generator, random unless supplied
//   - Counter: 32-bit big-endian, incremented once per fill, wraps to 0
//   - Random: fresh random bytes, only present when the buffer is longer than 16 bytes
//
// A Generator draws 16 random bytes when it is constructed. Bytes [2:8) of
// that draw become the node and bytes [12:16) seed the counter.
//
// There is no API to decode an identifier back into its fields; the layout
// is documented so identifiers from other implementations interoperate.
package uid

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"
	"sync/atomic"
)

const (
	// Field offsets and lengths
	TimestampOffset = 0
	TimestampSize   = 6
	NodeOffset      = 6
	NodeSize        = 6
	CounterOffset   = 12
	CounterSize     = 4
	RandomOffset    = 16

	// Accepted buffer lengths for Fill
	MinSize = 16
	MaxSize = 32

	// Size of an ID returned by Next
	Size = MinSize

	// MaxTimestamp is the largest millisecond value the 48-bit field holds.
	MaxTimestamp = (1 << (TimestampSize * 8)) - 1

	seedSize      = 16
	seedNodeStart = 2
	seedCtrStart  = 12
)

// ID is a 16-byte identifier: timestamp, node and counter with no random tail.
type ID [Size]byte

// Zero is the zero value ID
var Zero = ID{}

// Bytes returns the identifier as a freshly allocated slice.
func (i ID) Bytes() []byte { b := make([]byte, Size); copy(b, i[:]); return b }

// Compare returns -1, 0, 1 based on byte-wise comparison.
func (i ID) Compare(other ID) int { return bytes.Compare(i[:], other[:]) }

// Less returns true if i sorts before other
func (i ID) Less(other ID) bool { return i.Compare(other) < 0 }

// IsZero returns true if the ID is the zero value
func (i ID) IsZero() bool { return i == Zero }

// Generator fills buffers with identifiers. It is safe for concurrent use as
// long as its TimeSource and RandomSource are.
type Generator struct {
	counter atomic.Uint32

	node   [NodeSize]byte
	now    TimeSource
	random RandomSource
}

// Option configures a Generator.
type Option func(*options)

type options struct {
	node   []byte
	now    TimeSource
	random RandomSource
}

// WithNode sets the 6-byte node written at offset 6 of every identifier.
// An empty node keeps the randomly derived one.
func WithNode(node []byte) Option {
	return func(o *options) { o.node = node }
}

// WithTimeSource replaces the host UTC clock.
func WithTimeSource(now TimeSource) Option {
	return func(o *options) { o.now = now }
}

// WithRandomSource replaces crypto/rand as the randomness source.
func WithRandomSource(random RandomSource) Option {
	return func(o *options) { o.random = random }
}

// New creates a Generator. The node and the counter seed come from a single
// 16-byte draw of the random source.
func New(opts ...Option) (*Generator, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if n := len(o.node); n != 0 && n != NodeSize {
		return nil, &ArgumentError{
			Param: "node",
			Msg:   fmt.Sprintf("must be %d bytes in length, got %d", NodeSize, n),
		}
	}
	if o.now == nil {
		o.now = UTCNow
	}
	if o.random == nil {
		o.random = CryptoRandom
	}

	var seed [seedSize]byte
	if err := o.random(seed[:]); err != nil {
		return nil, fmt.Errorf("uid: seed draw: %w", err)
	}

	// An explicit node replaces the drawn node bytes; it never touches the counter seed.
	copy(seed[seedNodeStart:seedNodeStart+NodeSize], o.node)

	g := &Generator{
		now:    o.now,
		random: o.random,
	}
	copy(g.node[:], seed[seedNodeStart:seedNodeStart+NodeSize])
	g.counter.Store(binary.BigEndian.Uint32(seed[seedCtrStart:]))
	return g, nil
}

// MustNew is like New but panics on error
func MustNew(opts ...Option) *Generator {
	g, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// Node returns the generator's node bytes
func (g *Generator) Node() [NodeSize]byte {
	return g.node
}

// Fill writes an identifier into b, which must be 16 to 32 bytes long.
//
// The time source is validated before anything is written, so a clock
// error leaves both b and the counter untouched. The random tail is drawn
// before the counter is incremented, so a failing random source does not
// consume a counter value either.
func (g *Generator) Fill(b []byte) error {
	if len(b) < MinSize || len(b) > MaxSize {
		return &ArgumentError{
			Param: "data",
			Msg:   fmt.Sprintf("must be between %d and %d bytes in length, got %d", MinSize, MaxSize, len(b)),
		}
	}

	ms, err := timestamp(g.now())
	if err != nil {
		return err
	}

	if len(b) > RandomOffset {
		if err := g.random(b[RandomOffset:]); err != nil {
			return fmt.Errorf("uid: random fill: %w", err)
		}
	}

	counter := g.counter.Add(1)

	binary.BigEndian.PutUint16(b[TimestampOffset:], uint16(ms>>32))
	binary.BigEndian.PutUint32(b[TimestampOffset+2:], uint32(ms))
	copy(b[NodeOffset:NodeOffset+NodeSize], g.node[:])
	binary.BigEndian.PutUint32(b[CounterOffset:], counter)
	return nil
}

// Generate allocates a buffer of the given size and fills it.
func (g *Generator) Generate(size int) ([]byte, error) {
	if size < MinSize || size > MaxSize {
		return nil, &ArgumentError{
			Param: "size",
			Msg:   fmt.Sprintf("must be between %d and %d, got %d", MinSize, MaxSize, size),
		}
	}
	b := make([]byte, size)
	if err := g.Fill(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Next returns a new 16-byte ID.
func (g *Generator) Next() (ID, error) {
	var id ID
	if err := g.Fill(id[:]); err != nil {
		return Zero, err
	}
	return id, nil
}

// MustNext is like Next but panics on error
func (g *Generator) MustNext() ID {
	id, err := g.Next()
	if err != nil {
		panic(err)
	}
	return id
}

// NextBatch returns count IDs in generation order. IDs produced before a
// failure are returned along with the error.
func (g *Generator) NextBatch(count int) ([]ID, error) {
	if count <= 0 {
		return nil, nil
	}

	result := make([]ID, count)
	for i := range result {
		if err := g.Fill(result[i][:]); err != nil {
			return result[:i], err
		}
	}
	return result, nil
}

// Convenience functions

var defaultGenerator = sync.OnceValue(func() *Generator {
	return MustNew()
})

// Default returns the process-wide Generator, constructing it on first use
// with the host UTC clock and crypto/rand.
func Default() *Generator {
	return defaultGenerator()
}

// Fill writes an identifier into b using the default generator
func Fill(b []byte) error {
	return Default().Fill(b)
}

// Next creates an ID using the default generator
func Next() (ID, error) {
	return Default().Next()
}

// MustNext creates an ID using the default generator, panicking on error
func MustNext() ID {
	return Default().MustNext()
}

// NextBatch creates multiple IDs using the default generator
func NextBatch(count int) ([]ID, error) {
	return Default().NextBatch(count)
}

// Version information
const (
	Version = "1.0.0"
	Name    = "uid"
)
