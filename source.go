package uid

import (
	"crypto/rand"
	"io"
	"time"

	"github.com/google/uuid"
)

// TimeSource returns the current instant. Values must be in UTC and not
// earlier than the Unix epoch; Fill rejects anything else.
type TimeSource func() time.Time

// RandomSource fills p with cryptographically strong random bytes.
type RandomSource func(p []byte) error

// UTCNow is the default TimeSource.
func UTCNow() time.Time {
	return time.Now().UTC()
}

// CryptoRandom is the default RandomSource, backed by crypto/rand.
func CryptoRandom(p []byte) error {
	_, err := rand.Read(p)
	return err
}

// ReaderSource adapts an io.Reader into a RandomSource. Short reads are
// reported as io.ErrUnexpectedEOF.
func ReaderSource(r io.Reader) RandomSource {
	return func(p []byte) error {
		_, err := io.ReadFull(r, p)
		return err
	}
}

// HardwareNode returns a 6-byte node derived from a hardware address of the
// host, falling back to random bytes when no interface has one. Pass it to
// WithNode to keep the node stable across restarts of the same host.
func HardwareNode() []byte {
	return uuid.NodeID()
}

var unixEpoch = time.Unix(0, 0).UTC()

// timestamp validates t and returns its millisecond offset from the Unix
// epoch truncated to 48 bits.
func timestamp(t time.Time) (uint64, error) {
	if t.Location() != time.UTC {
		return 0, ErrClockNotUTC
	}
	if t.Before(unixEpoch) {
		return 0, ErrClockBeforeEpoch
	}
	return uint64(t.UnixMilli()) & MaxTimestamp, nil
}
