package uniuri

import (
	"crypto/rand"
)

const (
	// StdLen is the length used for state and nonce values (~190 bits of entropy).
	StdLen = 32

	// maxBufLen caps the random byte buffer requested per rand.Read call.
	maxBufLen = 1024

	// byteRange is the total number of possible byte values (2^8).
	byteRange = 256
)

// StdChars is the URL safe alphabet used by New and NewLen.
var StdChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// New returns a random string of StdLen characters from StdChars.
func New() string {
	return NewLen(StdLen)
}

// NewLen returns a random string of the given length from StdChars.
func NewLen(length int) string {
	return string(NewLenChars(length, StdChars))
}

// NewLenChars returns length random bytes picked from chars (2 to 256 entries).
// Bytes above the largest multiple of len(chars) are rejected to avoid modulo bias.
func NewLenChars(length int, chars []byte) []byte {
	if length <= 0 {
		return nil
	}

	clen := len(chars)
	if clen < 2 || clen > byteRange {
		panic("uniuri: wrong charset length for NewLenChars")
	}

	limit := byteRange - (byteRange % clen)

	bufLen := length * 2
	if bufLen > maxBufLen {
		bufLen = maxBufLen
	}

	buf := make([]byte, bufLen)
	out := make([]byte, 0, length)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			panic("uniuri: error reading random bytes: " + err.Error())
		}

		for _, rb := range buf {
			if int(rb) >= limit {
				continue
			}

			out = append(out, chars[int(rb)%clen])
			if len(out) == length {
				break
			}
		}
	}

	return out
}
