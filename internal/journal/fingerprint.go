package journal

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"skein/internal/errs"
)

// Fingerprint identifies a failure across processes. Hash is only stable
// within one process, so stored entries are keyed by a digest of the
// category, kind and rendering instead.
func Fingerprint(err errs.LispError) string {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(err.Type().String()))
	h.Write([]byte{0})
	h.Write([]byte(err.Kind()))
	h.Write([]byte{0})
	h.Write([]byte(err.Error()))
	return hex.EncodeToString(h.Sum(nil))
}
