package digest

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// DateLayout is the only textual form a date takes before hashing.
const DateLayout = "2006-01-02"

// Size is the length of a hex encoded fingerprint.
const Size = sha256.Size * 2

// Fingerprint is the hex encoded SHA-256 digest of a value.
type Fingerprint string

// String implements fmt.Stringer.
func (f Fingerprint) String() string {
	return string(f)
}

// Digester is implemented by any value that can feed itself into a Hasher.
// Implementations must write fields in a fixed, declaration-defined order.
type Digester interface {
	Digest(h *Hasher)
}

// Hasher accumulates tagged values into a single hash state.
//
// A Hasher is one-shot: once Finalize has been called any further use panics.
// It is not safe for concurrent use.
type Hasher struct {
	state hash.Hash
	done  bool
}

// NewHasher returns an empty Hasher.
func NewHasher() *Hasher {
	return &Hasher{state: sha256.New()}
}

// Of digests d with a fresh Hasher and returns its fingerprint.
func Of(d Digester) Fingerprint {
	h := NewHasher()
	d.Digest(h)
	return h.Finalize()
}

// Update feeds a tag, the payload length and the payload into the hash
// state. The length prefix keeps adjacent payloads from trading bytes.
func (h *Hasher) Update(tag Tag, payload []byte) {
	h.mustBeOpen()
	h.state.Write(tag.Bytes())
	h.state.Write(binary.BigEndian.AppendUint64(nil, uint64(len(payload))))
	h.state.Write(payload)
}

// Finalize returns the fingerprint. The Hasher must not be used afterwards.
func (h *Hasher) Finalize() Fingerprint {
	h.mustBeOpen()
	h.done = true
	return Fingerprint(hex.EncodeToString(h.state.Sum(nil)))
}

func (h *Hasher) mustBeOpen() {
	if h.done {
		panic("digest: hasher used after Finalize")
	}
}

// String digests unicode text.
func (h *Hasher) String(s string) {
	h.Update(TagUnicode, []byte(norm.NFC.String(s)))
}

// Raw digests an opaque byte payload.
func (h *Hasher) Raw(b []byte) {
	h.Update(TagRaw, b)
}

// Null digests an absent value.
func (h *Hasher) Null() {
	h.Update(TagNull, nil)
}

// Bool digests a boolean as "1" or "0".
func (h *Hasher) Bool(b bool) {
	if b {
		h.Update(TagBool, []byte("1"))
		return
	}
	h.Update(TagBool, []byte("0"))
}

// Int digests an integer in base 10.
func (h *Hasher) Int(n int64) {
	h.Update(TagInteger, []byte(strconv.FormatInt(n, 10)))
}

// Date digests the calendar day of t, discarding time of day.
func (h *Hasher) Date(t time.Time) {
	h.Update(TagTimestamp, nil)
	h.String(t.Format(DateLayout))
}

// OptionalString digests s, or null when s is nil.
func (h *Hasher) OptionalString(s *string) {
	if s == nil {
		h.Null()
		return
	}
	h.String(*s)
}

// Strings digests an ordered list of text values.
func (h *Hasher) Strings(items []string) {
	h.Update(TagList, count(len(items)))
	for _, s := range items {
		h.String(s)
	}
}

// Dict digests a string map. Keys are visited in byte order of their NFC
// form so the result does not depend on insertion order.
func (h *Hasher) Dict(m map[string]string) {
	type entry struct{ key, value string }
	entries := make([]entry, 0, len(m))
	for k, v := range m {
		entries = append(entries, entry{key: norm.NFC.String(k), value: v})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return strings.Compare(a.key, b.key)
	})

	h.Update(TagDict, count(len(entries)))
	for _, e := range entries {
		h.String(e.key)
		h.String(e.value)
	}
}

// List digests an ordered list of digestible values.
func List[T Digester](h *Hasher, items []T) {
	h.Update(TagList, count(len(items)))
	for _, item := range items {
		item.Digest(h)
	}
}

// count is the payload of a list or dict tag: the number of elements that
// follow, so an element can never be read as the field after the list.
func count(n int) []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(n))
}

// Optional digests v, or null when v is nil.
func Optional[T Digester](h *Hasher, v *T) {
	if v == nil {
		h.Null()
		return
	}
	(*v).Digest(h)
}
