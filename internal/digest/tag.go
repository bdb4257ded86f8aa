package digest

// Tag prefixes every primitive fed into a Hasher.
// Values match objecthash except for TagTimestamp.
type Tag byte

const (
	TagBool      Tag = 0x62 // b
	TagDict      Tag = 0x64 // d
	TagFloat     Tag = 0x66 // f, reserved
	TagInteger   Tag = 0x69 // i
	TagList      Tag = 0x6C // l
	TagNull      Tag = 0x6E // n
	TagRaw       Tag = 0x72 // r
	TagTimestamp Tag = 0x74 // t
	TagUnicode   Tag = 0x75 // u
)

// Bytes returns the single-byte encoding of the tag.
func (t Tag) Bytes() []byte {
	return []byte{byte(t)}
}
