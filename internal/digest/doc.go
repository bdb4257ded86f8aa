// Package digest computes deterministic content fingerprints for cards.
//
// The encoding is an objecthash variant: every primitive is fed into a single
// SHA-256 state as a one-byte tag, an 8-byte big-endian payload length and
// the payload. List and dict tags carry their element count as payload, so
// the stream is self-delimiting and no two values share an encoding. Records
// digest their fields in declaration order, never map or alphabetical order,
// so the same semantic content always produces the same fingerprint.
//
// Key properties:
//   - Absent optionals digest as the null tag with an empty payload, which
//     keeps "absent" distinct from "empty string"
//   - Neither field boundaries nor list element boundaries can shift
//   - Lists are order-sensitive; dicts are not (keys are sorted)
//   - Dates are reduced to YYYY-MM-DD before hashing
//   - Text is NFC normalised at the hashing boundary
//
// This package imports nothing internal.
package digest
