// Package card defines the typed documents the cache synchronises: standards
// and their endorsement state, guidance notes, licences, organisations,
// taxonomy topics and themes, and catalogue sections.
//
// Each card digests its semantic fields in declaration order followed by its
// body. Store-internal data (row order, session stamps) never takes part.
package card
