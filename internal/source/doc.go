// Package source reads a catalogue tree and feeds its cards to the cache.
//
// Markdown files carry a YAML frontmatter whose `type` key names the card
// kind (standard, guidance, topic, theme, section); the body after the
// frontmatter is the card content. Licences and organisations come as JSON
// arrays in files named licences.json and organisations.json.
//
// Every document is validated against an embedded CUE schema before it is
// decoded. A document that fails is reported and skipped; the rest of the
// pass carries on.
package source
