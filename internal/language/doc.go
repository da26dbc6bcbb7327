// Package language normalizes the language tags found in media container
// metadata. Containers are inconsistent about language identification: the
// same track may carry "ja", "jpn", "Japanese", or a BCP-47 form like
// "ja-JP" depending on the muxer. Everything funnels through Normalize,
// which canonicalizes to the ISO 639-2 three-letter code the selection
// logic compares against.
package language
