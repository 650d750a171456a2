// Package audio embeds fetched lyrics into MP3 files.
//
// # ID3 Tagging
//
// Use the Tagger to write lyrics and cover art to an existing MP3:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags("hey-jude.mp3", result, artworkBytes)
//
// The tagger supports:
//   - Lyrics (USLT, language "eng")
//   - Cover Art (APIC front cover)
//   - Track Title and Artist, when enabled in TagConfig
package audio
