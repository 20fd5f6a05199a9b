// Package config provides simple, local-first configuration for
// Glimpse.
//
// Settings live in a single JSON file under the user's config
// directory:
//
//	~/.config/glimpse/config.json
//
// Everything the preview engine is tunable on is here: the extension
// patterns the classifier matches, the size cutoffs, the debounce
// delay, the trigger command set, panel placement thresholds and the
// cache eviction threshold. Patterns are validated at load time so a
// typo surfaces immediately instead of silently disabling previews.
package config
