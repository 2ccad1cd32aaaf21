// Package expand turns album and single-track requests into ordered
// per-track locators.
//
// The engine's own listing and search capabilities do all the work:
//
//	URL                -> flat listing of that URL
//	"Artist - Album"   -> "ytsearch10:<q> album", first playlist result
//	                      (or the top video as a one-track album)
//	single free text   -> "ytsearch1:<q> audio -\"music video\""
//
// The resulting locators keep source order and are unique by URL. An
// empty result is an *ExpansionError wrapping ErrNoResults.
package expand
