// Package align merges the source's ordered locators with the catalog's
// ordered track list into the numbered, titled tracks that get
// downloaded.
//
// Alignment never fails and never changes the number of tracks: every
// locator yields exactly one AlignedTrack, with positions 1..N. With an
// empty catalog (degraded mode) the locators keep their own titles in
// source order.
//
// Fuzzy matching scores titles with the Dice coefficient over word sets
// after case folding, diacritic removal and dropping bracketed
// annotations; pairs scoring below Options.Threshold never match.
package align
