// Package alias implements the alias resolver and its durable store.
//
// An alias maps a short name to a locator (a URL or search text) and
// remembers whether it points at an album:
//
//	store, _ := alias.Load(config.AliasesPath(dir))
//	store.Add("focus", "https://www.youtube.com/playlist?list=PL123", model.KindAlbum)
//	_ = store.Flush()
//
//	if a, ok := store.Resolve("focus"); ok {
//	    fmt.Println(a.Locator, a.Kind) // https://... album
//	}
//
// The file is JSON, keyed by name:
//
//	{"focus": {"url": "https://...", "album": true}}
package alias
