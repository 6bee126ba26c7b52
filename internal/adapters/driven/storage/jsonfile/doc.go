// Package jsonfile stores the license cache as a single JSON document.
//
// The document has one object per namespace (licenses, data, preferences)
// and every record carries its kind. Keys are written sorted so that the
// file diffs cleanly between syncs. Saves go through a temporary file in
// the same directory followed by a rename, so a failed save leaves the
// previous file untouched.
//
// # Data Location
//
// By default, the cache is stored at ~/.getlicense/license_cache.json
package jsonfile
