// Package connectors holds the driven.ContentSource implementations that
// read the upstream license collection: the GitHub contents API and a local
// checkout on disk.
package connectors
