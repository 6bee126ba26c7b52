// Package file provides the TOML configuration store, read from
// ~/.getlicense/config.toml unless another directory is given.
package file
