// Package util provides small generic helpers: slice and map operations,
// pointer helpers, and parsing utilities.
package util
