// Package utils holds small generic helpers shared across packages.
package utils

// Ptr returns a pointer to v. Used when building partial-update structs.
func Ptr[T any](v T) *T {
	return &v
}
