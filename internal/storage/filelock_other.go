//go:build !unix

package storage

// lockFile is a no-op where flock is unavailable; the atomic rename in
// Save still prevents torn writes.
func lockFile(string) (unlock func() error, err error) {
	return func() error { return nil }, nil
}
