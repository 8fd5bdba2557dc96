package ports

// Hasher computes content hashes used to detect unchanged files.
type Hasher interface {
	// HashContent returns a stable hex digest of data.
	HashContent(data []byte) string
}
