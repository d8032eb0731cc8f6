package redis

const (
	// KeyPrefixVisitor is the prefix for all per-visitor keys
	KeyPrefixVisitor = "statuary:visitor:"
)

// VisitorKey returns the Redis key for one persisted value of a visitor.
// Example: statuary:visitor:3f1c...:bookmarks
func VisitorKey(visitorID, name string) string {
	return KeyPrefixVisitor + visitorID + ":" + name
}
