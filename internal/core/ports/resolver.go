package ports

// InputResolver expands corpus path patterns into concrete files.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type InputResolver interface {
	// Resolve returns the files matched by pattern in lexical order.
	// Directories are expanded to the files they contain.
	Resolve(pattern string) ([]string, error)
}
