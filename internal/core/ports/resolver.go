package ports

// InputResolver defines the interface for resolving classpath patterns.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type InputResolver interface {
	// ResolveInputs resolves the given patterns to a list of concrete paths,
	// preserving the order of the patterns.
	ResolveInputs(inputs []string, root string) ([]string, error)
}
