package ports

// RootVerifier checks that persisted classpath roots still exist.
//
//go:generate go run go.uber.org/mock/mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type RootVerifier interface {
	// VerifyRoots reports whether every path exists.
	VerifyRoots(paths []string) (bool, error)
}
