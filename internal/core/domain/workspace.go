package domain

import "path/filepath"

// DefaultBootstrapPackages lists the package prefixes owned by the bootstrap realm.
var DefaultBootstrapPackages = []string{"java.", "javax.", "jdk.", "sun.", "com.sun."}

// Workspace is the loaded configuration: the realms and where to keep state.
type Workspace struct {
	// Root is the absolute directory that relative classpath entries are resolved against.
	Root string
	// DefaultRealm is used when no realm is requested explicitly.
	DefaultRealm InternedString
	// StateDir holds persisted classpath records, relative to Root unless absolute.
	StateDir string
	// Bootstrap lists package prefixes defined by the bootstrap realm.
	Bootstrap []string
	// ArchiveSuffixes lists file extensions treated as archives.
	ArchiveSuffixes []string
	// Realms holds the realm definitions.
	Realms *RealmGraph
}

// RealmSpec describes one realm: its classpath entries and optional parent.
type RealmSpec struct {
	Name      InternedString
	Parent    InternedString
	Classpath []InternedString
}

// HasParent reports whether the realm delegates to a parent realm.
func (r RealmSpec) HasParent() bool {
	return r.Parent.String() != ""
}

// ConfigFileName is the name of the workspace configuration file.
const ConfigFileName = "cpinfer.yaml"

// DefaultStateDir is the state directory used when none is configured.
const DefaultStateDir = ".cpinfer"

// StatePath returns the absolute state directory.
func (w *Workspace) StatePath() string {
	if filepath.IsAbs(w.StateDir) {
		return w.StateDir
	}
	return filepath.Join(w.Root, w.StateDir)
}
