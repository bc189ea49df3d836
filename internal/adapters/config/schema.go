package config

// File represents the structure of the cpinfer.yaml configuration file.
type File struct {
	Version         string              `yaml:"version"`
	Root            string              `yaml:"root"`
	DefaultRealm    string              `yaml:"default_realm"`
	StateDir        string              `yaml:"state_dir"`
	Bootstrap       []string            `yaml:"bootstrap"`
	ArchiveSuffixes []string            `yaml:"archive_suffixes"`
	Realms          map[string]RealmDTO `yaml:"realms"`
}

// RealmDTO represents a realm definition in the configuration.
type RealmDTO struct {
	Parent    string   `yaml:"parent"`
	Classpath []string `yaml:"classpath"`
}
