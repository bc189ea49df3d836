package domain

// Command is a process to spawn with an inferred classpath.
type Command struct {
	Args []string
	Dir  string
	Env  map[string]string
}
