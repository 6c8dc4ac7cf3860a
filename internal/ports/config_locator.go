package ports

// ConfigLocator finds the configuration file starting from an arbitrary directory.
type ConfigLocator interface {
	FindConfig(startDir string) (string, error)
}
