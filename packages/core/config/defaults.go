package config

const (
	// DefaultIDField is the field holding a document identifier
	DefaultIDField = "_id"
	// DefaultVersionField is the field holding a document version counter
	DefaultVersionField = "__v"
	// DefaultSentinel is the expected value meaning "any present value"
	DefaultSentinel = "_mock_"
	// DefaultIDPattern is the syntax of a generated identifier
	DefaultIDPattern = `^[a-z0-9]{24}$`
)

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		IDField:         DefaultIDField,
		VersionField:    DefaultVersionField,
		TimestampFields: []string{"createdAt", "updatedAt"},
		Sentinel:        DefaultSentinel,
		IDPattern:       DefaultIDPattern,
		Strict:          BoolPtr(false),
		NoColor:         BoolPtr(false),
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	if len(c.TimestampFields) != len(defaults.TimestampFields) {
		return false
	}
	for i, f := range c.TimestampFields {
		if defaults.TimestampFields[i] != f {
			return false
		}
	}
	return c.IDField == defaults.IDField &&
		c.VersionField == defaults.VersionField &&
		c.Sentinel == defaults.Sentinel &&
		c.IDPattern == defaults.IDPattern &&
		c.GetStrict() == defaults.GetStrict() &&
		c.GetNoColor() == defaults.GetNoColor()
}
