package config

// Overrides carries command-line values that take priority over both the
// defaults and the config file. Zero values leave the config untouched.
type Overrides struct {
	Debug      bool
	LogFile    string
	Validation string
	Limit      int
}

// apply writes the overrides into cfg.
func (o Overrides) apply(cfg *Config) {
	if o.Debug {
		cfg.Logging.Level = "debug"
	}
	if o.LogFile != "" {
		cfg.Logging.LogFile = o.LogFile
	}
	if o.Validation != "" {
		cfg.Parse.Validation = o.Validation
	}
	if o.Limit > 0 {
		cfg.Dump.Limit = o.Limit
	}
}
