package config

// Flags holds command-line overrides. Empty fields leave the loaded value alone.
type Flags struct {
	ConfigPath  string
	Pivot       string
	Scale       string
	Translation string
	Rotation    string
	Round       string
	Progress    string
	LogLevel    string
	LogFile     string
}

// apply applies CLI flag overrides to the config.
func (f Flags) apply(cfg *Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Transform.Pivot, f.Pivot)
	set(&cfg.Transform.Scale, f.Scale)
	set(&cfg.Transform.Translation, f.Translation)
	set(&cfg.Transform.Rotation, f.Rotation)
	set(&cfg.Transform.Round, f.Round)
	set(&cfg.Output.Progress, f.Progress)
	set(&cfg.Logging.Level, f.LogLevel)
	set(&cfg.Logging.LogFile, f.LogFile)
}
