// Package config handles tool configuration loading and management.
package config

// Config holds all ubcgrid settings.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Plot    PlotConfig    `yaml:"plot"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig controls converted datasets.
type OutputConfig struct {
	// ArrayName names attached cell arrays. Empty falls back to the model
	// file's base name.
	ArrayName string `yaml:"array_name"`
	// Title is the dataset title written into VTK output.
	Title string `yaml:"title"`
}

// PlotConfig controls preview rendering.
type PlotConfig struct {
	WidthInches  float64 `yaml:"width_inches"`
	HeightInches float64 `yaml:"height_inches"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			ArrayName: "",
			Title:     "Converted UBC mesh",
		},
		Plot: PlotConfig{
			WidthInches:  8,
			HeightInches: 5,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
