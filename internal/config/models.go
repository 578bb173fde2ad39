package config

// SourceConfig represents the configuration for the message source
type SourceConfig struct {
	Type     string
	MboxPath string
}

// ExtractorConfig represents the configuration for mail record extraction
type ExtractorConfig struct {
	Threshold        int
	IgnoredDomains   []string
	IgnoredAddresses []string
}

// FeaturesConfig represents the configuration for feature aggregation
type FeaturesConfig struct {
	WeekdayMode string
}

// EngineConfig represents the configuration for the persistence engine
type EngineConfig struct {
	Type         string
	MaxDimension int
}

// ClusterConfig represents the configuration for cluster extraction
type ClusterConfig struct {
	Epsilon float64
}

// ReportConfig represents the configuration for report output
type ReportConfig struct {
	OutputDir string
}

// StoreConfig represents the configuration for the sender feature store
type StoreConfig struct {
	Type       string
	Enabled    bool
	SQLitePath string
	MySQLDSN   string
}

// GetSource returns the message source configuration
func (c *Config) GetSource() SourceConfig {
	return SourceConfig{
		Type:     c.GetString("source.type"),
		MboxPath: c.GetString("source.mbox_path"),
	}
}

// GetExtractor returns the extractor configuration
func (c *Config) GetExtractor() ExtractorConfig {
	return ExtractorConfig{
		Threshold:        c.GetInt("extractor.threshold"),
		IgnoredDomains:   c.GetStringSlice("extractor.ignored_domains"),
		IgnoredAddresses: c.GetStringSlice("extractor.ignored_addresses"),
	}
}

// GetFeatures returns the feature aggregation configuration
func (c *Config) GetFeatures() FeaturesConfig {
	return FeaturesConfig{
		WeekdayMode: c.GetString("features.weekday_mode"),
	}
}

// GetEngine returns the persistence engine configuration
func (c *Config) GetEngine() EngineConfig {
	return EngineConfig{
		Type:         c.GetString("engine.type"),
		MaxDimension: c.GetInt("engine.max_dimension"),
	}
}

// GetCluster returns the cluster extraction configuration
func (c *Config) GetCluster() ClusterConfig {
	return ClusterConfig{
		Epsilon: c.GetFloat64("cluster.epsilon"),
	}
}

// GetReport returns the report output configuration
func (c *Config) GetReport() ReportConfig {
	return ReportConfig{
		OutputDir: c.GetString("report.output_dir"),
	}
}

// GetStore returns the feature store configuration
func (c *Config) GetStore() StoreConfig {
	return StoreConfig{
		Type:       c.GetString("store.type"),
		Enabled:    c.GetBool("store.enabled"),
		SQLitePath: c.GetString("store.sqlite_path"),
		MySQLDSN:   c.GetString("store.mysql_dsn"),
	}
}
