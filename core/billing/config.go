package billing

// Config holds configuration for the billing layer.
type Config struct {
	// CatalogPath is the path to the static catalog JSON file used by the
	// development billing client.
	CatalogPath string `mapstructure:"catalog_path" default:"catalog.json"`
}
