package config

// DomainConfig holds tunable limits enforced by the domain layer.
// The defaults match the column widths of the system this service
// replaced, so content migrated from it always validates.
type DomainConfig struct {
	MaxCollectionNameLength int
	MaxArticleNameLength    int
	MaxMenuNameLength       int
	MaxTemplateNameLength   int
	MaxURLLength            int
	MaxAtomKeyLength        int
	MaxTagLength            int
	MaxVariableValueLength  int
	MaxAtomContentBytes     int

	// AllowEmptyMeta permits collection slots without per-slot metadata.
	AllowEmptyMeta bool
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxCollectionNameLength: 80,
		MaxArticleNameLength:    255,
		MaxMenuNameLength:       50,
		MaxTemplateNameLength:   50,
		MaxURLLength:            50,
		MaxAtomKeyLength:        100,
		MaxTagLength:            100,
		MaxVariableValueLength:  255,
		MaxAtomContentBytes:     1 << 20,
		AllowEmptyMeta:          true,
	}
}
