package naming

// Kind groups the names a resolver knows about
type Kind string

// Name kinds
const (
	KindProduct  Kind = "product"
	KindMaterial Kind = "material"
	KindWorker   Kind = "worker"
)

// SchemaAliases is the schema identifier for the alias configuration
const SchemaAliases = "factory-aliases"

// MaxSuggestions caps the "did you mean" list
const MaxSuggestions = 3

// MinSuggestInput is the shortest input worth fuzzy-matching
const MinSuggestInput = 3

// Error context messages for wrapped errors during configuration loading
const (
	ErrContextFailedToLoadAliases = "failed to load aliases"
	ErrContextFailedToParseConfig = "failed to parse config %s"
	ErrContextFailedToDecodeData  = "failed to decode data for %s"
)

// Configuration validation error messages
const (
	ErrMsgMissingVersionField = "%s missing version field"
	ErrMsgInvalidSchema       = "invalid schema in %s: expected '%s', got '%s'"
)
