package validation

// Embedded schema names
const (
	SchemaBundle = "bundle.schema.json"
)

// Error messages
const (
	ErrMsgReadData      = "failed to read data file %s"
	ErrMsgLoadSchema    = "failed to load schema %s"
	ErrMsgParseData     = "failed to parse JSON data"
	ErrMsgReadSchema    = "failed to read schema file"
	ErrMsgParseSchema   = "failed to parse schema JSON"
	ErrMsgAddResource   = "failed to add schema resource"
	ErrMsgCompileSchema = "failed to compile schema"
	ErrMsgEncodeValue   = "failed to encode value"
	ErrMsgSchemaFailed  = "schema validation failed"
	ErrMsgValidation    = "validation error"
)
