package quip

import "time"

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Parse errors
	ErrMsgParseFailed = "template parsing failed"

	// Execution errors
	ErrMsgExecutionFailed = "template execution failed"
	ErrMsgAssertionFailed = "template assertion failed"

	// Validation errors
	ErrMsgInvalidPattern      = "invalid command pattern"
	ErrMsgUnknownCaptureGroup = "capture group not defined by the command pattern"

	// Registry errors
	ErrMsgFuncRegistration = "function registration failed"
	ErrMsgNilFunc          = "function cannot be nil"

	// Directory errors
	ErrMsgDirectoryLoadFailed      = "failed to load user directory"
	ErrMsgDirectoryInvalidUser     = "directory user needs a name"
	ErrMsgDirectoryDuplicateUser   = "duplicate directory user"
	ErrMsgDirectoryInvalidPronouns = "unknown pronoun id"
	ErrMsgDirectoryUnknownRef      = "directory references unknown user"
	ErrMsgDirectoryRoleConflict    = "broadcaster and bot must be different users"
	ErrMsgDirectoryClosed          = "directory is closed"

	// PostgreSQL errors
	ErrMsgPostgresEmptyConnString  = "postgres connection string cannot be empty"
	ErrMsgPostgresConnectionFailed = "failed to connect to postgres"
	ErrMsgPostgresMigrationFailed  = "postgres migration failed"
	ErrMsgPostgresQueryFailed      = "postgres query failed"
)

// Error code constants for categorization
const (
	ErrCodeParse      = "QUIP_PARSE"
	ErrCodeExec       = "QUIP_EXEC"
	ErrCodeAssert     = "QUIP_ASSERT"
	ErrCodeValidation = "QUIP_VALIDATION"
	ErrCodeRegistry   = "QUIP_REGISTRY"
	ErrCodeDirectory  = "QUIP_DIRECTORY"
)

// Metadata keys attached to errors
const (
	MetaKeyLine         = "line"
	MetaKeyColumn       = "column"
	MetaKeyOffset       = "offset"
	MetaKeyExpected     = "expected"
	MetaKeyFuncName     = "func_name"
	MetaKeyPattern      = "pattern"
	MetaKeyCaptureGroup = "capture_group"
	MetaKeyPath         = "path"
	MetaKeyName         = "name"
	MetaKeyInvocationID = "invocation_id"
)

// Log messages
const (
	LogMsgEngineCreated     = "quip engine created"
	LogMsgTemplateParsed    = "template parsed"
	LogMsgTemplateParseFail = "template parse failed"
	LogMsgFuncRegistered    = "function registered"
	LogMsgFuncResultKind    = "function result outside declared types"
	LogMsgAssertionFailed   = "template assertion failed"
	LogMsgDirectoryLoaded   = "user directory loaded"
	LogMsgDirectoryLookup   = "directory lookup failed"
	LogMsgPostgresMigrated  = "postgres migrations applied"
	LogMsgPostgresConnected = "postgres directory connected"
)

// Log field names
const (
	LogFieldSource      = "source"
	LogFieldError       = "error"
	LogFieldDiagnostics = "diagnostic_count"
	LogFieldFuncName    = "func_name"
	LogFieldFuncCount   = "func_count"
	LogFieldUsers       = "users"
	LogFieldPath        = "path"
	LogFieldUser        = "user"
	LogFieldMigrations  = "migrations"
	LogFieldKind        = "kind"
	LogFieldTypes       = "types"
)

// PostgreSQL defaults
const (
	PostgresDefaultMaxOpenConns    = 25
	PostgresDefaultMaxIdleConns    = 5
	PostgresDefaultConnMaxLifetime = 5 * time.Minute
	PostgresDefaultConnMaxIdleTime = 5 * time.Minute
	PostgresDefaultQueryTimeout    = 30 * time.Second
	PostgresTablePrefix            = "quip_"
	PostgresDriverName             = "postgres"
)

// PostgreSQL table names, without prefix
const (
	PostgresTableUsers      = "users"
	PostgresTableMigrations = "schema_migrations"
)
