package config

// ToolName is the name of the command line tool.
const ToolName = "typedispatch"

// Version is set at build time using: -ldflags "-X github.com/funvibe/typedispatch/internal/config.Version=v1.2.3"
var Version = "dev"

// IsTestMode indicates if the program is running under tests.
// Generated identities print in a stable form when it is set.
var IsTestMode = false

// Environment variables read by the tool.
const (
	EnvLogLevel = "TYPEDISPATCH_LOG_LEVEL"
	EnvStrict   = "TYPEDISPATCH_STRICT"
	EnvFile     = ".env"
)

// Built-in class names
const (
	NumberClassName   = "Number"
	StringClassName   = "String"
	BooleanClassName  = "Boolean"
	ArrayClassName    = "Array"
	FunctionClassName = "Function"
	RegExpClassName   = "RegExp"
	ObjectClassName   = "Object"
)

// Descriptor names that are not classes
const (
	NullTypeName    = "Null"
	NaNTypeName     = "NaN"
	AnyTypeName     = "Any"
	IntegerTypeName = "Integer"
	ArrayOfPrefix   = "[]"
)

// Default generic names used by the tool
const (
	ClassifyFuncName = "classify"
)
