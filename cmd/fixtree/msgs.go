package fixtree

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort        = "Describe directory trees as text fixtures"
	MsgRenderShort      = "Render a directory as fixture text"
	MsgParseShort       = "Parse a fixture file and print it in another format"
	MsgMaterializeShort = "Write a fixture to disk"
	MsgCheckShort       = "Check a directory against a fixture"
	MsgConfigShort      = "Print the effective configuration"
	MsgGreetShort       = "Print a greeting"
	MsgVersionShort     = "Print version information"
	MsgCompletionShort  = "Generate shell completion script"

	// Output
	MsgGreeting    = "Hello, %s!\n"
	MsgCheckOK     = "%s matches %s"
	MsgCheckFailed = "%s does not match %s"

	// Error messages
	MsgErrDirNotFound  = "directory %s does not exist"
	MsgErrReadFixture  = "failed to read fixture file %s"
	MsgErrLoadConfig   = "failed to load configuration: %w"
	MsgErrNoCommand    = "no command specified"
	MsgErrRedactNumber = "invalid line number %q for --redact"

	// Flag descriptions
	MsgFlagVerbose            = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig             = "Config file (default $XDG_CONFIG_HOME/fixtree/config.toml)"
	MsgFlagColor              = "Colorize output: auto, always or never"
	MsgFlagRegex              = "Only render paths matching this regex (prefix with ! to exclude)"
	MsgFlagGlob               = "Only render paths matching this glob (prefix with ! to exclude)"
	MsgFlagRedact             = "Comma-separated 1-based output line numbers to redact"
	MsgFlagRedactMessage      = "Replacement text for redacted lines"
	MsgFlagNormalizeGitHashes = "Replace commit hashes on diff3 conflict markers with [hash]"
	MsgFlagAlwaysShowFilepath = "Print the path header even for a single file"
	MsgFlagFormat             = "Output format: text, yaml, toml or xml"
	MsgFlagDir                = "Directory to write into (default: a new temporary directory)"
	MsgFlagCwd                = "Print this subdirectory of the root instead of the root"
	MsgFlagName               = "Name to greet (overrides greeting.name)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/render-long.txt
	msgRenderLongRaw string
	MsgRenderLong    = strings.TrimSpace(msgRenderLongRaw)

	//go:embed msgs/render-example.txt
	msgRenderExampleRaw string
	MsgRenderExample    = strings.TrimRight(msgRenderExampleRaw, "\n")

	//go:embed msgs/parse-long.txt
	msgParseLongRaw string
	MsgParseLong    = strings.TrimSpace(msgParseLongRaw)

	//go:embed msgs/parse-example.txt
	msgParseExampleRaw string
	MsgParseExample    = strings.TrimRight(msgParseExampleRaw, "\n")

	//go:embed msgs/materialize-long.txt
	msgMaterializeLongRaw string
	MsgMaterializeLong    = strings.TrimSpace(msgMaterializeLongRaw)

	//go:embed msgs/materialize-example.txt
	msgMaterializeExampleRaw string
	MsgMaterializeExample    = strings.TrimRight(msgMaterializeExampleRaw, "\n")

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/check-example.txt
	msgCheckExampleRaw string
	MsgCheckExample    = strings.TrimRight(msgCheckExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
