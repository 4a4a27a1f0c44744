package cmd

// CommandArgs contains parsed command arguments
type CommandArgs struct {
	// Positional arguments (command-specific)
	Args []string

	// Parsed flags
	Flags map[string]any

	// Raw unparsed arguments (for custom parsing)
	Raw []string
}

// Arg returns the positional argument at index i, or fallback when missing.
func (a *CommandArgs) Arg(i int, fallback string) string {
	if i < 0 || i >= len(a.Args) {
		return fallback
	}
	return a.Args[i]
}

// String returns a string flag, or "" when unset.
func (a *CommandArgs) String(name string) string {
	if v, ok := a.Flags[name].(string); ok {
		return v
	}
	return ""
}

// Bool returns a bool flag, or false when unset.
func (a *CommandArgs) Bool(name string) bool {
	if v, ok := a.Flags[name].(bool); ok {
		return v
	}
	return false
}

// Int returns an int flag, or 0 when unset.
func (a *CommandArgs) Int(name string) int64 {
	switch v := a.Flags[name].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

// Strings returns every value of a repeatable flag.
func (a *CommandArgs) Strings(name string) []string {
	switch v := a.Flags[name].(type) {
	case []string:
		return v
	case string:
		return []string{v}
	}
	return nil
}

// CommandFlagSet defines the expected flags for a command
type CommandFlagSet struct {
	Flags map[string]*CommandFlag
}

// NewFlagSet builds a flag set keyed by flag name.
func NewFlagSet(flags ...*CommandFlag) *CommandFlagSet {
	set := &CommandFlagSet{
		Flags: make(map[string]*CommandFlag, len(flags)),
	}
	for _, flag := range flags {
		set.Flags[flag.Name] = flag
	}
	return set
}

// CommandFlag represents a single command-line flag
type CommandFlag struct {
	Name        string `json:"name"`              // e.g., "name"
	Short       string `json:"short"`             // Single-char shorthand (e.g., "n")
	Type        string `json:"type"`              // "string", "bool", "int", "stringSlice"
	Default     any    `json:"default,omitempty"` // Default value
	Required    bool   `json:"required"`          // Must be provided
	Description string `json:"description"`       // Help text
	Multiple    bool   `json:"multiple"`          // Can be specified multiple times
}
