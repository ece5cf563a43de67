package app

import "fmt"

// Actions the tool can perform. Actions operating on local files take a file
// path target; registry-only actions take an AS-SET name.
const (
	ActionConvert = "convert"
	ActionExpand  = "expand"
	ActionGet     = "get"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionSync    = "sync"
)

var validActions = map[string]struct{}{
	ActionConvert: {},
	ActionExpand:  {},
	ActionGet:     {},
	ActionCreate:  {},
	ActionUpdate:  {},
	ActionDelete:  {},
	ActionSync:    {},
}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Action string
	// Target is a file path (convert, expand, create, update, sync) or an
	// AS-SET name (get, delete).
	Target string

	SettingsPath string
	OutFormat    string // yaml, rpsl, xml; empty keeps the input format
	OutPath      string // empty writes to stdout

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if _, ok := validActions[cfg.Action]; !ok {
		return nil, fmt.Errorf("unknown action %q", cfg.Action)
	}
	if cfg.Target == "" {
		return nil, fmt.Errorf("action %s needs a target argument", cfg.Action)
	}
	return &cfg, nil
}
