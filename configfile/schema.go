// Package configfile implements the TOML-backed game loader: one
// description file per game, declaring commands, conditions, sequences,
// remaps, and modifiers.
package configfile

// gameFile is the root TOML document for one game description.
type gameFile struct {
	Commands   []commandDecl   `toml:"commands"`
	Conditions []conditionDecl `toml:"conditions"`
	Remaps     []remapDecl     `toml:"remaps"`
	Modifiers  []modifierDecl  `toml:"modifiers"`
	Menu       []menuItemDecl  `toml:"menu"`
}

// menuItemDecl is the minimal subset of the original menu-item schema
// this loader supports: a named navigation node and its starting
// state. Full submenu offsets/tabs/xgroups are out of scope.
type menuItemDecl struct {
	Name         string `toml:"name"`
	InitialState int    `toml:"initial_state"`
}

type commandDecl struct {
	Name  string `toml:"name"`
	Input string `toml:"input"`
}

type conditionDecl struct {
	Name               string   `toml:"name"`
	While              []string `toml:"while"`
	Threshold          float64  `toml:"threshold"`
	ThresholdType      string   `toml:"threshold_type"`
	ClearOn            []string `toml:"clear_on"`
	ClearThreshold     float64  `toml:"clear_threshold"`
	ClearThresholdType string   `toml:"clear_threshold_type"`
}

type remapDecl struct {
	From      string  `toml:"from"`
	To        string  `toml:"to"`
	ToNeg     string  `toml:"to_negative"`
	ToMin     bool    `toml:"to_min"`
	Invert    bool    `toml:"invert"`
	Threshold float64 `toml:"threshold"`
	Scale     float64 `toml:"scale"`
}

type sequenceStepDecl struct {
	Input string `toml:"input"`
	Value int    `toml:"value"`
	HoldUs int   `toml:"hold_us"`
	DelayUs int  `toml:"delay_us"`
}

type modifierDecl struct {
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	Kind        string   `toml:"kind"`
	Groups      []string `toml:"groups"`
	Unlisted    bool     `toml:"unlisted"`
	LockWhileBusy bool   `toml:"lock_while_busy"`
	AllowAsChild *bool   `toml:"allow_as_child"`

	AppliesTo    []string `toml:"applies_to"`
	AppliesToAll bool     `toml:"applies_to_all"`

	Conditions    []string `toml:"conditions"`
	ConditionTest string   `toml:"condition_test"`
	Unless        []string `toml:"unless"`
	UnlessTest    string   `toml:"unless_test"`

	BeginSequence  []sequenceStepDecl `toml:"begin_sequence"`
	FinishSequence []sequenceStepDecl `toml:"finish_sequence"`

	// disable
	Filter          string `toml:"filter"`
	FilterThreshold int    `toml:"filter_threshold"`

	// scaling
	Amplitude float64 `toml:"amplitude"`
	Offset    float64 `toml:"offset"`

	// delay
	DelaySeconds float64 `toml:"delay_seconds"`

	// remap
	RandomRemap  bool              `toml:"random_remap"`
	Remap        map[string]string `toml:"remap"`
	Sources      []string          `toml:"sources"`
	Destinations []string          `toml:"destinations"`

	// repeat
	TimeOnMs     int      `toml:"time_on_ms"`
	TimeOffMs    int      `toml:"time_off_ms"`
	NumCycles    int      `toml:"num_cycles"`
	CycleDelayMs int      `toml:"cycle_delay_ms"`
	ForceOn      int      `toml:"force_on"`
	ForceOff     int      `toml:"force_off"`
	BlockWhile   []string `toml:"block_while"`

	// sequence kind
	RepeatSequence []sequenceStepDecl `toml:"repeat_sequence"`
	Trigger        []string           `toml:"trigger"`
	StartDelayMs   int                `toml:"start_delay_ms"`
	LockAll        bool               `toml:"lock_all"`

	// parent
	Random        bool     `toml:"random"`
	RandomCount   int      `toml:"random_count"`
	FixedChildren []string `toml:"fixed_children"`
}
