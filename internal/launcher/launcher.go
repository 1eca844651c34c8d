package launcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/KaramelBytes/tempviz-cli/internal/charts"
)

var (
	// ErrNoScript is returned when executing before a script was chosen.
	ErrNoScript = errors.New("no script selected")
	// ErrNoChart is returned when executing before a chart type was chosen.
	ErrNoChart = errors.New("no chart selected")
	// ErrUnknownScript is returned when selecting a script that is not offered.
	ErrUnknownScript = errors.New("unknown script")
)

// AllLabel is the label of the "every chart" option, first in each list.
const AllLabel = charts.All

// ChartOption pairs a human-readable label with the --grafico key.
type ChartOption struct {
	Label string
	Key   string
}

// Script is one data script offered by the menu.
type Script struct {
	// Name is what the user picks in the first selector.
	Name string
	// Command is the subcommand that runs the script.
	Command string
	Charts  []ChartOption
}

// Labels returns the chart labels in display order.
func (s Script) Labels() []string {
	out := make([]string, len(s.Charts))
	for i, c := range s.Charts {
		out[i] = c.Label
	}
	return out
}

func options[T any](c charts.Catalog[T]) []ChartOption {
	out := []ChartOption{{Label: AllLabel, Key: charts.All}}
	for _, ch := range c {
		out = append(out, ChartOption{Label: ch.Label, Key: ch.Key})
	}
	return out
}

// Catalog returns the scripts offered by the menu, in display order.
func Catalog() []Script {
	return []Script{
		{Name: "tempGlobal", Command: "temp-global", Charts: options(charts.GlobalCharts)},
		{Name: "tempPaises", Command: "temp-paises", Charts: options(charts.CountryCharts)},
	}
}

// labelKeys is the static label -> key table shared by every script.
var labelKeys = func() map[string]string {
	m := map[string]string{}
	for _, s := range Catalog() {
		for _, c := range s.Charts {
			m[c.Label] = c.Key
		}
	}
	return m
}()

// KeyFor maps a chart label to its --grafico key. Unknown labels fall back to
// the all-charts key.
func KeyFor(label string) string {
	if k, ok := labelKeys[label]; ok {
		return k
	}
	return charts.All
}

// Invocation is a fully resolved request to run one script. It does not
// refer back to the menu, so it can run while the selection changes.
type Invocation struct {
	Script Script
	Label  string
	Key    string
	Extra  []string
}

// Args returns the child process arguments.
func (i Invocation) Args() []string {
	args := []string{i.Script.Command, "--grafico", i.Key}
	return append(args, i.Extra...)
}

// Run starts the invocation through runner and blocks until it exits.
func (i Invocation) Run(ctx context.Context, runner Runner) error {
	if err := runner.Run(ctx, i.Args()...); err != nil {
		return &RunError{Script: i.Script.Name, Err: err}
	}
	return nil
}

// Menu tracks the two dependent selections of the launcher. The zero value
// has no scripts; use NewMenu.
type Menu struct {
	scripts []Script
	script  *Script
	chart   string
	// ExtraArgs are appended to every child invocation.
	ExtraArgs []string
}

// NewMenu builds a menu over scripts with nothing selected.
func NewMenu(scripts []Script) *Menu {
	return &Menu{scripts: scripts}
}

// Scripts returns the script names in display order.
func (m *Menu) Scripts() []string {
	out := make([]string, len(m.scripts))
	for i, s := range m.scripts {
		out[i] = s.Name
	}
	return out
}

// SelectScript chooses a script, returns its chart labels and resets the
// chart selection to the all-charts option.
func (m *Menu) SelectScript(name string) ([]string, error) {
	for i := range m.scripts {
		if m.scripts[i].Name == name {
			m.script = &m.scripts[i]
			m.chart = AllLabel
			return m.script.Labels(), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownScript, name)
}

// SelectChart chooses a chart label of the current script. An empty label
// clears the selection.
func (m *Menu) SelectChart(label string) error {
	if m.script == nil {
		return ErrNoScript
	}
	if label == "" {
		m.chart = ""
		return nil
	}
	for _, c := range m.script.Charts {
		if c.Label == label {
			m.chart = label
			return nil
		}
	}
	return fmt.Errorf("chart %q is not offered by %s", label, m.script.Name)
}

// Script returns the selected script name, or "".
func (m *Menu) Script() string {
	if m.script == nil {
		return ""
	}
	return m.script.Name
}

// Chart returns the selected chart label, or "".
func (m *Menu) Chart() string { return m.chart }

// Invocation resolves the current selection.
func (m *Menu) Invocation() (Invocation, error) {
	if m.script == nil {
		return Invocation{}, ErrNoScript
	}
	if m.chart == "" {
		return Invocation{}, ErrNoChart
	}
	return Invocation{
		Script: *m.script,
		Label:  m.chart,
		Key:    KeyFor(m.chart),
		Extra:  append([]string(nil), m.ExtraArgs...),
	}, nil
}

// Execute runs the selected script through runner and blocks until it exits.
func (m *Menu) Execute(ctx context.Context, runner Runner) error {
	inv, err := m.Invocation()
	if err != nil {
		return err
	}
	return inv.Run(ctx, runner)
}

// RunError reports a script that could not be run or exited with an error.
type RunError struct {
	Script string
	Err    error
}

func (e *RunError) Error() string { return fmt.Sprintf("run %s: %v", e.Script, e.Err) }

func (e *RunError) Unwrap() error { return e.Err }

// Alert returns the title and message shown to the user for err.
func Alert(err error) (title, message string) {
	var re *RunError
	switch {
	case errors.Is(err, ErrNoScript):
		return "Atenção", "Você precisa selecionar um script."
	case errors.Is(err, ErrNoChart):
		return "Atenção", "Você precisa selecionar um tipo de gráfico."
	case errors.As(err, &re):
		return "Erro", fmt.Sprintf("Falha ao executar '%s':\n%v", re.Script, re.Err)
	}
	return "Erro", err.Error()
}
