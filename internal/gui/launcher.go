// Package gui holds the desktop windows: the two-selector launcher and the
// chart viewer.
package gui

import (
	"context"
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/KaramelBytes/tempviz-cli/internal/launcher"
)

// LauncherTitle is the title of the launcher window.
const LauncherTitle = "Menu de Visualização de Temperaturas"

// Launcher is the menu window. Selections are forwarded to a launcher.Menu and
// the chosen script runs through Runner without blocking the event loop.
type Launcher struct {
	Window fyne.Window
	Script *widget.Select
	Chart  *widget.Select
	Run    *widget.Button
	Status *widget.Label

	menu   *launcher.Menu
	runner launcher.Runner
	ctx    context.Context

	// done is called on the UI goroutine after each execution attempt.
	done func(error)
}

// NewLauncher builds the launcher window on a. The first script is
// pre-selected so the chart list is never empty on open.
func NewLauncher(ctx context.Context, a fyne.App, menu *launcher.Menu, runner launcher.Runner) *Launcher {
	l := &Launcher{
		Window: a.NewWindow(LauncherTitle),
		Status: widget.NewLabel(""),
		menu:   menu,
		runner: runner,
		ctx:    ctx,
	}
	l.Chart = widget.NewSelect(nil, l.onChart)
	l.Chart.PlaceHolder = "(selecione)"
	l.Script = widget.NewSelect(menu.Scripts(), l.onScript)
	l.Script.PlaceHolder = "(selecione)"
	l.Run = widget.NewButton("Executar", l.execute)
	l.Run.Importance = widget.HighImportance

	form := container.NewVBox(
		widget.NewLabel("Selecione o script:"),
		l.Script,
		widget.NewLabel("Selecione o gráfico:"),
		l.Chart,
	)
	l.Window.SetContent(container.NewBorder(form, container.NewBorder(nil, nil, nil, l.Run, l.Status), nil, nil, nil))
	l.Window.Resize(fyne.NewSize(420, 240))

	if names := menu.Scripts(); len(names) > 0 {
		l.Script.SetSelected(names[0])
	}
	return l
}

func (l *Launcher) onScript(name string) {
	labels, err := l.menu.SelectScript(name)
	if err != nil {
		l.alert(err)
		return
	}
	l.Chart.Options = labels
	l.Chart.SetSelected(l.menu.Chart())
	l.Chart.Refresh()
}

func (l *Launcher) onChart(label string) {
	if l.menu.Script() == "" {
		return
	}
	if err := l.menu.SelectChart(label); err != nil {
		l.alert(err)
	}
}

func (l *Launcher) execute() {
	inv, err := l.menu.Invocation()
	if err != nil {
		l.alert(err)
		l.finish(err)
		return
	}
	l.setBusy(true)
	l.Status.SetText(fmt.Sprintf("Executando %s (%s)...", inv.Script.Name, inv.Label))

	go func() {
		err := inv.Run(l.ctx, l.runner)
		fyne.Do(func() {
			l.setBusy(false)
			if err != nil {
				l.Status.SetText("")
				l.alert(err)
			} else {
				l.Status.SetText(fmt.Sprintf("✓ %s concluído", inv.Script.Name))
			}
			l.finish(err)
		})
	}()
}

// setBusy locks every control while a child runs.
func (l *Launcher) setBusy(busy bool) {
	for _, w := range []fyne.Disableable{l.Run, l.Script, l.Chart} {
		if busy {
			w.Disable()
		} else {
			w.Enable()
		}
	}
}

func (l *Launcher) finish(err error) {
	if l.done != nil {
		l.done(err)
	}
}

func (l *Launcher) alert(err error) {
	title, msg := launcher.Alert(err)
	if title == "Erro" {
		dialog.ShowError(errors.New(msg), l.Window)
		return
	}
	dialog.ShowInformation(title, msg, l.Window)
}

// RunLauncher opens the launcher in a new application and blocks until the
// window is closed.
func RunLauncher(ctx context.Context, menu *launcher.Menu, runner launcher.Runner) {
	a := app.New()
	NewLauncher(ctx, a, menu, runner).Window.ShowAndRun()
}
