package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/KaramelBytes/tempviz-cli/internal/charts"
)

// NewViewer builds a window with one tab per rendered chart. Skipped results
// are listed on a final tab so the user can see why they are missing.
func NewViewer(a fyne.App, title string, results []charts.Result) fyne.Window {
	w := a.NewWindow(title)
	tabs := container.NewAppTabs()
	var skipped []string
	for _, r := range results {
		if r.Status != charts.Rendered {
			skipped = append(skipped, "⚠ "+r.Reason)
			continue
		}
		img := canvas.NewImageFromFile(r.Path)
		img.FillMode = canvas.ImageFillContain
		img.SetMinSize(fyne.NewSize(600, 300))
		tabs.Append(container.NewTabItem(r.Title, img))
	}
	if len(skipped) > 0 {
		box := container.NewVBox()
		for _, s := range skipped {
			box.Add(widget.NewLabel(s))
		}
		tabs.Append(container.NewTabItem("Avisos", box))
	}
	w.SetContent(tabs)
	w.Resize(fyne.NewSize(1000, 600))
	return w
}

// ShowCharts opens the viewer and blocks until it is closed. It does nothing
// when no chart was rendered.
func ShowCharts(title string, results []charts.Result) {
	rendered := false
	for _, r := range results {
		if r.Status == charts.Rendered {
			rendered = true
			break
		}
	}
	if !rendered {
		return
	}
	a := app.New()
	NewViewer(a, title, results).ShowAndRun()
}
