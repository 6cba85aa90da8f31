package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/golabel/internal/config"
	"github.com/philipparndt/golabel/pkg/annotation"
	"github.com/philipparndt/golabel/pkg/imageio"
	"github.com/philipparndt/golabel/pkg/imagelist"
	"github.com/philipparndt/golabel/pkg/yolo"
)

type App struct {
	window  fyne.Window
	cfg     *config.Config
	logger  *slog.Logger
	session *annotation.Session
	canvas  *AnnotationCanvas
	list    *imagelist.List

	imagePath string
	width     int
	height    int

	boxList   *widget.List
	infoLabel *widget.Label
	classSel  *widget.Select
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		logger.Warn("using default settings", "error", err)
	}

	a := app.New()
	w := a.NewWindow("golabel - Annotation Editor")

	appInstance := &App{
		window: w,
		cfg:    cfg,
		logger: logger,
	}
	appInstance.session = annotation.NewSession(nil, logger.With("component", "session"))
	appInstance.session.SetCatchRadius(cfg.CatchRadius)
	appInstance.session.SetClass(cfg.DefaultClass)

	// Check if file was provided as argument
	if len(os.Args) > 1 {
		appInstance.openPath(os.Args[1])
	} else {
		appInstance.showWelcomeScreen()
	}

	w.Canvas().SetOnTypedKey(appInstance.typedKey)
	w.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))
	w.ShowAndRun()
}

func (a *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Welcome to golabel")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Click 'Open Image' to start annotating")

	openButton := widget.NewButton("Open Image", func() {
		a.showFileDialog()
	})

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.openPath(reader.URI().Path())
	}, a.window)
}

func (a *App) openPath(path string) {
	list, err := imagelist.Open(path, a.cfg.WrapFolder)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	if list.Len() == 0 {
		dialog.ShowError(fmt.Errorf("no supported images in %s", path), a.window)
		return
	}
	if a.canvas == nil {
		a.setupMainUI()
	} else if a.session.Dirty() && a.cfg.AutoSave {
		a.save()
	}
	a.list = list
	a.loadCurrent()
}

func (a *App) loadCurrent() {
	path, ok := a.list.Current()
	if !ok {
		return
	}
	img, err := imageio.Open(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	b := img.Bounds()
	boxes, err := annotation.LoadBoxes(yolo.LabelPath(path), b.Dx(), b.Dy())
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to load labels: %w", err), a.window)
		boxes = nil
	}

	a.imagePath, a.width, a.height = path, b.Dx(), b.Dy()
	a.session.SetReadOnly(err != nil)
	a.session.Reset(boxes)
	a.canvas.SetImage(imageio.Downscale(img, a.cfg.MaxTextureSize))
	a.window.SetTitle(fmt.Sprintf("golabel - %s", filepath.Base(path)))
	a.logger.Info("image loaded", "path", path, "boxes", len(boxes))
	a.updateInfo()
}

func (a *App) setupMainUI() {
	a.canvas = NewAnnotationCanvas(a.session)
	a.canvas.SetOnChange(a.updateInfo)

	a.infoLabel = widget.NewLabel("")
	a.infoLabel.Wrapping = fyne.TextWrapWord

	a.boxList = widget.NewList(
		func() int { return len(a.session.Boxes()) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			boxes := a.session.Boxes()
			if id >= len(boxes) {
				return
			}
			b := boxes[id]
			obj.(*widget.Label).SetText(fmt.Sprintf("%s  (%.0f, %.0f)  %.0fx%.0f",
				a.cfg.ClassName(b.ClassID), b.Center.X, b.Center.Y, b.Width(), b.Height()))
		},
	)

	classes := make([]string, 9)
	for i := range classes {
		classes[i] = fmt.Sprintf("%d: %s", i+1, a.cfg.ClassName(i))
	}
	a.classSel = widget.NewSelect(classes, func(selected string) {
		for i, c := range classes {
			if c == selected {
				a.setClass(i)
			}
		}
	})
	a.classSel.SetSelectedIndex(a.session.Class() % len(classes))

	openButton := widget.NewButton("Open Image", a.showFileDialog)
	saveButton := widget.NewButton("Save Labels", a.save)
	deleteButton := widget.NewButton("Delete Selected", a.deleteSelected)
	prevButton := widget.NewButton("Previous", func() { a.navigate(a.list.Prev) })
	nextButton := widget.NewButton("Next", func() { a.navigate(a.list.Next) })

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Drag on empty space to create a box\n" +
			"• Drag corners or edges to resize\n" +
			"• Drag inside a box to move it\n" +
			"• 1-9 set the class, Delete removes the selection\n" +
			"• Scroll to zoom",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewBorder(
		container.NewVBox(
			widget.NewLabel("Image:"),
			widget.NewSeparator(),
			a.infoLabel,
			widget.NewSeparator(),
			widget.NewLabel("Class:"),
			a.classSel,
			widget.NewSeparator(),
			widget.NewLabel("Boxes:"),
		),
		container.NewVBox(
			widget.NewSeparator(),
			instructions,
			widget.NewSeparator(),
			container.NewGridWithColumns(2, prevButton, nextButton),
			deleteButton,
			saveButton,
			openButton,
		),
		nil,
		nil,
		a.boxList,
	)
	infoPanel = container.NewPadded(infoPanel)

	split := container.NewHSplit(a.canvas, infoPanel)
	split.Offset = 0.75
	a.window.SetContent(split)
}

func (a *App) updateInfo() {
	dirty := ""
	if a.session.Dirty() {
		dirty = " (modified)"
	}
	if a.session.ReadOnly() {
		dirty += " (read-only: invalid label file)"
	}
	a.infoLabel.SetText(fmt.Sprintf("%s%s\n%d x %d\n%d boxes, image %d of %d",
		filepath.Base(a.imagePath), dirty, a.width, a.height,
		a.session.Store().Len(), a.list.Index()+1, a.list.Len()))
	a.boxList.Refresh()
}

func (a *App) setClass(classID int) {
	a.session.SetClass(classID)
	if a.session.RelabelSelected(classID) {
		a.canvas.Refresh()
		a.updateInfo()
	}
}

func (a *App) deleteSelected() {
	if a.session.DeleteSelected() {
		a.canvas.Refresh()
		a.updateInfo()
	}
}

func (a *App) navigate(move func() bool) {
	if a.session.Dirty() && a.cfg.AutoSave {
		a.save()
	}
	if move() {
		a.loadCurrent()
	}
}

func (a *App) save() {
	if a.imagePath == "" {
		return
	}
	if a.session.ReadOnly() {
		dialog.ShowConfirm("Invalid label file",
			"The label file could not be parsed. Overwrite it with the current boxes?",
			func(overwrite bool) {
				if overwrite {
					a.writeLabels()
				}
			}, a.window)
		return
	}
	a.writeLabels()
}

func (a *App) writeLabels() {
	path := yolo.LabelPath(a.imagePath)
	if err := annotation.SaveBoxes(path, a.session.Boxes(), a.width, a.height); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.session.MarkSaved()
	a.session.SetReadOnly(false)
	a.logger.Info("labels saved", "path", path)
	a.updateInfo()
}

func (a *App) typedKey(ev *fyne.KeyEvent) {
	if a.canvas == nil {
		return
	}
	switch ev.Name {
	case fyne.KeyDelete, fyne.KeyBackspace:
		a.deleteSelected()
	case fyne.KeyRight:
		a.navigate(a.list.Next)
	case fyne.KeyLeft:
		a.navigate(a.list.Prev)
	case fyne.Key1, fyne.Key2, fyne.Key3, fyne.Key4, fyne.Key5, fyne.Key6, fyne.Key7, fyne.Key8, fyne.Key9:
		a.classSel.SetSelectedIndex(int(ev.Name[0] - '1'))
	}
}
