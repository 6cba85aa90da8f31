package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/golabel/pkg/annotation"
	"github.com/philipparndt/golabel/pkg/imagelist"
	"github.com/philipparndt/golabel/pkg/imageio"
	"github.com/philipparndt/golabel/pkg/watcher"
	"github.com/philipparndt/golabel/pkg/yolo"
)

// loadResult is an image and its labels decoded in the background
type loadResult struct {
	seq       uint64
	path      string
	image     decodedImage
	labelPath string
	labelText string
	boxes     []annotation.Box
	err       error // the image could not be opened
	labelErr  error // the image is fine but its labels are not
}

// decode opens an image, using the cache when possible
func (app *App) decode(path string) (decodedImage, error) {
	if app.Images.cache != nil {
		if d, ok := app.Images.cache.Get(path); ok {
			return d, nil
		}
	}

	img, err := imageio.Open(path)
	if err != nil {
		return decodedImage{}, err
	}
	b := img.Bounds()
	d := decodedImage{
		img:    imageio.Downscale(img, app.cfg.MaxTextureSize),
		width:  b.Dx(),
		height: b.Dy(),
	}
	if app.Images.cache != nil {
		app.Images.cache.Add(path, d)
	}
	return d, nil
}

// requestLoad starts loading the current image of the list in the background
func (app *App) requestLoad() {
	path, ok := app.Images.list.Current()
	if !ok {
		return
	}

	app.Load.seq++
	app.Load.isLoading = true
	app.Load.startTime = time.Now()
	seq := app.Load.seq
	app.logger.Debug("loading image", "path", path)

	go func() {
		res := loadResult{seq: seq, path: path, labelPath: yolo.LabelPath(path)}
		res.image, res.err = app.decode(path)
		if res.err == nil {
			res.labelText, res.boxes, res.labelErr = readLabels(res.labelPath, res.image.width, res.image.height)
		}
		app.Load.results <- res
	}()
}

// readLabels reads a label file and returns its text alongside the boxes
func readLabels(path string, width, height int) (string, []annotation.Box, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, nil
		}
		return "", nil, fmt.Errorf("failed to read labels: %w", err)
	}
	text := string(data)
	boxes, err := annotation.Decode(text, width, height)
	if err != nil {
		return text, nil, err
	}
	return text, boxes, nil
}

// applyLoadedImage installs a finished load (must be called on main thread)
func (app *App) applyLoadedImage() {
	for {
		select {
		case res := <-app.Load.results:
			if res.seq != app.Load.seq {
				// superseded by a later navigation
				continue
			}
			app.Load.isLoading = false
			app.install(res)
		default:
			return
		}
	}
}

func (app *App) install(res loadResult) {
	if res.err != nil {
		app.logger.Error("failed to load image", "path", res.path, "error", res.err)
		app.UI.toast.Error(fmt.Sprintf("Failed to load %s", filepath.Base(res.path)))
		return
	}

	img := rl.NewImageFromImage(res.image.img)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(texture, rl.FilterBilinear)

	oldTexture := app.Images.texture
	sameSize := res.image.width == app.Images.width && res.image.height == app.Images.height
	app.Images.texture = texture
	app.Images.path = res.path
	app.Images.width = res.image.width
	app.Images.height = res.image.height
	if oldTexture.ID != 0 {
		rl.UnloadTexture(oldTexture)
	}

	if !app.cfg.KeepView || !sameSize {
		app.View.view.SetImageSize(res.image.width, res.image.height)
	}

	app.Labels.path = res.labelPath
	app.Labels.lastSaved = res.labelText
	app.Labels.session.SetReadOnly(res.labelErr != nil)
	app.Labels.session.Reset(res.boxes)
	if res.labelErr != nil {
		app.logger.Error("failed to load labels", "path", res.labelPath, "error", res.labelErr)
		app.UI.toast.Error("Invalid label file, editing disabled: " + res.labelErr.Error())
	}

	app.watchDir(filepath.Dir(res.path))
	rl.SetWindowTitle(fmt.Sprintf("golabel - %s", filepath.Base(res.path)))
	app.logger.Info("image loaded",
		"path", res.path,
		"size", fmt.Sprintf("%dx%d", res.image.width, res.image.height),
		"boxes", len(res.boxes),
		"elapsed", time.Since(app.Load.startTime).Round(time.Millisecond))
}

// navigate moves through the folder, saving pending edits first
func (app *App) navigate(move func(*imagelist.List) bool) {
	if app.Labels.session.Mode() != (annotation.Idle{}) {
		return
	}
	if app.Labels.session.Dirty() && app.cfg.AutoSave && !app.Labels.session.ReadOnly() {
		if !app.save(false) {
			return
		}
	}
	if move(app.Images.list) {
		app.requestLoad()
	}
}

// openPath switches to the folder of a dropped file or directory
func (app *App) openPath(path string) {
	list, err := imagelist.Open(path, app.cfg.WrapFolder)
	if err != nil || list.Len() == 0 {
		app.UI.toast.Warning(fmt.Sprintf("Cannot open %s", filepath.Base(path)))
		return
	}
	if app.Labels.session.Dirty() && app.cfg.AutoSave {
		app.save(false)
	}
	app.Images.list = list
	app.requestLoad()
}

// save writes the boxes of the current image. Unless forced, a label file
// that failed to parse is left alone. It reports whether the boxes are safe
// on disk.
func (app *App) save(force bool) bool {
	if app.Labels.path == "" || app.Images.width == 0 {
		return false
	}
	if app.Labels.session.ReadOnly() && !force {
		app.UI.toast.Warning("Label file is invalid; press Ctrl+S to overwrite it")
		return false
	}

	labels, err := annotation.ToLabels(app.Labels.session.Boxes(), app.Images.width, app.Images.height)
	if err != nil {
		app.UI.toast.Error("Failed to save labels: " + err.Error())
		return false
	}
	text := yolo.Format(labels)
	if len(labels) == 0 && app.Labels.lastSaved == "" {
		if _, err := os.Stat(app.Labels.path); errors.Is(err, os.ErrNotExist) {
			app.Labels.session.MarkSaved()
			return true
		}
	}

	if err := yolo.WriteFile(app.Labels.path, labels); err != nil {
		app.logger.Error("failed to save labels", "path", app.Labels.path, "error", err)
		app.UI.toast.Error("Failed to save labels: " + err.Error())
		return false
	}
	app.Labels.lastSaved = text
	app.Labels.session.SetReadOnly(false)
	app.Labels.session.MarkSaved()
	app.logger.Info("labels saved", "path", app.Labels.path, "boxes", len(labels))
	app.UI.toast.Info("Saved " + filepath.Base(app.Labels.path))
	return true
}

// setupFileWatcher creates the label watcher
func (app *App) setupFileWatcher() error {
	fw, err := watcher.NewFileWatcher(300*time.Millisecond, app.logger.With("component", "watcher"))
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	fw.Start()
	app.FileWatch.fileWatcher = fw
	return nil
}

// watchDir points the watcher at the folder of the current image
func (app *App) watchDir(dir string) {
	fw := app.FileWatch.fileWatcher
	if fw == nil || dir == app.FileWatch.dir {
		return
	}
	if err := fw.RemoveAll(); err != nil {
		app.logger.Warn("failed to stop watching", "dir", app.FileWatch.dir, "error", err)
	}

	isLabel := func(path string) bool { return strings.EqualFold(filepath.Ext(path), yolo.LabelExt) }
	notify := func(path string) {
		select {
		case app.FileWatch.changed <- path:
		default:
		}
	}
	if err := fw.WatchDir(dir, isLabel, notify); err != nil {
		app.logger.Warn("failed to watch labels", "dir", dir, "error", err)
		return
	}
	app.FileWatch.dir = dir
}

// applyLabelChanges reloads the current label file after an external edit
func (app *App) applyLabelChanges() {
	for {
		select {
		case path := <-app.FileWatch.changed:
			app.reloadLabels(path)
		default:
			return
		}
	}
}

func (app *App) reloadLabels(path string) {
	current, err := filepath.Abs(app.Labels.path)
	if err != nil || path != current {
		return
	}

	text, boxes, err := readLabels(path, app.Images.width, app.Images.height)
	if err != nil {
		app.logger.Warn("ignoring invalid external label change", "path", path, "error", err)
		app.UI.toast.Warning("Label file changed on disk but is invalid")
		return
	}
	if text == app.Labels.lastSaved {
		return
	}
	s := app.Labels.session
	if s.Dirty() || s.Mode() != (annotation.Idle{}) {
		app.UI.toast.Warning("Label file changed on disk; keeping unsaved edits")
		return
	}

	s.Reset(boxes)
	app.Labels.lastSaved = text
	app.Labels.session.SetReadOnly(false)
	app.logger.Info("labels reloaded", "path", path, "boxes", len(boxes))
	app.UI.toast.Info("Labels reloaded")
}
