package app

import (
	"fmt"
	"log/slog"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/philipparndt/golabel/internal/config"
	"github.com/philipparndt/golabel/pkg/annotation"
	"github.com/philipparndt/golabel/pkg/imagelist"
	"github.com/philipparndt/golabel/pkg/viewer"
)

// Options configures a viewer window
type Options struct {
	Path   string // image or directory to open
	Config *config.Config
	Logger *slog.Logger
}

type App struct {
	cfg    *config.Config
	logger *slog.Logger

	Images      ImageState
	Labels      LabelState
	View        ViewState
	Interaction InteractionState
	Load        LoadState
	FileWatch   FileWatchState
	UI          UIState
}

// Run opens the viewer window and blocks until it is closed
func Run(opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	list, err := imagelist.Open(opts.Path, cfg.WrapFolder)
	if err != nil {
		return err
	}
	if list.Len() == 0 {
		return fmt.Errorf("no supported images in %s", opts.Path)
	}

	app := &App{
		cfg:    cfg,
		logger: logger,
		Images: ImageState{list: list},
		Load:   LoadState{results: make(chan loadResult, 4)},
		FileWatch: FileWatchState{
			changed: make(chan string, 8),
		},
		UI: UIState{toast: newToast()},
	}
	if cfg.MaxCache > 0 {
		cache, err := lru.New[string, decodedImage](cfg.MaxCache)
		if err != nil {
			return fmt.Errorf("failed to create image cache: %w", err)
		}
		app.Images.cache = cache
	}

	session := annotation.NewSession(nil, logger.With("component", "session"))
	session.SetClass(cfg.DefaultClass)
	session.SetCatchRadius(cfg.CatchRadius)
	app.Labels.session = session

	if cfg.WatchLabels {
		if err := app.setupFileWatcher(); err != nil {
			logger.Warn("label auto-reload unavailable", "error", err)
		} else {
			defer app.FileWatch.fileWatcher.Close()
		}
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(cfg.WindowWidth), int32(cfg.WindowHeight), "golabel")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0) // Q quits; Escape stays free

	app.UI.font = rl.GetFontDefault()
	app.View.view = viewer.NewView(0, 0, float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	app.View.showCrosshair = cfg.ShowCrosshair

	app.requestLoad()

	for !rl.WindowShouldClose() {
		app.applyLoadedImage()
		app.applyLabelChanges()

		if app.handleInput() {
			break
		}

		rl.BeginDrawing()
		bg := cfg.BackgroundColor
		rl.ClearBackground(rl.NewColor(bg[0], bg[1], bg[2], 255))
		app.drawImage()
		app.drawBoxes()
		app.drawCrosshair()
		app.drawUI()
		rl.EndDrawing()
	}

	if app.Labels.session.Dirty() && cfg.AutoSave {
		app.save(false)
	}
	if app.Images.texture.ID != 0 {
		rl.UnloadTexture(app.Images.texture)
	}
	rl.CloseWindow()
	return nil
}

// currentName returns the file name of the image on screen
func (app *App) currentName() string {
	if app.Images.path == "" {
		return ""
	}
	return filepath.Base(app.Images.path)
}
