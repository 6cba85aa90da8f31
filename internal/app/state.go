package app

import (
	"image"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/philipparndt/golabel/pkg/annotation"
	"github.com/philipparndt/golabel/pkg/imagelist"
	"github.com/philipparndt/golabel/pkg/viewer"
	"github.com/philipparndt/golabel/pkg/watcher"
)

// ImageState holds the folder and the image on screen
type ImageState struct {
	list    *imagelist.List
	path    string       // image currently shown
	texture rl.Texture2D // zero until the first image is loaded
	width   int          // oriented size of the source image
	height  int
	cache   *lru.Cache[string, decodedImage]
}

// decodedImage is a decoded, orientation-corrected image ready for upload
type decodedImage struct {
	img    image.Image // possibly downscaled for the texture
	width  int
	height int
}

// LabelState holds the edit session of the current image's labels
type LabelState struct {
	session   *annotation.Session
	path      string // label file of the current image
	lastSaved string // document last read from or written to path
}

// ViewState holds display settings
type ViewState struct {
	view          *viewer.View
	showCrosshair bool
	showHelp      bool
}

// InteractionState holds mouse state between frames
type InteractionState struct {
	lastMousePos  rl.Vector2
	mouseInImage  bool
	pointerActive bool // a primary-button drag was forwarded to the session
}

// LoadState tracks background image loads
type LoadState struct {
	results   chan loadResult
	seq       uint64 // sequence number of the newest request
	isLoading bool
	startTime time.Time
}

// FileWatchState holds label file watching state
type FileWatchState struct {
	fileWatcher *watcher.FileWatcher
	dir         string      // directory currently watched
	changed     chan string // label files changed on disk
}

// UIState holds UI-related state
type UIState struct {
	font  rl.Font
	toast *toast
}
