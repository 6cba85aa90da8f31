package app

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const toastDuration = 3 * time.Second

type toastKind int

const (
	toastInfo toastKind = iota
	toastWarning
	toastError
)

// toast is a short status message that fades after a cooldown
type toast struct {
	kind  toastKind
	text  string
	shown time.Time
	now   func() time.Time
}

func newToast() *toast {
	return &toast{now: time.Now}
}

func (t *toast) Info(text string)    { t.set(toastInfo, text) }
func (t *toast) Warning(text string) { t.set(toastWarning, text) }
func (t *toast) Error(text string)   { t.set(toastError, text) }

func (t *toast) set(kind toastKind, text string) {
	t.kind, t.text, t.shown = kind, text, t.now()
}

// current returns the visible message and its remaining opacity
func (t *toast) current() (string, float32, bool) {
	if t.text == "" {
		return "", 0, false
	}
	age := t.now().Sub(t.shown)
	if age >= toastDuration {
		return "", 0, false
	}
	alpha := float32(1)
	if fade := toastDuration - age; fade < time.Second {
		alpha = float32(fade) / float32(time.Second)
	}
	return t.text, alpha, true
}

func (t *toast) color() rl.Color {
	switch t.kind {
	case toastWarning:
		return rl.Gold
	case toastError:
		return rl.Red
	default:
		return rl.RayWhite
	}
}
