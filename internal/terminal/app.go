package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"reytech/internal/domain"
	"reytech/internal/product"
	"reytech/internal/view"
)

// screen is one entry of the navigation stack.
type screen interface {
	// Focus runs every time the screen becomes the top of the stack.
	Focus(ctx context.Context)
	Render(w io.Writer)
	Handle(ctx context.Context, line string)
	Unmount()
}

// timedScreen advances on its own instead of waiting for input.
type timedScreen interface {
	Advance(ctx context.Context) error
}

// App is the line-oriented terminal host of the product screens. It owns
// the navigation stack and implements view.Navigator for the controllers.
type App struct {
	module *product.Module
	picker view.ImagePicker
	in     *bufio.Scanner
	out    io.Writer
	splash time.Duration
	logger *zap.Logger

	stack   []screen
	focused bool
	quit    bool
}

func NewApp(module *product.Module, in io.Reader, out io.Writer, splash time.Duration, logger *zap.Logger) *App {
	a := &App{
		module: module,
		in:     bufio.NewScanner(in),
		out:    out,
		splash: splash,
		logger: logger,
	}
	a.picker = &filePicker{app: a}
	return a
}

// Run shows the splash screen and serves input until the user quits or the
// input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.unmountAll()

	if len(a.stack) == 0 {
		a.NavigateTo(view.ScreenHome, nil)
	}

	for !a.quit && len(a.stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		top := a.stack[len(a.stack)-1]
		if !a.focused {
			a.focused = true
			top.Focus(ctx)
		}

		top.Render(a.out)

		if timed, ok := top.(timedScreen); ok {
			if err := timed.Advance(ctx); err != nil {
				return err
			}
			continue
		}

		fmt.Fprint(a.out, labelPrompt)
		line, ok := a.readLine()
		if !ok {
			return a.in.Err()
		}

		top.Handle(ctx, line)
	}

	return nil
}

func (a *App) NavigateTo(target view.Screen, params any) {
	s, err := a.newScreen(target, params)
	if err != nil {
		a.logger.Error("navigation failed", zap.String("screen", string(target)), zap.Error(err))
		return
	}

	a.logger.Debug("navigate", zap.String("screen", string(target)))
	a.stack = append(a.stack, s)
	a.focused = false
}

// GoBack leaves the current screen. Leaving the last screen quits.
func (a *App) GoBack() {
	if len(a.stack) == 0 {
		return
	}

	a.stack[len(a.stack)-1].Unmount()
	a.stack = a.stack[:len(a.stack)-1]
	a.focused = false
	if len(a.stack) == 0 {
		a.quit = true
	}
}

// Replace swaps the current screen, so going back skips it.
func (a *App) Replace(target view.Screen) {
	s, err := a.newScreen(target, nil)
	if err != nil {
		a.logger.Error("navigation failed", zap.String("screen", string(target)), zap.Error(err))
		return
	}

	if len(a.stack) > 0 {
		a.stack[len(a.stack)-1].Unmount()
		a.stack = a.stack[:len(a.stack)-1]
	}
	a.stack = append(a.stack, s)
	a.focused = false
}

func (a *App) Quit() {
	a.quit = true
}

func (a *App) newScreen(target view.Screen, params any) (screen, error) {
	switch target {
	case view.ScreenHome:
		return &homeScreen{nav: a, duration: a.splash}, nil
	case view.ScreenMenu:
		return &menuScreen{app: a}, nil
	case view.ScreenStock:
		return newStockScreen(a.module.NewListController(a), a.module, a), nil
	case view.ScreenAddProduct:
		return newFormScreen(target, a.module.NewCreateForm(a.picker, a), a), nil
	case view.ScreenEditProduct:
		p, ok := params.(domain.Product)
		if !ok {
			return nil, fmt.Errorf("edit screen needs a product, got %T", params)
		}
		return newFormScreen(target, a.module.NewEditForm(p, a.picker, a), a), nil
	default:
		return nil, fmt.Errorf("unknown screen %q", target)
	}
}

func (a *App) readLine() (string, bool) {
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *App) unmountAll() {
	for i := len(a.stack) - 1; i >= 0; i-- {
		a.stack[i].Unmount()
	}
	a.stack = nil
}

func header(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "== %s ==\n", title)
}
