package terminal

import (
	"context"
	"fmt"
	"io"
	"time"

	"reytech/internal/view"
)

// homeScreen is the splash shown on start. It replaces itself with the menu
// so going back from the menu quits.
type homeScreen struct {
	nav      view.Navigator
	duration time.Duration
}

func (s *homeScreen) Focus(ctx context.Context) {}

func (s *homeScreen) Render(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, labelCompany)
	fmt.Fprintln(w, labelDescription)
}

func (s *homeScreen) Advance(ctx context.Context) error {
	if s.duration > 0 {
		timer := time.NewTimer(s.duration)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	s.nav.Replace(view.ScreenMenu)
	return nil
}

func (s *homeScreen) Handle(ctx context.Context, line string) {}

func (s *homeScreen) Unmount() {}

type menuScreen struct {
	app *App
}

func (s *menuScreen) Focus(ctx context.Context) {}

func (s *menuScreen) Render(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "1) %s\n", labelMenuStock)
	fmt.Fprintf(w, "2) %s\n", labelMenuAdd)
	fmt.Fprintf(w, "0) %s\n", labelMenuQuit)
}

func (s *menuScreen) Handle(ctx context.Context, line string) {
	switch line {
	case "1":
		s.app.NavigateTo(view.ScreenStock, nil)
	case "2":
		s.app.NavigateTo(view.ScreenAddProduct, nil)
	case "0":
		s.app.Quit()
	}
}

func (s *menuScreen) Unmount() {}
