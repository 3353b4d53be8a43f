package terminal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// filePicker asks for an image path on the terminal. Reading local files
// needs no grant, so permission is always given.
type filePicker struct {
	app *App
}

func (p *filePicker) RequestPermission(ctx context.Context) (bool, error) {
	return true, nil
}

func (p *filePicker) PickImage(ctx context.Context) (string, bool, error) {
	fmt.Fprintln(p.app.out, labelImagePath)
	fmt.Fprint(p.app.out, labelPrompt)

	line, ok := p.app.readLine()
	if !ok || line == "" {
		return "", false, nil
	}

	path, err := filepath.Abs(line)
	if err != nil {
		return "", false, fmt.Errorf("resolving image path: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", false, fmt.Errorf("reading image: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("image path %s is a directory", path)
	}

	return "file://" + path, true, nil
}
