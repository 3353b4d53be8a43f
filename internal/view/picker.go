package view

import "context"

// ImagePicker selects a local image for upload.
type ImagePicker interface {
	RequestPermission(ctx context.Context) (granted bool, err error)
	// PickImage returns ok=false when the user cancels.
	PickImage(ctx context.Context) (uri string, ok bool, err error)
}
