package label

import "errors"

var (
	// ErrNoImageSelected is returned by AddBill when no image is active.
	ErrNoImageSelected = errors.New("no image selected")

	// ErrImageNotFound is returned by SelectEntry when the entry's filename
	// resolves to none of the loaded images. Non-fatal: the selection and
	// the buffer load still happen.
	ErrImageNotFound = errors.New("image not found")

	// ErrInvalidFormat is returned by import when the document parses as
	// JSON but is neither the successful_results wrapper nor a bare array.
	ErrInvalidFormat = errors.New("invalid JSON format")

	// ErrNoEntries is returned by export when the store is empty.
	ErrNoEntries = errors.New("no bills to save")

	// ErrNoImages is returned by SetImages when the list holds no images.
	ErrNoImages = errors.New("no images found")

	// ErrLastItem is returned when removing the only remaining line item.
	ErrLastItem = errors.New("a bill needs at least one item")
)
