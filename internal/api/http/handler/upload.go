package handler

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v3"
)

var errNoFilePart = errors.New("no file part")

// formFile reads a whole multipart file field into memory. Uploads are
// bounded by the server body limit.
func formFile(c fiber.Ctx, field string) (string, []byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil, errNoFilePart
	}

	f, err := fh.Open()
	if err != nil {
		return "", nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	return fh.Filename, data, nil
}
