package handlers

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UploadHandler stores listing and profile images on local disk; the files
// are served statically under /uploads.
type UploadHandler struct {
	dir string
}

// NewUploadHandler constructs UploadHandler, creating the upload dir.
func NewUploadHandler(dir string) *UploadHandler {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("cannot create upload dir %s: %v", dir, err)
	}
	return &UploadHandler{dir: dir}
}

const maxUploadFiles = 3

// Upload accepts up to three multipart images and returns their public URLs.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid multipart form")
	}

	files := form.File["images"]
	if len(files) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no files uploaded")
	}
	if len(files) > maxUploadFiles {
		return fiber.NewError(fiber.StatusBadRequest, "too many files")
	}

	var urls []string
	for _, file := range files {
		name := uuid.NewString() + filepath.Ext(file.Filename)
		if err := c.SaveFile(file, filepath.Join(h.dir, name)); err != nil {
			return err
		}
		urls = append(urls, "/uploads/"+name)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "urls": urls})
}
