package uploadController

import (
	"log"
	"path"
	"strings"

	"jubetech/middleware"
	"jubetech/utils"

	"github.com/gofiber/fiber/v2"
)

type UploadController struct {
	Storage *utils.Storage
}

func NewUploadController(storage *utils.Storage) *UploadController {
	return &UploadController{Storage: storage}
}

// uploadKind discriminates what is being uploaded. Each kind pins its own
// destination directory, extension allow-list and size cap.
type uploadKind struct {
	dir      string
	maxBytes int64
	exts     map[string]bool
}

var uploadKinds = map[string]uploadKind{
	"thumbnail": {
		dir:      "thumbnails",
		maxBytes: 5 << 20,
		exts:     map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true},
	},
	"video": {
		dir:      "videos",
		maxBytes: 500 << 20,
		exts:     map[string]bool{".mp4": true, ".webm": true},
	},
	"attachment": {
		dir:      "attachments",
		maxBytes: 20 << 20,
		exts:     map[string]bool{".pdf": true, ".zip": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true, ".ppt": true, ".pptx": true, ".txt": true},
	},
}

// UploadFile stores a multipart file under the directory of its declared
// kind and returns the object key plus its public URL.
func (ctl *UploadController) UploadFile(c *fiber.Ctx) error {
	kindName := c.FormValue("type")
	kind, ok := uploadKinds[kindName]
	if !ok {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"type": "Type must be thumbnail, video or attachment!",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"file": "File is required!",
		})
	}
	if file.Size > kind.maxBytes {
		return middleware.JsonResponse(c, fiber.StatusRequestEntityTooLarge, false, "The file is too large.", nil)
	}
	ext := strings.ToLower(path.Ext(file.Filename))
	if !kind.exts[ext] {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"file": "The file extension is not allowed for this type!",
		})
	}

	key, err := ctl.Storage.Upload(c.Context(), file, kind.dir)
	if err == utils.ErrStorageDisabled {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "File storage is not available.", nil)
	}
	if err != nil {
		log.Printf("Error uploading file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "The file was uploaded successfully.", fiber.Map{
		"path": key,
		"url":  ctl.Storage.PublicURL(key),
	})
}

// DeleteFile removes a previously uploaded object by its key.
func (ctl *UploadController) DeleteFile(c *fiber.Ctx) error {
	var reqData struct {
		Path string `json:"path"`
	}
	if err := c.BodyParser(&reqData); err != nil || strings.TrimSpace(reqData.Path) == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"path": "Path is required!",
		})
	}

	err := ctl.Storage.Delete(reqData.Path)
	if err == utils.ErrStorageDisabled {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "File storage is not available.", nil)
	}
	if err != nil {
		log.Printf("Error deleting file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "The file was deleted successfully.", nil)
}
