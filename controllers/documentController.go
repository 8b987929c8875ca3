package controllers

import (
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"compliance-backend/middlewares"
	"compliance-backend/services"
	"compliance-backend/utils"
)

type DocumentController struct {
	documents *services.DocumentService
}

func NewDocumentController(documents *services.DocumentService) *DocumentController {
	return &DocumentController{documents: documents}
}

// Upload accepts a multipart form with a "file" part and optional client_id,
// project_id and task_id fields linking the document to other records.
func (ct *DocumentController) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(header.Filename))
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	in := services.UploadDocumentInput{
		OriginalFilename: filepath.Base(header.Filename),
		MimeType:         mimeType,
		Size:             header.Size,
		UploadedBy:       middlewares.CurrentUser(c).ID,
	}
	if id := utils.ParseUint(c.FormValue("client_id")); id != 0 {
		in.ClientID = &id
	}
	if id := utils.ParseUint(c.FormValue("project_id")); id != 0 {
		in.ProjectID = &id
	}
	if id := utils.ParseUint(c.FormValue("task_id")); id != 0 {
		in.TaskID = &id
	}

	f, err := header.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := ct.documents.Upload(c.UserContext(), in, f)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

func (ct *DocumentController) List(c *fiber.Ctx) error {
	skip := utils.ParseIntDefault(c.Query("skip"), 0)
	limit := utils.ParseIntDefault(c.Query("limit"), 100)
	docs, err := ct.documents.List(c.UserContext(), skip, limit, utils.ParseUint(c.Query("client_id")))
	if err != nil {
		return err
	}
	return c.JSON(docs)
}

func (ct *DocumentController) Get(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	doc, err := ct.documents.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(doc)
}

// Download streams the stored blob with the original filename.
func (ct *DocumentController) Download(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	doc, rc, err := ct.documents.Open(c.UserContext(), id)
	if err != nil {
		return err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, doc.MimeType)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", doc.OriginalFilename))
	return c.Send(data)
}

func (ct *DocumentController) Delete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := ct.documents.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
