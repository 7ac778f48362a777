package controller

import (
	"io"

	"pdf-qa-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/m-mizutani/goerr/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	r.Post("/upload_pdf", c.Upload)
	r.Get("/documents", c.List)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return goerr.Wrap(err, "failed to open upload")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return goerr.Wrap(err, "failed to read upload")
	}

	res, err := c.documentService.Upload(ctx.UserContext(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), content)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	res, err := c.documentService.List(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
