package controller

import (
	"fmt"

	"pdf-qa-be/internal/dto"
	"pdf-qa-be/internal/service"
	"pdf-qa-be/pkg/rag/artifact"

	"github.com/gofiber/fiber/v2"
)

type IArtifactController interface {
	RegisterRoutes(r fiber.Router)
	Summary(ctx *fiber.Ctx) error
	Flashcards(ctx *fiber.Ctx) error
	Mcqs(ctx *fiber.Ctx) error
}

type artifactController struct {
	artifactService service.IArtifactService
}

func NewArtifactController(artifactService service.IArtifactService) IArtifactController {
	return &artifactController{
		artifactService: artifactService,
	}
}

func (c *artifactController) RegisterRoutes(r fiber.Router) {
	r.Get("/summary", c.Summary)
	r.Get("/flashcards", c.Flashcards)
	r.Get("/mcq", c.Mcqs)

	r.Get("/download_summary", c.download(artifact.Summary))
	r.Get("/download_flashcards", c.download(artifact.Flashcards))
	r.Get("/download_mcq", c.download(artifact.MCQs))
}

func (c *artifactController) Summary(ctx *fiber.Ctx) error {
	value, err := c.artifactService.Get(ctx.UserContext(), artifact.Summary)
	if err != nil {
		return err
	}
	return ctx.JSON(dto.SummaryResponse{Summary: value})
}

func (c *artifactController) Flashcards(ctx *fiber.Ctx) error {
	value, err := c.artifactService.Get(ctx.UserContext(), artifact.Flashcards)
	if err != nil {
		return err
	}
	return ctx.JSON(dto.FlashcardsResponse{Flashcards: value})
}

func (c *artifactController) Mcqs(ctx *fiber.Ctx) error {
	value, err := c.artifactService.Get(ctx.UserContext(), artifact.MCQs)
	if err != nil {
		return err
	}
	return ctx.JSON(dto.McqsResponse{Mcqs: value})
}

func (c *artifactController) download(kind artifact.Kind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		file, err := c.artifactService.Export(ctx.UserContext(), kind)
		if err != nil {
			return err
		}

		ctx.Set(fiber.HeaderContentType, "application/pdf")
		ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.FileName))
		return ctx.Send(file.Content)
	}
}
