package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"recruit-flow-backend/controllers"
	applicationhandler "recruit-flow-backend/lib/application"
	filestorage "recruit-flow-backend/lib/file-storage"
	transitionhandler "recruit-flow-backend/lib/transition"
	"recruit-flow-backend/middleware"
	"recruit-flow-backend/models"
	apimodels "recruit-flow-backend/models/api"
	applicantapimodels "recruit-flow-backend/models/api/applicant"
)

type applicationApiController struct {
	controllers.BaseAPIController
}

func InitApplicationApiRouters(app *fiber.App) {
	controller := applicationApiController{}
	app.Route("application", func(router fiber.Router) {
		router.Get("file/:id", controller.getFile)
		router.Post("", controller.create)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Get("suggest-next", controller.suggestNext)
			idRouter.Put("transition", controller.transition)
			idRouter.Put("withdraw", controller.withdraw)
			idRouter.Post("history", controller.history)
			idRouter.Post("file/:field_id", controller.uploadFile)
		})
	})
}

// @Summary Create an application
// @Tags Application
// @Description Create a candidate application in a phase
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body	body	applicantapimodels.ApplicationData	true	"request"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/application [post]
func (c *applicationApiController) create(ctx *fiber.Ctx) error {
	body := applicantapimodels.ApplicationData{}
	if err := c.BodyParser(ctx, &body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := body.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	id, err := applicationhandler.Instance.Create(spaceID, body)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Get an application
// @Tags Application
// @Description Get an application by id
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/application/{id} [get]
func (c *applicationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	view, err := applicationhandler.Instance.GetByID(spaceID, id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Attempt a stage transition
// @Tags Application
// @Description Move an application to a target stage after required-field
// @Description and validation checks. Rejected attempts return the reason.
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"application ID"
// @Param	body	body	applicantapimodels.TransitionRequest	true	"request"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/application/{id}/transition [put]
func (c *applicationApiController) transition(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body := applicantapimodels.TransitionRequest{}
	if err = c.BodyParser(ctx, &body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = body.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	result, err := transitionhandler.Instance.AttemptTransition(spaceID, id, userID, body)
	if err != nil {
		if invalid, ok := models.AsInvalidTransition(err); ok {
			return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewResponse(invalid))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Suggest the next stage
// @Tags Application
// @Description Suggest the next active stage in workflow order
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"application ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/application/{id}/suggest-next [get]
func (c *applicationApiController) suggestNext(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	suggested, err := transitionhandler.Instance.SuggestNextStage(spaceID, id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(suggested))
}

// @Summary Withdraw an application
// @Tags Application
// @Description Withdraw an application from the pipeline
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"application ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/application/{id}/withdraw [put]
func (c *applicationApiController) withdraw(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	if err = applicationhandler.Instance.Withdraw(spaceID, id, userID); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Application history
// @Tags Application
// @Description List stage transition history, newest first
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"application ID"
// @Param	body	body	applicantapimodels.HistoryFilter	true	"request"
// @Success 200 {object} apimodels.ScrollerResponse
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/application/{id}/history [post]
func (c *applicationApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body := applicantapimodels.HistoryFilter{}
	if err = c.BodyParser(ctx, &body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	list, rowCount, err := applicationhandler.Instance.History(spaceID, id, body)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Upload a field file
// @Tags Application
// @Description Upload a FILE custom-field value for an application
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"application ID"
// @Param   field_id	path	string	true	"field ID"
// @Param   file	formData	file	true	"file to upload"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/application/{id}/file/{field_id} [post]
func (c *applicationApiController) uploadFile(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fieldID := ctx.Params("field_id")
	if fieldID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("field id is not specified"))
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buffer, err := file.Open()
	if err != nil {
		c.GetLogger(ctx).WithError(err).Error("failed to open the uploaded file")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	defer buffer.Close()

	spaceID := middleware.GetUserSpace(ctx)
	fileID, err := filestorage.Instance.UploadFieldFile(ctx.UserContext(), spaceID, id, fieldID,
		file.Filename, file.Header.Get("Content-Type"), buffer, file.Size)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(fileID))
}

// @Summary Download a field file
// @Tags Application
// @Description Download a stored FILE custom-field value
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"file ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/application/file/{id} [get]
func (c *applicationApiController) getFile(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	rec, body, err := filestorage.Instance.GetFile(ctx.UserContext(), spaceID, id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	contentType := rec.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ctx.Set(fiber.HeaderContentType, contentType)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+rec.FileName+`"`)
	return ctx.Status(fiber.StatusOK).Send(body)
}
