package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"recruit-flow-backend/controllers"
	xlsexport "recruit-flow-backend/lib/export/xls"
	taskhandler "recruit-flow-backend/lib/task"
	"recruit-flow-backend/middleware"
	"recruit-flow-backend/models"
	apimodels "recruit-flow-backend/models/api"
	taskapimodels "recruit-flow-backend/models/api/task"
)

type taskApiController struct {
	controllers.BaseAPIController
}

func InitTaskApiRouters(app *fiber.App) {
	controller := taskApiController{}
	app.Route("task", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("export", controller.export)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Put("claim", controller.claim)
			idRouter.Put("unclaim", controller.unclaim)
			idRouter.Put("complete", controller.complete)
			idRouter.Put("block", controller.block)
		})
	})
}

// @Summary Task list
// @Tags Task
// @Description List open tasks ordered by priority score
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body	body	taskapimodels.TaskFilter	true	"request"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/task/list [post]
func (c *taskApiController) list(ctx *fiber.Ctx) error {
	body := taskapimodels.TaskFilter{}
	if err := c.BodyParser(ctx, &body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	list, err := taskhandler.Instance.List(spaceID, userID, body)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Export tasks
// @Tags Task
// @Description Export the task list as an xlsx file
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body	body	taskapimodels.TaskFilter	true	"request"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/task/export [post]
func (c *taskApiController) export(ctx *fiber.Ctx) error {
	body := taskapimodels.TaskFilter{}
	if err := c.BodyParser(ctx, &body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	list, err := taskhandler.Instance.List(spaceID, userID, body)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	buf, err := xlsexport.Instance.ExportTaskList(list)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="tasks.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Claim a task
// @Tags Task
// @Description Claim a pending task, claim is exclusive
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"application ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/task/{id}/claim [put]
func (c *taskApiController) claim(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	if err = taskhandler.Instance.Claim(spaceID, id, userID); err != nil {
		return c.sendTaskError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Release a task
// @Tags Task
// @Description Release a claimed task back to the queue
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"application ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/task/{id}/unclaim [put]
func (c *taskApiController) unclaim(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	adminOverride := middleware.GetSpaceRole(ctx) == models.UserRoleSpaceAdmin
	if err = taskhandler.Instance.Unclaim(spaceID, id, userID, adminOverride); err != nil {
		return c.sendTaskError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Complete a task
// @Tags Task
// @Description Mark a claimed task as completed
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"application ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/task/{id}/complete [put]
func (c *taskApiController) complete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	if err = taskhandler.Instance.Complete(spaceID, id, userID); err != nil {
		return c.sendTaskError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Block a task
// @Tags Task
// @Description Mark a claimed task as blocked
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"application ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/task/{id}/block [put]
func (c *taskApiController) block(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	if err = taskhandler.Instance.Block(spaceID, id, userID); err != nil {
		return c.sendTaskError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func (c *taskApiController) sendTaskError(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, models.ErrAlreadyClaimed) || errors.Is(err, models.ErrNotClaimed) {
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
	}
	if invalid, ok := models.AsInvalidTransition(err); ok {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewResponse(invalid))
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
}
