package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"recruit-flow-backend/controllers"
	workflowhandler "recruit-flow-backend/lib/workflow"
	"recruit-flow-backend/middleware"
	"recruit-flow-backend/models"
	apimodels "recruit-flow-backend/models/api"
	workflowapimodels "recruit-flow-backend/models/api/workflow"
)

type workflowApiController struct {
	controllers.BaseAPIController
}

func InitWorkflowApiRouters(app *fiber.App) {
	controller := workflowApiController{}
	app.Route("workflow", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Put("", controller.update)
			idRouter.Put("status", controller.setStatus)
			idRouter.Delete("", controller.delete)
			idRouter.Route("stage", func(stageRouter fiber.Router) {
				stageRouter.Get("list", controller.stageList)
				stageRouter.Post("", controller.stageCreate)
				stageRouter.Put("order", controller.stageChangeOrder)
				stageRouter.Put(":stage_id", controller.stageUpdate)
				stageRouter.Put(":stage_id/active", controller.stageSetActive)
				stageRouter.Delete(":stage_id", controller.stageDelete)
			})
		})
	})
}

// @Summary Create a workflow
// @Tags Workflow
// @Description Create a stage workflow
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body	body	workflowapimodels.WorkflowData	true	"request"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow [post]
func (c *workflowApiController) create(ctx *fiber.Ctx) error {
	body := workflowapimodels.WorkflowData{}
	if err := c.BodyParser(ctx, &body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := body.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	id, hMsg, err := workflowhandler.Instance.Create(spaceID, body)
	if err != nil {
		return c.SendError(ctx, err, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary List workflows
// @Tags Workflow
// @Description List workflows by type
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	workflow_type	query	string	false	"workflow type (CA/PO/CO)"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/list [post]
func (c *workflowApiController) list(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	workflowType := models.WorkflowType(ctx.Query("workflow_type", string(models.WorkflowTypeCandidate)))
	if !workflowType.IsValid() {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("unknown workflow type"))
	}
	list, err := workflowhandler.Instance.List(spaceID, workflowType)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Get a workflow
// @Tags Workflow
// @Description Get a workflow with its stage-set
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/{id} [get]
func (c *workflowApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	view, err := workflowhandler.Instance.GetByID(spaceID, id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Update a workflow
// @Tags Workflow
// @Description Update workflow attributes
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"rec ID"
// @Param	body	body	workflowapimodels.WorkflowData	true	"request"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/{id} [put]
func (c *workflowApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body := workflowapimodels.WorkflowData{}
	if err = c.BodyParser(ctx, &body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = body.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	hMsg, err := workflowhandler.Instance.Update(spaceID, id, body)
	if err != nil {
		return c.SendError(ctx, err, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Change workflow status
// @Tags Workflow
// @Description Activate, deactivate or archive a workflow. Activation
// @Description verifies the stage-set invariants.
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"rec ID"
// @Param	status	query	string	true	"new status"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/{id}/status [put]
func (c *workflowApiController) setStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	status := models.WorkflowStatus(ctx.Query("status", ""))
	if !status.IsValid() {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("unknown workflow status"))
	}
	spaceID := middleware.GetUserSpace(ctx)
	hMsg, err := workflowhandler.Instance.SetStatus(spaceID, id, status)
	if err != nil {
		return c.SendError(ctx, err, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Delete a workflow
// @Tags Workflow
// @Description Delete an inactive workflow
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/{id} [delete]
func (c *workflowApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	if err = workflowhandler.Instance.Delete(spaceID, id); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Add a stage
// @Tags Workflow
// @Description Add a stage to the workflow stage-set
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"workflow ID"
// @Param	body	body	workflowapimodels.StageData	true	"request"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/{id}/stage [post]
func (c *workflowApiController) stageCreate(ctx *fiber.Ctx) error {
	workflowID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body := workflowapimodels.StageData{}
	if err = c.BodyParser(ctx, &body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = body.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	id, hMsg, err := workflowhandler.Instance.StageCreate(spaceID, workflowID, body)
	if err != nil {
		return c.SendError(ctx, err, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary List stages
// @Tags Workflow
// @Description List workflow stages in order
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"workflow ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/{id}/stage/list [get]
func (c *workflowApiController) stageList(ctx *fiber.Ctx) error {
	workflowID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	list, err := workflowhandler.Instance.StageList(spaceID, workflowID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Update a stage
// @Tags Workflow
// @Description Update stage attributes
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"workflow ID"
// @Param   stage_id	path	string	true	"stage ID"
// @Param	body	body	workflowapimodels.StageData	true	"request"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/{id}/stage/{stage_id} [put]
func (c *workflowApiController) stageUpdate(ctx *fiber.Ctx) error {
	workflowID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	stageID := ctx.Params("stage_id")
	if stageID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("stage id is not specified"))
	}
	body := workflowapimodels.StageData{}
	if err = c.BodyParser(ctx, &body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = body.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	hMsg, err := workflowhandler.Instance.StageUpdate(spaceID, workflowID, stageID, body)
	if err != nil {
		return c.SendError(ctx, err, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Reorder stages
// @Tags Workflow
// @Description Move a stage to a new position, orders stay dense
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"workflow ID"
// @Param	body	body	workflowapimodels.StageOrderData	true	"request"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/{id}/stage/order [put]
func (c *workflowApiController) stageChangeOrder(ctx *fiber.Ctx) error {
	workflowID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body := workflowapimodels.StageOrderData{}
	if err = c.BodyParser(ctx, &body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	hMsg, err := workflowhandler.Instance.StageChangeOrder(spaceID, workflowID, body)
	if err != nil {
		return c.SendError(ctx, err, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Toggle stage activity
// @Tags Workflow
// @Description Enable or disable a stage for new entries
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"workflow ID"
// @Param   stage_id	path	string	true	"stage ID"
// @Param	is_active	query	bool	true	"new activity flag"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/{id}/stage/{stage_id}/active [put]
func (c *workflowApiController) stageSetActive(ctx *fiber.Ctx) error {
	workflowID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	stageID := ctx.Params("stage_id")
	if stageID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("stage id is not specified"))
	}
	isActive := ctx.QueryBool("is_active", true)
	spaceID := middleware.GetUserSpace(ctx)
	if err = workflowhandler.Instance.StageSetActive(spaceID, workflowID, stageID, isActive); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Delete a stage
// @Tags Workflow
// @Description Delete a stage from the stage-set
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"workflow ID"
// @Param   stage_id	path	string	true	"stage ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/{id}/stage/{stage_id} [delete]
func (c *workflowApiController) stageDelete(ctx *fiber.Ctx) error {
	workflowID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	stageID := ctx.Params("stage_id")
	if stageID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("stage id is not specified"))
	}
	spaceID := middleware.GetUserSpace(ctx)
	hMsg, err := workflowhandler.Instance.StageDelete(spaceID, workflowID, stageID)
	if err != nil {
		return c.SendError(ctx, err, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
