package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"recruit-flow-backend/controllers"
	"recruit-flow-backend/lib/authz"
	"recruit-flow-backend/middleware"
	apimodels "recruit-flow-backend/models/api"
)

type assignmentApiController struct {
	controllers.BaseAPIController
}

func InitAssignmentApiRouters(app *fiber.App) {
	controller := assignmentApiController{}
	app.Route("assignment", func(router fiber.Router) {
		router.Post("", controller.assign)
		router.Delete(":id", controller.revoke)
	})
}

// @Summary Assign a user to a stage
// @Tags Assignment
// @Description Allow a user to act on applications in a stage
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	user_id	query	string	true	"user ID"
// @Param	stage_id	query	string	true	"stage ID"
// @Param	position_id	query	string	false	"job position scope, empty means all positions"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/assignment [post]
func (c *assignmentApiController) assign(ctx *fiber.Ctx) error {
	userID := ctx.Query("user_id", "")
	stageID := ctx.Query("stage_id", "")
	if userID == "" || stageID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("user id and stage id are required"))
	}
	positionID := ctx.Query("position_id", "")
	spaceID := middleware.GetUserSpace(ctx)
	id, err := authz.Instance.Assign(spaceID, userID, stageID, positionID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Revoke a stage assignment
// @Tags Assignment
// @Description Revoke a user's stage assignment
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"assignment ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/assignment/{id} [delete]
func (c *assignmentApiController) revoke(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	if err = authz.Instance.Revoke(spaceID, id); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
