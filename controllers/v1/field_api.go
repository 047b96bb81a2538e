package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"recruit-flow-backend/controllers"
	fieldcatalog "recruit-flow-backend/lib/field-catalog"
	fieldproperties "recruit-flow-backend/lib/field-properties"
	"recruit-flow-backend/middleware"
	"recruit-flow-backend/models"
	apimodels "recruit-flow-backend/models/api"
	fieldapimodels "recruit-flow-backend/models/api/field"
)

type fieldApiController struct {
	controllers.BaseAPIController
}

func InitFieldApiRouters(app *fiber.App) {
	controller := fieldApiController{}
	app.Route("field", func(router fiber.Router) {
		router.Get("list", controller.list)
		router.Post("", controller.create)
		router.Put("order", controller.reorder)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Put("", controller.update)
			idRouter.Delete("", controller.delete)
		})
	})
	app.Route("stage/:id/field-properties", func(router fiber.Router) {
		router.Get(":field_id", controller.resolveProperties)
		router.Put("", controller.setProperties)
		router.Post("visible", controller.visibleFields)
	})
}

// @Summary Define a custom field
// @Tags Field catalog
// @Description Define a custom field for an entity
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body	body	fieldapimodels.FieldData	true	"request"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/field [post]
func (c *fieldApiController) create(ctx *fiber.Ctx) error {
	body := fieldapimodels.FieldData{}
	if err := c.BodyParser(ctx, &body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := body.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	id, err := fieldcatalog.Instance.DefineField(spaceID, body)
	if err != nil {
		if models.IsConfigurationError(err) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary List fields
// @Tags Field catalog
// @Description List custom fields of an entity in catalog order
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	kind	query	string	true	"entity kind"
// @Param	entity_id	query	string	true	"entity id"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/field/list [get]
func (c *fieldApiController) list(ctx *fiber.Ctx) error {
	entity := models.EntityRef{
		Kind: models.EntityKind(ctx.Query("kind", "")),
		ID:   ctx.Query("entity_id", ""),
	}
	if !entity.Kind.IsValid() {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("unknown entity kind"))
	}
	spaceID := middleware.GetUserSpace(ctx)
	list, err := fieldcatalog.Instance.ListFields(spaceID, entity)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Update a field
// @Tags Field catalog
// @Description Update field name and configuration, key and type are immutable
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"rec ID"
// @Param	body	body	fieldapimodels.FieldUpdateData	true	"request"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/field/{id} [put]
func (c *fieldApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body := fieldapimodels.FieldUpdateData{}
	if err = c.BodyParser(ctx, &body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	if err = fieldcatalog.Instance.UpdateField(spaceID, id, body); err != nil {
		if models.IsConfigurationError(err) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Reorder a field
// @Tags Field catalog
// @Description Move a field to a new catalog position
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body	body	fieldapimodels.FieldOrderData	true	"request"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/field/order [put]
func (c *fieldApiController) reorder(ctx *fiber.Ctx) error {
	body := fieldapimodels.FieldOrderData{}
	if err := c.BodyParser(ctx, &body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	hMsg, err := fieldcatalog.Instance.ReorderField(spaceID, body)
	if err != nil {
		return c.SendError(ctx, err, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Delete a field
// @Tags Field catalog
// @Description Delete a field with its rules and stage property entries
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/field/{id} [delete]
func (c *fieldApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	if err = fieldcatalog.Instance.DeleteField(spaceID, id); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Resolve field properties
// @Tags Field properties
// @Description Resolve effective properties of a field on a stage
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"stage ID"
// @Param   field_id	path	string	true	"field ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/stage/{id}/field-properties/{field_id} [get]
func (c *fieldApiController) resolveProperties(ctx *fiber.Ctx) error {
	stageID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fieldID := ctx.Params("field_id")
	if fieldID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("field id is not specified"))
	}
	spaceID := middleware.GetUserSpace(ctx)
	view, err := fieldproperties.Instance.ResolveProperties(spaceID, stageID, fieldID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Set field properties
// @Tags Field properties
// @Description Set per-stage properties of a field
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"stage ID"
// @Param	body	body	fieldapimodels.PropertiesData	true	"request"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/stage/{id}/field-properties [put]
func (c *fieldApiController) setProperties(ctx *fiber.Ctx) error {
	stageID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body := fieldapimodels.PropertiesData{}
	if err = c.BodyParser(ctx, &body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = body.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	if err = fieldproperties.Instance.SetProperties(spaceID, stageID, body); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary List visible fields
// @Tags Field properties
// @Description List field ids visible on a stage for an audience
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"stage ID"
// @Param	body	body	fieldapimodels.VisibleFieldsRequest	true	"request"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/stage/{id}/field-properties/visible [post]
func (c *fieldApiController) visibleFields(ctx *fiber.Ctx) error {
	stageID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body := fieldapimodels.VisibleFieldsRequest{}
	if err = c.BodyParser(ctx, &body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = body.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	list, err := fieldproperties.Instance.ResolveVisibleFields(spaceID, stageID, body.Audience)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
