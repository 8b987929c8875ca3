package controllers

import (
	"github.com/gofiber/fiber/v2"

	"compliance-backend/middlewares"
	"compliance-backend/services"
	"compliance-backend/utils"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

func (ct *UserController) List(c *fiber.Ctx) error {
	skip := utils.ParseIntDefault(c.Query("skip"), 0)
	limit := utils.ParseIntDefault(c.Query("limit"), 100)
	users, err := ct.users.List(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (ct *UserController) Get(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	user, err := ct.users.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (ct *UserController) Update(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in services.UpdateUserInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	actor := middlewares.CurrentUser(c)
	user, err := ct.users.Update(c.UserContext(), id, in, actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (ct *UserController) Delete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	actor := middlewares.CurrentUser(c)
	if err := ct.users.Delete(c.UserContext(), id, actor.ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (ct *UserController) CreatePermission(c *fiber.Ctx) error {
	var in services.CreatePermissionInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)
	perm, err := ct.users.CreatePermission(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(perm)
}

func (ct *UserController) ListPermissions(c *fiber.Ctx) error {
	perms, err := ct.users.ListPermissions(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(perms)
}

func (ct *UserController) CreateRolePermission(c *fiber.Ctx) error {
	var in services.CreateRolePermissionInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	rp, err := ct.users.CreateRolePermission(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(rp)
}

func (ct *UserController) ListRolePermissions(c *fiber.Ctx) error {
	rps, err := ct.users.ListRolePermissions(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(rps)
}
