package controllers

import (
	"github.com/gofiber/fiber/v2"

	"compliance-backend/middlewares"
	"compliance-backend/services"
	"compliance-backend/utils"
)

type ClientController struct {
	clients *services.ClientService
}

func NewClientController(clients *services.ClientService) *ClientController {
	return &ClientController{clients: clients}
}

func (ct *ClientController) Create(c *fiber.Ctx) error {
	var in services.CreateClientInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)
	client, err := ct.clients.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

func (ct *ClientController) List(c *fiber.Ctx) error {
	skip := utils.ParseIntDefault(c.Query("skip"), 0)
	limit := utils.ParseIntDefault(c.Query("limit"), 100)
	clients, err := ct.clients.List(c.UserContext(), skip, limit, c.Query("search"))
	if err != nil {
		return err
	}
	return c.JSON(clients)
}

func (ct *ClientController) Get(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	client, err := ct.clients.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(client)
}

func (ct *ClientController) Update(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in services.UpdateClientInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)
	client, err := ct.clients.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(client)
}

func (ct *ClientController) Delete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := ct.clients.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (ct *ClientController) Projects(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	projects, err := ct.clients.Projects(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(projects)
}

func (ct *ClientController) Invoices(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	invoices, err := ct.clients.Invoices(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(invoices)
}
