package controllers

import (
	"github.com/gofiber/fiber/v2"

	"compliance-backend/middlewares"
	"compliance-backend/services"
	"compliance-backend/utils"
)

type ComplianceController struct {
	compliance *services.ComplianceService
}

func NewComplianceController(compliance *services.ComplianceService) *ComplianceController {
	return &ComplianceController{compliance: compliance}
}

// Projects

func (ct *ComplianceController) CreateProject(c *fiber.Ctx) error {
	var in services.CreateProjectInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)
	project, err := ct.compliance.CreateProject(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

func (ct *ComplianceController) ListProjects(c *fiber.Ctx) error {
	skip := utils.ParseIntDefault(c.Query("skip"), 0)
	limit := utils.ParseIntDefault(c.Query("limit"), 100)
	projects, err := ct.compliance.ListProjects(c.UserContext(), skip, limit,
		utils.ParseUint(c.Query("client_id")), c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(projects)
}

func (ct *ComplianceController) GetProject(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	project, err := ct.compliance.GetProject(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(project)
}

func (ct *ComplianceController) UpdateProject(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in services.UpdateProjectInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)
	project, err := ct.compliance.UpdateProject(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(project)
}

func (ct *ComplianceController) DeleteProject(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := ct.compliance.DeleteProject(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Tasks

func (ct *ComplianceController) CreateTask(c *fiber.Ctx) error {
	var in services.CreateTaskInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)
	task, err := ct.compliance.CreateTask(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

func (ct *ComplianceController) ListTasks(c *fiber.Ctx) error {
	f := services.TaskFilter{
		Skip:       utils.ParseIntDefault(c.Query("skip"), 0),
		Limit:      utils.ParseIntDefault(c.Query("limit"), 100),
		ProjectID:  utils.ParseUint(c.Query("project_id")),
		AssignedTo: utils.ParseUint(c.Query("assigned_to")),
		Status:     c.Query("status"),
	}
	tasks, err := ct.compliance.ListTasks(c.UserContext(), f)
	if err != nil {
		return err
	}
	return c.JSON(tasks)
}

func (ct *ComplianceController) GetTask(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	task, err := ct.compliance.GetTask(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(task)
}

func (ct *ComplianceController) UpdateTask(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in services.UpdateTaskInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)
	task, err := ct.compliance.UpdateTask(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(task)
}

func (ct *ComplianceController) DeleteTask(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := ct.compliance.DeleteTask(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Compliance records

func (ct *ComplianceController) CreateCompliance(c *fiber.Ctx) error {
	var in services.CreateComplianceInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)
	record, err := ct.compliance.CreateCompliance(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (ct *ComplianceController) ListCompliances(c *fiber.Ctx) error {
	skip := utils.ParseIntDefault(c.Query("skip"), 0)
	limit := utils.ParseIntDefault(c.Query("limit"), 100)
	records, err := ct.compliance.ListCompliances(c.UserContext(), skip, limit,
		utils.ParseUint(c.Query("client_id")), c.Query("type"), c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(records)
}

func (ct *ComplianceController) GetCompliance(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	record, err := ct.compliance.GetCompliance(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

func (ct *ComplianceController) UpdateCompliance(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in services.UpdateComplianceInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)
	record, err := ct.compliance.UpdateCompliance(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

func (ct *ComplianceController) DeleteCompliance(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := ct.compliance.DeleteCompliance(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GST returns

func (ct *ComplianceController) CreateGSTReturn(c *fiber.Ctx) error {
	var in services.CreateGSTReturnInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)
	ret, err := ct.compliance.CreateGSTReturn(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(ret)
}

func (ct *ComplianceController) ListGSTReturns(c *fiber.Ctx) error {
	skip := utils.ParseIntDefault(c.Query("skip"), 0)
	limit := utils.ParseIntDefault(c.Query("limit"), 100)
	rets, err := ct.compliance.ListGSTReturns(c.UserContext(), skip, limit,
		utils.ParseUint(c.Query("client_id")), c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(rets)
}

func (ct *ComplianceController) UpdateGSTReturn(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in services.UpdateGSTReturnInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)
	ret, err := ct.compliance.UpdateGSTReturn(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(ret)
}

func (ct *ComplianceController) DeleteGSTReturn(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := ct.compliance.DeleteGSTReturn(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TDS returns

func (ct *ComplianceController) CreateTDSReturn(c *fiber.Ctx) error {
	var in services.CreateTDSReturnInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)
	ret, err := ct.compliance.CreateTDSReturn(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(ret)
}

func (ct *ComplianceController) ListTDSReturns(c *fiber.Ctx) error {
	skip := utils.ParseIntDefault(c.Query("skip"), 0)
	limit := utils.ParseIntDefault(c.Query("limit"), 100)
	rets, err := ct.compliance.ListTDSReturns(c.UserContext(), skip, limit,
		utils.ParseUint(c.Query("client_id")), c.Query("quarter"))
	if err != nil {
		return err
	}
	return c.JSON(rets)
}

func (ct *ComplianceController) DeleteTDSReturn(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := ct.compliance.DeleteTDSReturn(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Time entries

func (ct *ComplianceController) CreateTimeEntry(c *fiber.Ctx) error {
	var in services.CreateTimeEntryInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)
	actor := middlewares.CurrentUser(c)
	entry, err := ct.compliance.CreateTimeEntry(c.UserContext(), actor.ID, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (ct *ComplianceController) ListTimeEntries(c *fiber.Ctx) error {
	f := services.TimeEntryFilter{
		Skip:      utils.ParseIntDefault(c.Query("skip"), 0),
		Limit:     utils.ParseIntDefault(c.Query("limit"), 100),
		UserID:    utils.ParseUint(c.Query("user_id")),
		ProjectID: utils.ParseUint(c.Query("project_id")),
		ClientID:  utils.ParseUint(c.Query("client_id")),
	}
	entries, err := ct.compliance.ListTimeEntries(c.UserContext(), f)
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

func (ct *ComplianceController) DeleteTimeEntry(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := ct.compliance.DeleteTimeEntry(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
