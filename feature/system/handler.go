package system

import (
	"site-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for system checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes registers the routes served without authentication.
func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/system/health", h.HandleHealth)
}

// RegisterRoutes registers the protected system routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/system")
	group.Get("/structure", h.HandleStructureCheck)
	group.Get("/schema", h.HandleSchemaCheck)
}

// HandleHealth reports dependency health.
// @Summary Health
// @Tags system
// @Produce json
// @Success 200 {object} HealthReport "Healthy"
// @Failure 503 {object} HealthReport "Degraded"
// @Router /system/health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	report := h.service.Health(c.UserContext())
	if report.Status != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}

// HandleStructureCheck checks and optionally fixes the bucket structure.
// @Summary Check Structure
// @Description Checks that the required folders exist in the storage bucket. Optionally creates missing folders.
// @Tags system
// @Produce json
// @Param fix query boolean false "Fix missing folders"
// @Success 200 {object} map[string]interface{} "Structure Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /system/structure [get]
func (h *Handler) HandleStructureCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.QueryBool("fix", false)

	missing, err := h.service.CheckStructure(c.UserContext())
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "structure check failed"})
	}

	if len(missing) > 0 {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))

		if fix {
			if err := h.service.FixStructure(c.UserContext(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "failed to fix structure",
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleSchemaCheck compares the live schema with the models.
// @Summary Check Schema
// @Tags system
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /system/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "schema check failed"})
	}

	return c.JSON(report)
}
