package games

import (
	"errors"

	"site-manager/core/logger"
	"site-manager/core/middleware/auth"
	"site-manager/core/steam"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the game library.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the games routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/games")
	group.Post("/steam/sync", h.HandleSteamSync)
	group.Post("/", h.HandleAddGame)
	group.Get("/", h.HandleListGames)
	group.Get("/:id", h.HandleGetGame)
}

type syncRequest struct {
	SteamID string `json:"steam_id"`
}

type syncResponse struct {
	Success bool `json:"success"`
	*SyncResult
}

// HandleSteamSync imports the caller's remote library.
// @Summary Sync Steam Library
// @Description Resolves the given handle, fetches its owned games and reconciles them into the library.
// @Tags games
// @Accept json
// @Produce json
// @Param body body syncRequest true "Steam handle, 17-digit id or profile URL"
// @Success 200 {object} syncResponse "Sync Result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Profile Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /games/steam/sync [post]
func (h *Handler) HandleSteamSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	userID := auth.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req syncRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.service.SyncSteam(c.UserContext(), userID, req.SteamID)
	if err != nil {
		status, msg := errorStatus(err, "failed to sync steam library")
		if status >= fiber.StatusInternalServerError {
			l.Error("Steam sync failed", zap.String("user_id", userID), zap.Error(err))
		} else {
			l.Info("Steam sync rejected", zap.String("user_id", userID), zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.JSON(syncResponse{Success: true, SyncResult: result})
}

// HandleAddGame registers a local title.
// @Summary Add Game
// @Description Adds a local game, optionally enriched from the store when a catalog id or URL is given.
// @Tags games
// @Accept json
// @Produce json
// @Param body body ManualGameInput true "Game"
// @Success 201 {object} models.Game "Created Game"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Duplicate"
// @Router /games [post]
func (h *Handler) HandleAddGame(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	userID := auth.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var in ManualGameInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	game, err := h.service.AddManualGame(c.UserContext(), userID, in)
	if err != nil {
		status, msg := errorStatus(err, "failed to add game")
		if status >= fiber.StatusInternalServerError {
			l.Error("Add game failed", zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.Status(fiber.StatusCreated).JSON(game)
}

// HandleListGames lists the caller's library.
// @Summary List Games
// @Tags games
// @Produce json
// @Param platform query string false "steam or local"
// @Param page query int false "Page, from 1"
// @Param limit query int false "Page size, max 100"
// @Success 200 {object} Page "Games"
// @Router /games [get]
func (h *Handler) HandleListGames(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	userID := auth.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	page, err := h.service.ListGames(c.UserContext(), userID, c.Query("platform"), c.QueryInt("page", 1), c.QueryInt("limit", defaultPageLimit))
	if err != nil {
		status, msg := errorStatus(err, "failed to list games")
		if status >= fiber.StatusInternalServerError {
			l.Error("List games failed", zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.JSON(page)
}

// HandleGetGame returns one game with its sessions.
// @Summary Get Game
// @Tags games
// @Produce json
// @Param id path string true "Game ID"
// @Success 200 {object} models.Game "Game"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /games/{id} [get]
func (h *Handler) HandleGetGame(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	userID := auth.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	game, err := h.service.GetGame(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		status, msg := errorStatus(err, "failed to load game")
		if status >= fiber.StatusInternalServerError {
			l.Error("Get game failed", zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.JSON(game)
}

// errorStatus maps service errors to a status and a client-safe message.
func errorStatus(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, steam.ErrNotFound):
		return fiber.StatusNotFound, "steam profile not found"
	case errors.Is(err, ErrGameNotFound):
		return fiber.StatusNotFound, "game not found"
	case errors.Is(err, ErrDuplicateGame):
		return fiber.StatusConflict, "game already exists"
	case errors.Is(err, ErrNotConfigured):
		return fiber.StatusInternalServerError, ErrNotConfigured.Error()
	default:
		return fiber.StatusInternalServerError, fallback
	}
}
