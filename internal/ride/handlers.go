package ride

import (
	"errors"
	"strconv"

	"github.com/brospi/gpx-bike-simulator/internal/sim"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/", func(c *fiber.Ctx) error {
		var req runRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.RouteID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "route_id required")
		}
		if err := req.Params.Validate(); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		ride, err := svc.Run(c.Context(), req.RouteID, req.Params)
		if err != nil {
			if errors.Is(err, sim.ErrInsufficientData) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(ride)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		ride, err := svc.GetRide(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "ride not found")
		}
		return c.JSON(ride)
	})

	r.Get("/:id/points", func(c *fiber.Ctx) error {
		points, err := svc.Points(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "ride not found")
		}
		return c.JSON(points)
	})

	r.Get("/:id/stats", func(c *fiber.Ctx) error {
		start, err := parseIndex(c.Query("start"), 0)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid start index")
		}
		// -1 means "last point", resolved once the sequence is loaded.
		end, err := parseIndex(c.Query("end"), -1)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid end index")
		}

		stats, err := svc.RangeStats(c.Context(), c.Params("id"), start, end)
		if err != nil {
			if errors.Is(err, sim.ErrInvalidRange) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusNotFound, "ride not found")
		}
		return c.JSON(stats)
	})
}

func parseIndex(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
