package api

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/meikuraledutech/graphnav"
)

type handler struct {
	store  graphnav.Reader
	engine *graphnav.Engine
}

// connectedResponse is a reachability result plus the time spent serving it.
type connectedResponse struct {
	*graphnav.Reachability
	ExecutionTimeMS float64 `json:"execution_time_ms"`
}

type lookupFunc func(c fiber.Ctx) (*graphnav.Node, error)

type reachFunc func(ctx context.Context, originID int64) (*graphnav.Reachability, error)

func (h *handler) health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy", "service": "graph-navigator"})
}

func (h *handler) listNodes(c fiber.Ctx) error {
	nodes, err := h.store.ListNodes(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(nodes)
}

func (h *handler) renderGraph(c fiber.Ctx) error {
	out, err := h.engine.RenderGraph(c.Context())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(out)
}

func (h *handler) nodeByID(c fiber.Ctx) error {
	n, err := h.lookupID(c)
	if err != nil {
		return err
	}
	return c.JSON(n)
}

func (h *handler) nodeByName(c fiber.Ctx) error {
	n, err := h.lookupName(c)
	if err != nil {
		return err
	}
	return c.JSON(n)
}

// connected checks the origin exists before running reach on it.
func (h *handler) connected(lookup lookupFunc, reach reachFunc) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		n, err := lookup(c)
		if err != nil {
			return err
		}
		r, err := reach(c.Context(), n.ID)
		if err != nil {
			return err
		}
		return c.JSON(connectedResponse{
			Reachability:    r,
			ExecutionTimeMS: elapsedMS(start),
		})
	}
}

func (h *handler) lookupID(c fiber.Ctx) (*graphnav.Node, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, fmt.Sprintf("invalid node id %q", raw))
	}
	n, err := h.store.GetNode(c.Context(), id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("node with id %d not found", id))
	}
	return n, nil
}

func (h *handler) lookupName(c fiber.Ctx) (*graphnav.Node, error) {
	name := c.Params("name")
	n, err := h.store.GetNodeByName(c.Context(), name)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("node with name %q not found", name))
	}
	return n, nil
}

// elapsedMS is the time since start in milliseconds, rounded to 2 decimals.
func elapsedMS(start time.Time) float64 {
	ms := float64(time.Since(start)) / float64(time.Millisecond)
	return math.Round(ms*100) / 100
}
