package project

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/bidentry/internal/dto"
	"github.com/Additional-Code/bidentry/internal/entity"
	"github.com/Additional-Code/bidentry/internal/presentation/http/response"
	service "github.com/Additional-Code/bidentry/internal/service/project"
	"github.com/Additional-Code/bidentry/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/bidentry/transport/http/project")

// Handler exposes project endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a project Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/projects")
	g.GET("", h.list)
	g.GET("/:id", h.getByID)
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "projects.list")
	defer span.End()

	projects, err := h.svc.List(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}

	out := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, toDTO(&projects[i]))
	}
	return b.WithList(out, len(out)).Build()
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithDetail("id", c.Param("id")))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "projects.getByID", trace.WithAttributes(attribute.Int64("project.id", id)))
	defer span.End()

	project, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(toDTO(project)).Build()
}

func toDTO(project *entity.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:        project.ID,
		Name:      project.Name,
		CreatedAt: project.CreatedAt,
		UpdatedAt: project.UpdatedAt,
	}
}
