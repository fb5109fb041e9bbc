package proposal

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/bidentry/internal/dto"
	"github.com/Additional-Code/bidentry/internal/entity"
	"github.com/Additional-Code/bidentry/internal/presentation/http/response"
	service "github.com/Additional-Code/bidentry/internal/service/proposal"
	"github.com/Additional-Code/bidentry/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/bidentry/transport/http/proposal")

// Handler exposes proposal endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a proposal Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/proposals")
	g.GET("", h.list)
	g.GET("/:id", h.getByID)
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "proposals.list")
	defer span.End()

	proposals, err := h.svc.List(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}

	out := make([]dto.ProposalResponse, 0, len(proposals))
	for i := range proposals {
		out = append(out, toDTO(&proposals[i]))
	}
	return b.WithList(out, len(out)).Build()
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithDetail("id", c.Param("id")))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "proposals.getByID", trace.WithAttributes(attribute.Int64("proposal.id", id)))
	defer span.End()

	proposal, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(toDTO(proposal)).Build()
}

func toDTO(p *entity.Proposal) dto.ProposalResponse {
	return dto.ProposalResponse{
		ID:           p.ID,
		CompanyName:  p.CompanyName,
		ContactName:  p.ContactName,
		Address:      p.Address,
		City:         p.City,
		State:        p.State,
		Zip:          p.Zip,
		EmailAddress: p.EmailAddress,
		PhoneNumber:  p.PhoneNumber,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
