package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/estilobarber/reservas-api/internal/domain/reservation"
	"github.com/estilobarber/reservas-api/internal/httperr"
	"github.com/estilobarber/reservas-api/internal/httpresp"
	"github.com/estilobarber/reservas-api/internal/infra/cache"
	"github.com/estilobarber/reservas-api/internal/models"
	uc "github.com/estilobarber/reservas-api/internal/usecase/reservation"
)

// CatalogHandler expone el catálogo de servicios y los barberos
// disponibles, las dos proyecciones de solo lectura que consumen
// los pasos 1 y 2 del asistente.
type CatalogHandler struct {
	repo    domain.Repository
	cache   *cache.Catalog
	barbers *uc.ListAvailableBarbers
}

func NewCatalogHandler(
	repo domain.Repository,
	catalog *cache.Catalog,
	barbers *uc.ListAvailableBarbers,
) *CatalogHandler {
	return &CatalogHandler{
		repo:    repo,
		cache:   catalog,
		barbers: barbers,
	}
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	ctx := c.Request.Context()

	if services, ok := h.cache.GetServices(ctx); ok {
		httpresp.List(c, services)
		return
	}

	services, err := h.repo.ListActiveServices(ctx)
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Error al cargar los servicios.")
		return
	}

	h.cache.SetServices(ctx, services)
	httpresp.List(c, services)
}

func (h *CatalogHandler) GetService(c *gin.Context) {
	svc, err := h.repo.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
		return
	}

	// el icono viaja validado; una clave desconocida en la base es
	// un error de datos, no un fallback silencioso
	if _, err := domain.ParseIconKind(svc.Icon); err != nil {
		httperr.Internal(c, "invalid_service_icon", "Icono de servicio inválido.")
		return
	}

	httpresp.OK(c, svc)
}

func (h *CatalogHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.barbers.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Error al cargar los barberos.")
		return
	}

	views := make([]gin.H, 0, len(barbers))
	for i := range barbers {
		views = append(views, barberView(&barbers[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  views,
		"total": len(views),
	})
}

func barberView(p *models.Profile) gin.H {
	return gin.H{
		"id":               p.ID,
		"full_name":        p.FullName,
		"avatar_url":       p.AvatarURL,
		"experience_years": p.ExperienceYears,
		"work_shift":       p.WorkShift,
		"barber_status":    p.BarberStatus,
	}
}
