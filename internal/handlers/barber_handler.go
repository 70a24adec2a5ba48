package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/estilobarber/reservas-api/internal/httperr"
	"github.com/estilobarber/reservas-api/internal/httpresp"
	"github.com/estilobarber/reservas-api/internal/infra/cache"
	"github.com/estilobarber/reservas-api/internal/infra/storage"
	"github.com/estilobarber/reservas-api/internal/middleware"
	"github.com/estilobarber/reservas-api/internal/models"
)

// BarberHandler agrupa la autogestión del barbero: foto de perfil,
// estado de disponibilidad y horario de trabajo.
type BarberHandler struct {
	db      *gorm.DB
	avatars *storage.AvatarStore
	cache   *cache.Catalog
}

func NewBarberHandler(db *gorm.DB, avatars *storage.AvatarStore, catalog *cache.Catalog) *BarberHandler {
	return &BarberHandler{db: db, avatars: avatars, cache: catalog}
}

// --------------------------------------------------
// Avatar
// --------------------------------------------------

func (h *BarberHandler) UploadAvatar(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	file, _, err := c.Request.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "missing_avatar", "Falta el archivo de imagen.")
		return
	}
	defer file.Close()

	url, err := h.avatars.Upload(c.Request.Context(), barberID, file)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_avatar", "Error al subir la imagen.")
		return
	}

	if err := h.db.Model(&models.Profile{}).
		Where("id = ?", barberID).
		Update("avatar_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_save_avatar", "Error al guardar la imagen.")
		return
	}

	h.cache.InvalidateBarbers(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

// --------------------------------------------------
// Availability status
// --------------------------------------------------

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available unavailable"`
}

func (h *BarberHandler) UpdateStatus(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if err := h.db.Model(&models.Profile{}).
		Where("id = ?", barberID).
		Update("barber_status", req.Status).Error; err != nil {
		httperr.Internal(c, "failed_to_update_status", "Error al actualizar el estado.")
		return
	}

	// Un barbero que se deshabilita no debe seguir apareciendo en
	// el paso 2 del asistente.
	h.cache.InvalidateBarbers(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"barber_status": req.Status})
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

type workingHoursItem struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
	Active     bool   `json:"active"`
}

func (h *BarberHandler) GetWorkingHours(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	var hours []models.WorkingHours
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		httperr.Internal(c, "failed_to_list_working_hours", "Error al cargar el horario.")
		return
	}

	httpresp.List(c, hours)
}

func (h *BarberHandler) UpdateWorkingHours(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	var req []workingHoursItem
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barberID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		for _, item := range req {
			wh := models.WorkingHours{
				BarberID:   barberID,
				Weekday:    item.Weekday,
				StartTime:  item.StartTime,
				EndTime:    item.EndTime,
				LunchStart: item.LunchStart,
				LunchEnd:   item.LunchEnd,
				Active:     item.Active,
			}
			if err := tx.Create(&wh).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_working_hours", "Error al guardar el horario.")
		return
	}

	c.Status(http.StatusNoContent)
}
