package submenu

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetAll(c *gin.Context) {
	menuID, err := uuid.Parse(c.Param("menu_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid menu id"})
		return
	}

	submenus, err := h.service.GetAll(c.Request.Context(), menuID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submenus)
}

func (h *Handler) GetByID(c *gin.Context) {
	menuID, submenuID, ok := pathIDs(c)
	if !ok {
		return
	}

	sub, err := h.service.GetByID(c.Request.Context(), menuID, submenuID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *Handler) Add(c *gin.Context) {
	menuID, err := uuid.Parse(c.Param("menu_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid menu id"})
		return
	}

	var req CreateSubmenu
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
		return
	}

	sub, err := h.service.Add(c.Request.Context(), menuID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *Handler) Update(c *gin.Context) {
	menuID, submenuID, ok := pathIDs(c)
	if !ok {
		return
	}

	var req CreateSubmenu
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
		return
	}

	sub, err := h.service.Update(c.Request.Context(), menuID, submenuID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *Handler) Delete(c *gin.Context) {
	menuID, submenuID, ok := pathIDs(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), menuID, submenuID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "The submenu has been deleted",
	})
}

func pathIDs(c *gin.Context) (menuID, submenuID uuid.UUID, ok bool) {
	menuID, err := uuid.Parse(c.Param("menu_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid menu id"})
		return uuid.Nil, uuid.Nil, false
	}
	submenuID, err = uuid.Parse(c.Param("submenu_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid submenu id"})
		return uuid.Nil, uuid.Nil, false
	}
	return menuID, submenuID, true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrMenuNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	case errors.Is(err, ErrTitleTaken):
		c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	}
}
