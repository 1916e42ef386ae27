package dish

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetAll(c *gin.Context) {
	menuID, submenuID, ok := parentIDs(c)
	if !ok {
		return
	}

	dishes, err := h.service.GetAll(c.Request.Context(), menuID, submenuID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dishes)
}

func (h *Handler) GetByID(c *gin.Context) {
	menuID, submenuID, dishID, ok := pathIDs(c)
	if !ok {
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), menuID, submenuID, dishID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) Add(c *gin.Context) {
	menuID, submenuID, ok := parentIDs(c)
	if !ok {
		return
	}

	req, ok := bindDish(c)
	if !ok {
		return
	}

	d, err := h.service.Add(c.Request.Context(), menuID, submenuID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) Update(c *gin.Context) {
	menuID, submenuID, dishID, ok := pathIDs(c)
	if !ok {
		return
	}

	req, ok := bindDish(c)
	if !ok {
		return
	}

	d, err := h.service.Update(c.Request.Context(), menuID, submenuID, dishID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) Delete(c *gin.Context) {
	menuID, submenuID, dishID, ok := pathIDs(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), menuID, submenuID, dishID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "The dish has been deleted",
	})
}

// bindDish validates the body and normalizes the price to two decimal
// places before it reaches the service.
func bindDish(c *gin.Context) (CreateDish, bool) {
	var req CreateDish
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
		return req, false
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid price"})
		return req, false
	}
	req.Price = price.Round(2).StringFixed(2)

	return req, true
}

func parentIDs(c *gin.Context) (menuID, submenuID uuid.UUID, ok bool) {
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

func pathIDs(c *gin.Context) (menuID, submenuID, dishID uuid.UUID, ok bool) {
	menuID, submenuID, ok = parentIDs(c)
	if !ok {
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	dishID, err := uuid.Parse(c.Param("dish_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid dish id"})
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	return menuID, submenuID, dishID, true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrSubmenuNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	case errors.Is(err, ErrTitleTaken):
		c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	}
}
