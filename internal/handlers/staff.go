package handlers

import (
	"net/http"

	"it-inventory/internal/services"

	"github.com/gin-gonic/gin"
)

type StaffHandler struct {
	staff *services.StaffService
}

func NewStaffHandler(staff *services.StaffService) *StaffHandler {
	return &StaffHandler{staff: staff}
}

type listStaffQuery struct {
	OrderBy string `form:"orderBy"`
	Page    int    `form:"page" binding:"omitempty,min=1"`
	Search  string `form:"search"`
}

func (h *StaffHandler) List(c *gin.Context) {
	var q listStaffQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	page, err := h.staff.List(c.Request.Context(), services.StaffListParams{
		OrderBy: q.OrderBy,
		Page:    q.Page,
		Search:  q.Search,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Staff fetched successfully", page)
}

func (h *StaffHandler) Get(c *gin.Context) {
	staff, err := h.staff.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Staff fetched successfully", staff)
}

type createStaffRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Department string `json:"department" binding:"required"`
	JobTitle   string `json:"jobTitle" binding:"required"`
	CreatedBy  string `json:"createdBy"`
}

func (h *StaffHandler) Create(c *gin.Context) {
	var req createStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	createdBy, ok := actor(c, req.CreatedBy, "createdBy")
	if !ok {
		return
	}

	staff, err := h.staff.Create(c.Request.Context(), services.CreateStaffParams{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		JobTitle:   req.JobTitle,
		CreatedBy:  createdBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Staff created successfully", staff)
}

func (h *StaffHandler) UpdateDetails(c *gin.Context) {
	var req detailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	updatedBy, ok := actor(c, req.UpdatedBy, "updatedBy")
	if !ok {
		return
	}

	res, err := h.staff.UpdateDetails(c.Request.Context(), services.DetailsParams{
		ID:        c.Param("id"),
		Status:    req.Status,
		Note:      req.Note,
		UpdatedBy: updatedBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, res.Message, nil)
}
