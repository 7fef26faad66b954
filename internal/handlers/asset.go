package handlers

import (
	"net/http"
	"strconv"
	"time"

	"it-inventory/internal/services"

	"github.com/gin-gonic/gin"
)

type AssetHandler struct {
	assets *services.AssetService
}

func NewAssetHandler(assets *services.AssetService) *AssetHandler {
	return &AssetHandler{assets: assets}
}

// СПИСОК И ПОИСК АКТИВОВ

func (h *AssetHandler) List(c *gin.Context) {
	assets, err := h.assets.List(c.Request.Context(), services.AssetFilter{AssignedTo: c.Query("assignedTo")})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Assets fetched successfully", assets)
}

func (h *AssetHandler) Get(c *gin.Context) {
	asset, err := h.assets.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Asset fetched successfully", asset)
}

func (h *AssetHandler) GetBySerial(c *gin.Context) {
	asset, err := h.assets.GetBySerial(c.Request.Context(), c.Param("serial"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Asset fetched successfully", asset)
}

// СОЗДАНИЕ АКТИВА

type createAssetRequest struct {
	SerialNumber  string  `json:"serialNumber" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	Type          string  `json:"type" binding:"required"`
	Maker         string  `json:"maker" binding:"required"`
	AssignedTo    *string `json:"assignedTo" binding:"omitempty,email"`
	DatePurchased string  `json:"datePurchased" binding:"required,datetime=2006-01-02"`
	AssetNumber   string  `json:"assetNumber" binding:"required"`
	CreatedBy     string  `json:"createdBy"`
}

func (h *AssetHandler) Create(c *gin.Context) {
	var req createAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	createdBy, ok := actor(c, req.CreatedBy, "createdBy")
	if !ok {
		return
	}
	purchased, err := time.Parse(time.DateOnly, req.DatePurchased)
	if err != nil {
		badRequest(c, err)
		return
	}

	asset, err := h.assets.Create(c.Request.Context(), services.CreateAssetParams{
		SerialNumber:  req.SerialNumber,
		Name:          req.Name,
		Type:          req.Type,
		Maker:         req.Maker,
		AssignedTo:    req.AssignedTo,
		DatePurchased: purchased,
		AssetNumber:   req.AssetNumber,
		CreatedBy:     createdBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Asset created successfully", asset)
}

// СТАТУС И ЗАМЕТКА

type detailsRequest struct {
	Status    string  `json:"status" binding:"required"`
	Note      *string `json:"note"`
	UpdatedBy string  `json:"updatedBy"`
}

func (h *AssetHandler) UpdateDetails(c *gin.Context) {
	var req detailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	updatedBy, ok := actor(c, req.UpdatedBy, "updatedBy")
	if !ok {
		return
	}

	res, err := h.assets.UpdateDetails(c.Request.Context(), services.DetailsParams{
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

// ВЫДАЧА И СНЯТИЕ

type assignRequest struct {
	StaffEmail    string `json:"staffEmail" binding:"required,email"`
	UpdatedBy     string `json:"updatedBy"`
	UserConfirmed bool   `json:"userConfirmed"`
}

func (h *AssetHandler) Assign(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	updatedBy, ok := actor(c, req.UpdatedBy, "updatedBy")
	if !ok {
		return
	}

	res, err := h.assets.Assign(c.Request.Context(), services.AssignParams{
		StaffEmail:    req.StaffEmail,
		AssetID:       c.Param("id"),
		UpdatedBy:     updatedBy,
		UserConfirmed: req.UserConfirmed,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, res.Message, nil)
}

func (h *AssetHandler) Unassign(c *gin.Context) {
	confirmed := false
	if raw := c.Query("userConfirmed"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, err)
			return
		}
		confirmed = v
	}
	updatedBy, ok := actor(c, c.Query("updatedBy"), "updatedBy")
	if !ok {
		return
	}

	res, err := h.assets.Unassign(c.Request.Context(), services.UnassignParams{
		AssetID:       c.Param("id"),
		UpdatedBy:     updatedBy,
		UserConfirmed: confirmed,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, res.Message, nil)
}
