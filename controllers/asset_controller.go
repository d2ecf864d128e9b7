package controllers

import (
	"net/http"

	"asset-inventory-backend/app"
	"asset-inventory-backend/db"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AssetController struct{ *Srv }

func NewAssetController(s *Srv) *AssetController { return &AssetController{Srv: s} }

// POST /api/assets
func (ac *AssetController) Create(c *gin.Context) {
	var in db.CreateAssetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	row, err := ac.Repo.CreateAsset(c.Request.Context(), uuid.NewString(), in)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

// GET /api/assets?categoryId=...|status=...
func (ac *AssetController) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		rows []db.AssetRow
		err  error
	)
	switch {
	case c.Query("categoryId") != "":
		rows, err = ac.Repo.ListAssetsByCategory(ctx, c.Query("categoryId"))
	case c.Query("status") != "":
		rows, err = ac.Repo.ListAssetsByStatus(ctx, c.Query("status"))
	default:
		rows, err = ac.Repo.ListAssets(ctx)
	}
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"assets": rows})
}

// GET /api/assets/:id
func (ac *AssetController) Get(c *gin.Context) {
	row, err := ac.Repo.FindAssetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// PUT /api/assets/:id — administrative partial update; status changes here
// bypass the lending engine on purpose.
func (ac *AssetController) Update(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	row, err := ac.Repo.UpdateAsset(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// DELETE /api/assets/:id
func (ac *AssetController) Delete(c *gin.Context) {
	if err := ac.Repo.DeleteAsset(c.Request.Context(), c.Param("id")); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
