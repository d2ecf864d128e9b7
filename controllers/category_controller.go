package controllers

import (
	"net/http"

	"asset-inventory-backend/app"
	"asset-inventory-backend/db"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CategoryController struct{ *Srv }

func NewCategoryController(s *Srv) *CategoryController { return &CategoryController{Srv: s} }

// POST /api/categories
func (cc *CategoryController) Create(c *gin.Context) {
	var in db.CreateCategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	cat, err := cc.Repo.CreateCategory(c.Request.Context(), uuid.NewString(), in)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// GET /api/categories
func (cc *CategoryController) List(c *gin.Context) {
	cats, err := cc.Repo.ListCategories(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"categories": cats})
}

// GET /api/categories/:id
func (cc *CategoryController) Get(c *gin.Context) {
	cat, err := cc.Repo.FindCategoryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// PUT /api/categories/:id — partial update; an explicit null clears
// description, absent keys stay untouched.
func (cc *CategoryController) Update(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	cat, err := cc.Repo.UpdateCategory(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// DELETE /api/categories/:id
func (cc *CategoryController) Delete(c *gin.Context) {
	if err := cc.Repo.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
