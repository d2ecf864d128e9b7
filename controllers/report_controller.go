package controllers

import (
	"net/http"

	"asset-inventory-backend/app"
	"asset-inventory-backend/db"

	"github.com/gin-gonic/gin"
)

type ReportController struct{ *Srv }

func NewReportController(s *Srv) *ReportController { return &ReportController{Srv: s} }

// POST /api/reports — {reportType, categoryId?, status?, startDate?, endDate?}
func (rc *ReportController) Generate(c *gin.Context) {
	var in db.GenerateReportInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	data, err := rc.Repo.GenerateReport(c.Request.Context(), in)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"reportType": in.ReportType, "data": data})
}
