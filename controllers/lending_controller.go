package controllers

import (
	"net/http"

	"asset-inventory-backend/app"
	"asset-inventory-backend/db"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LendingController struct{ *Srv }

func NewLendingController(s *Srv) *LendingController { return &LendingController{Srv: s} }

// POST /api/lendings — lend an available asset to a borrower. The operator
// recording the action defaults to the authenticated user.
func (lc *LendingController) Create(c *gin.Context) {
	var in db.CreateLendingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.LentByUserID == "" {
		v, _ := c.Get("userID")
		in.LentByUserID, _ = v.(string)
	}

	row, err := lc.Repo.CreateLending(c.Request.Context(), uuid.NewString(), in)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

// GET /api/lendings?status=active|overdue&assetId=...
func (lc *LendingController) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		rows []db.LendingRow
		err  error
	)
	switch {
	case c.Query("assetId") != "":
		rows, err = lc.Repo.ListLendingsByAsset(ctx, c.Query("assetId"))
	case c.Query("status") == "active":
		rows, err = lc.Repo.ListActiveLendings(ctx)
	case c.Query("status") == "overdue":
		rows, err = lc.Repo.ListOverdueLendings(ctx)
	default:
		rows, err = lc.Repo.ListLendings(ctx)
	}
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"lendings": rows})
}

// GET /api/lendings/:id
func (lc *LendingController) Get(c *gin.Context) {
	row, err := lc.Repo.FindLendingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// POST /api/lendings/:id/return — close an active lending. The asset status
// follows the reported condition.
func (lc *LendingController) Return(c *gin.Context) {
	var in db.ReturnAssetInput
	_ = c.ShouldBindJSON(&in) // body is optional, every field has a default
	in.LendingID = c.Param("id")
	if in.ReturnedByUserID == "" {
		v, _ := c.Get("userID")
		in.ReturnedByUserID, _ = v.(string)
	}

	row, err := lc.Repo.ReturnAsset(c.Request.Context(), in)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// PUT /api/lendings/:id — edit borrower/schedule details only.
func (lc *LendingController) Update(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	row, err := lc.Repo.UpdateLending(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}
