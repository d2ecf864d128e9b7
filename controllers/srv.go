package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"asset-inventory-backend/app"
	"asset-inventory-backend/db"
	"asset-inventory-backend/models"
	"asset-inventory-backend/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Srv struct {
	Repo *db.Repo
	Sess *session.Store
	Cfg  app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo: db.NewRepo(a.DB),
		Sess: a.Sessions(),
		Cfg:  a.Config,
	}
}

// --- helpers ---

// writeErr maps repo errors onto transport status codes. Messages pass
// through verbatim; presentation is the caller's concern.
func writeErr(c *gin.Context, err error) {
	switch {
	case db.IsNotFound(err):
		c.JSON(http.StatusNotFound, app.H{"error": err.Error()})
	case db.IsConflict(err):
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	case db.IsValidation(err):
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}

func (s *Srv) setSessionCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.Cfg.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.SessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

// issueSession creates the Redis session, sets the cookie and records the
// login.
func (s *Srv) issueSession(ctx context.Context, w http.ResponseWriter, u *models.User) (string, error) {
	_ = s.Repo.TouchUserLogin(ctx, u.ID) // best effort

	id := uuid.NewString()
	if err := s.Sess.Create(ctx, id, u.ID, u.Username, u.Role); err != nil {
		return "", err
	}
	s.setSessionCookie(w, id, s.Cfg.SessionTTL)
	return id, nil
}
