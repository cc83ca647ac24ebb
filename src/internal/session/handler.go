package session

import (
	"context"
	"net/http"
	"time"

	"chatbot-svc/src/internal/config"
	"chatbot-svc/src/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler interface {
	CreateSession(c *gin.Context)
	DeleteSession(c *gin.Context)
	GetSessionsByUser(c *gin.Context)
	RenameSession(c *gin.Context)
}

type handler struct {
	config  *config.Configuration
	service Service
}

func NewHandler(cfg *config.Configuration, service Service) Handler {
	return &handler{
		config:  cfg,
		service: service,
	}
}

func (h *handler) timeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
}

func (h *handler) CreateSession(c *gin.Context) {
	ctx, cancel := h.timeout(c)
	defer cancel()

	var body createSessionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}
	req := body.request()

	logrus.WithFields(logrus.Fields{
		"session_id": req.SessionID,
		"user_id":    req.UserID,
	}).Info("CreateSession request received")

	session, err := h.service.CreateSession(ctx, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, session, "Session created successfully")
}

func (h *handler) DeleteSession(c *gin.Context) {
	ctx, cancel := h.timeout(c)
	defer cancel()

	sessionID := c.Param("session_id")
	logrus.WithField("session_id", sessionID).Info("DeleteSession request received")

	result, err := h.service.DeleteSession(ctx, sessionID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result, result.Message)
}

func (h *handler) GetSessionsByUser(c *gin.Context) {
	ctx, cancel := h.timeout(c)
	defer cancel()

	userID := c.Param("user_id")
	logrus.WithField("user_id", userID).Debug("GetSessionsByUser request received")

	sessions, err := h.service.GetSessionsByUser(ctx, userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"returned": len(sessions),
	}).Debug("GetSessionsByUser completed")

	response.Success(c, http.StatusOK, sessions, "Sessions retrieved successfully")
}

func (h *handler) RenameSession(c *gin.Context) {
	ctx, cancel := h.timeout(c)
	defer cancel()

	sessionID := c.Param("session_id")

	var body renameSessionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}
	newName := *body.NewSessionName

	logrus.WithFields(logrus.Fields{
		"session_id": sessionID,
		"new_name":   newName,
	}).Info("RenameSession request received")

	session, err := h.service.RenameSession(ctx, sessionID, newName)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, session, "Session renamed successfully")
}
