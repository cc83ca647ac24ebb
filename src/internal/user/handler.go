package user

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
	CreateUser(c *gin.Context)
	GetUser(c *gin.Context)
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

func (h *handler) CreateUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	var body createUserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}
	req := body.request()

	logrus.WithFields(logrus.Fields{
		"user_id":  req.UserID,
		"username": req.Username,
	}).Info("CreateUser request received")

	user, err := h.service.CreateUser(ctx, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, user, "User created successfully")
}

func (h *handler) GetUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	userID := c.Param("user_id")
	logrus.WithField("user_id", userID).Debug("GetUser request received")

	user, err := h.service.GetUser(ctx, userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, user, "User retrieved successfully")
}
