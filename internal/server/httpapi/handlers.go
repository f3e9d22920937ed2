package httpapi

import (
	"encoding/base64"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/socialbattery/internal/common"
	"github.com/dmitrijs2005/socialbattery/internal/forecast"
	"github.com/dmitrijs2005/socialbattery/internal/identity"
	"github.com/dmitrijs2005/socialbattery/internal/logging"
	"github.com/dmitrijs2005/socialbattery/internal/models"
	"github.com/dmitrijs2005/socialbattery/internal/server/auth"
	"github.com/dmitrijs2005/socialbattery/internal/store"
)

// Handlers bundles the application services behind the HTTP surface.
// writeMu serializes every store mutation: the record set is one logical
// blob and concurrent writers must not interleave.
type Handlers struct {
	gate          *identity.Gate
	client        *forecast.Client
	cache         *forecast.Cache
	store         store.Store
	secretKey     []byte
	tokenValidity time.Duration
	logger        logging.Logger

	writeMu sync.Mutex
}

func NewHandlers(gate *identity.Gate, client *forecast.Client, cache *forecast.Cache,
	st store.Store, secretKey []byte, tokenValidity time.Duration, logger logging.Logger) *Handlers {
	return &Handlers{
		gate:          gate,
		client:        client,
		cache:         cache,
		store:         st,
		secretKey:     secretKey,
		tokenValidity: tokenValidity,
		logger:        logger.With("module", "httpapi"),
	}
}

type credentialsRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Credential string `json:"credential" binding:"required"`
}

type faceScanRequest struct {
	Image string `json:"image"`
}

type resetRequest struct {
	Identifier string `json:"identifier" binding:"required"`
}

type resetCompleteRequest struct {
	Identifier        string `json:"identifier" binding:"required"`
	NewCredential     string `json:"newCredential" binding:"required"`
	ConfirmCredential string `json:"confirmCredential" binding:"required"`
}

type forecastRequest struct {
	Parameters models.UserInput `json:"parameters"`
}

type authResponse struct {
	AccessToken string            `json:"accessToken"`
	Record      models.UserRecord `json:"record"`
}

func errorBody(message string) gin.H {
	return gin.H{"error": message}
}

func (h *Handlers) issueToken(c *gin.Context, record *models.UserRecord) {
	token, err := auth.GenerateToken(record.Identifier, h.secretKey, h.tokenValidity)
	if err != nil {
		h.logger.Error(c.Request.Context(), "token generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	public := *record
	public.Credential = ""
	c.JSON(http.StatusOK, authResponse{AccessToken: token, Record: public})
}

func (h *Handlers) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handlers) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("identifier and credential are required"))
		return
	}

	h.writeMu.Lock()
	record, err := h.gate.Signup(c.Request.Context(), req.Identifier, req.Credential)
	h.writeMu.Unlock()

	if err != nil {
		if errors.Is(err, common.ErrorIdentityAlreadyExists) {
			c.JSON(http.StatusConflict, errorBody("identity already exists"))
			return
		}
		h.logger.Error(c.Request.Context(), "signup failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	h.issueToken(c, record)
}

func (h *Handlers) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("identifier and credential are required"))
		return
	}

	record, err := h.gate.PasswordLogin(c.Request.Context(), req.Identifier, req.Credential)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, errorBody("Invalid Aura Identifier or Shield Key."))
			return
		}
		h.logger.Error(c.Request.Context(), "login failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	h.issueToken(c, record)
}

// FaceScan always answers 200 with a signed-in identity. A missing or
// undecodable image is just another degraded scan, not a client error.
func (h *Handlers) FaceScan(c *gin.Context) {
	var req faceScanRequest
	_ = c.ShouldBindJSON(&req)

	var image []byte
	if req.Image != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.Image)
		if err == nil {
			image = decoded
		}
	}

	h.writeMu.Lock()
	record, err := h.gate.FaceScanLogin(c.Request.Context(), image)
	h.writeMu.Unlock()

	if err != nil {
		h.logger.Error(c.Request.Context(), "face scan store failure", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	h.issueToken(c, record)
}

func (h *Handlers) ResetRequest(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("identifier is required"))
		return
	}

	if err := h.gate.BeginReset(c.Request.Context(), req.Identifier); err != nil {
		if errors.Is(err, common.ErrorIdentityNotFound) {
			c.JSON(http.StatusNotFound, errorBody("Identity signature not found."))
			return
		}
		h.logger.Error(c.Request.Context(), "reset request failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handlers) ResetComplete(c *gin.Context) {
	var req resetCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("identifier and both credentials are required"))
		return
	}

	h.writeMu.Lock()
	err := h.gate.CompleteReset(c.Request.Context(), req.Identifier, req.NewCredential, req.ConfirmCredential)
	h.writeMu.Unlock()

	if err != nil {
		switch {
		case errors.Is(err, common.ErrorCredentialMismatch):
			c.JSON(http.StatusBadRequest, errorBody("Shield Keys do not match."))
		case errors.Is(err, common.ErrorIdentityNotFound):
			c.JSON(http.StatusNotFound, errorBody("Identity signature not found."))
		default:
			h.logger.Error(c.Request.Context(), "reset completion failed", "error", err)
			c.JSON(http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handlers) Me(c *gin.Context) {
	identifier := c.GetString(contextIdentifierKey)

	record, err := h.store.Find(c.Request.Context(), identifier)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, errorBody("identity no longer exists"))
			return
		}
		h.logger.Error(c.Request.Context(), "record lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	record.Credential = ""
	c.JSON(http.StatusOK, record)
}

func (h *Handlers) LastForecast(c *gin.Context) {
	identifier := c.GetString(contextIdentifierKey)

	last, err := h.cache.Last(c.Request.Context(), identifier)
	if err != nil {
		h.logger.Error(c.Request.Context(), "cached forecast lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"forecast": last})
}

// GenerateForecast runs the oracle and, only on success, attaches the new
// forecast to the record. A saturated oracle leaves the cached forecast
// exactly as it was.
func (h *Handlers) GenerateForecast(c *gin.Context) {
	identifier := c.GetString(contextIdentifierKey)

	var req forecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("parameters are required"))
		return
	}

	result, err := h.client.RequestForecast(c.Request.Context(), req.Parameters)
	if err != nil {
		if errors.Is(err, common.ErrorOracleUnavailable) {
			c.JSON(http.StatusBadGateway, errorBody(forecast.SaturatedMessage))
			return
		}
		h.logger.Error(c.Request.Context(), "forecast request failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	h.writeMu.Lock()
	err = h.cache.Attach(c.Request.Context(), identifier, req.Parameters, result)
	h.writeMu.Unlock()

	if err != nil {
		h.logger.Error(c.Request.Context(), "forecast attach failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"forecast": result})
}
