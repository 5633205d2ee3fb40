package handlers

import (
	"context"
	"net/http"

	"github.com/alimgiray/demography/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DemographyForwarder is the remote side of the proxy, see proxy.Client
type DemographyForwarder interface {
	CountByHairColor(ctx context.Context, hairColor string) (int64, error)
	PercentageByNationalityAndEyeColor(ctx context.Context, nationality, eyeColor string) (float64, error)
}

type ProxyHandler struct {
	forwarder DemographyForwarder
}

// NewProxyHandler relays demography calls through forwarder
func NewProxyHandler(forwarder DemographyForwarder) *ProxyHandler {
	return &ProxyHandler{forwarder: forwarder}
}

// CountByHairColor relays the hair color count from the central service
func (h *ProxyHandler) CountByHairColor(c *gin.Context) {
	hairColor := c.Param("hairColor")

	count, err := h.forwarder.CountByHairColor(c.Request.Context(), hairColor)
	if err != nil {
		logger.WithError(err).WithField("hair_color", hairColor).Error("Proxy request failed")
		respondError(c, http.StatusInternalServerError, "Central service request failed")
		return
	}

	c.JSON(http.StatusOK, count)
}

// PercentageByNationalityAndEyeColor relays the percentage from the central service
func (h *ProxyHandler) PercentageByNationalityAndEyeColor(c *gin.Context) {
	nationality, eyeColor := c.Param("nationality"), c.Param("eyeColor")

	pct, err := h.forwarder.PercentageByNationalityAndEyeColor(c.Request.Context(), nationality, eyeColor)
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"nationality": nationality,
			"eye_color":   eyeColor,
		}).Error("Proxy request failed")
		respondError(c, http.StatusInternalServerError, "Central service request failed")
		return
	}

	c.JSON(http.StatusOK, pct)
}
