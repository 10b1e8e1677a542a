// safemap/internal/handlers/geocode_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/waseok/safemap/internal/geocode"
)

// Geocoder resolves addresses for the pin form. main wires the Naver
// client; tests inject one pointed at a local server.
var Geocoder *geocode.Client

func GeocodeHandler(c *gin.Context) {
	if Geocoder == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "geocoder is not configured"})
		return
	}
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	coords, err := Geocoder.Geocode(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "geocoding failed: " + err.Error()})
		return
	}
	if coords == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
		return
	}
	c.JSON(http.StatusOK, coords)
}

func ReverseGeocodeHandler(c *gin.Context) {
	if Geocoder == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "geocoder is not configured"})
		return
	}
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng must be valid coordinates"})
		return
	}

	address, err := Geocoder.ReverseGeocode(c.Request.Context(), lat, lng)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reverse geocoding failed: " + err.Error()})
		return
	}
	if address == "" {
		c.JSON(http.StatusOK, gin.H{"address": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": address})
}
