package handlers

import (
	"crypto/subtle"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CampCoding/elmezan-backend/internal/middleware"
	"github.com/CampCoding/elmezan-backend/internal/models"
	"github.com/CampCoding/elmezan-backend/internal/utils"
)

type CaptainHandler struct {
	DB               *gorm.DB
	JwtSecret        string
	JwtAccessMinutes int
}

func NewCaptainHandler(db *gorm.DB, jwtSecret string, jwtAccessMinutes int) *CaptainHandler {
	return &CaptainHandler{DB: db, JwtSecret: jwtSecret, JwtAccessMinutes: jwtAccessMinutes}
}

func (h *CaptainHandler) List(c *gin.Context) {
	var captains []models.Captain
	if err := h.DB.Order("captain_no").Find(&captains).Error; err != nil {
		fail(c, err, "Failed to list captains")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "captains": captains, "total": len(captains)})
}

func (h *CaptainHandler) Get(c *gin.Context) {
	captainNo, ok := pathUint(c, "captainNo")
	if !ok {
		return
	}
	var captain models.Captain
	if err := h.DB.First(&captain, "captain_no = ?", captainNo).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Captain not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "captain": captain})
}

type captainLoginRequest struct {
	CaptainNo int    `json:"captainNumber"`
	Password  string `json:"password"`
}

// Login checks the captain's credentials against the legacy staff table and
// issues a short-lived access token.
func (h *CaptainHandler) Login(c *gin.Context) {
	var req captainLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CaptainNo == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "captainNumber and password are required"})
		return
	}

	var captain models.Captain
	if err := h.DB.First(&captain, "captain_no = ?", req.CaptainNo).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid credentials"})
		return
	}
	if subtle.ConstantTimeCompare([]byte(captain.Password), []byte(req.Password)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid credentials"})
		return
	}

	token, err := utils.GenerateAccessToken(strconv.Itoa(captain.CaptainNo), captain.CaptainName, h.JwtSecret, h.JwtAccessMinutes)
	if err != nil {
		fail(c, err, "Failed to issue token")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"accessToken": token,
		"captain":     captain,
	})
}

func (h *CaptainHandler) Me(c *gin.Context) {
	subject, _ := c.Get(middleware.ContextCaptainNo)
	raw, _ := subject.(string)
	no, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token subject"})
		return
	}
	var captain models.Captain
	if err := h.DB.First(&captain, "captain_no = ?", no).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Captain not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "captain": captain})
}
