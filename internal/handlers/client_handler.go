package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucAuth "github.com/BruksfildServices01/barber-booking/internal/usecase/auth"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type ClientHandler struct {
	db       *gorm.DB
	sessions *ucAuth.Sessions
}

func NewClientHandler(db *gorm.DB, sessions *ucAuth.Sessions) *ClientHandler {
	return &ClientHandler{db: db, sessions: sessions}
}

type RegisterClientRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateClientRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// Register creates a client account. Username and password are optional
// but must come together.
func (h *ClientHandler) Register(c *gin.Context) {
	var req RegisterClientRequest
	if !bindJSON(c, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	req.Phone = strings.TrimSpace(req.Phone)

	if req.Name == "" || req.Email == "" {
		httperr.BadRequest(c, "missing_fields", "Name and email are required.")
		return
	}
	if !validators.IsEmail(req.Email) {
		httperr.BadRequest(c, "invalid_email", "Invalid email address.")
		return
	}
	if req.Phone != "" && !validators.IsPhone(req.Phone) {
		httperr.BadRequest(c, "invalid_phone", "Invalid phone number.")
		return
	}
	if (req.Username == "") != (req.Password == "") {
		httperr.BadRequest(c, "missing_credentials", "Username and password must be provided together.")
		return
	}
	if req.Password != "" && len(req.Password) < auth.MinPasswordLength {
		httperr.BadRequest(c, "weak_password", "Password must have at least 6 characters.")
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var count int64
	if err := db.Model(&models.Client{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	if count > 0 {
		httperr.Write(c, http.StatusConflict, "email_taken", "This email is already registered.")
		return
	}

	client := models.Client{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}

	if req.Username != "" {
		if err := db.Model(&models.Client{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
			httperr.Respond(c, err)
			return
		}
		if count > 0 {
			httperr.Write(c, http.StatusConflict, "username_taken", "This username is already taken.")
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		client.Username = &req.Username
		client.PasswordHash = &hash
	}

	if err := db.Create(&client).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, "Client registered.", client)
}

func (h *ClientHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) || !req.valid(c) {
		return
	}

	cl, pair, err := h.sessions.LoginClient(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Login successful.", gin.H{
		"tokens": pair,
		"client": cl,
	})
}

func (h *ClientHandler) Me(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	var cl models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&cl, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "client_not_found", "Client not found.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, cl)
}

func (h *ClientHandler) UpdateProfile(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	var req UpdateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "missing_fields", "Name cannot be empty.")
			return
		}
		updates["name"] = name
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone != "" && !validators.IsPhone(phone) {
			httperr.BadRequest(c, "invalid_phone", "Invalid phone number.")
			return
		}
		updates["phone"] = phone
	}

	db := h.db.WithContext(c.Request.Context())

	var cl models.Client
	if err := db.First(&cl, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "client_not_found", "Client not found.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	if len(updates) > 0 {
		if err := db.Model(&cl).Updates(updates).Error; err != nil {
			httperr.Respond(c, err)
			return
		}
	}

	httpresp.Message(c, http.StatusOK, "Profile updated.", cl)
}
