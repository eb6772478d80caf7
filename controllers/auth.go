package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/unistay-app/unistay/backend/models"
	"github.com/unistay-app/unistay/backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AuthController struct {
	users *mongo.Collection
}

func NewAuthController(users *mongo.Collection) *AuthController {
	return &AuthController{users: users}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding register payload: %v", err)
		utils.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	exists := ac.users.FindOne(r.Context(), bson.M{"email": req.Email})
	if exists.Err() == nil {
		log.Printf("Email already registered: %s", req.Email)
		utils.RespondError(w, http.StatusConflict, "Email already registered")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := ac.users.InsertOne(r.Context(), user); err != nil {
		log.Printf("Error inserting user: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		log.Printf("Error generating JWT token: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, authResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    &user,
	})
}

func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding login payload: %v", err)
		utils.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	var user models.User
	err := ac.users.FindOne(r.Context(), bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		log.Printf("Login failed for %s: user not found", req.Email)
		utils.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		log.Printf("Login failed for %s: bad password", req.Email)
		utils.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		log.Printf("Error generating JWT token: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondJSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   token,
		User:    &user,
	})
}
