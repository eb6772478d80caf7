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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserController struct {
	users *mongo.Collection
}

func NewUserController(users *mongo.Collection) *UserController {
	return &UserController{users: users}
}

func requestUserID(r *http.Request) (primitive.ObjectID, bool) {
	id, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return objID, true
}

func (uc *UserController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "User ID missing in context")
		return
	}

	var user models.User
	err := uc.users.FindOne(r.Context(), bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("Error fetching user %s: %v", userID.Hex(), err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, user)
}

type profileUpdateRequest struct {
	Name      string `json:"name"`
	ResumeURL string `json:"resumeUrl"`
	CVURL     string `json:"cvUrl"`
	Password  string `json:"password"`
}

func (uc *UserController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "User ID missing in context")
		return
	}

	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Invalid profile update body: %v", err)
		utils.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	set := bson.M{
		"name":      req.Name,
		"resumeUrl": req.ResumeURL,
		"cvUrl":     req.CVURL,
		"updatedAt": time.Now().UTC(),
	}
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		set["passwordHash"] = hash
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.User
	err := uc.users.FindOneAndUpdate(r.Context(), bson.M{"_id": userID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("Error updating user %s: %v", userID.Hex(), err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, updated)
}
