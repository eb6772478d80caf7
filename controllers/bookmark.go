package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/unistay-app/unistay/backend/models"
	"github.com/unistay-app/unistay/backend/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type BookmarkController struct {
	bookmarks  *mongo.Collection
	properties *mongo.Collection
}

func NewBookmarkController(bookmarks, properties *mongo.Collection) *BookmarkController {
	return &BookmarkController{bookmarks: bookmarks, properties: properties}
}

type bookmarkRequest struct {
	PropertyID string `json:"propertyId"`
}

func (bc *BookmarkController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "User ID missing in context")
		return
	}

	var req bookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Invalid bookmark body: %v", err)
		utils.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid property ID")
		return
	}

	if err := bc.properties.FindOne(r.Context(), bson.M{"_id": propertyID}).Err(); err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Property not found")
		return
	} else if err != nil {
		log.Printf("Error checking property %s: %v", req.PropertyID, err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	pair := bson.M{"userId": userID, "propertyId": propertyID}
	err = bc.bookmarks.FindOne(r.Context(), pair).Err()
	if err == nil {
		utils.RespondError(w, http.StatusConflict, "Property already bookmarked")
		return
	}
	if err != mongo.ErrNoDocuments {
		log.Printf("Error checking bookmarks for user %s: %v", userID.Hex(), err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	bookmark := models.Bookmark{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		PropertyID: propertyID,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := bc.bookmarks.InsertOne(r.Context(), bookmark); err != nil {
		log.Printf("Error inserting bookmark: %v", err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, bookmark)
}

// List returns the caller's bookmarked properties, joined against the
// properties collection, most recently bookmarked first.
func (bc *BookmarkController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "User ID missing in context")
		return
	}

	pipeline := mongo.Pipeline{
		{
			{Key: "$match", Value: bson.M{"userId": userID}},
		},
		{
			{Key: "$sort", Value: bson.M{"createdAt": -1}},
		},
		{
			{Key: "$lookup", Value: bson.M{
				"from":         bc.properties.Name(),
				"localField":   "propertyId",
				"foreignField": "_id",
				"as":           "propertyDetails",
			}},
		},
		{
			{Key: "$unwind", Value: "$propertyDetails"},
		},
		{
			{Key: "$replaceRoot", Value: bson.M{"newRoot": "$propertyDetails"}},
		},
	}

	cursor, err := bc.bookmarks.Aggregate(r.Context(), pipeline)
	if err != nil {
		log.Printf("Error fetching bookmarks for user %s: %v", userID.Hex(), err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	defer cursor.Close(r.Context())

	properties := []models.Property{}
	if err := cursor.All(r.Context(), &properties); err != nil {
		log.Printf("Error decoding bookmarked properties: %v", err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	for i := range properties {
		properties[i].ApplyDefaults()
	}

	utils.RespondJSON(w, http.StatusOK, properties)
}

func (bc *BookmarkController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "User ID missing in context")
		return
	}

	propertyID, err := primitive.ObjectIDFromHex(mux.Vars(r)["propertyId"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid property ID")
		return
	}

	res, err := bc.bookmarks.DeleteOne(r.Context(), bson.M{"userId": userID, "propertyId": propertyID})
	if err != nil {
		log.Printf("Error removing bookmark for user %s: %v", userID.Hex(), err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Bookmark not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Bookmark removed successfully",
	})
}
