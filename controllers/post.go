package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"time"

	"github.com/unistay-app/unistay/backend/models"
	"github.com/unistay-app/unistay/backend/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PostController struct {
	posts *mongo.Collection
}

func NewPostController(posts *mongo.Collection) *PostController {
	return &PostController{posts: posts}
}

func (pc *PostController) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := bson.M{}

	if typ := query.Get("type"); typ != "" {
		filter["type"] = typ
	}
	if country := query.Get("country"); country != "" {
		filter["country"] = bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(country), Options: "i"}}
	}
	if tag := query.Get("tag"); tag != "" {
		filter["tags"] = tag
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := pc.posts.Find(r.Context(), filter, findOptions)
	if err != nil {
		log.Printf("Error fetching posts with filter %+v: %v", filter, err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	defer cursor.Close(r.Context())

	posts := []models.Post{}
	if err := cursor.All(r.Context(), &posts); err != nil {
		log.Printf("Error decoding posts: %v", err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	for i := range posts {
		posts[i].ApplyDefaults()
	}

	utils.RespondJSON(w, http.StatusOK, posts)
}

func (pc *PostController) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var post models.Post
	err = pc.posts.FindOne(r.Context(), bson.M{"_id": objID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Printf("Error fetching post %s: %v", id, err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	post.ApplyDefaults()
	utils.RespondJSON(w, http.StatusOK, post)
}

func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	author, ok := requestUserID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "User ID missing in context")
		return
	}

	var post models.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		log.Printf("Invalid post body: %v", err)
		utils.RespondErrorDetail(w, http.StatusBadRequest, "Error creating post", err)
		return
	}

	post.ID = primitive.NewObjectID()
	post.Author = author
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	post.ApplyDefaults()

	if err := post.Validate(); err != nil {
		utils.RespondErrorDetail(w, http.StatusBadRequest, "Error creating post", err)
		return
	}

	if _, err := pc.posts.InsertOne(r.Context(), post); err != nil {
		log.Printf("Insert failed: %v", err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, post)
}

func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	author, ok := requestUserID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "User ID missing in context")
		return
	}

	id := mux.Vars(r)["id"]
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Printf("Invalid update body for post %s: %v", id, err)
		utils.RespondErrorDetail(w, http.StatusBadRequest, "Error updating post", err)
		return
	}

	delete(body, "_id")
	delete(body, "author")
	delete(body, "createdAt")
	if typ, present := body["type"]; present {
		s, ok := typ.(string)
		if !ok || (s != models.PostTypeSOP && s != models.PostTypeVisa) {
			utils.RespondError(w, http.StatusBadRequest, "type must be SOP or VISA")
			return
		}
	}
	body["updatedAt"] = time.Now().UTC()

	// Only the author may edit their post.
	filter := bson.M{"_id": objID, "author": author}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Post
	err = pc.posts.FindOneAndUpdate(r.Context(), filter, bson.M{"$set": body}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Printf("Update failed for post %s: %v", id, err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, updated)
}

func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	author, ok := requestUserID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "User ID missing in context")
		return
	}

	id := mux.Vars(r)["id"]
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	filter := bson.M{"_id": objID, "author": author}
	if role, _ := r.Context().Value(RoleKey).(string); role == models.RoleAdmin {
		filter = bson.M{"_id": objID}
	}

	res, err := pc.posts.DeleteOne(r.Context(), filter)
	if err != nil {
		log.Printf("Delete failed for post %s: %v", id, err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Post not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Post deleted successfully",
	})
}
