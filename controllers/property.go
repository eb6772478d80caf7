package controllers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/unistay-app/unistay/backend/models"
	"github.com/unistay-app/unistay/backend/utils"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ContextKey string

const (
	UserIDKey = ContextKey("userID")
	RoleKey   = ContextKey("role")
)

// PropertyController serves the listing CRUD surface. A nil cache disables
// the redis list cache.
type PropertyController struct {
	properties *mongo.Collection
	cache      *redis.Client
}

func NewPropertyController(properties *mongo.Collection, cache *redis.Client) *PropertyController {
	return &PropertyController{properties: properties, cache: cache}
}

func (pc *PropertyController) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter, err := BuildPropertyFilter(query)
	if err != nil {
		log.Printf("Bad listing query %q: %v", r.URL.RawQuery, err)
		utils.RespondErrorDetail(w, http.StatusBadRequest, "Invalid query", err)
		return
	}

	cacheKey := listCacheKey(query)
	if pc.cache != nil {
		cached, err := pc.cache.Get(r.Context(), cacheKey).Result()
		if err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
		if err != redis.Nil {
			log.Printf("Redis GET error for key %s: %v", cacheKey, err)
		}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := pc.properties.Find(r.Context(), filter, findOptions)
	if err != nil {
		log.Printf("Error fetching properties with filter %+v: %v", filter, err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	defer cursor.Close(r.Context())

	properties := []models.Property{}
	if err := cursor.All(r.Context(), &properties); err != nil {
		log.Printf("Error decoding properties: %v", err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	for i := range properties {
		properties[i].ApplyDefaults()
	}

	resultBytes, err := json.Marshal(properties)
	if err != nil {
		log.Printf("Failed to serialize properties: %v", err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	if pc.cache != nil {
		if err := pc.cache.Set(r.Context(), cacheKey, resultBytes, 10*time.Minute).Err(); err != nil {
			log.Printf("Failed to cache response for key %s: %v", cacheKey, err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(resultBytes)
}

func (pc *PropertyController) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid property ID")
		return
	}

	var property models.Property
	err = pc.properties.FindOne(r.Context(), bson.M{"_id": objID}).Decode(&property)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Property not found")
		return
	}
	if err != nil {
		log.Printf("Error fetching property %s: %v", id, err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	property.ApplyDefaults()
	utils.RespondJSON(w, http.StatusOK, property)
}

func (pc *PropertyController) Create(w http.ResponseWriter, r *http.Request) {
	var property models.Property
	if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
		log.Printf("Invalid property body: %v", err)
		utils.RespondErrorDetail(w, http.StatusBadRequest, "Error creating property", err)
		return
	}

	property.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	property.CreatedAt = now
	property.UpdatedAt = now
	property.ApplyDefaults()

	if err := property.Validate(); err != nil {
		log.Printf("Property validation failed: %v", err)
		utils.RespondErrorDetail(w, http.StatusBadRequest, "Error creating property", err)
		return
	}

	if _, err := pc.properties.InsertOne(r.Context(), property); err != nil {
		log.Printf("Insert failed: %v", err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	go pc.invalidateCache()

	utils.RespondJSON(w, http.StatusCreated, property)
}

func (pc *PropertyController) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid property ID")
		return
	}

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Printf("Invalid update body for property %s: %v", id, err)
		utils.RespondErrorDetail(w, http.StatusBadRequest, "Error updating property", err)
		return
	}

	set, unset, err := SanitizeUpdate(body)
	if err != nil {
		log.Printf("Update validation failed for property %s: %v", id, err)
		utils.RespondErrorDetail(w, http.StatusBadRequest, "Error updating property", err)
		return
	}
	set["updatedAt"] = time.Now().UTC()

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Property
	err = pc.properties.FindOneAndUpdate(r.Context(), bson.M{"_id": objID}, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusNotFound, "Property not found")
		return
	}
	if err != nil {
		log.Printf("Update failed for property %s: %v", id, err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	go pc.invalidateCache()

	updated.ApplyDefaults()
	utils.RespondJSON(w, http.StatusOK, updated)
}

func (pc *PropertyController) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid property ID")
		return
	}

	res, err := pc.properties.DeleteOne(r.Context(), bson.M{"_id": objID})
	if err != nil {
		log.Printf("Delete failed for property %s: %v", id, err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Property not found")
		return
	}

	go pc.invalidateCache()

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Property deleted successfully",
	})
}

// listCacheKey hashes the sorted query string so equivalent queries share a
// cache entry regardless of parameter order.
func listCacheKey(queryParams url.Values) string {
	keys := make([]string, 0, len(queryParams))
	for k := range queryParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		values := queryParams[key]
		sort.Strings(values)
		for _, val := range values {
			sb.WriteString(key)
			sb.WriteString("=")
			sb.WriteString(val)
			sb.WriteString("&")
		}
	}
	rawKey := strings.TrimSuffix(sb.String(), "&")

	sum := sha256.Sum256([]byte(rawKey))
	return "properties:" + hex.EncodeToString(sum[:])
}

func (pc *PropertyController) invalidateCache() {
	if pc.cache == nil {
		return
	}

	ctx := context.Background()
	const scanPattern = "properties:*"
	const scanCount = 100

	var keysToDelete []string
	var cursor uint64
	var err error

	for {
		var currentKeys []string
		currentKeys, cursor, err = pc.cache.Scan(ctx, cursor, scanPattern, scanCount).Result()
		if err != nil {
			log.Printf("Error during Redis SCAN for pattern '%s': %v", scanPattern, err)
			return
		}
		keysToDelete = append(keysToDelete, currentKeys...)
		if cursor == 0 {
			break
		}
	}

	if len(keysToDelete) == 0 {
		return
	}

	pipe := pc.cache.Pipeline()
	for _, key := range keysToDelete {
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("Error deleting %d property cache keys: %v", len(keysToDelete), err)
		return
	}
	log.Printf("Property cache invalidated: %d keys deleted", len(keysToDelete))
}
