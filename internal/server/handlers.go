package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/fashion-assistant/internal/outfit"
	"github.com/jonathan/fashion-assistant/internal/store"
	"github.com/jonathan/fashion-assistant/internal/types"
)

// maxImageBytes caps one uploaded image at 10MB.
const maxImageBytes = 10 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	database := "connected"
	if err := s.store.Ping(r.Context()); err != nil {
		database = "disconnected"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status, "database": database})
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		city = "Taipei"
	}

	snapshot, err := s.weather.Get(r.Context(), city)
	if err != nil {
		s.log.Eventf("weather", "lookup failed for %q: %v", city, err)
		http.Error(w, "failed to fetch weather", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// uploadResponse summarizes one batch upload.
type uploadResponse struct {
	SavedCount     int               `json:"saved_count"`
	DuplicateCount int               `json:"duplicate_count"`
	Items          []types.TagRecord `json:"items"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(int64(s.maxBatch) * maxImageBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		http.Error(w, "no files provided", http.StatusBadRequest)
		return
	}
	if len(files) > s.maxBatch {
		http.Error(w, "too many files in one batch", http.StatusBadRequest)
		return
	}

	var images [][]byte
	for _, header := range files {
		if header.Size > maxImageBytes {
			continue
		}
		contentType := header.Header.Get("Content-Type")
		if contentType != "image/jpeg" && contentType != "image/png" && contentType != "image/jpg" {
			continue
		}

		file, err := header.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
		_ = file.Close()
		if err != nil {
			continue
		}
		images = append(images, data)
	}

	if len(images) == 0 {
		http.Error(w, "no valid image files", http.StatusBadRequest)
		return
	}

	records := s.tagger.BatchAutoTag(r.Context(), images)
	if len(records) != len(images) {
		http.Error(w, "tagging failed", http.StatusBadGateway)
		return
	}

	resp := uploadResponse{Items: []types.TagRecord{}}
	for i, record := range records {
		hash := store.ImageHash(images[i])

		existing, err := s.store.FindByImageHash(r.Context(), userID, hash)
		if err == nil && existing != "" {
			resp.DuplicateCount++
			continue
		}

		item := types.ClothingItem{
			Name:      record.Name,
			Category:  record.Category,
			Color:     record.Color,
			Style:     record.Style,
			Warmth:    types.DefaultWarmth,
			ImageHash: hash,
		}
		if _, err := s.store.SaveItem(r.Context(), userID, item); err != nil {
			s.log.Eventf("upload", "failed to save item %q: %v", record.Name, err)
			continue
		}
		resp.SavedCount++
		resp.Items = append(resp.Items, record)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListWardrobe(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := s.store.ListItems(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to list wardrobe", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []types.ClothingItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	itemID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	deleted, err := s.store.DeleteItem(r.Context(), userID, itemID)
	if err != nil {
		http.Error(w, "failed to delete item", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBatchDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		ItemIDs []int64 `json:"item_ids" validate:"required,min=1"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.validator.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	deleted, err := s.store.BatchDeleteItems(r.Context(), userID, req.ItemIDs)
	if err != nil {
		http.Error(w, "failed to delete items", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted_count": deleted})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to load profile", http.StatusInternalServerError)
		return
	}
	if profile == nil {
		profile = &types.UserProfile{ThermalPreference: types.ThermalNormal}
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var profile types.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if profile.ThermalPreference == "" {
		profile.ThermalPreference = types.ThermalNormal
	}

	if err := s.store.SaveProfile(r.Context(), userID, &profile); err != nil {
		http.Error(w, "failed to save profile", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// recommendationRequest is the body for POST /recommendation.
type recommendationRequest struct {
	City          string  `json:"city" validate:"required"`
	Style         string  `json:"style"`
	Occasion      string  `json:"occasion"`
	LockedItemIDs []int64 `json:"locked_item_ids"`
}

func (s *Server) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.validator.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Occasion == "" {
		req.Occasion = "a day out"
	}

	// Wardrobe, weather, and profile lookups are independent.
	var (
		wardrobe []types.ClothingItem
		snapshot types.WeatherSnapshot
		profile  *types.UserProfile
	)
	g, gCtx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		wardrobe, err = s.store.ListItems(gCtx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		snapshot, err = s.weather.Get(gCtx, req.City)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = s.store.GetProfile(gCtx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Eventf("recommend", "collaborator lookup failed: %v", err)
		http.Error(w, "failed to gather recommendation inputs", http.StatusBadGateway)
		return
	}

	bundle := s.recommender.Generate(r.Context(), outfit.Request{
		Wardrobe:      wardrobe,
		Weather:       snapshot,
		Style:         req.Style,
		Occasion:      req.Occasion,
		Profile:       profile,
		LockedItemIDs: req.LockedItemIDs,
	})
	if bundle == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"message": "no recommendation could be generated; the wardrobe may be empty",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"bundle":  bundle,
	})
}
