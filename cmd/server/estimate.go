package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/newindiatimber/timbercraft/internal/estimator"
	"github.com/newindiatimber/timbercraft/internal/quote"
)

const maxEstimateItems = 200

type estimateRequest struct {
	ProjectType string                    `json:"projectType"`
	AreaSize    float64                   `json:"areaSize"`
	Items       []estimator.EstimatorItem `json:"items"`
}

type estimateResponse struct {
	Estimate    estimator.ProjectEstimate `json:"estimate"`
	Suggestions []string                  `json:"suggestions"`
}

type materialView struct {
	estimator.MaterialRate
	DisplayName string `json:"displayName"`
}

type materialsResponse struct {
	Materials []materialView     `json:"materials"`
	Styles    []estimator.Style  `json:"styles"`
	Finishes  []estimator.Finish `json:"finishes"`
}

func (s *server) handleMaterials(w http.ResponseWriter, r *http.Request) {
	rates := s.materials.Rates()
	views := make([]materialView, 0, len(rates))
	for _, rate := range rates {
		views = append(views, materialView{MaterialRate: rate, DisplayName: s.materials.DisplayName(rate.Key)})
	}
	writeJSON(w, http.StatusOK, materialsResponse{
		Materials: views,
		Styles:    estimator.StyleOptions(),
		Finishes:  estimator.FinishOptions(),
	})
}

func (s *server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	templates := estimator.Templates()
	if t := r.URL.Query().Get("type"); t != "" {
		templates = estimator.TemplatesByType(estimator.ItemType(t))
	}
	if templates == nil {
		templates = []estimator.ItemTemplate{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": templates})
}

func (s *server) handleQuickStart(w http.ResponseWriter, r *http.Request) {
	area, err := strconv.ParseFloat(r.URL.Query().Get("area"), 64)
	if err != nil || area <= 0 {
		writeError(w, http.StatusBadRequest, "area must be a number greater than 0")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": estimator.QuickStartItems(area)})
}

func (s *server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readEstimateRequest(w, r)
	if !ok {
		return
	}

	est := s.materials.ProjectEstimate(req.ProjectType, req.AreaSize, req.Items)
	writeJSON(w, http.StatusOK, estimateResponse{
		Estimate:    est,
		Suggestions: s.materials.SuggestAlternatives(est.Items),
	})
}

func (s *server) handleEstimateItem(w http.ResponseWriter, r *http.Request) {
	var item estimator.EstimatorItem
	if err := decodeJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateItem(item); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item.UnitPrice = s.materials.UnitPrice(item)
	item.TotalPrice = s.materials.ItemPrice(item)
	writeJSON(w, http.StatusOK, item)
}

func (s *server) handleEstimateQuiz(w http.ResponseWriter, r *http.Request) {
	var answers estimator.QuizAnswers
	if err := decodeJSON(r, &answers); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if answers.AreaSize < 0 || answers.Doors < 0 || answers.Windows < 0 {
		writeError(w, http.StatusBadRequest, "area, doors and windows cannot be negative")
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"estimate": estimator.QuickQuizEstimate(answers)})
}

func (s *server) handleEstimateExport(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readEstimateRequest(w, r)
	if !ok {
		return
	}

	est := s.materials.ProjectEstimate(req.ProjectType, req.AreaSize, req.Items)
	now := s.now()

	var buf bytes.Buffer
	if err := quote.Export(&buf, s.materials, est, s.materials.SuggestAlternatives(est.Items), now); err != nil {
		s.logger.Error("failed to export quote", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to export quote")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", quote.Filename(now)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *server) readEstimateRequest(w http.ResponseWriter, r *http.Request) (estimateRequest, bool) {
	var req estimateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return req, false
	}
	if req.AreaSize < 0 {
		writeError(w, http.StatusBadRequest, "areaSize cannot be negative")
		return req, false
	}
	if len(req.Items) > maxEstimateItems {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("at most %d items per estimate", maxEstimateItems))
		return req, false
	}
	for i, item := range req.Items {
		if err := validateItem(item); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("items[%d]: %v", i, err))
			return req, false
		}
	}
	return req, true
}

// validateItem checks the shape of an item. An unknown material is allowed and
// prices at zero.
func validateItem(item estimator.EstimatorItem) error {
	switch item.Type {
	case estimator.ItemDoor, estimator.ItemWindow, estimator.ItemCustom:
	default:
		return errors.New("type must be one of door, window, custom")
	}
	switch item.Dimensions.Unit {
	case "", estimator.UnitFeet, estimator.UnitInch, "feet":
	default:
		return errors.New("unit must be ft or inch")
	}

	d := item.Dimensions
	switch {
	case item.Name == "":
		return errors.New("name is required")
	case item.Material == "":
		return errors.New("material is required")
	case d.Width <= 0 || d.Height <= 0:
		return errors.New("width and height must be greater than 0")
	case d.Depth < 0:
		return errors.New("depth cannot be negative")
	case item.Quantity < 1:
		return errors.New("quantity must be at least 1")
	}
	return nil
}
