package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/verte-zerg/parcours/internal/journey"
	"github.com/verte-zerg/parcours/internal/mentalstate"
	"github.com/verte-zerg/parcours/internal/model"
	"github.com/verte-zerg/parcours/internal/navigation"
)

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type questionsResponse struct {
	Questions []string `json:"questions"`
}

type navigationRequest struct {
	Record model.BehavioralRecord  `json:"record"`
	Items  []model.NavigationItem `json:"items"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:    "OK",
		Message:   "API is running",
		Timestamp: s.cfg.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) listQuestions(c *gin.Context) {
	mode := c.Query("mode")
	if s.cfg.Questions == nil {
		s.log.Error("no question repository configured")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to fetch questions"})
		return
	}
	qs, err := s.cfg.Questions.ListQuestions(c.Request.Context(), mode)
	if err != nil {
		s.log.Error("failed to fetch questions", "mode", mode, "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to fetch questions"})
		return
	}
	if qs == nil {
		qs = []string{}
	}
	s.metrics.QuestionsServed(s.modeLabel(mode), len(qs))
	c.JSON(http.StatusOK, questionsResponse{Questions: qs})
}

// modeLabel keeps metric labels to the catalog modes.
func (s *Server) modeLabel(mode string) string {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		return "general"
	}
	for _, item := range s.cfg.Items {
		if item.ID == mode {
			return mode
		}
	}
	return "other"
}

func (s *Server) generateJourney(c *gin.Context) {
	var answers model.JourneyAnswers
	if err := c.ShouldBindJSON(&answers); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid journey answers: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, journey.Generate(answers))
}

func (s *Server) rankNavigation(c *gin.Context) {
	var req navigationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid navigation request: " + err.Error()})
		return
	}
	rec := req.Record
	if rec.HoverTimes == nil {
		rec.HoverTimes = map[string]int64{}
	}
	if rec.Preferences == nil {
		rec.Preferences = map[string]int{}
	}
	mentalstate.Apply(&rec)

	items := req.Items
	if items == nil {
		items = s.cfg.Items
	}
	c.JSON(http.StatusOK, navigation.Rank(items, rec))
}
