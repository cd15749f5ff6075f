package server

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/spacesedan/reviewscore/internal/classifier"
	"github.com/spacesedan/reviewscore/internal/dataset"
	"github.com/spacesedan/reviewscore/internal/models"
	"github.com/spacesedan/reviewscore/internal/pipeline"
)

// Server is the interactive front-end: upload a review CSV, pick a model,
// download the scored result. Classifiers come from the injected registry
// so the handlers never hold process-wide model state of their own.
type Server struct {
	registry   *classifier.Registry
	resultsDir string
}

func New(registry *classifier.Registry, resultsDir string) (*Server, error) {
	if err := os.MkdirAll(resultsDir, os.ModePerm); err != nil {
		return nil, err
	}
	return &Server{registry: registry, resultsDir: resultsDir}, nil
}

// Routes builds the gin engine with all endpoints registered.
func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api/v1")
	{
		api.POST("/score", s.HandleScore)
	}
	r.GET("/download/:name", s.HandleDownload)
	r.GET("/health", s.HandleHealth)

	return r
}

// HandleScore runs one upload through the scoring pipeline. Every failure
// comes back as a user-facing message; nothing panics past this boundary.
func (s *Server) HandleScore(c *gin.Context) {
	key, err := models.ParseModelKey(c.DefaultPostForm("model", string(models.ModelDistilBERT)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "upload a CSV file with a 'review' column"})
		return
	}

	upload, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file: " + err.Error()})
		return
	}
	defer upload.Close()

	clf, err := s.registry.Resolve(key)
	if err != nil {
		slog.Error("[Server] Classifier unavailable",
			slog.String("model", string(key)),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading model: " + err.Error()})
		return
	}

	dest := dataset.InteractiveResultPath(s.resultsDir, key)
	path, err := pipeline.Run(c.Request.Context(), upload, clf, dest)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "Done! Download ready.",
		"file":   "/download/" + filepath.Base(path),
	})
}

// HandleDownload serves a previously generated result as an attachment.
func (s *Server) HandleDownload(c *gin.Context) {
	name := filepath.Base(c.Param("name"))
	path := filepath.Join(s.resultsDir, name)

	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "result not found"})
		return
	}

	c.FileAttachment(path, name)
}

func (s *Server) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// statusFor maps pipeline failures onto HTTP statuses: client-fixable
// dataset problems are 4xx, model and IO failures are 5xx.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dataset.ErrParse),
		errors.Is(err, pipeline.ErrMissingColumn),
		errors.Is(err, pipeline.ErrNullValue),
		errors.Is(err, pipeline.ErrInvalidContent):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
