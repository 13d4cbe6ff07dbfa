// Package api provides the REST API server for reelgen
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/james-see/reelgen/pkg/abc"
	"github.com/james-see/reelgen/pkg/generator"
	"github.com/james-see/reelgen/pkg/generator/sources"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title reelgen API
// @version 1.0
// @description API for turning model pitch predictions into ABC notation reels
// @host localhost:8080
// @BasePath /api/v1

// GenerateRequest carries raw model predictions
type GenerateRequest struct {
	Predictions []float64 `json:"predictions" binding:"required"`
}

// TuneResponse is the JSON form of a transcribed tune
type TuneResponse struct {
	ABC     string   `json:"abc"`
	Pitches []int    `json:"pitches"`
	Bars    []string `json:"bars"`
	Seed    *uint64  `json:"seed,omitempty"`
}

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	return NewRouter().Run(fmt.Sprintf(":%d", port))
}

// NewRouter builds the gin engine with all routes registered
func NewRouter() *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.POST("/generate", handleGenerate)
		v1.GET("/generate/random", handleGenerateRandom)
		v1.POST("/download", handleDownload)
		v1.POST("/export/midi", handleExportMIDI)
		v1.GET("/scale", scaleInfo)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "reelgen",
	})
}

// scaleInfo godoc
// @Summary Describe the pitch pipeline
// @Description Returns the pitch range, target scale and notation table
// @Tags info
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/scale [get]
func scaleInfo(c *gin.Context) {
	table := make(map[string]string)
	for pitch, sym := range abc.NotationTable() {
		table[strconv.Itoa(pitch)] = sym
	}
	c.JSON(http.StatusOK, gin.H{
		"range":    gin.H{"min": abc.DefaultRange.Min, "max": abc.DefaultRange.Max},
		"scale":    abc.DMajor,
		"key":      abc.DefaultHeader.Key,
		"notes":    abc.NotesPerTune,
		"notation": table,
		"pitches":  abc.EncodablePitches(),
		"formats":  generator.GetSupportedFormats(),
	})
}

// handleGenerate godoc
// @Summary Transcribe predictions
// @Description Turn exactly 256 model predictions into an ABC reel
// @Tags generate
// @Accept json
// @Produce json
// @Param request body GenerateRequest true "Model predictions"
// @Success 200 {object} TuneResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/generate [post]
func handleGenerate(c *gin.Context) {
	tune, ok := transcribeRequest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newTuneResponse(tune, nil))
}

// handleGenerateRandom godoc
// @Summary Generate a random reel
// @Description Generate a reel from seeded random predictions
// @Tags generate
// @Produce json
// @Param seed query int false "Random seed (default: 0)"
// @Param ceiling query number false "Upper bound of the predictions (default: 0.87)"
// @Success 200 {object} TuneResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/generate/random [get]
func handleGenerateRandom(c *gin.Context) {
	seed, err := strconv.ParseUint(c.DefaultQuery("seed", "0"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid seed"})
		return
	}

	ceiling := sources.DefaultCeiling
	if raw, ok := c.GetQuery("ceiling"); ok {
		ceiling, err = strconv.ParseFloat(raw, 64)
		if err != nil || ceiling <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ceiling"})
			return
		}
	}

	gen := generator.New(sources.NewRandom(seed).WithCeiling(ceiling))
	tune, err := gen.Generate(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTuneResponse(tune, &seed))
}

// handleDownload godoc
// @Summary Download ABC
// @Description Transcribe predictions and return the document as abc_notation.txt
// @Tags export
// @Accept json
// @Produce text/plain
// @Param request body GenerateRequest true "Model predictions"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/download [post]
func handleDownload(c *gin.Context) {
	tune, ok := transcribeRequest(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", generator.DefaultABCFilename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(tune.Document))
}

// handleExportMIDI godoc
// @Summary Export MIDI
// @Description Transcribe predictions and return a MIDI rendering
// @Tags export
// @Accept json
// @Produce application/octet-stream
// @Param request body GenerateRequest true "Model predictions"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/export/midi [post]
func handleExportMIDI(c *gin.Context) {
	tune, ok := transcribeRequest(c)
	if !ok {
		return
	}

	data, err := generator.Export(tune, generator.FormatMIDI)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=tune.mid")
	c.Data(http.StatusOK, "audio/midi", data)
}

func transcribeRequest(c *gin.Context) (*abc.Tune, bool) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return nil, false
	}

	tune, err := abc.Transcribe(req.Predictions)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return tune, true
}

// writeError maps pipeline errors to 422 and everything else to 500
func writeError(c *gin.Context, err error) {
	var (
		rangeErr    *abc.RangeError
		encodingErr *abc.EncodingError
		numericErr  *abc.NumericError
	)

	switch {
	case errors.As(err, &rangeErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": "range"})
	case errors.As(err, &encodingErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": "encoding"})
	case errors.As(err, &numericErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": "numeric"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func newTuneResponse(tune *abc.Tune, seed *uint64) TuneResponse {
	return TuneResponse{
		ABC:     tune.Document,
		Pitches: tune.Pitches,
		Bars:    tune.Bars,
		Seed:    seed,
	}
}
