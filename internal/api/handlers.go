package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"

	"github.com/adilg123/lz77-elias-codec/internal/compression"
	"github.com/adilg123/lz77-elias-codec/internal/compression/algorithms/container"
	"github.com/adilg123/lz77-elias-codec/internal/compression/codecerr"
	"github.com/adilg123/lz77-elias-codec/internal/config"
)

var log = logging.MustGetLogger("api")

// CompressRequest represents the compression request payload
type CompressRequest struct {
	Algorithm string `form:"algorithm"`
	Window    *int   `form:"window"`
	Lookahead *int   `form:"lookahead"`
}

// DecompressRequest represents the decompression request payload
type DecompressRequest struct {
	Algorithm string `form:"algorithm"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SymbolCode is one row of a container's code table.
type SymbolCode struct {
	Symbol int    `json:"symbol"`
	Code   string `json:"code"`
}

// InspectResponse describes a container header.
type InspectResponse struct {
	Name            string       `json:"name"`
	TotalSymbols    uint64       `json:"total_symbols"`
	DistinctSymbols int          `json:"distinct_symbols"`
	MaxCodeLength   int          `json:"max_code_length"`
	Codes           []SymbolCode `json:"codes"`
}

type handlers struct {
	cfg *config.Config
}

// HandleCompress handles file compression requests
func (h *handlers) HandleCompress(c *gin.Context) {
	var req CompressRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Algorithm == "" {
		req.Algorithm = "lz77"
	}

	// Validate algorithm
	if !compression.IsValidAlgorithm(req.Algorithm) {
		badRequest(c, "Invalid algorithm", fmt.Sprintf("Supported algorithms: %v", compression.GetSupportedAlgorithms()))
		return
	}

	header, fileContent, ok := h.readUpload(c)
	if !ok {
		return
	}

	options := compression.Options{
		Algorithm:      req.Algorithm,
		Name:           filepath.Base(header.Filename),
		WindowLimit:    h.cfg.WindowLimit,
		LookaheadLimit: h.cfg.LookaheadLimit,
	}
	if req.Window != nil {
		options.WindowLimit = *req.Window
	}
	if req.Lookahead != nil {
		options.LookaheadLimit = *req.Lookahead
	}

	compressedData, stats, err := compression.Compress(fileContent, options)
	if err != nil {
		codecFailure(c, "Compression failed", err)
		return
	}
	log.Infof("[%s] compressed %q: %d -> %d bytes (%.1f%%)",
		c.GetString("requestID"), stats.Name, stats.OriginalSize, stats.ProcessedSize, stats.CompressionRatio)

	// Set response headers for file download
	filename := fmt.Sprintf("%s.bin", options.Name)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("X-Original-Size", strconv.Itoa(stats.OriginalSize))
	c.Header("X-Compression-Ratio", strconv.FormatFloat(stats.CompressionRatio, 'f', 2, 64))
	c.Data(http.StatusOK, "application/octet-stream", compressedData)
}

// HandleDecompress handles file decompression requests
func (h *handlers) HandleDecompress(c *gin.Context) {
	var req DecompressRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "Invalid request", err.Error())
		return
	}
	if req.Algorithm == "" {
		req.Algorithm = "lz77"
	}

	if !compression.IsValidAlgorithm(req.Algorithm) {
		badRequest(c, "Invalid algorithm", fmt.Sprintf("Supported algorithms: %v", compression.GetSupportedAlgorithms()))
		return
	}

	_, fileContent, ok := h.readUpload(c)
	if !ok {
		return
	}

	decompressedData, stats, err := compression.Decompress(fileContent, compression.Options{
		Algorithm:     req.Algorithm,
		MaxOutputSize: h.cfg.MaxFileSize,
	})
	if err != nil {
		codecFailure(c, "Decompression failed", err)
		return
	}
	log.Infof("[%s] decompressed %q: %d -> %d bytes",
		c.GetString("requestID"), stats.Name, stats.OriginalSize, stats.ProcessedSize)

	filename := filepath.Base(stats.Name)
	if stats.Name == "" {
		filename = "file"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/octet-stream", decompressedData)
}

// HandleInspect reports the header and code table of an uploaded container.
func (h *handlers) HandleInspect(c *gin.Context) {
	_, fileContent, ok := h.readUpload(c)
	if !ok {
		return
	}
	header, err := container.Inspect(fileContent)
	if err != nil {
		codecFailure(c, "Inspection failed", err)
		return
	}
	resp := InspectResponse{
		Name:            header.Name,
		TotalSymbols:    header.TotalSymbols,
		DistinctSymbols: header.Distinct(),
		MaxCodeLength:   header.Table.MaxLen(),
	}
	for _, s := range header.Table.Symbols() {
		code, _ := header.Table.Code(s)
		resp.Codes = append(resp.Codes, SymbolCode{Symbol: int(s), Code: code.String()})
	}
	c.JSON(http.StatusOK, resp)
}

// HandleInfo provides information about supported algorithms
func (h *handlers) HandleInfo(c *gin.Context) {
	info := map[string]interface{}{
		"service": "LZ77 / Huffman / Elias-gamma codec",
		"version": "1.0.0",
		"algorithms": map[string]interface{}{
			"supported": compression.GetSupportedAlgorithms(),
			"descriptions": map[string]string{
				"lz77": "LZ77 with a Z-algorithm match finder, Huffman-coded literals and Elias-gamma coded integers",
			},
		},
		"defaults": map[string]interface{}{
			"window":    h.cfg.WindowLimit,
			"lookahead": h.cfg.LookaheadLimit,
		},
		"limits": map[string]interface{}{
			"max_file_size": fmt.Sprintf("%d bytes (%.1f MB)", h.cfg.MaxFileSize, float64(h.cfg.MaxFileSize)/(1024*1024)),
		},
		"endpoints": map[string]interface{}{
			"compress":   "POST /api/v1/compress - Upload file for compression (fields: file, window, lookahead)",
			"decompress": "POST /api/v1/decompress - Upload a container for decompression",
			"inspect":    "POST /api/v1/inspect - Show the header and code table of a container",
			"info":       "GET /info - Get service information",
			"health":     "GET /health - Health check",
		},
	}

	c.JSON(http.StatusOK, info)
}

// HandleHealth provides a simple health check endpoint
func HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "lz77-elias-codec",
	})
}

// readUpload reads the "file" form field, answering the request itself on
// failure.
func (h *handlers) readUpload(c *gin.Context) (*multipart.FileHeader, []byte, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		badRequest(c, "File upload error", "No file provided or file upload failed")
		return nil, nil, false
	}
	defer file.Close()

	if header.Size > h.cfg.MaxFileSize {
		badRequest(c, "File too large", fmt.Sprintf("Maximum file size is %d bytes", h.cfg.MaxFileSize))
		return nil, nil, false
	}

	fileContent, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "File read error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to read uploaded file",
		})
		return nil, nil, false
	}
	return header, fileContent, true
}

func badRequest(c *gin.Context, title, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   title,
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// codecFailure maps codec errors onto status codes: bad parameters are the
// caller's fault, undecodable input is unprocessable, anything else is ours.
func codecFailure(c *gin.Context, title string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, codecerr.ErrInvalidParameter):
		status = http.StatusBadRequest
	case codecerr.IsCodecError(err):
		status = http.StatusUnprocessableEntity
	}
	log.Warningf("[%s] %s: %v", c.GetString("requestID"), title, err)
	c.JSON(status, ErrorResponse{
		Error:   title,
		Code:    status,
		Message: err.Error(),
	})
}
