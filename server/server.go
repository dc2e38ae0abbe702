// Package server provides an HTTP upload service around the converter:
// upload an XML file, get back a preview plus a handle for downloading the
// converted XLSX workbook.
//
// Routes:
//
//	POST /convert       multipart upload ("file") -> conversion result JSON
//	GET  /download/:id  converted workbook as an attachment
//	GET  /healthz       liveness probe
//
// Converted workbooks are written to uuid-named files in the configured
// temp directory and kept until the process exits or the client deletes
// them via DELETE /files/:id.
package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tsawler/flatxml"
	"github.com/tsawler/flatxml/format"
	"github.com/tsawler/flatxml/htmlout"
	"github.com/tsawler/flatxml/xlsxout"
)

// Preview limits: how much of the converted table the /convert response
// carries back to the client.
const (
	previewRows = 100
	previewCols = 50
)

// Config holds server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// MaxUploadBytes caps the accepted request body size.
	MaxUploadBytes int64
	// TempDir is where converted workbooks are stored.
	TempDir string
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults: FLATXML_ADDR (":8080"), FLATXML_MAX_UPLOAD (bytes,
// 256 MiB), FLATXML_TEMP_DIR (the OS temp directory).
func ConfigFromEnv() Config {
	cfg := Config{
		Addr:           ":8080",
		MaxUploadBytes: 256 << 20,
		TempDir:        os.TempDir(),
	}
	if v := os.Getenv("FLATXML_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("FLATXML_MAX_UPLOAD"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxUploadBytes = n
		}
	}
	if v := os.Getenv("FLATXML_TEMP_DIR"); v != "" {
		cfg.TempDir = v
	}
	return cfg
}

// storedFile is one converted workbook awaiting download.
type storedFile struct {
	path     string
	filename string
}

// Server converts uploaded XML documents and serves the results.
type Server struct {
	cfg    Config
	engine *gin.Engine

	mu    sync.Mutex
	files map[string]storedFile
}

// New creates a Server with its routes registered.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 256 << 20
	}
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}

	s := &Server{
		cfg:    cfg,
		engine: gin.Default(),
		files:  make(map[string]storedFile),
	}
	s.engine.MaxMultipartMemory = 8 << 20

	s.engine.GET("/healthz", s.handleHealth)
	s.engine.POST("/convert", s.handleConvert)
	s.engine.GET("/download/:id", s.handleDownload)
	s.engine.DELETE("/files/:id", s.handleDelete)
	return s
}

// Handler exposes the router, mainly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the server on the configured address and blocks.
func (s *Server) Run() error {
	return s.engine.Run(s.cfg.Addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleConvert(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	if fh.Filename == "" || format.Detect(fh.Filename) != format.XML {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file type, please upload an XML file"})
		return
	}

	src, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("reading upload: %v", err)})
		return
	}
	defer src.Close()

	tbl, warnings, err := flatxml.FromReader(src).Table()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid XML: %v", err)})
		return
	}
	if tbl.RowCount() == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no data found in XML file"})
		return
	}

	id := uuid.NewString()
	outPath := filepath.Join(s.cfg.TempDir, id+".xlsx")
	if err := xlsxout.WriteFile(outPath, tbl); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("writing workbook: %v", err)})
		return
	}

	base := strings.TrimSuffix(filepath.Base(fh.Filename), filepath.Ext(fh.Filename))
	if base == "" {
		base = "converted"
	}
	s.mu.Lock()
	s.files[id] = storedFile{path: outPath, filename: base + ".xlsx"}
	s.mu.Unlock()

	var preview strings.Builder
	if err := htmlout.RenderPreview(&preview, tbl, previewRows, previewCols); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("rendering preview: %v", err)})
		return
	}

	warningStrings := make([]string, 0, len(warnings))
	for _, w := range warnings {
		warningStrings = append(warningStrings, w.String())
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       id,
		"filename": base + ".xlsx",
		"rows":     tbl.RowCount(),
		"columns":  tbl.ColCount(),
		"preview":  preview.String(),
		"warnings": warningStrings,
	})
}

func (s *Server) handleDownload(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	f, ok := s.files[id]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}
	c.FileAttachment(f.path, f.filename)
}

func (s *Server) handleDelete(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	f, ok := s.files[id]
	delete(s.files, id)
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("removing file: %v", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
