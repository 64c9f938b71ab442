package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jtpils/lidarseg/internal/graphcut/refflow"
	"github.com/jtpils/lidarseg/internal/raster"
	"github.com/jtpils/lidarseg/internal/seedio"
	"github.com/jtpils/lidarseg/internal/session"
)

func newTestRouter(s *Server) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	v1 := api.Group("/v1")
	v1.GET("/ping", getPing)
	v1.POST("/segment", s.postSegment)
	return r
}

func TestPing(t *testing.T) {
	r := newTestRouter(&Server{Solver: refflow.BFSSolver{}})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestPostSegmentEndToEnd(t *testing.T) {
	dir := t.TempDir()

	img := raster.NewImage(6, 6, 4)
	for i := range img.Data {
		img.Data[i] = 0.5
	}
	imgFile := filepath.Join(dir, "img.fits")
	if err := img.WriteFile(imgFile); err != nil {
		t.Fatalf("write image: %v", err)
	}

	seedFile := filepath.Join(dir, "seeds.txt")
	seeds := session.SeedSet{
		Sources: []raster.Coord{{X: 0, Y: 0}},
		Sinks:   []raster.Coord{{X: 5, Y: 5}},
	}
	if err := seedio.WriteSeedTextFile(seedFile, seeds); err != nil {
		t.Fatalf("write seeds: %v", err)
	}

	maskFile := filepath.Join(dir, "mask.png")

	reqBody, _ := json.Marshal(map[string]interface{}{
		"imageFile": imgFile,
		"seedFile":  seedFile,
		"maskFile":  maskFile,
		"params":    session.DefaultParams(),
	})

	r := newTestRouter(&Server{Solver: refflow.BFSSolver{}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/segment", bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if _, err := os.Stat(maskFile); err != nil {
		t.Errorf("expected mask file to be written: %v", err)
	}
}
