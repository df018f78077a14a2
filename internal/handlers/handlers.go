package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"path/filepath"

	"folio/internal/database"
	"folio/internal/ingest"
	"folio/internal/labels"
	"folio/internal/portfolio"
	"folio/internal/render"
	"folio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	store  service.Store
	dash   *service.Dashboard
	labels *labels.Catalog
	format portfolio.Formatter
	lang   string
	log    *logrus.Logger
}

func NewHandler(s service.Store, d *service.Dashboard, l *labels.Catalog, f portfolio.Formatter, lang string, log *logrus.Logger) *Handler {
	return &Handler{store: s, dash: d, labels: l, format: f, lang: lang, log: log}
}

// Register mounts every route of the API on r.
func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/health", h.Health)
	r.POST("/datasets", h.UploadDataset)
	r.GET("/datasets", h.ListDatasets)
	r.GET("/datasets/:id", h.GetDataset)
	r.DELETE("/datasets/:id", h.DeleteDataset)
	r.GET("/datasets/:id/report", h.GetReport)
	r.GET("/datasets/:id/options", h.GetOptions)
	r.GET("/datasets/:id/export", h.Export)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) UploadDataset(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		h.log.Warnf("upload without file: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.log.Errorf("open upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}
	defer f.Close()

	name := c.PostForm("name")
	if name == "" {
		name = filepath.Base(fh.Filename)
	}
	ds, err := h.dash.Import(c.Request.Context(), name, "upload", f)
	if err != nil {
		h.fail(c, "import dataset", err)
		return
	}
	c.JSON(http.StatusCreated, ds)
}

func (h *Handler) ListDatasets(c *gin.Context) {
	list, err := h.store.ListDatasets(c.Request.Context())
	if err != nil {
		h.fail(c, "list datasets", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetDataset(c *gin.Context) {
	ds, err := h.store.GetDataset(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get dataset", err)
		return
	}
	c.JSON(http.StatusOK, ds)
}

func (h *Handler) DeleteDataset(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteDataset(c.Request.Context(), id); err != nil {
		h.fail(c, "delete dataset", err)
		return
	}
	h.log.Infof("deleted dataset %s", id)
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) GetReport(c *gin.Context) {
	r, ok := h.report(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) GetOptions(c *gin.Context) {
	opts, err := h.dash.Options(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "filter options", err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

// Export writes one formatted table of the report. The table parameter picks
// summary (default) or detail, format picks json (default), csv or msgpack.
func (h *Handler) Export(c *gin.Context) {
	set := h.labels.Lookup(c.DefaultQuery("lang", h.lang))
	r, ok := h.report(c)
	if !ok {
		return
	}

	var t render.Table
	switch c.DefaultQuery("table", "summary") {
	case "summary":
		t = render.SummaryTable(r, set, h.format)
	case "detail":
		t = render.DetailTable(r, set, h.format)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "table must be summary or detail"})
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "json":
		c.JSON(http.StatusOK, t)
	case "csv":
		var buf bytes.Buffer
		if err := render.WriteCSV(&buf, t); err != nil {
			h.fail(c, "export csv", err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+r.Dataset.ID+`.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	case "msgpack":
		b, err := render.MarshalMsgpack(t)
		if err != nil {
			h.fail(c, "export msgpack", err)
			return
		}
		c.Data(http.StatusOK, "application/msgpack", b)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be json, csv or msgpack"})
	}
}

func (h *Handler) report(c *gin.Context) (*service.Report, bool) {
	q, err := service.ParseQuery(c.Request.URL.Query())
	if err != nil {
		h.log.Warnf("invalid query: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	r, err := h.dash.Build(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		h.fail(c, "build report", err)
		return nil, false
	}
	return r, true
}

// fail maps err to a status code and writes the error body.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	var missing *ingest.MissingColumnsError
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
	case errors.As(err, &missing):
		h.log.Warnf("%s: %v", op, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "missing_columns": missing.Columns})
	default:
		h.log.Errorf("%s failed: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": op + " failed"})
	}
}
