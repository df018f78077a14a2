package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"folio/internal/database"
	"folio/internal/labels"
	"folio/internal/mocks"
	"folio/internal/models"
	"folio/internal/portfolio"
	"folio/internal/render"
	"folio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

const familyCSV = `family member name,broker name,sector code,stock code,invested amount,current value,transaction date,portfolio metrics code
Ravi,Upstox,IT,INFY,10000,12000,2024-01-01,1.2
Ravi,Groww,IT,TCS,5000,4000,,0.8
Asha,Upstox,Energy,RELIANCE,8000,9000,2024-02-01,
`

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newRouter(s service.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := testLogger()
	catalog, _ := labels.NewCatalog("")
	h := NewHandler(s, service.NewDashboard(s, log), catalog, portfolio.NewFormatter("INR"), labels.DefaultLanguage, log)
	r := gin.New()
	h.Register(r)
	return r
}

func setupRouter(t *testing.T) *gin.Engine {
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "folio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := database.New(db, testLogger())
	require.NoError(t, repo.Migrate(context.Background()))
	return newRouter(repo)
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func upload(t *testing.T, r http.Handler, name, content string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "family.csv")
	require.NoError(t, err)
	_, err = io.WriteString(fw, content)
	require.NoError(t, err)
	if name != "" {
		require.NoError(t, mw.WriteField("name", name))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/datasets", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return do(r, req)
}

func uploadFamily(t *testing.T, r http.Handler) models.Dataset {
	w := upload(t, r, "", familyCSV)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var ds models.Dataset
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ds))
	return ds
}

func TestHealth(t *testing.T) {
	w := do(setupRouter(t), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestUploadAndList(t *testing.T) {
	r := setupRouter(t)
	ds := uploadFamily(t, r)
	assert.NotEmpty(t, ds.ID)
	assert.Equal(t, "family.csv", ds.Name)
	assert.Equal(t, 3, ds.Rows)

	w := do(r, httptest.NewRequest(http.MethodGet, "/datasets", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Dataset
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, ds.ID, list[0].ID)

	w = do(r, httptest.NewRequest(http.MethodGet, "/datasets/"+ds.ID, nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpload_NamedDataset(t *testing.T) {
	r := setupRouter(t)
	w := upload(t, r, "q1 snapshot", familyCSV)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"q1 snapshot"`)
}

func TestUpload_MissingColumns(t *testing.T) {
	r := setupRouter(t)
	w := upload(t, r, "", "member,broker\nRavi,Upstox\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing columns")
}

func TestUpload_NoFile(t *testing.T) {
	r := setupRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/datasets", strings.NewReader(""))
	w := do(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReport(t *testing.T) {
	r := setupRouter(t)
	ds := uploadFamily(t, r)

	w := do(r, httptest.NewRequest(http.MethodGet, "/datasets/"+ds.ID+"/report?group=sector&member=Ravi", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got struct {
		Empty   bool `json:"empty"`
		Summary []struct {
			Group     string `json:"group"`
			Count     int    `json:"count"`
			Invested  string `json:"invested"`
			Current   string `json:"current"`
			ReturnPct string `json:"return_pct"`
		} `json:"summary"`
		Total struct {
			Group    string `json:"group"`
			Invested string `json:"invested"`
		} `json:"total"`
		Detail []json.RawMessage `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.False(t, got.Empty)
	require.Len(t, got.Summary, 1)
	assert.Equal(t, "IT", got.Summary[0].Group)
	assert.Equal(t, 2, got.Summary[0].Count)
	assert.Equal(t, "15000", got.Summary[0].Invested)
	assert.Equal(t, "16000", got.Summary[0].Current)
	assert.Equal(t, "Total", got.Total.Group)
	assert.Equal(t, "15000", got.Total.Invested)
	assert.Len(t, got.Detail, 2)
}

func TestReport_EmptySelection(t *testing.T) {
	r := setupRouter(t)
	ds := uploadFamily(t, r)

	w := do(r, httptest.NewRequest(http.MethodGet, "/datasets/"+ds.ID+"/report?sector=Pharma", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"empty":true`)
}

func TestReport_BadQuery(t *testing.T) {
	r := setupRouter(t)
	ds := uploadFamily(t, r)

	w := do(r, httptest.NewRequest(http.MethodGet, "/datasets/"+ds.ID+"/report?group=colour", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotFound(t *testing.T) {
	r := setupRouter(t)
	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/datasets/missing", nil),
		httptest.NewRequest(http.MethodDelete, "/datasets/missing", nil),
		httptest.NewRequest(http.MethodGet, "/datasets/missing/report", nil),
		httptest.NewRequest(http.MethodGet, "/datasets/missing/options", nil),
		httptest.NewRequest(http.MethodGet, "/datasets/missing/export", nil),
	} {
		w := do(r, req)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s %s", req.Method, req.URL)
		assert.JSONEq(t, `{"error":"dataset not found"}`, w.Body.String())
	}
}

func TestDeleteDataset(t *testing.T) {
	r := setupRouter(t)
	ds := uploadFamily(t, r)

	w := do(r, httptest.NewRequest(http.MethodDelete, "/datasets/"+ds.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, httptest.NewRequest(http.MethodGet, "/datasets/"+ds.ID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOptions(t *testing.T) {
	r := setupRouter(t)
	ds := uploadFamily(t, r)

	w := do(r, httptest.NewRequest(http.MethodGet, "/datasets/"+ds.ID+"/options", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var opts portfolio.Options
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opts))
	assert.Equal(t, []string{"Asha", "Ravi"}, opts.Members)
	assert.Equal(t, []string{"Groww", "Upstox"}, opts.Brokers)
	assert.Equal(t, []string{"Energy", "IT"}, opts.Sectors)
}

func TestExport(t *testing.T) {
	r := setupRouter(t)
	ds := uploadFamily(t, r)
	base := "/datasets/" + ds.ID + "/export"

	w := do(r, httptest.NewRequest(http.MethodGet, base+"?group=broker", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var tab render.Table
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tab))
	require.Len(t, tab.Rows, 3)
	assert.Equal(t, []string{"1", "Groww", "1", "₹5,000.00", "₹4,000.00", "-₹1,000.00", "-20.00%"}, tab.Rows[0])
	assert.Equal(t, "Total", tab.Rows[2][1])

	w = do(r, httptest.NewRequest(http.MethodGet, base+"?table=detail&format=csv", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Member,Broker,Sector"))

	w = do(r, httptest.NewRequest(http.MethodGet, base+"?format=msgpack", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var packed render.Table
	require.NoError(t, msgpack.Unmarshal(w.Body.Bytes(), &packed))
	assert.Equal(t, "Portfolio Summary", packed.Title)

	for _, q := range []string{"?table=chart", "?format=xml"} {
		w = do(r, httptest.NewRequest(http.MethodGet, base+q, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().ListDatasets(gomock.Any()).Return(nil, errors.New("disk full"))

	w := do(newRouter(store), httptest.NewRequest(http.MethodGet, "/datasets", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"list datasets failed"}`, w.Body.String())
}
