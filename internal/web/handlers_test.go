package web

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-importer/internal/config"
	"contact-importer/internal/importer"
	"contact-importer/internal/store"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			RequestTimeout:  5 * time.Second,
			ShutdownTimeout: time.Second,
		},
		Import: config.ImportConfig{
			MaxFileSize:     1 << 20,
			Timeout:         time.Minute,
			SourceEncoding:  "utf-8",
			ResultRetention: time.Minute,
		},
		Rate: config.RateLimitConfig{Enabled: false},
	}
}

func newTestServer(t *testing.T) (*Server, *store.MemStore, *store.MemErrorLog) {
	t.Helper()
	st := store.NewMemStore()
	el := store.NewMemErrorLog()
	svc := importer.NewService(importer.New(st, el, "utf-8"))
	return NewServer(testConfig(), svc), st, el
}

func multipartBody(t *testing.T, fields map[string]string, filename, fileData string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(fileData))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

const testCSV = "name,email,birth_date,phone,address,credit_card\n" +
	"John Doe,john@example.com,1990-05-20,(+57) 320 432 05 09,Ave 56 987,4111111111111111\n" +
	",jane@example.com,1990-05-20,(+57) 320 432 05 09,Ave 56 987,4111111111111111\n"

func TestStartImportAccepted(t *testing.T) {
	srv, _, _ := newTestServer(t)
	owner := uuid.New()

	body, contentType := multipartBody(t, map[string]string{"user_id": owner.String()}, "contacts.csv", testCSV)
	req := httptest.NewRequest(http.MethodPost, "/api/contacts/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp startImportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ImportID)
	assert.Equal(t, "processing", resp.Status)
}

func TestStartImportThenResult(t *testing.T) {
	srv, st, el := newTestServer(t)
	owner := uuid.New()

	body, contentType := multipartBody(t, map[string]string{"user_id": owner.String()}, "contacts.csv", testCSV)
	req := httptest.NewRequest(http.MethodPost, "/api/contacts/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp startImportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	resultReq := httptest.NewRequest(http.MethodGet, "/api/imports/"+resp.ImportID+"/result", nil)
	resultRec := httptest.NewRecorder()
	srv.Router().ServeHTTP(resultRec, resultReq)
	require.Equal(t, http.StatusOK, resultRec.Code)

	var status importer.Status
	require.NoError(t, json.Unmarshal(resultRec.Body.Bytes(), &status))
	assert.Equal(t, importer.PhaseComplete, status.Phase)
	require.NotNil(t, status.Result)
	assert.Equal(t, 2, status.Result.Total)
	assert.Equal(t, 1, status.Result.Created)
	assert.Equal(t, 1, status.Result.Failed)

	assert.Len(t, st.Contacts, 1)
	assert.Len(t, el.Entries, 1)
}

func TestStartImportWithColumnMapping(t *testing.T) {
	srv, st, _ := newTestServer(t)
	owner := uuid.New()

	csv := "Full Name,email,birth_date,phone,address,credit_card\n" +
		"John Doe,john@example.com,1990-05-20,(+57) 320 432 05 09,Ave 56 987,4111111111111111\n"
	fields := map[string]string{
		"user_id": owner.String(),
		"columns": `{"name":"Full Name"}`,
	}
	body, contentType := multipartBody(t, fields, "contacts.csv", csv)
	req := httptest.NewRequest(http.MethodPost, "/api/contacts/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp startImportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	resultReq := httptest.NewRequest(http.MethodGet, "/api/imports/"+resp.ImportID+"/result", nil)
	resultRec := httptest.NewRecorder()
	srv.Router().ServeHTTP(resultRec, resultReq)
	require.Equal(t, http.StatusOK, resultRec.Code)

	require.Len(t, st.Contacts, 1)
	assert.Equal(t, "John Doe", st.Contacts[0].Name)
}

func TestStartImportValidation(t *testing.T) {
	tests := []struct {
		name     string
		fields   map[string]string
		filename string
		fileData string
		want     int
	}{
		{
			name:   "missing user_id",
			fields: map[string]string{},
			want:   http.StatusBadRequest,
		},
		{
			name:   "bad user_id",
			fields: map[string]string{"user_id": "not-a-uuid"},
			want:   http.StatusBadRequest,
		},
		{
			name:   "missing file",
			fields: map[string]string{"user_id": uuid.New().String()},
			want:   http.StatusBadRequest,
		},
		{
			name:     "empty file",
			fields:   map[string]string{"user_id": uuid.New().String()},
			filename: "contacts.csv",
			want:     http.StatusBadRequest,
		},
		{
			name: "bad columns json",
			fields: map[string]string{
				"user_id": uuid.New().String(),
				"columns": "{not json",
			},
			filename: "contacts.csv",
			fileData: testCSV,
			want:     http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, _ := newTestServer(t)

			body, contentType := multipartBody(t, tt.fields, tt.filename, tt.fileData)
			req := httptest.NewRequest(http.MethodPost, "/api/contacts/import", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestImportStatusNotFound(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/imports/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRateLimitOnImportEndpoint(t *testing.T) {
	cfg := testConfig()
	cfg.Rate = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1000, ImportLimit: 2}
	st := store.NewMemStore()
	svc := importer.NewService(importer.New(st, store.NewMemErrorLog(), "utf-8"))
	srv := NewServer(cfg, svc)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		body, contentType := multipartBody(t, map[string]string{"user_id": uuid.New().String()}, "contacts.csv", testCSV)
		req := httptest.NewRequest(http.MethodPost, "/api/contacts/import", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, http.StatusAccepted, codes[0])
	assert.Equal(t, http.StatusAccepted, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
}
