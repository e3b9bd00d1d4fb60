package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"leaddesk/internal/database"
	"leaddesk/internal/domain/notification"
	"leaddesk/internal/domain/upload"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type recorder struct {
	mu      sync.Mutex
	notices []notification.Notice
}

func (r *recorder) Notify(_ context.Context, n notification.Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
	return nil
}

type failingStore struct{}

func (failingStore) Insert(context.Context, *Intake) error { return errors.New("database is locked") }

func (failingStore) GetBySubmissionID(context.Context, string) (*Intake, error) {
	return nil, ErrIntakeNotFound
}

type testServer struct {
	router   *gin.Engine
	repo     Repository
	sessions *SessionStore
	notices  *recorder
}

func newTestServer(t *testing.T, store Store) *testServer {
	t.Helper()
	return newLimitedTestServer(t, store, SessionLimits{})
}

func newLimitedTestServer(t *testing.T, store Store, limits SessionLimits) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &Intake{}, &upload.Upload{}))

	repo := NewRepository(db)
	if store == nil {
		store = repo
	}
	files := upload.NewService(upload.NewRepository(db), t.TempDir(), 1<<20)
	notices := &recorder{}
	sessions := NewSessionStore(time.Hour, limits)
	pipeline := NewPipeline(files, store, notices, time.Second, zap.NewNop())
	h := NewHandler(NewService(sessions, pipeline, repo, nil), 1<<20, zap.NewNop())

	r := gin.New()
	api := r.Group("/api/v1")
	RegisterPublicRoutes(api, h)
	RegisterAdminRoutes(api.Group("/admin"), h)
	return &testServer{router: r, repo: repo, sessions: sessions, notices: notices}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return s.serve(t, req)
}

func (s *testServer) serve(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (s *testServer) upload(t *testing.T, sessionID string, files map[string][]byte) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/intake/sessions/"+sessionID+"/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.serve(t, req)
}

func (s *testServer) start(t *testing.T) string {
	t.Helper()
	code, env := s.do(t, http.MethodPost, "/api/v1/intake/sessions", nil)
	require.Equal(t, http.StatusCreated, code)
	var view SessionView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, StateBusinessInfo, view.State)
	return view.ID
}

// fill walks a session to the last step with a complete record.
func (s *testServer) fill(t *testing.T, id string) {
	t.Helper()
	base := "/api/v1/intake/sessions/" + id

	code, _ := s.do(t, http.MethodPatch, base+"/fields", UpdateFieldsRequest{Fields: map[string]string{
		"legal_name":     "Acme LLC",
		"industry":       "ecommerce",
		"entity_type":    "llc",
		"state_province": "TX",
		"contact_name":   "Jane Doe",
		"contact_email":  "jane@acme.com",
	}})
	require.Equal(t, http.StatusOK, code)
	s.advance(t, id, true)

	code, _ = s.do(t, http.MethodPatch, base+"/fields", UpdateFieldsRequest{Fields: map[string]string{
		"accounting_platform": "xero",
		"bank_accounts":       "2 checking",
		"transaction_volume":  "100-300",
	}})
	require.Equal(t, http.StatusOK, code)
	s.advance(t, id, true)

	code, _ = s.do(t, http.MethodPost, base+"/services/monthly", nil)
	require.Equal(t, http.StatusOK, code)
}

func (s *testServer) advance(t *testing.T, id string, want bool) {
	t.Helper()
	code, env := s.do(t, http.MethodPost, "/api/v1/intake/sessions/"+id+"/advance", nil)
	require.Equal(t, http.StatusOK, code)
	var out struct {
		Moved bool `json:"moved"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Equal(t, want, out.Moved)
}

func TestHandler_SubmitFlow(t *testing.T) {
	s := newTestServer(t, nil)
	id := s.start(t)

	s.advance(t, id, false)
	s.fill(t, id)

	code, _ := s.upload(t, id, map[string][]byte{"statement.pdf": []byte("%PDF-1.7 test")})
	require.Equal(t, http.StatusOK, code)

	code, env := s.do(t, http.MethodPost, "/api/v1/intake/sessions/"+id+"/submit", nil)
	require.Equal(t, http.StatusCreated, code)
	var out SubmitResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "Intake form submitted successfully!", out.Message)
	assert.Len(t, out.NextSteps, 3)

	code, env = s.do(t, http.MethodGet, "/api/v1/intake/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "SESSION_NOT_FOUND", env.Error.Code)

	stored, err := s.repo.GetByID(context.Background(), out.IntakeID)
	require.NoError(t, err)
	assert.Equal(t, id, stored.SubmissionID)
	assert.Equal(t, []string{"monthly"}, stored.Services())
	require.Len(t, stored.FileRefs(), 1)
	assert.Contains(t, stored.FileRefs()[0], "-statement.pdf")

	require.Len(t, s.notices.notices, 1)
	assert.Equal(t, notification.LeadIntake, s.notices.notices[0].LeadType)
	assert.Equal(t, "Acme LLC", s.notices.notices[0].BusinessName)

	code, env = s.do(t, http.MethodGet, "/api/v1/admin/intakes", nil)
	require.Equal(t, http.StatusOK, code)
	var list IntakeListResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, int64(1), list.Total)
}

func TestHandler_SubmitIncomplete(t *testing.T) {
	s := newTestServer(t, nil)
	id := s.start(t)

	code, env := s.do(t, http.MethodPost, "/api/v1/intake/sessions/"+id+"/submit", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "INCOMPLETE_FORM", env.Error.Code)
}

func TestHandler_PersistFailureKeepsSession(t *testing.T) {
	s := newTestServer(t, failingStore{})
	id := s.start(t)
	s.fill(t, id)

	code, env := s.do(t, http.MethodPost, "/api/v1/intake/sessions/"+id+"/submit", nil)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "SUBMISSION_FAILED", env.Error.Code)
	assert.Equal(t, "Failed to submit form. Please try again.", env.Error.Message)
	assert.Empty(t, s.notices.notices)

	code, env = s.do(t, http.MethodGet, "/api/v1/intake/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, code)
	var view SessionView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, StateServicesNotes, view.State)
	assert.Equal(t, "Acme LLC", view.Record.LegalName)
	assert.True(t, view.CanSubmit)
}

func TestHandler_FieldValidation(t *testing.T) {
	s := newTestServer(t, nil)
	id := s.start(t)
	base := "/api/v1/intake/sessions/" + id

	code, env := s.do(t, http.MethodPatch, base+"/fields", UpdateFieldsRequest{Fields: map[string]string{"favorite_color": "blue"}})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "UNKNOWN_FIELD", env.Error.Code)

	code, env = s.do(t, http.MethodPatch, base+"/fields", UpdateFieldsRequest{Fields: map[string]string{
		"legal_name": "Acme LLC",
		"industry":   "mining",
	}})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_OPTION", env.Error.Code)

	// Nothing from the rejected batch was applied.
	_, env = s.do(t, http.MethodGet, base, nil)
	var view SessionView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Empty(t, view.Record.LegalName)

	code, env = s.do(t, http.MethodPost, base+"/services/taxes", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_OPTION", env.Error.Code)

	code, _ = s.do(t, http.MethodPatch, base+"/fields", map[string]any{"fields": map[string]string{}})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestHandler_Files(t *testing.T) {
	s := newTestServer(t, nil)
	id := s.start(t)

	code, env := s.upload(t, id, map[string][]byte{"virus.exe": []byte("MZ")})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_FILE_TYPE", env.Error.Code)

	code, env = s.upload(t, id, map[string][]byte{"huge.pdf": make([]byte, (1<<20)+1)})
	assert.Equal(t, http.StatusRequestEntityTooLarge, code)
	assert.Equal(t, "FILE_TOO_LARGE", env.Error.Code)

	selection := map[string][]byte{}
	for _, name := range []string{"a.pdf", "b.pdf", "c.csv", "d.png", "e.jpg", "f.docx"} {
		selection[name] = []byte("x")
	}
	code, env = s.upload(t, id, selection)
	require.Equal(t, http.StatusOK, code)
	var out struct {
		Added   int         `json:"added"`
		Session SessionView `json:"session"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, 5, out.Added)
	assert.Len(t, out.Session.Files, 5)

	code, env = s.do(t, http.MethodDelete, "/api/v1/intake/sessions/"+id+"/files/0", nil)
	require.Equal(t, http.StatusOK, code)
	var removed struct {
		Removed bool        `json:"removed"`
		Session SessionView `json:"session"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &removed))
	assert.True(t, removed.Removed)
	assert.Len(t, removed.Session.Files, 4)
	assert.Equal(t, 1, removed.Session.RemainingFiles)
}

func TestHandler_FilesPastLimitAreDropped(t *testing.T) {
	s := newTestServer(t, nil)
	id := s.start(t)

	selection := map[string][]byte{}
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf", "e.pdf"} {
		selection[name] = []byte("%PDF")
	}
	code, _ := s.upload(t, id, selection)
	require.Equal(t, http.StatusOK, code)

	// The list is full, so the extra file is discarded before any checks.
	code, env := s.upload(t, id, map[string][]byte{"extra.txt": []byte("notes")})
	require.Equal(t, http.StatusOK, code, env.Error.Code)
	var out struct {
		Added   int         `json:"added"`
		Session SessionView `json:"session"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, 0, out.Added)
	assert.Len(t, out.Session.Files, 5)
	assert.Equal(t, int64(5*len("%PDF")), s.sessions.StagedBytes())
}

func TestHandler_SessionLimit(t *testing.T) {
	s := newLimitedTestServer(t, nil, SessionLimits{MaxSessions: 1})
	s.start(t)

	code, env := s.do(t, http.MethodPost, "/api/v1/intake/sessions", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "TOO_MANY_SESSIONS", env.Error.Code)
}

func TestHandler_StagingBudget(t *testing.T) {
	s := newLimitedTestServer(t, nil, SessionLimits{MaxStagedBytes: 10})
	id := s.start(t)

	code, _ := s.upload(t, id, map[string][]byte{"a.pdf": []byte("12345678")})
	require.Equal(t, http.StatusOK, code)

	code, env := s.upload(t, id, map[string][]byte{"b.pdf": []byte("12345678")})
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "STAGING_FULL", env.Error.Code)
	assert.Equal(t, int64(8), s.sessions.StagedBytes())

	code, _ = s.do(t, http.MethodDelete, "/api/v1/intake/sessions/"+id+"/files/0", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Zero(t, s.sessions.StagedBytes())

	code, _ = s.upload(t, id, map[string][]byte{"b.pdf": []byte("12345678")})
	assert.Equal(t, http.StatusOK, code)
}

func TestHandler_Catalog(t *testing.T) {
	s := newTestServer(t, nil)
	code, env := s.do(t, http.MethodGet, "/api/v1/intake/catalog", nil)
	require.Equal(t, http.StatusOK, code)

	var out CatalogResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Len(t, out.Steps, 3)
	assert.Equal(t, "Services & Notes", out.Steps[2].Label)
	assert.Len(t, out.Options.Services, 6)
}
