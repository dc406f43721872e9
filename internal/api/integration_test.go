package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nota-cli/internal/model"
	"nota-cli/internal/session"
)

// fakeBackend is an in-memory stand-in for the REST service, covering the
// endpoints the client consumes.
type fakeBackend struct {
	mu     sync.Mutex
	nextID int64
	pages  map[int64]*model.Page
	blocks map[int64]*model.Block
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		nextID: 1,
		pages:  map[int64]*model.Page{},
		blocks: map[int64]*model.Block{},
	}
}

func (f *fakeBackend) id() int64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeBackend) router() http.Handler {
	r := chi.NewRouter()

	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			if req.Header.Get("Authorization") != "Bearer acc" {
				writeJSON(w, 401, map[string]string{"detail": "unauthorized"})
				return
			}
			next(w, req)
		}
	}

	r.Post("/api/auth/login/", func(w http.ResponseWriter, req *http.Request) {
		var in struct{ Username, Password string }
		_ = json.NewDecoder(req.Body).Decode(&in)
		if in.Password != "secret" {
			writeJSON(w, 401, map[string]string{"error": "Invalid credentials"})
			return
		}
		writeJSON(w, 200, map[string]any{
			"access":  "acc",
			"refresh": "ref",
			"user":    model.User{ID: 1, Username: in.Username},
		})
	})
	r.Get("/api/auth/me/", authed(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, 200, model.User{ID: 1, Username: "alice"})
	}))

	r.Get("/api/pages/", authed(func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		out := []model.Page{}
		for _, p := range f.pages {
			out = append(out, *p)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		writeJSON(w, 200, out)
	}))
	r.Post("/api/pages/", authed(func(w http.ResponseWriter, req *http.Request) {
		var in struct {
			Title string `json:"title"`
		}
		_ = json.NewDecoder(req.Body).Decode(&in)
		f.mu.Lock()
		defer f.mu.Unlock()
		p := &model.Page{ID: f.id(), Title: in.Title, CreatedAt: time.Now(), UpdatedAt: time.Now()}
		f.pages[p.ID] = p
		writeJSON(w, 201, p)
	}))
	r.Delete("/api/pages/{id}/", authed(func(w http.ResponseWriter, req *http.Request) {
		id, _ := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.pages, id)
		w.WriteHeader(204)
	}))

	r.Get("/api/blocks/", authed(func(w http.ResponseWriter, req *http.Request) {
		pageID, _ := strconv.ParseInt(req.URL.Query().Get("page"), 10, 64)
		writeJSON(w, 200, f.pageBlocks(pageID))
	}))
	r.Post("/api/blocks/", authed(func(w http.ResponseWriter, req *http.Request) {
		var in struct {
			Page    int64           `json:"page"`
			Type    model.BlockType `json:"block_type"`
			Content string          `json:"content"`
			Order   int             `json:"order"`
		}
		_ = json.NewDecoder(req.Body).Decode(&in)
		f.mu.Lock()
		defer f.mu.Unlock()
		b := &model.Block{ID: f.id(), Page: in.Page, Type: in.Type, Content: in.Content, Order: in.Order, CreatedAt: time.Now()}
		f.blocks[b.ID] = b
		writeJSON(w, 201, b)
	}))
	r.Patch("/api/blocks/{id}/", authed(func(w http.ResponseWriter, req *http.Request) {
		id, _ := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
		var in BlockPatch
		_ = json.NewDecoder(req.Body).Decode(&in)
		f.mu.Lock()
		defer f.mu.Unlock()
		b, ok := f.blocks[id]
		if !ok {
			writeJSON(w, 404, map[string]string{"detail": "not found"})
			return
		}
		if in.Content != nil {
			b.Content = *in.Content
		}
		if in.Checked != nil {
			b.Checked = *in.Checked
		}
		writeJSON(w, 200, b)
	}))
	r.Post("/api/blocks/reorder/", authed(func(w http.ResponseWriter, req *http.Request) {
		var in struct {
			Blocks []model.BlockOrder `json:"blocks"`
		}
		_ = json.NewDecoder(req.Body).Decode(&in)
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, bo := range in.Blocks {
			if b, ok := f.blocks[bo.ID]; ok {
				b.Order = bo.Order
			}
		}
		writeJSON(w, 200, map[string]string{"status": "success"})
	}))
	r.Post("/api/blocks/{id}/upload_file/", authed(func(w http.ResponseWriter, req *http.Request) {
		id, _ := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
		file, header, err := req.FormFile("file")
		if err != nil {
			writeJSON(w, 400, map[string]string{"error": "no file"})
			return
		}
		defer file.Close()
		f.mu.Lock()
		defer f.mu.Unlock()
		b, ok := f.blocks[id]
		if !ok {
			writeJSON(w, 404, map[string]string{"detail": "not found"})
			return
		}
		b.FileURL = "/media/" + header.Filename
		b.FileSize = header.Size
		writeJSON(w, 200, b)
	}))

	return r
}

func (f *fakeBackend) pageBlocks(pageID int64) []model.Block {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Block{}
	for _, b := range f.blocks {
		if b.Page == pageID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_EndToEndFlow(t *testing.T) {
	backend := newFakeBackend()
	srv := httptest.NewServer(backend.router())
	defer srv.Close()

	t.Setenv("NOTA_CONFIG_DIR", t.TempDir())
	sess, err := session.Load()
	require.NoError(t, err)
	c := New(srv.URL+"/api", sess, zap.NewNop())
	ctx := context.Background()

	// Login stores both tokens.
	user, err := c.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "acc", sess.Access())
	assert.Equal(t, "ref", sess.Refresh())

	page, err := c.CreatePage(ctx, "Notes")
	require.NoError(t, err)

	// Three blocks appended with order = current sibling count.
	var created []model.Block
	for i, bt := range []model.BlockType{model.BlockText, model.BlockHeading1, model.BlockCheckbox} {
		b, err := c.CreateBlock(ctx, page.ID, bt, i)
		require.NoError(t, err)
		assert.Equal(t, i, b.Order)
		assert.Equal(t, "", b.Content)
		created = append(created, b)
	}

	// Batched reorder: move the first block to the end.
	require.NoError(t, c.ReorderBlocks(ctx, []model.BlockOrder{
		{ID: created[1].ID, Order: 0},
		{ID: created[2].ID, Order: 1},
		{ID: created[0].ID, Order: 2},
	}))
	blocks, err := c.ListBlocks(ctx, page.ID)
	require.NoError(t, err)
	require.Len(t, blocks, 3)
	assert.Equal(t, created[1].ID, blocks[0].ID)
	assert.Equal(t, created[0].ID, blocks[2].ID)
	for i, b := range blocks {
		assert.Equal(t, i, b.Order)
	}

	// Content edit round-trips through the patch endpoint.
	content := "hello"
	updated, err := c.UpdateBlock(ctx, created[0].ID, BlockPatch{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "hello", updated.Content)

	// Upload reports monotonic progress ending at 100.
	var progress []float64
	withFile, err := c.UploadFile(ctx, created[2].ID, "pic.png", strings.NewReader(strings.Repeat("x", 64<<10)), func(pct float64) {
		progress = append(progress, pct)
	})
	require.NoError(t, err)
	assert.Equal(t, "/media/pic.png", withFile.FileURL)
	require.NotEmpty(t, progress)
	for i := 1; i < len(progress); i++ {
		assert.GreaterOrEqual(t, progress[i], progress[i-1])
	}
	assert.InDelta(t, 100, progress[len(progress)-1], 0.01)
}
