package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"wallboard-backend/internal/libraries"
	"wallboard-backend/internal/models"
	"wallboard-backend/internal/repo"
)

type recordedEvent struct {
	Type libraries.EventType
	Data interface{}
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeBroadcaster) BroadcastEvent(eventType libraries.EventType, data interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{Type: eventType, Data: data})
}

func (f *fakeBroadcaster) recorded() []recordedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedEvent(nil), f.events...)
}

func newTestApp(t *testing.T) (*fiber.App, repo.SnapshotStore, *fakeBroadcaster) {
	t.Helper()
	store := repo.NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	bc := &fakeBroadcaster{}
	h := NewWallHandler(store, bc)

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Get("/data", h.GetData)
	api.Post("/data", h.SaveData)
	api.Post("/messages", h.CreateMessage)
	api.Delete("/messages/:id", h.DeleteMessage)
	api.Put("/messages/:id", h.UpdateMessage)
	api.Post("/folders", h.CreateFolder)
	api.Delete("/folders/:id", h.DeleteFolder)
	api.Put("/folders/:id", h.UpdateFolder)
	return app, store, bc
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestGetData_EmptyBoard(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/data", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap models.Snapshot
	decodeBody(t, resp, &snap)
	require.NotNil(t, snap.Messages)
	require.NotNil(t, snap.Folders)
	require.Empty(t, snap.Messages)
}

func TestCreateMessage_PersistsAndBroadcasts(t *testing.T) {
	app, store, bc := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/messages", models.Message{
		ID:   1700000000001,
		Text: "hello",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool           `json:"success"`
		Message models.Message `json:"message"`
	}
	decodeBody(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, int64(1700000000001), body.Message.ID)

	snap, err := store.Read()
	require.NoError(t, err)
	require.Len(t, snap.Messages, 1)

	events := bc.recorded()
	require.Len(t, events, 1)
	require.Equal(t, libraries.EventNewMessage, events[0].Type)
}

func TestCreateMessage_AssignsMissingID(t *testing.T) {
	app, store, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/messages", map[string]any{"text": "no id"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	snap, err := store.Read()
	require.NoError(t, err)
	require.NotZero(t, snap.Messages[0].ID)
	require.NotNil(t, snap.Messages[0].Comments)
}

func TestDeleteMessage_DoubleDeleteIsNoop(t *testing.T) {
	app, store, bc := newTestApp(t)
	require.NoError(t, store.Write(models.Snapshot{
		Messages: []models.Message{{ID: 5, Text: "bye", Comments: []models.Comment{}}},
		Folders:  []models.Folder{},
	}))

	resp := doJSON(t, app, http.MethodDelete, "/api/v1/messages/5", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// duplicate click: still 200, nothing to remove
	resp = doJSON(t, app, http.MethodDelete, "/api/v1/messages/5", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	snap, err := store.Read()
	require.NoError(t, err)
	require.Empty(t, snap.Messages)

	events := bc.recorded()
	require.Len(t, events, 2)
	require.Equal(t, libraries.EventDeleteMessage, events[0].Type)
}

func TestUpdateMessage_MergeAndNotFound(t *testing.T) {
	app, store, bc := newTestApp(t)
	fid := int64(10)
	require.NoError(t, store.Write(models.Snapshot{
		Messages: []models.Message{{ID: 5, Text: "before", FolderID: &fid, Comments: []models.Comment{}}},
		Folders:  []models.Folder{},
	}))

	resp := doJSON(t, app, http.MethodPut, "/api/v1/messages/5", map[string]any{
		"expanded": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Message models.Message `json:"message"`
	}
	decodeBody(t, resp, &body)
	require.True(t, body.Message.Expanded)
	require.Equal(t, "before", body.Message.Text, "unpatched fields survive")
	require.Equal(t, fid, *body.Message.FolderID)

	events := bc.recorded()
	require.Len(t, events, 1)
	require.Equal(t, libraries.EventUpdateMessage, events[0].Type)

	resp = doJSON(t, app, http.MethodPut, "/api/v1/messages/999", map[string]any{"text": "x"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateFolder_DerivesLock(t *testing.T) {
	app, store, bc := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/folders", map[string]any{
		"name":     "Secrets",
		"password": "1234",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Folder models.Folder `json:"folder"`
	}
	decodeBody(t, resp, &body)
	require.True(t, body.Folder.IsLocked)
	require.NotZero(t, body.Folder.ID)

	snap, err := store.Read()
	require.NoError(t, err)
	require.True(t, snap.Folders[0].IsLocked)

	events := bc.recorded()
	require.Len(t, events, 1)
	require.Equal(t, libraries.EventNewFolder, events[0].Type)
}

func TestCreateFolder_RequiresName(t *testing.T) {
	app, _, bc := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/folders", map[string]any{"name": ""})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
	require.Empty(t, bc.recorded())
}

func TestDeleteFolder_Cascades(t *testing.T) {
	app, store, bc := newTestApp(t)
	fid := int64(10)
	require.NoError(t, store.Write(models.Snapshot{
		Messages: []models.Message{
			{ID: 1, Text: "keep", Comments: []models.Comment{}},
			{ID: 2, Text: "cascade me", FolderID: &fid, Comments: []models.Comment{}},
		},
		Folders: []models.Folder{{ID: 10, Name: "Work"}},
	}))

	resp := doJSON(t, app, http.MethodDelete, "/api/v1/folders/10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	snap, err := store.Read()
	require.NoError(t, err)
	require.Empty(t, snap.Folders)
	require.Len(t, snap.Messages, 1)
	require.Equal(t, int64(1), snap.Messages[0].ID)

	events := bc.recorded()
	require.Len(t, events, 1)
	require.Equal(t, libraries.EventDeleteFolder, events[0].Type)
}

func TestUpdateFolder_RenameNoBroadcast(t *testing.T) {
	app, store, bc := newTestApp(t)
	require.NoError(t, store.Write(models.Snapshot{
		Messages: []models.Message{},
		Folders:  []models.Folder{{ID: 10, Name: "Work"}},
	}))

	resp := doJSON(t, app, http.MethodPut, "/api/v1/folders/10", map[string]any{"name": "Renamed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	snap, err := store.Read()
	require.NoError(t, err)
	require.Equal(t, "Renamed", snap.Folders[0].Name)
	require.Empty(t, bc.recorded(), "folder renames surface via repull only")

	resp = doJSON(t, app, http.MethodPut, "/api/v1/folders/999", map[string]any{"name": "x"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestSaveData_LastWriteWins(t *testing.T) {
	app, store, _ := newTestApp(t)

	base := models.Snapshot{
		Messages: []models.Message{
			{ID: 1, Text: "one", Comments: []models.Comment{}},
			{ID: 2, Text: "two", Comments: []models.Comment{}},
			{ID: 3, Text: "three", Comments: []models.Comment{}},
		},
		Folders: []models.Folder{},
	}
	require.NoError(t, store.Write(base))

	// A and B both pulled the 3-message snapshot
	clientA := base.Clone()
	clientB := base.Clone()

	// B appends X and writes first
	clientB.AppendMessage(models.Message{ID: 100, Text: "X", Comments: []models.Comment{}})
	resp := doJSON(t, app, http.MethodPost, "/api/v1/data", clientB)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// A, unaware, appends Y to its stale copy and writes last
	clientA.AppendMessage(models.Message{ID: 200, Text: "Y", Comments: []models.Comment{}})
	resp = doJSON(t, app, http.MethodPost, "/api/v1/data", clientA)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	final, err := store.Read()
	require.NoError(t, err)
	require.Len(t, final.Messages, 4)
	_, hasY := final.FindMessage(200)
	require.True(t, hasY)
	_, hasX := final.FindMessage(100)
	require.False(t, hasX, "B's write was silently overwritten in full")
}

func TestSaveData_RoundTrip(t *testing.T) {
	app, _, _ := newTestApp(t)
	pw := "1234"
	fid := int64(42)

	snap := models.Snapshot{
		Messages: []models.Message{{
			ID:       7,
			Text:     "note",
			FolderID: &fid,
			Comments: []models.Comment{{ID: 8, Text: "c", Time: "2025/01/01 10:00:00"}},
			Position: &models.Position{X: 160, Y: 260},
		}},
		Folders: []models.Folder{{ID: 42, Name: "Secrets", Password: &pw, IsLocked: true}},
	}

	resp := doJSON(t, app, http.MethodPost, "/api/v1/data", snap)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/data", nil)
	var got models.Snapshot
	decodeBody(t, resp, &got)
	require.Equal(t, snap, got)
}

func TestParseID_Invalid(t *testing.T) {
	app, _, _ := newTestApp(t)
	for _, path := range []string{"/api/v1/messages/abc", "/api/v1/folders/abc"} {
		resp := doJSON(t, app, http.MethodDelete, path, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, fmt.Sprintf("path %s", path))
		resp.Body.Close()
	}
}
