// Package api is the main api web server
package api

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acarlisle/figuredraw/api/models"
	"github.com/acarlisle/figuredraw/api/web/templates"
	"github.com/acarlisle/figuredraw/config"
	"github.com/acarlisle/figuredraw/slideshow"
	"github.com/acarlisle/figuredraw/store"
)

//go:embed web/templates/*.html web/static
var webFiles embed.FS

type WebServer struct {
	router *gin.Engine
	db     *store.Database
	cfg    *config.Config

	hub        *Hub
	controller *slideshow.Controller

	packManager   *PackManager
	remoteManager *RemoteManager
	sessionTicker *SessionTicker

	Updated chan bool

	// ctrlMu ensures only one goroutine drives the session at a time
	ctrlMu    sync.Mutex
	sessionID int64
}

func NewWebServer(db *store.Database, cfg *config.Config) *WebServer {
	router := gin.Default()

	ws := &WebServer{
		router:  router,
		db:      db,
		cfg:     cfg,
		hub:     NewHub(),
		Updated: make(chan bool),
	}

	ws.controller = slideshow.New(ws.onSessionEvent)

	packManager, err := NewPackManager(cfg.LibraryDir)
	if err != nil {
		log.Fatalf("Failed to initialize pack manager: %v", err)
	}
	remoteManager, err := NewRemoteManager(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize remote manager: %v", err)
	}
	sessionTicker, err := NewSessionTicker(ws.tickSession)
	if err != nil {
		log.Fatalf("Failed to initialize session ticker: %v", err)
	}
	ws.packManager = packManager
	ws.remoteManager = remoteManager
	ws.sessionTicker = sessionTicker

	// Setup routes
	ws.setupRoutes()

	return ws
}

func (ws *WebServer) setupRoutes() {
	// Create filesystem for static files (strip "web/" prefix)
	staticFS, err := fs.Sub(webFiles, "web/static")
	if err != nil {
		log.Fatalf("Failed to create static filesystem: %v", err)
	}

	// Create filesystem for templates
	templatesFS, err := fs.Sub(webFiles, "web/templates")
	if err != nil {
		log.Fatalf("Failed to create templates filesystem: %v", err)
	}

	// Serve static files from embedded filesystem
	ws.router.StaticFS("static", http.FS(staticFS))

	// Serve favicon
	ws.router.GET("/favicon.ico", ws.serveFavicon)
	ws.router.GET("/favicon.svg", ws.serveFavicon)

	// Serve pages from embedded filesystem
	ws.router.GET("/", ws.servePage(templatesFS, "index.html"))
	ws.router.GET("/viewer", ws.servePage(templatesFS, "viewer.html"))

	// Event stream for viewer pages
	ws.router.GET("/ws", ws.handleWS)

	// UI fragments
	ws.router.GET("/ui/packs", ws.handleUIPacks)
	ws.router.GET("/ui/sessions", ws.handleUISessions)
	ws.router.GET("/ui/recent-dirs", ws.handleUIRecentDirs)

	// API routes
	ws.router.POST("/session/start", ws.handleStartSession)
	ws.router.POST("/session/stop", ws.handleStopSession)
	ws.router.POST("/session/pause", ws.handlePauseSession)
	ws.router.POST("/session/resume", ws.handleResumeSession)
	ws.router.POST("/session/next", ws.handleNextImage)
	ws.router.POST("/session/previous", ws.handlePreviousImage)
	ws.router.POST("/session/restart", ws.handleRestartSession)
	ws.router.GET("/session/status", ws.handleSessionStatus)
	ws.router.GET("/image/current", ws.handleCurrentImage)
	ws.router.GET("/settings", ws.handleGetSettings)
	ws.router.PUT("/settings", ws.handleUpdateSettings)
	ws.router.GET("/packs", ws.handleListPacks)
	ws.router.GET("/sessions", ws.handleListSessions)
}

func (ws *WebServer) servePage(templatesFS fs.FS, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := fs.ReadFile(templatesFS, name)
		if err != nil {
			slog.Error("failed to read page", "name", name, "error", err)
			c.String(http.StatusInternalServerError, "Failed to load %s", name)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	}
}

func (ws *WebServer) serveFavicon(c *gin.Context) {
	data, err := webFiles.ReadFile("web/static/images/favicon.svg")
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", data)
}

func (ws *WebServer) Start(addr string) {
	// listen for pack updates and refresh connected viewers
	go func() {
		for {
			select {
			case <-ws.Updated:
			case <-ws.remoteManager.Updated:
			case <-ws.packManager.Updated:
			}
			slog.Info("pack library updated, notifying viewers")
			ws.hub.Broadcast(models.WSMessage{Type: models.WSPacksUpdated})
		}
	}()

	go ws.packManager.Run()
	go ws.remoteManager.Run()
	go ws.sessionTicker.Run()

	log.Printf("Starting web server on %s", addr)
	if err := ws.router.Run(addr); err != nil {
		log.Fatalf("Failed to start web server: %v", err)
	}
}

// tickSession advances the countdown by one second. The ticker calls this
// every second whether or not a session is running; the controller ignores
// ticks outside the running state.
func (ws *WebServer) tickSession() {
	ws.ctrlMu.Lock()
	defer ws.ctrlMu.Unlock()

	ws.controller.Tick()
}

// onSessionEvent translates controller events into viewer broadcasts. It
// runs synchronously under ctrlMu as part of whichever call mutated the
// session.
func (ws *WebServer) onSessionEvent(ev slideshow.Event) {
	switch e := ev.(type) {
	case slideshow.ImageChanged:
		ws.hub.Broadcast(models.WSMessage{
			Type: models.WSImageChanged,
			Data: models.ImageChangedEvent{
				URL:      fmt.Sprintf("/image/current?pos=%d", e.Position),
				Position: e.Position,
				Total:    e.Total,
			},
		})
	case slideshow.CountdownUpdate:
		ws.hub.Broadcast(models.WSMessage{
			Type: models.WSCountdownUpdate,
			Data: models.CountdownEvent{
				RemainingSeconds: e.Remaining,
				IntervalSeconds:  e.Interval,
			},
		})
	case slideshow.StateChanged:
		ws.hub.Broadcast(models.WSMessage{
			Type: models.WSStateChanged,
			Data: models.StateChangedEvent{State: e.State.String()},
		})
	case slideshow.SessionComplete:
		ws.closeSession(true)
		ws.hub.Broadcast(models.WSMessage{Type: models.WSSessionComplete})
	case slideshow.SessionError:
		ws.hub.Broadcast(models.WSMessage{
			Type: models.WSSessionError,
			Data: models.SessionErrorEvent{Kind: string(e.Kind), Message: e.Message},
		})
	}
}

// closeSession finalizes the open session log row, if any. Callers must
// hold ctrlMu.
func (ws *WebServer) closeSession(completed bool) {
	if ws.sessionID == 0 {
		return
	}
	if err := ws.db.CloseSession(ws.sessionID, ws.controller.Shown(), completed, time.Now()); err != nil {
		slog.Warn("unable to close session log entry", "id", ws.sessionID, "error", err)
	}
	ws.sessionID = 0
}

// statusLocked builds the session status response. Callers must hold
// ctrlMu.
func (ws *WebServer) statusLocked() models.SessionStatusResponse {
	_, position, total, _ := ws.controller.Current()
	return models.SessionStatusResponse{
		State:            ws.controller.State().String(),
		Directory:        ws.controller.Directory(),
		Position:         position,
		Total:            total,
		ImagesShown:      ws.controller.Shown(),
		RemainingSeconds: ws.controller.Remaining(),
		IntervalSeconds:  ws.controller.Interval(),
		ElapsedSeconds:   ws.controller.Elapsed(),
	}
}

func (ws *WebServer) sessionErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, slideshow.ErrSessionActive):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, slideshow.ErrInvalidDirectory), errors.Is(err, slideshow.ErrNoImagesFound):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
	}
}

func (ws *WebServer) handleWS(c *gin.Context) {
	if err := ws.hub.ServeWS(c.Writer, c.Request); err != nil {
		slog.Warn("failed to upgrade viewer connection", "error", err)
	}
}

func (ws *WebServer) handleStartSession(c *gin.Context) {
	// The body is optional, an empty start uses the persisted settings
	var req models.StartSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: fmt.Sprintf("Invalid request body: %v", err)})
			return
		}
	}

	settings, err := ws.db.GetAppSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: fmt.Sprintf("Failed to get settings: %v", err)})
		return
	}

	directory := settings.ImageDirectory
	if req.Directory != "" {
		directory = req.Directory
	}
	recursive := settings.IncludeSubdirs
	if req.IncludeSubdirs != nil {
		recursive = *req.IncludeSubdirs
	}
	interval := settings.EffectiveIntervalSeconds()
	if req.IntervalSeconds != nil {
		interval = *req.IntervalSeconds
	}

	ws.ctrlMu.Lock()
	defer ws.ctrlMu.Unlock()

	if err := ws.controller.Configure(slideshow.Config{
		Directory:       directory,
		Recursive:       recursive,
		IntervalSeconds: interval,
	}); err != nil {
		ws.sessionErrorResponse(c, err)
		return
	}

	if err := ws.controller.Start(); err != nil {
		ws.sessionErrorResponse(c, err)
		return
	}

	// Remember the directory for next time
	settings.ImageDirectory = directory
	settings.IncludeSubdirs = recursive
	if err := ws.db.UpsertAppSettings(settings); err != nil {
		slog.Warn("unable to persist session settings", "error", err)
	}
	if err := ws.db.TouchRecentDir(directory, time.Now()); err != nil {
		slog.Warn("unable to record recent directory", "directory", directory, "error", err)
	}

	// A retained queue with nothing left completes immediately, in which
	// case there is no running session to log.
	if ws.controller.State() != slideshow.StateIdle {
		id, err := ws.db.InsertSession(directory, ws.controller.QueueSize(), ws.controller.Interval(), time.Now())
		if err != nil {
			slog.Warn("unable to open session log entry", "error", err)
		} else {
			ws.sessionID = id
		}
	}

	c.JSON(http.StatusOK, ws.statusLocked())
}

func (ws *WebServer) handleStopSession(c *gin.Context) {
	ws.ctrlMu.Lock()
	defer ws.ctrlMu.Unlock()

	ws.controller.Stop()
	ws.closeSession(false)

	c.JSON(http.StatusOK, ws.statusLocked())
}

func (ws *WebServer) handlePauseSession(c *gin.Context) {
	ws.ctrlMu.Lock()
	defer ws.ctrlMu.Unlock()

	ws.controller.Pause()

	c.JSON(http.StatusOK, ws.statusLocked())
}

func (ws *WebServer) handleResumeSession(c *gin.Context) {
	ws.ctrlMu.Lock()
	defer ws.ctrlMu.Unlock()

	ws.controller.Resume()

	c.JSON(http.StatusOK, ws.statusLocked())
}

func (ws *WebServer) handleNextImage(c *gin.Context) {
	ws.ctrlMu.Lock()
	defer ws.ctrlMu.Unlock()

	ws.controller.Next()

	c.JSON(http.StatusOK, ws.statusLocked())
}

func (ws *WebServer) handlePreviousImage(c *gin.Context) {
	ws.ctrlMu.Lock()
	defer ws.ctrlMu.Unlock()

	ws.controller.Previous()

	c.JSON(http.StatusOK, ws.statusLocked())
}

func (ws *WebServer) handleRestartSession(c *gin.Context) {
	ws.ctrlMu.Lock()
	defer ws.ctrlMu.Unlock()

	// Close the log entry before the restart wipes the counters
	ws.closeSession(false)
	ws.controller.Restart()

	c.JSON(http.StatusOK, ws.statusLocked())
}

func (ws *WebServer) handleSessionStatus(c *gin.Context) {
	ws.ctrlMu.Lock()
	defer ws.ctrlMu.Unlock()

	c.JSON(http.StatusOK, ws.statusLocked())
}

func (ws *WebServer) handleCurrentImage(c *gin.Context) {
	ws.ctrlMu.Lock()
	path, _, _, ok := ws.controller.Current()
	ws.ctrlMu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "No image is currently displayed"})
		return
	}

	// The same URL serves changing images, so viewers must not cache it
	c.Header("Cache-Control", "no-store")
	c.File(path)
}

func (ws *WebServer) handleGetSettings(c *gin.Context) {
	settings, err := ws.db.GetAppSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: fmt.Sprintf("Failed to get settings: %v", err)})
		return
	}

	recentDirs, err := ws.db.GetRecentDirs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: fmt.Sprintf("Failed to get recent directories: %v", err)})
		return
	}

	c.JSON(http.StatusOK, models.SettingsResponse{
		Settings:   *settings,
		RecentDirs: recentDirs,
	})
}

func (ws *WebServer) handleUpdateSettings(c *gin.Context) {
	var req models.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: fmt.Sprintf("Invalid request body: %v", err)})
		return
	}

	if req.IntervalPresetSeconds < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "interval_preset_seconds must be non-negative"})
		return
	}

	if req.CustomMinutes < 0 || req.CustomSeconds < 0 || req.CustomSeconds > 59 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "custom interval must use non-negative minutes and seconds between 0 and 59"})
		return
	}

	// Preset zero selects the custom interval, which then has to be usable
	if req.IntervalPresetSeconds == 0 && req.CustomMinutes*60+req.CustomSeconds <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "custom interval must be positive"})
		return
	}

	if req.WindowWidth <= 0 || req.WindowHeight <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "window dimensions must be positive"})
		return
	}

	newSettings := &store.AppSettings{
		ImageDirectory:        req.ImageDirectory,
		IncludeSubdirs:        req.IncludeSubdirs,
		IntervalPresetSeconds: req.IntervalPresetSeconds,
		CustomMinutes:         req.CustomMinutes,
		CustomSeconds:         req.CustomSeconds,
		WindowWidth:           req.WindowWidth,
		WindowHeight:          req.WindowHeight,
	}

	if err := ws.db.UpsertAppSettings(newSettings); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: fmt.Sprintf("Failed to update settings: %v", err)})
		return
	}

	c.JSON(http.StatusOK, newSettings)
}

func (ws *WebServer) handleListPacks(c *gin.Context) {
	c.JSON(http.StatusOK, models.PackListResponse{
		Packs:      ws.packManager.Packs(),
		LibraryDir: ws.packManager.LibraryDir(),
	})
}

func (ws *WebServer) handleListSessions(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "20")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid limit parameter"})
		return
	}

	sessions, err := ws.db.GetRecentSessions(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: fmt.Sprintf("Database error: %v", err)})
		return
	}

	c.JSON(http.StatusOK, models.SessionListResponse{Sessions: sessions})
}

func (ws *WebServer) handleUIPacks(c *gin.Context) {
	packs := ws.packManager.Packs()

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := templates.PackList(packs, ws.packManager.LibraryDir()).Render(c.Request.Context(), c.Writer); err != nil {
		slog.Error("failed to render pack list", "error", err)
	}
}

func (ws *WebServer) handleUISessions(c *gin.Context) {
	sessions, err := ws.db.GetRecentSessions(10)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error fetching sessions: %v", err)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := templates.SessionList(sessions).Render(c.Request.Context(), c.Writer); err != nil {
		slog.Error("failed to render session list", "error", err)
	}
}

func (ws *WebServer) handleUIRecentDirs(c *gin.Context) {
	recentDirs, err := ws.db.GetRecentDirs()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error fetching recent directories: %v", err)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := templates.RecentDirList(recentDirs).Render(c.Request.Context(), c.Writer); err != nil {
		slog.Error("failed to render recent directory list", "error", err)
	}
}
