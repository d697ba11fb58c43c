package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"

	"github.com/pkgdir/pkgdir/pkg/api"
	"github.com/pkgdir/pkgdir/pkg/config"
	"github.com/pkgdir/pkgdir/pkg/datasource"
	"github.com/pkgdir/pkgdir/pkg/engine"
	"github.com/pkgdir/pkgdir/pkg/log"
	"github.com/pkgdir/pkgdir/pkg/render"
	"github.com/pkgdir/pkgdir/pkg/view"
)

// WebCommand creates the web command serving the HTML interface, the
// JSON API and the live-search websocket.
func WebCommand() *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Serve the directory with search UI and API endpoints",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "Port to listen on",
				Value: "8080",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind to",
				Value: "localhost",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return startWebServer(ctx, c.String("config"), c.String("host"), c.String("port"))
		},
	}
}

// WebServer holds the server configuration and dependencies.
type WebServer struct {
	cfg       *config.Config
	eng       *engine.Engine
	cards     *render.Registry
	apiServer *api.Server
	logger    *log.Logger
}

func startWebServer(ctx context.Context, configPath, host, port string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	eng := newEngine(ctx, cfg, nil)

	webServer := &WebServer{
		cfg:       cfg,
		eng:       eng,
		cards:     render.DefaultRegistry(),
		apiServer: api.NewServer(eng),
		logger:    log.ForComponent("web"),
	}

	mux := http.NewServeMux()
	webServer.apiServer.RegisterRoutes(mux)

	mux.HandleFunc("/", webServer.handleHome)
	mux.HandleFunc("GET /search", webServer.handleSearch)
	mux.HandleFunc("GET /searchindex.json", webServer.handleIndex)
	mux.HandleFunc("GET /ws", webServer.handleLiveSearch)
	mux.Handle("GET /static/", http.StripPrefix("/static/",
		http.FileServer(http.Dir(filepath.Join(cfg.SiteDir, "static")))))

	handler := api.CorsMiddleware(mux)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", host, port),
		Handler: handler,
	}

	stopWatcher := webServer.watchIndex(ctx)
	defer stopWatcher()

	go func() {
		webServer.logger.Infof("starting web server on http://%s:%s", host, port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			webServer.logger.Errorf("server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}

	webServer.logger.Infof("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// watchIndex hot-reloads the collection when a rebuild rewrites the local
// search index. Rapid successive writes collapse into one reload through
// the debouncer.
func (s *WebServer) watchIndex(ctx context.Context) func() {
	if s.cfg.IndexEndpoint != "" {
		return func() {}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.logger.Warnf("index watching disabled: %v", err)
		return func() {}
	}
	if err := watcher.Add(s.cfg.SiteDir); err != nil {
		s.logger.Warnf("index watching disabled: %v", err)
		_ = watcher.Close()
		return func() {}
	}

	indexPath := s.cfg.IndexPath()
	source := datasource.NewFileSource(indexPath)
	debounce := view.NewDebouncer(time.Second)

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != indexPath || !event.Op.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				debounce.Schedule(func() {
					records, err := source.Reload(ctx)
					if err != nil {
						s.logger.Errorf("reloading index: %v", err)
						return
					}
					s.eng.SetCollection(records)
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warnf("index watcher: %v", err)
			case <-ctx.Done():
				return
			}
		}
	}()

	return func() {
		debounce.Cancel()
		_ = watcher.Close()
	}
}

// handleHome serves the built landing page. Requests carrying search
// state redirect to /search so deep links keep working.
func (s *WebServer) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	values := r.URL.Query()
	if values.Get("q") != "" || values.Get("sort") != "" || values.Get("page") != "" {
		http.Redirect(w, r, "/search?"+values.Encode(), http.StatusFound)
		return
	}

	index := filepath.Join(s.cfg.SiteDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		// No build yet; render an empty results page instead of a 404.
		s.renderResults(w, r, true)
		return
	}
	http.ServeFile(w, r, index)
}

// handleSearch renders the results page for the address-bar state.
func (s *WebServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.renderResults(w, r, false)
}

// handleIndex serves the raw search index for browser-side consumers.
func (s *WebServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	http.ServeFile(w, r, s.cfg.IndexPath())
}
