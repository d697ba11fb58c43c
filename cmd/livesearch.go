package cmd

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pkgdir/pkgdir/pkg/log"
	"github.com/pkgdir/pkgdir/pkg/paginate"
	"github.com/pkgdir/pkgdir/pkg/registry"
	"github.com/pkgdir/pkgdir/pkg/render"
	"github.com/pkgdir/pkgdir/pkg/view"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The directory is public and read-only.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientFrame is one event from the browser: a keystroke, an explicit
// submit, a sort change, a pagination click or a history navigation.
type clientFrame struct {
	Type  string `json:"type"`
	Query string `json:"q,omitempty"`
	Sort  string `json:"sort,omitempty"`
	Page  int    `json:"page,omitempty"`
	// RawQuery carries the address-bar query string for navigate frames.
	RawQuery string `json:"raw_query,omitempty"`
}

// serverFrame is one rendering instruction pushed to the browser.
type serverFrame struct {
	Type    string         `json:"type"`
	Cards   []string       `json:"cards,omitempty"`
	Window  []windowSlot   `json:"window,omitempty"`
	Count   *int           `json:"count,omitempty"`
	Section string         `json:"section,omitempty"`
	URL     string         `json:"url,omitempty"`
	Page    int            `json:"page,omitempty"`
	Total   int            `json:"total_pages,omitempty"`
}

type windowSlot struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// wsSession is one live-search connection: a controller drives a renderer
// that pushes frames down the socket. Writes are serialized because the
// debounce timer renders from its own goroutine.
type wsSession struct {
	conn   *websocket.Conn
	cards  *render.Registry
	logger *log.Logger

	writeMu sync.Mutex
}

func (s *wsSession) send(frame serverFrame) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteJSON(frame); err != nil {
		s.logger.Debugf("write failed: %v", err)
	}
}

// RenderPage implements view.Renderer.
func (s *wsSession) RenderPage(items []registry.Record, page paginate.Page) {
	cards := make([]string, 0, len(items))
	for _, html := range s.cards.RenderAll(items) {
		cards = append(cards, string(html))
	}
	s.send(serverFrame{Type: "page", Cards: cards, Page: page.Number, Total: page.TotalPages})
}

// RenderPagination implements view.Renderer.
func (s *wsSession) RenderPagination(window []paginate.Entry) {
	slots := make([]windowSlot, 0, len(window))
	for _, e := range window {
		slots = append(slots, windowSlot{Page: e.Page, Ellipsis: e.Ellipsis, Current: e.Current})
	}
	s.send(serverFrame{Type: "pagination", Window: slots})
}

// SetCounter implements view.Renderer.
func (s *wsSession) SetCounter(n int) {
	s.send(serverFrame{Type: "counter", Count: &n})
}

// ShowSection implements view.Renderer.
func (s *wsSession) ShowSection(name string) {
	s.send(serverFrame{Type: "section", Section: name})
}

// Push implements view.History: the browser mirrors the canonical URL
// with history.pushState.
func (s *wsSession) Push(values url.Values) {
	s.send(serverFrame{Type: "url", URL: values.Encode()})
}

// handleLiveSearch runs debounced search-as-you-type over a websocket.
// Each keystroke frame schedules a pipeline run; submit, sort and page
// frames apply immediately.
func (s *WebServer) handleLiveSearch(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnf("websocket upgrade failed: %v", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	sessionID := uuid.NewString()
	logger := log.ForComponent("livesearch")
	logger.Debugf("session %s connected", sessionID)

	session := &wsSession{
		conn:   conn,
		cards:  s.cards,
		logger: logger,
	}
	controller := view.NewController(s.eng, session, session, s.cfg.Debounce.Duration)
	defer controller.Close()

	// Detach pipeline runs from the socket read loop; a debounced run
	// may fire after the current frame was handled.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	controller.Load(ctx, r.URL.Query())

	for {
		var frame clientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			logger.Debugf("session %s closed: %v", sessionID, err)
			return
		}

		switch frame.Type {
		case "input":
			controller.Input(ctx, frame.Query)
		case "submit":
			controller.Submit(ctx, frame.Query)
		case "sort":
			controller.SetSort(ctx, frame.Sort)
		case "page":
			controller.GoToPage(ctx, frame.Page)
		case "navigate":
			values, err := url.ParseQuery(frame.RawQuery)
			if err != nil {
				logger.Debugf("session %s: bad navigate frame: %v", sessionID, err)
				continue
			}
			controller.Navigate(ctx, values)
		default:
			logger.Debugf("session %s: unknown frame type %q", sessionID, frame.Type)
		}
	}
}
