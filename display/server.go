package display

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/zeu5/rescue-rl/grid"
	"github.com/zeu5/rescue-rl/types"
	"golang.org/x/sync/errgroup"
)

var upgrader = websocket.Upgrader{}

const (
	// Time allowed to write a message to the peer.
	writeWait = 1 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Speed change per control message.
	delayStep = 50 * time.Millisecond
)

// Control sent by a web client.
type Control struct {
	Command string `json:"command"`
}

// Server pushes step snapshots to connected web clients and feeds their
// speed and quit controls back into the run.
type Server struct {
	ctx    context.Context
	cancel context.CancelFunc
	server *http.Server
	env    *grid.RescueEnvironment
	values ValueSource

	lock    sync.Mutex
	delay   time.Duration
	last    *grid.Snapshot
	clients map[chan grid.Snapshot]bool
	quit    bool
}

var _ types.Monitor = &Server{}

func NewServer(ctx context.Context, addr string, env *grid.RescueEnvironment, values ValueSource, delay time.Duration) *Server {
	ctx, cancel := context.WithCancel(ctx)
	s := &Server{
		ctx:     ctx,
		cancel:  cancel,
		env:     env,
		values:  values,
		delay:   delay,
		clients: make(map[chan grid.Snapshot]bool),
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/", s.handleIndex)
	r.GET("/ws", s.handleSocket)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

// Start binds the address and serves in the background. A failed bind is
// returned right away, serve errors after that are logged.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("error binding the web view address: %s", err)
	}
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Println("serve:", err)
		}
	}()

	go func() {
		<-s.ctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.server.Shutdown(ctx)
	}()
	return nil
}

// Done is closed once a client asked to quit or the parent context was
// canceled. Commands hold the final state on screen until then.
func (s *Server) Done() <-chan struct{} {
	return s.ctx.Done()
}

func (s *Server) OnStep(e types.StepEvent) bool {
	snapshot := s.env.Snapshot()
	snapshot.Episode = e.Episode + 1
	snapshot.MaxEpisode = e.MaxEpisode
	snapshot.Step = e.Step + 1
	snapshot.Reward = e.Transition.Reward
	snapshot.Epsilon = e.Epsilon
	snapshot.Terminal = e.Transition.Terminal
	snapshot.Values = s.snapshotValues()

	s.lock.Lock()
	s.last = &snapshot
	for frames := range s.clients {
		select {
		case frames <- snapshot:
		default:
		}
	}
	delay := s.delay
	quit := s.quit
	s.lock.Unlock()

	time.Sleep(delay)
	select {
	case <-s.ctx.Done():
		return false
	default:
	}
	return !quit
}

func (s *Server) OnEpisodeEnd(episode int, reward float64, success bool) {
}

func (s *Server) snapshotValues() map[string]map[string]float64 {
	if s.values == nil {
		return nil
	}
	values := make(map[string]map[string]float64)
	for _, state := range s.values.States() {
		if row, ok := s.values.GetAll(state); ok {
			values[state] = row
		}
	}
	return values
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, indexPage)
}

func (s *Server) handleSocket(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	defer ws.Close()

	frames := make(chan grid.Snapshot, 16)
	s.addClient(frames)
	defer s.removeClient(frames)

	group, ctx := errgroup.WithContext(s.ctx)
	group.Go(func() error {
		return s.readControls(ws)
	})
	group.Go(func() error {
		return s.writeFrames(ctx, ws, frames)
	})
	if err := group.Wait(); err != nil {
		log.Println("socket:", err)
	}
}

func (s *Server) addClient(frames chan grid.Snapshot) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.clients[frames] = true
	// late joiners get the current frame right away
	if s.last != nil {
		frames <- *s.last
	}
}

func (s *Server) removeClient(frames chan grid.Snapshot) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.clients, frames)
}

func (s *Server) readControls(ws *websocket.Conn) error {
	ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		control := Control{}
		if err := ws.ReadJSON(&control); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return err
			}
			return nil
		}
		switch control.Command {
		case "faster":
			s.adjustDelay(-delayStep)
		case "slower":
			s.adjustDelay(delayStep)
		case "quit":
			s.lock.Lock()
			s.quit = true
			s.lock.Unlock()
			s.cancel()
			return nil
		}
	}
}

// adjustDelay shifts the step delay, floored at zero.
func (s *Server) adjustDelay(d time.Duration) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.delay += d
	if s.delay < 0 {
		s.delay = 0
	}
}

func (s *Server) writeFrames(ctx context.Context, ws *websocket.Conn, frames chan grid.Snapshot) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	// closing the connection unblocks the control reader
	defer ws.Close()
	for {
		select {
		case <-ctx.Done():
			ws.SetWriteDeadline(time.Now().Add(writeWait))
			ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return nil
		case frame := <-frames:
			if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			if err := ws.WriteJSON(frame); err != nil {
				return err
			}
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}
		}
	}
}
