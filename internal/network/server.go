package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"

	"github.com/udisondev/zonecore/internal/db"
	"github.com/udisondev/zonecore/internal/model"
	"github.com/udisondev/zonecore/internal/network/clientpackets"
	"github.com/udisondev/zonecore/internal/network/packet"
	"github.com/udisondev/zonecore/internal/zone"
)

const (
	helloTimeout = 5 * time.Second
	readTimeout  = 120 * time.Second
	saveTimeout  = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	// DefaultZone receives characters whose saved zone does not exist.
	DefaultZone   uint32
	SendQueueSize int
	WriteTimeout  time.Duration
}

// Server accepts websocket sessions, puts their characters into zones and
// serves the zone debug endpoints.
type Server struct {
	manager *zone.Manager
	store   db.CharacterStore
	tickets *TicketSigner
	opts    Options

	upgrader websocket.Upgrader

	mu      sync.Mutex
	online  map[int64]*Client
	closing bool

	sessions sync.WaitGroup
}

// NewServer creates a zone server.
func NewServer(manager *zone.Manager, store db.CharacterStore, tickets *TicketSigner, opts Options) *Server {
	return &Server{
		manager: manager,
		store:   store,
		tickets: tickets,
		opts:    opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		online: make(map[int64]*Client),
	}
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /debug/zones", s.handleZones)
	mux.HandleFunc("GET /debug/zones/{id}", s.handleZone)
	return mux
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	slog.Info("zone server listening", "address", ln.Addr().String())

	select {
	case <-ctx.Done():
		// После closing новые сессии не стартуют, так что Wait не пересекается с Add
		s.mu.Lock()
		s.closing = true
		s.mu.Unlock()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}
		s.closeAll()
		s.sessions.Wait()
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	}
}

// OnlineCount returns the number of characters in session.
func (s *Server) OnlineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.online)
}

func (s *Server) closeAll() {
	s.mu.Lock()
	clients := make([]*Client, 0, len(s.online))
	for _, c := range s.online {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		if err := c.Close(); err != nil {
			slog.Debug("closing client", "client", c.Remote(), "error", err)
		}
	}
}

// beginSession counts a new session unless the server is shutting down.
func (s *Server) beginSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return ErrShuttingDown
	}
	s.sessions.Add(1)
	return nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if err := s.beginSession(); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	defer s.sessions.Done()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Debug("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	if err := s.serveSession(r.Context(), conn, r.RemoteAddr); err != nil {
		slog.Info("session ended", "remote", r.RemoteAddr, "error", err)
	}
}

// serveSession runs one session: hello, enter zone, read loop, leave and save.
func (s *Server) serveSession(ctx context.Context, conn *websocket.Conn, remote string) error {
	hello, err := s.readHello(conn)
	if err != nil {
		reject(conn, err.Error())
		return err
	}

	rec, err := s.store.Load(ctx, hello.CharacterID)
	if err != nil {
		reject(conn, "unknown character")
		return fmt.Errorf("loading character: %w", err)
	}

	client := NewClient(conn, remote, s.opts.SendQueueSize, s.opts.WriteTimeout)
	defer client.Close()

	// Сброшенный клиент (переполнение очереди, ошибка записи) закрывает и сокет,
	// иначе ReadMessage висит до readTimeout
	go func() {
		<-client.Closed()
		_ = conn.Close()
	}()

	if err := s.register(rec.CharacterID, client); err != nil {
		reject(conn, "already online")
		return err
	}
	defer s.unregister(rec.CharacterID, client)

	player, err := model.NewPlayer(*rec, client)
	if err != nil {
		reject(conn, "bad character")
		return fmt.Errorf("building player: %w", err)
	}

	// Сохранённой зоны может уже не быть, тогда входим в зону по умолчанию
	z, err := s.manager.Zone(rec.ZoneID)
	if err != nil {
		if z, err = s.manager.Zone(s.opts.DefaultZone); err != nil {
			return fmt.Errorf("default zone: %w", err)
		}
	}
	if err := z.Enter(player, rec.Pos, rec.Rot); err != nil {
		return fmt.Errorf("entering zone %d: %w", z.ID(), err)
	}
	slog.Info("player entered", "character", rec.CharacterID, "name", rec.Name, "zone", z.ID(), "actor", player.ID(), "remote", remote)

	readErr := s.readLoop(conn, client, player)

	s.leave(player)
	return readErr
}

func (s *Server) readHello(conn *websocket.Conn) (*clientpackets.Hello, error) {
	_ = conn.SetReadDeadline(time.Now().Add(helloTimeout))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("reading hello: %w", err)
	}
	opcode, body, err := packet.Split(msg)
	if err != nil {
		return nil, fmt.Errorf("reading hello: %w", err)
	}
	if opcode != clientpackets.OpcodeHello {
		return nil, fmt.Errorf("opcode 0x%04X before hello: %w", opcode, ErrUnexpectedPacket)
	}
	hello, err := clientpackets.ParseHello(body)
	if err != nil {
		return nil, fmt.Errorf("parsing hello: %w", err)
	}
	if !s.tickets.Verify(hello.CharacterID, hello.Ticket) {
		return nil, fmt.Errorf("character %d: %w", hello.CharacterID, ErrBadTicket)
	}
	return hello, nil
}

func (s *Server) readLoop(conn *websocket.Conn, client *Client, player *model.Player) error {
	for {
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-client.Closed():
				return ErrClientClosed
			default:
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("reading: %w", err)
		}

		for len(msg) > 0 {
			frame, rest, err := packet.Cut(msg)
			if err != nil {
				return err
			}
			msg = rest
			if err := s.handlePacket(player, frame); err != nil {
				slog.Debug("packet rejected", "actor", player.ID(), "error", err)
			}
		}
	}
}

func (s *Server) handlePacket(player *model.Player, frame []byte) error {
	opcode, body, err := packet.Split(frame)
	if err != nil {
		return err
	}

	switch opcode {
	case clientpackets.OpcodeMove:
		m, err := clientpackets.ParseMove(body)
		if err != nil {
			return err
		}
		z, err := s.manager.Zone(player.ZoneID())
		if err != nil {
			return err
		}
		return z.Move(player.Actor, model.NewPosition(m.X, m.Y, m.Z), m.Rot)
	default:
		return fmt.Errorf("opcode 0x%04X: %w", opcode, ErrUnexpectedPacket)
	}
}

// leave takes the player out of its zone and persists it.
func (s *Server) leave(player *model.Player) {
	// Record снимаем до Leave: после выхода zone link уже обнулён
	rec := player.Record()

	if z, err := s.manager.Zone(player.ZoneID()); err == nil {
		if err := z.Leave(player.Actor); err != nil {
			slog.Warn("leaving zone", "actor", player.ID(), "error", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.store.Save(ctx, rec); err != nil {
		slog.Error("saving character", "character", rec.CharacterID, "error", err)
		return
	}
	slog.Info("player left", "character", rec.CharacterID, "zone", rec.ZoneID)
}

func (s *Server) register(characterID int64, c *Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.online[characterID]; ok {
		return fmt.Errorf("character %d: %w", characterID, ErrAlreadyOnline)
	}
	s.online[characterID] = c
	return nil
}

func (s *Server) unregister(characterID int64, c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.online[characterID] == c {
		delete(s.online, characterID)
	}
}

// maxCloseReason is the control frame payload limit minus the 2-byte close code.
const maxCloseReason = 123

func reject(conn *websocket.Conn, reason string) {
	msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, closeReason(reason))
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
}

// closeReason cuts reason to fit a close frame without splitting a UTF-8 sequence.
func closeReason(reason string) string {
	if len(reason) <= maxCloseReason {
		return reason
	}
	cut := maxCloseReason
	for cut > 0 && !utf8.RuneStart(reason[cut]) {
		cut--
	}
	return reason[:cut]
}

type zoneSummary struct {
	ID         uint32 `json:"id"`
	Name       string `json:"name"`
	ActorCount int    `json:"actor_count"`
}

func (s *Server) handleZones(w http.ResponseWriter, r *http.Request) {
	zones := s.manager.Zones()
	out := make([]zoneSummary, 0, len(zones))
	for _, z := range zones {
		out = append(out, zoneSummary{ID: z.ID(), Name: z.Name(), ActorCount: z.Count()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleZone(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		http.Error(w, "bad zone id", http.StatusBadRequest)
		return
	}
	z, err := s.manager.Zone(uint32(id))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, z.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("writing json response", "error", err)
	}
}
