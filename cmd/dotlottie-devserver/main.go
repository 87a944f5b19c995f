// Command dotlottie-devserver is a headless WebSocket host for a single
// player.Player, for driving animations from a browser-based dev tool
// without embedding a renderer in the client.
//
// One goroutine reads {"op", "args"} JSON frames off the socket and calls
// into the Player behind a mutex, preserving single-threaded playback
// discipline; a second goroutine drains PollEvent and fans the resulting
// events back out as JSON frames.
package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/LottieFiles/dotlottie-go/pkg/logging"
	"github.com/LottieFiles/dotlottie-go/pkg/player"
	"github.com/LottieFiles/dotlottie-go/pkg/renderer/fakerenderer"
)

var (
	addr          = flag.String("addr", ":8088", "Listen address")
	animationPath = flag.String("animation", "", "Path to a Lottie JSON animation file to preload")
	tickRate      = flag.Duration("tick", 16*time.Millisecond, "Interval between Player.Tick calls")
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const metricsNamespace = "dotlottie_devserver"

// devMetrics mirrors dungeongate's ServiceMetrics shape, scoped to the
// handful of counters this server actually exercises.
type devMetrics struct {
	ticksTotal        prometheus.Counter
	transitionsTotal  prometheus.Counter
	loadFailuresTotal prometheus.Counter
	opsTotal          *prometheus.CounterVec
	connectedClients  prometheus.Gauge
}

func newDevMetrics() *devMetrics {
	return &devMetrics{
		ticksTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ticks_total",
			Help:      "Total number of Player.Tick calls.",
		}),
		transitionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "transitions_total",
			Help:      "Total number of Loop/Complete playback events observed.",
		}),
		loadFailuresTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "load_failures_total",
			Help:      "Total number of load failures reported by the Player.",
		}),
		opsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ops_total",
			Help:      "Total number of client operations received, by op name.",
		}, []string{"op"}),
		connectedClients: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "connected_clients",
			Help:      "Number of currently connected WebSocket clients.",
		}),
	}
}

// opFrame is a client-to-server command: {"op": "play", "args": {...}}.
type opFrame struct {
	Op   string          `json:"op"`
	Args json.RawMessage `json:"args,omitempty"`
}

type setFrameArgs struct {
	Frame float64 `json:"frame"`
}

type setThemeArgs struct {
	ThemeID string `json:"themeId"`
}

// eventFrame is a server-to-client push: a drained player.Event, or a
// "Tick" frame carrying the current frame and loop count.
type eventFrame struct {
	Kind      string  `json:"kind"`
	FrameNo   float64 `json:"frameNo,omitempty"`
	LoopCount uint32  `json:"loopCount,omitempty"`
}

type session struct {
	conn    *websocket.Conn
	p       *player.Player
	mu      *sync.Mutex // shared by every session of the same Player
	metrics *devMetrics
	done    chan struct{}
}

func (s *session) handleOp(frame opFrame) {
	s.metrics.opsTotal.WithLabelValues(frame.Op).Inc()

	s.mu.Lock()
	defer s.mu.Unlock()

	switch frame.Op {
	case "play":
		s.p.Play()
	case "pause":
		s.p.Pause()
	case "stop":
		s.p.Stop()
	case "set_frame":
		var a setFrameArgs
		if json.Unmarshal(frame.Args, &a) == nil {
			s.p.SetFrame(a.Frame)
		}
	case "seek":
		var a setFrameArgs
		if json.Unmarshal(frame.Args, &a) == nil {
			s.p.Seek(a.Frame)
		}
	case "set_theme":
		var a setThemeArgs
		if json.Unmarshal(frame.Args, &a) == nil {
			s.p.SetTheme(a.ThemeID)
		}
	}
}

// readLoop is the one goroutine that decodes client frames; it and
// writeLoop call into the Player only while holding the shared mutex.
func (s *session) readLoop() {
	defer close(s.done)
	for {
		var frame opFrame
		if err := s.conn.ReadJSON(&frame); err != nil {
			return
		}
		s.handleOp(frame)
	}
}

// writeLoop ticks the Player on a fixed interval and fans out both tick
// progress and any queued events as JSON frames, until the client drops.
func (s *session) writeLoop(logger *logrus.Entry) {
	ticker := time.NewTicker(*tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.p.Tick()
			s.metrics.ticksTotal.Inc()
			var events []player.Event
			for {
				e, ok := s.p.PollEvent()
				if !ok {
					break
				}
				events = append(events, e)
			}
			frame, loop := s.p.CurrentFrame(), s.p.LoopCount()
			s.mu.Unlock()

			for _, e := range events {
				if e.Kind == player.EventLoop || e.Kind == player.EventComplete {
					s.metrics.transitionsTotal.Inc()
				}
				if e.Kind == player.EventLoadError {
					s.metrics.loadFailuresTotal.Inc()
				}
				if err := s.conn.WriteJSON(eventFrame{
					Kind:      e.Kind.String(),
					FrameNo:   e.FrameNo,
					LoopCount: e.LoopCount,
				}); err != nil {
					return
				}
			}
			if err := s.conn.WriteJSON(eventFrame{Kind: "Tick", FrameNo: frame, LoopCount: loop}); err != nil {
				return
			}
		}
	}
}

func serveWS(p *player.Player, metrics *devMetrics, logger *logrus.Entry) http.HandlerFunc {
	mu := &sync.Mutex{}
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.WithError(err).Warn("websocket upgrade failed")
			return
		}
		defer conn.Close()

		metrics.connectedClients.Inc()
		defer metrics.connectedClients.Dec()

		s := &session{conn: conn, p: p, mu: mu, metrics: metrics, done: make(chan struct{})}
		go s.readLoop()
		s.writeLoop(logger)
	}
}

func main() {
	flag.Parse()

	baseLogger := logging.NewLoggerFromEnv()
	logger := logging.PlayerLogger(baseLogger, "devserver")

	r := fakerenderer.New()
	cfg := player.DefaultConfig()
	p := player.New(r, cfg, baseLogger)

	if *animationPath != "" {
		data, err := os.ReadFile(*animationPath)
		if err != nil {
			logger.WithError(err).Fatal("failed to read animation file")
		}
		if !p.LoadAnimationData(string(data), 512, 512) {
			logger.Fatal("failed to load animation data")
		}
	}

	metrics := newDevMetrics()

	mux := http.NewServeMux()
	mux.Handle("/ws", serveWS(p, metrics, logger))
	mux.Handle("/metrics", promhttp.Handler())

	logger.WithField("addr", *addr).Info("dotlottie-devserver listening")
	if err := http.ListenAndServe(*addr, mux); err != nil {
		logger.WithError(err).Fatal("server exited")
	}
}
