package scheduler

import (
	"sync"
	"time"
)

// Ticker abstrae time.Ticker para poder sustituirlo en pruebas
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc crea un Ticker con el intervalo dado
type TickerFunc func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker es el TickerFunc por defecto respaldado por time.NewTicker
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// AutoplayScheduler mantiene como máximo un ticker activo. Cada arranque
// recibe un número de ejecución que se pasa al callback, de modo que el
// dueño puede descartar un tick que llegue de una ejecución ya detenida.
type AutoplayScheduler struct {
	interval  time.Duration
	newTicker TickerFunc
	onTick    func(run uint64)

	mu     sync.Mutex
	run    uint64
	ticker Ticker
	stop   chan struct{}
}

// NewAutoplayScheduler crea una nueva instancia del scheduler de autoplay
func NewAutoplayScheduler(interval time.Duration, newTicker TickerFunc, onTick func(run uint64)) *AutoplayScheduler {
	if newTicker == nil {
		newTicker = NewTimeTicker
	}
	return &AutoplayScheduler{
		interval:  interval,
		newTicker: newTicker,
		onTick:    onTick,
	}
}

// Start arranca el ticker si no está corriendo y devuelve el número de la
// ejecución activa.
func (s *AutoplayScheduler) Start() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		return s.run
	}

	s.run++
	s.ticker = s.newTicker(s.interval)
	s.stop = make(chan struct{})
	go s.loop(s.run, s.ticker, s.stop)

	return s.run
}

// Stop detiene el scheduler
func (s *AutoplayScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	close(s.stop)
	s.ticker = nil
	s.stop = nil
}

// Running indica si hay un ticker activo
func (s *AutoplayScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticker != nil
}

func (s *AutoplayScheduler) loop(run uint64, t Ticker, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-t.C():
			select {
			case <-stop:
				return
			default:
			}
			if s.onTick != nil {
				s.onTick(run)
			}
		}
	}
}
