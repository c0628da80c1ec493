// Package gallery contiene la máquina de estados del carrusel del álbum:
// índice actual, navegación manual, pantalla completa y el único timer de
// autoplay, que sólo corre mientras nadie está interactuando.
package gallery

import (
	"fmt"
	"sync"
	"time"

	"github.com/Maxito7/wedding_card/internal/domain"
	"github.com/Maxito7/wedding_card/internal/scheduler"
)

// Options configura un Controller
type Options struct {
	// Intervalo entre avances automáticos; cero usa domain.DefaultAutoplayInterval
	Interval time.Duration
	// NewTicker reemplaza la fábrica de tickers; nil usa time.NewTicker
	NewTicker scheduler.TickerFunc
}

// Controller es un carrusel montado. Toda mutación ocurre bajo mu, así que
// un tick del timer y un clic se aplican uno tras otro según el orden del lock.
type Controller struct {
	images domain.ImageSet

	mu        sync.Mutex
	state     domain.GalleryState
	closed    bool
	autoplay  *scheduler.AutoplayScheduler
	activeRun uint64
	timerOn   bool
	subs      map[int]chan Snapshot
	nextSub   int
}

// Snapshot es una copia inmutable del estado
type Snapshot struct {
	State          domain.GalleryState
	AutoplayActive bool
}

// NewController monta un carrusel sobre images: índice 0, ambas banderas en
// false y autoplay corriendo.
func NewController(images domain.ImageSet, opts Options) (*Controller, error) {
	if err := images.Validate(); err != nil {
		return nil, err
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = domain.DefaultAutoplayInterval
	}

	c := &Controller{
		images: append(domain.ImageSet(nil), images...),
		state:  domain.GalleryState{AutoplayInterval: interval},
		subs:   make(map[int]chan Snapshot),
	}
	c.autoplay = scheduler.NewAutoplayScheduler(interval, opts.NewTicker, c.autoplayTick)

	c.mu.Lock()
	c.reconcileLocked()
	c.mu.Unlock()

	return c, nil
}

// Images devuelve el ImageSet con el que se montó
func (c *Controller) Images() domain.ImageSet {
	return c.images
}

// Len devuelve N
func (c *Controller) Len() int { return len(c.images) }

// Advance avanza un paso en la dirección dada y marca al usuario como
// interactuando, lo que detiene el autoplay.
func (c *Controller) Advance(direction domain.Direction) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrGalleryClosed
	}

	n := len(c.images)
	switch direction {
	case domain.Prev:
		c.state.CurrentIndex = (c.state.CurrentIndex - 1 + n) % n
	default:
		c.state.CurrentIndex = (c.state.CurrentIndex + 1) % n
	}
	c.state.IsUserInteracting = true

	c.reconcileLocked()
	c.publishLocked()
	return nil
}

// SelectIndex salta a i sin tocar la bandera de interacción
func (c *Controller) SelectIndex(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrGalleryClosed
	}
	if i < 0 || i >= len(c.images) {
		return fmt.Errorf("select %d of %d: %w", i, len(c.images), domain.ErrIndexOutOfRange)
	}

	c.state.CurrentIndex = i
	c.publishLocked()
	return nil
}

// OpenFullscreen abre la vista a pantalla completa y pausa el autoplay
func (c *Controller) OpenFullscreen() error {
	return c.setFullscreen(true)
}

// CloseFullscreen cierra la pantalla completa; el autoplay vuelve si el
// usuario no había interactuado.
func (c *Controller) CloseFullscreen() error {
	return c.setFullscreen(false)
}

func (c *Controller) setFullscreen(open bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrGalleryClosed
	}

	c.state.IsFullscreenOpen = open
	c.reconcileLocked()
	c.publishLocked()
	return nil
}

// ResumeAutoplay limpia la bandera de interacción. Nunca se llama de forma implícita.
func (c *Controller) ResumeAutoplay() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrGalleryClosed
	}

	c.state.IsUserInteracting = false
	c.reconcileLocked()
	c.publishLocked()
	return nil
}

// Tick avanza uno si el autoplay está permitido y si no, no hace nada.
// Indica si el índice cambió.
func (c *Controller) Tick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tickLocked()
}

func (c *Controller) tickLocked() bool {
	if c.closed || !c.state.AutoplayAllowed() {
		return false
	}
	c.state.CurrentIndex = (c.state.CurrentIndex + 1) % len(c.images)
	c.publishLocked()
	return true
}

// autoplayTick corre en la goroutine del scheduler. Se descartan los ticks
// de una ejecución ya detenida.
func (c *Controller) autoplayTick(run uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.timerOn || run != c.activeRun {
		return
	}
	c.tickLocked()
}

// reconcileLocked mantiene el timer activo sólo si el carrusel está montado
// y ninguna bandera está puesta.
func (c *Controller) reconcileLocked() {
	want := !c.closed && c.state.AutoplayAllowed()
	switch {
	case want && !c.timerOn:
		c.activeRun = c.autoplay.Start()
		c.timerOn = true
	case !want && c.timerOn:
		c.autoplay.Stop()
		c.timerOn = false
	}
}

// Snapshot devuelve el estado actual
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{State: c.state, AutoplayActive: c.timerOn}
}

// Subscribe entrega un snapshot tras cada cambio. Un lector lento sólo ve el
// último. La función devuelta cancela la suscripción.
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	ch <- c.snapshotLocked()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(sub)
			}
		})
	}
}

// Subscribers devuelve cuántos suscriptores siguen conectados
func (c *Controller) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

func (c *Controller) publishLocked() {
	snap := c.snapshotLocked()
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

// Close desmonta el carrusel: cancela el timer y libera a los suscriptores.
// Se puede llamar más de una vez.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.reconcileLocked()
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}

// Closed indica si ya se llamó a Close
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
