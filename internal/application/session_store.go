package application

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Maxito7/wedding_card/internal/gallery"
)

// DefaultMaxSessions limita los carruseles montados a la vez
const DefaultMaxSessions = 1000

// Session es el estado en memoria de un visitante: su carrusel montado
type Session struct {
	ID       string
	Gallery  *gallery.Controller
	lastSeen time.Time
	store    *SessionStore
}

// Touch renueva el TTL de la sesión. Lo usan los streams abiertos, que no
// vuelven a pasar por Get mientras el visitante mira el carrusel.
func (sess *Session) Touch() {
	if sess.store != nil {
		sess.store.touch(sess.ID)
	}
}

// SessionStore guarda las sesiones y desmonta las que expiran. Nunca hay
// más de maxSess sesiones montadas: al llenarse se desmonta la menos reciente.
type SessionStore struct {
	gallery *GalleryService
	ttl     time.Duration
	maxSess int
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
	stop     chan struct{}
	stopOnce sync.Once
}

// NewSessionStore crea el almacén e inicia la limpieza periódica.
// maxSessions <= 0 usa DefaultMaxSessions.
func NewSessionStore(gallery *GalleryService, ttl time.Duration, maxSessions int) *SessionStore {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	s := &SessionStore{
		gallery:  gallery,
		ttl:      ttl,
		maxSess:  maxSessions,
		now:      time.Now,
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
	}

	go s.cleanupLoop(cleanupInterval(ttl))

	return s
}

func cleanupInterval(ttl time.Duration) time.Duration {
	interval := ttl / 2
	if interval > 5*time.Minute {
		interval = 5 * time.Minute
	}
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}

// Get devuelve la sesión si existe y no ha expirado, renovando su TTL
func (s *SessionStore) Get(id string) (*Session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if s.expiredLocked(sess, now) {
		s.removeLocked(id)
		return nil, false
	}
	sess.lastSeen = now
	return sess, true
}

func (s *SessionStore) touch(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		sess.lastSeen = s.now()
	}
}

// Una sesión con un stream abierto sigue en pantalla aunque no haga requests.
func (s *SessionStore) expiredLocked(sess *Session, now time.Time) bool {
	return now.Sub(sess.lastSeen) > s.ttl && sess.Gallery.Subscribers() == 0
}

// Create monta un carrusel nuevo para un visitante
func (s *SessionStore) Create() (*Session, error) {
	ctrl, err := s.gallery.Mount()
	if err != nil {
		return nil, err
	}
	sess := &Session{
		ID:       uuid.NewString(),
		Gallery:  ctrl,
		lastSeen: s.now(),
		store:    s,
	}

	s.mu.Lock()
	for len(s.sessions) >= s.maxSess {
		s.evictLocked()
	}
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess, nil
}

// evictLocked desmonta la sesión vista hace más tiempo, prefiriendo las que
// no tienen un stream abierto.
func (s *SessionStore) evictLocked() {
	var victim *Session
	for _, sess := range s.sessions {
		idle := sess.Gallery.Subscribers() == 0
		switch {
		case victim == nil:
			victim = sess
		case idle != (victim.Gallery.Subscribers() == 0):
			if idle {
				victim = sess
			}
		case sess.lastSeen.Before(victim.lastSeen):
			victim = sess
		}
	}
	if victim != nil {
		log.Printf("⚠️ Límite de %d sesiones alcanzado, desmontando %s", s.maxSess, victim.ID)
		s.removeLocked(victim.ID)
	}
}

// GetOrCreate devuelve la sesión id o una nueva; el bool indica si se creó
func (s *SessionStore) GetOrCreate(id string) (*Session, bool, error) {
	if sess, ok := s.Get(id); ok {
		return sess, false, nil
	}
	sess, err := s.Create()
	return sess, err == nil, err
}

func (s *SessionStore) removeLocked(id string) {
	if sess, ok := s.sessions[id]; ok {
		sess.Gallery.Close()
		delete(s.sessions, id)
	}
}

func (s *SessionStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if n := s.cleanup(); n > 0 {
				log.Printf("🧹 %d sesiones expiradas desmontadas", n)
			}
		}
	}
}

// cleanup desmonta las sesiones expiradas y devuelve cuántas eran
func (s *SessionStore) cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if s.expiredLocked(sess, now) {
			s.removeLocked(id)
			removed++
		}
	}
	return removed
}

// Size retorna el número de sesiones activas
func (s *SessionStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close detiene la limpieza y desmonta todas las sesiones
func (s *SessionStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })

	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.sessions {
		s.removeLocked(id)
	}
}
