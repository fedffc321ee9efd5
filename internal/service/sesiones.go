package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sesion is the per-operator context: who is logged in and what they are
// about to sell. Mu serializes the session's actions so each one runs to
// completion before the next is accepted.
type Sesion struct {
	Mu       sync.Mutex
	ID       string
	Metodo   string // "token" | "clave"
	ExpiraEn time.Time
	Carrito  *Carrito
}

// SesionStore keeps live sessions and revoked ids. Process-local: a cart
// never outlives the process that holds it.
type SesionStore interface {
	Crear(metodo string, expira time.Time) *Sesion
	// Obtener returns the session for id, recreating an empty one when the id
	// carries a valid token but this process has not seen it yet.
	Obtener(id string, expira time.Time) *Sesion
	Revocar(id string, hasta time.Time)
	Revocada(id string) bool
}

type memorySesiones struct {
	mu        sync.Mutex
	sesiones  map[string]*Sesion
	revocadas map[string]time.Time
	now       func() time.Time
}

func NewSesionStore() SesionStore {
	return &memorySesiones{
		sesiones:  make(map[string]*Sesion),
		revocadas: make(map[string]time.Time),
		now:       time.Now,
	}
}

func (m *memorySesiones) Crear(metodo string, expira time.Time) *Sesion {
	s := &Sesion{ID: uuid.NewString(), Metodo: metodo, ExpiraEn: expira, Carrito: NewCarrito()}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purgar()
	m.sesiones[s.ID] = s
	return s
}

func (m *memorySesiones) Obtener(id string, expira time.Time) *Sesion {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sesiones[id]; ok {
		return s
	}
	s := &Sesion{ID: id, ExpiraEn: expira, Carrito: NewCarrito()}
	m.sesiones[id] = s
	return s
}

func (m *memorySesiones) Revocar(id string, hasta time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sesiones, id)
	m.revocadas[id] = hasta
}

func (m *memorySesiones) Revocada(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	hasta, ok := m.revocadas[id]
	return ok && m.now().Before(hasta)
}

// purgar drops expired sessions and revocations. Caller holds mu.
func (m *memorySesiones) purgar() {
	now := m.now()
	for id, s := range m.sesiones {
		if now.After(s.ExpiraEn) {
			delete(m.sesiones, id)
		}
	}
	for id, hasta := range m.revocadas {
		if now.After(hasta) {
			delete(m.revocadas, id)
		}
	}
}
