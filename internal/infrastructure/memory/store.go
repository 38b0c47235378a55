package memory

import (
	"sync"

	"github.com/tu-usuario/stockflow-core/internal/domain/entity"
)

// Store guarda el inventario en memoria y serializa el acceso con un mutex.
// El agregado no tiene bloqueo interno: este envoltorio es el punto único
// donde los llamadores concurrentes (handlers HTTP) se ordenan uno a uno.
type Store struct {
	mu  sync.Mutex
	inv *entity.Inventory
}

// New crea el store sobre un inventario ya construido.
func New(inv *entity.Inventory) *Store {
	return &Store{inv: inv}
}

// Do ejecuta fn con acceso exclusivo al inventario. Tanto lecturas como
// mutaciones pasan por aquí; las simulaciones de escenarios clonan dentro
// de fn y sueltan el lock antes de iterar sobre la copia si lo necesitan.
func (s *Store) Do(fn func(inv *entity.Inventory) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.inv)
}
