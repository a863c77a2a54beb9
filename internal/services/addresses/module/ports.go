package module

import (
	"addressbook/internal/services/addresses/domain"
)

// Ports holds the ports exposed by the addresses module
// Bus carries lifecycle events for subscribers in other modules
type Ports struct {
	Service domain.ServicePort
	Bus     *domain.Bus
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
