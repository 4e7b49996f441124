// AngelaMos | 2026
// catalog.go

package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/ntandostore/internal/config"
)

// Service is one entry of the fixed price table. Prices are copied from here
// at order submission time; client-supplied prices are never trusted.
type Service struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

// Catalog is an immutable lookup table built once at startup.
type Catalog struct {
	services map[string]Service
	order    []string
}

func New(entries []config.ServiceConfig) (*Catalog, error) {
	c := &Catalog{
		services: make(map[string]Service, len(entries)),
		order:    make([]string, 0, len(entries)),
	}

	for _, e := range entries {
		if e.ID == "" || e.Name == "" {
			return nil, fmt.Errorf("catalog entry missing id or name: %+v", e)
		}

		if _, exists := c.services[e.ID]; exists {
			return nil, fmt.Errorf("duplicate catalog entry %q", e.ID)
		}

		price, err := decimal.NewFromString(e.Price)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: bad price %q: %w", e.ID, e.Price, err)
		}

		if price.IsNegative() {
			return nil, fmt.Errorf("catalog entry %q: negative price", e.ID)
		}

		c.services[e.ID] = Service{
			ID:          e.ID,
			Name:        e.Name,
			Price:       price,
			Description: e.Description,
		}
		c.order = append(c.order, e.ID)
	}

	return c, nil
}

func (c *Catalog) Get(id string) (Service, bool) {
	svc, ok := c.services[id]
	return svc, ok
}

// List returns the services in configuration order.
func (c *Catalog) List() []Service {
	out := make([]Service, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.services[id])
	}
	return out
}
