package viewmodel

import (
	"context"
	"fmt"

	"reservewise/internal/entities"
)

type CustomerSource interface {
	Source[entities.Customer]
	Delete(ctx context.Context, id string) error
}

// Customers is the customer page's collection.
type Customers struct {
	*List[entities.Customer]
	src CustomerSource
}

func NewCustomers(src CustomerSource) *Customers {
	return &Customers{List: NewList[entities.Customer](src), src: src}
}

// ByID looks a customer up in the loaded collection.
func (c *Customers) ByID(id string) (entities.Customer, bool) {
	return c.Find(func(it entities.Customer) bool { return it.ID == id })
}

// Delete removes the customer remotely and refetches the collection.
func (c *Customers) Delete(ctx context.Context, id string) error {
	return c.Mutate(ctx, func(ctx context.Context) error {
		if err := c.src.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete customer %s: %w", id, err)
		}
		return nil
	})
}
