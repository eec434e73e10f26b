package customer

import (
	"context"
	"fmt"
	"slices"

	"github.com/MarcGrol/marketplace/lib/myerrors"
	"github.com/MarcGrol/marketplace/lib/mylog"
)

func notFound(customerUID string) error {
	return myerrors.NewNotFoundError(fmt.Errorf("customer %s: %w", customerUID, ErrCustomerNotFound))
}

func (s *Service) GetCustomer(c context.Context, customerUID string) (Customer, error) {
	customer, found, err := s.customerStore.Get(c, customerUID)
	if err != nil {
		return Customer{}, myerrors.NewUnavailableError(err)
	}
	if !found {
		return Customer{}, notFound(customerUID)
	}
	return customer, nil
}

// PutCustomer registers or renames a customer; an existing cart is preserved.
func (s *Service) PutCustomer(c context.Context, customerUID string, name string, emailAddress string) (Customer, error) {
	s.logger.Log(c, customerUID, mylog.SeverityInfo, "Put customer %s", customerUID)

	var customer Customer
	err := s.customerStore.RunInTransaction(c, func(c context.Context) error {
		existing, found, err := s.customerStore.Get(c, customerUID)
		if err != nil {
			return myerrors.NewUnavailableError(err)
		}
		if found {
			customer = existing
		} else {
			customer = Customer{UID: customerUID, Cart: []CartItem{}}
		}
		customer.Name = name
		customer.EmailAddress = emailAddress
		customer.LastModified = s.nower.Now()

		err = s.customerStore.Put(c, customerUID, customer)
		if err != nil {
			return myerrors.NewUnavailableError(err)
		}
		return nil
	})
	if err != nil {
		return Customer{}, err
	}
	return customer, nil
}

// AddToCart adds a product or increases the quantity of a product already in the cart.
func (s *Service) AddToCart(c context.Context, customerUID string, productUID string, quantity int) (Customer, error) {
	s.logger.Log(c, customerUID, mylog.SeverityInfo, "Add %d x %s to cart of customer %s", quantity, productUID, customerUID)

	if quantity < 1 {
		return Customer{}, myerrors.NewInvalidInputErrorf("quantity must be at least 1, got %d", quantity)
	}

	_, err := s.products.GetProduct(c, productUID)
	if err != nil {
		return Customer{}, err
	}

	return s.modifyCart(c, customerUID, func(cart []CartItem) ([]CartItem, error) {
		for i := range cart {
			if cart[i].ProductUID == productUID {
				cart[i].Quantity += quantity
				return cart, nil
			}
		}
		return append(cart, CartItem{ProductUID: productUID, Quantity: quantity}), nil
	})
}

// UpdateCartItem sets the quantity of a product in the cart: zero removes it.
func (s *Service) UpdateCartItem(c context.Context, customerUID string, productUID string, quantity int) (Customer, error) {
	s.logger.Log(c, customerUID, mylog.SeverityInfo, "Set quantity of %s in cart of customer %s to %d", productUID, customerUID, quantity)

	if quantity < 0 {
		return Customer{}, myerrors.NewInvalidInputErrorf("quantity must not be negative, got %d", quantity)
	}

	return s.modifyCart(c, customerUID, func(cart []CartItem) ([]CartItem, error) {
		for i := range cart {
			if cart[i].ProductUID == productUID {
				if quantity == 0 {
					return slices.Delete(cart, i, i+1), nil
				}
				cart[i].Quantity = quantity
				return cart, nil
			}
		}
		return nil, myerrors.NewNotFoundError(fmt.Errorf("%s: %w", productUID, ErrNotInCart))
	})
}

func (s *Service) RemoveFromCart(c context.Context, customerUID string, productUID string) (Customer, error) {
	return s.UpdateCartItem(c, customerUID, productUID, 0)
}

func (s *Service) ClearCart(c context.Context, customerUID string) error {
	s.logger.Log(c, customerUID, mylog.SeverityInfo, "Clear cart of customer %s", customerUID)

	_, err := s.modifyCart(c, customerUID, func(cart []CartItem) ([]CartItem, error) {
		return []CartItem{}, nil
	})
	return err
}

// RemoveCheckedOut takes the checked out quantities out of the cart.
// Products added or increased after the checkout read the cart stay behind.
func (s *Service) RemoveCheckedOut(c context.Context, customerUID string, checkedOut []CartItem) error {
	s.logger.Log(c, customerUID, mylog.SeverityInfo, "Remove %d checked out items from cart of customer %s", len(checkedOut), customerUID)

	_, err := s.modifyCart(c, customerUID, func(cart []CartItem) ([]CartItem, error) {
		remaining := []CartItem{}
		for _, item := range cart {
			for _, out := range checkedOut {
				if out.ProductUID == item.ProductUID {
					item.Quantity -= out.Quantity
				}
			}
			if item.Quantity > 0 {
				remaining = append(remaining, item)
			}
		}
		return remaining, nil
	})
	return err
}

// modifyCart hands a private copy of the cart to modify so a failed attempt leaves the stored one untouched.
func (s *Service) modifyCart(c context.Context, customerUID string, modify func([]CartItem) ([]CartItem, error)) (Customer, error) {
	var customer Customer
	err := s.customerStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		var err error
		customer, found, err = s.customerStore.Get(c, customerUID)
		if err != nil {
			return myerrors.NewUnavailableError(err)
		}
		if !found {
			return notFound(customerUID)
		}

		cart, err := modify(slices.Clone(customer.Cart))
		if err != nil {
			return err
		}
		if cart == nil {
			cart = []CartItem{}
		}

		customer.Cart = cart
		customer.LastModified = s.nower.Now()
		err = s.customerStore.Put(c, customerUID, customer)
		if err != nil {
			return myerrors.NewUnavailableError(err)
		}
		return nil
	})
	if err != nil {
		return Customer{}, err
	}
	return customer, nil
}
