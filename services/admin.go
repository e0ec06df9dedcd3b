package services

import (
	"context"
	"io"
	"log"

	"github.com/tealeg/xlsx"

	"go-storefront/models"
)

// AdminOrder is one row of the flattened cross-principal order list shown on
// the admin dashboard.
type AdminOrder struct {
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
	models.Order
}

// UserPatch carries the fields an admin may edit on a principal.
type UserPatch struct {
	Firstname *string               `json:"firstname,omitempty"`
	Lastname  *string               `json:"lastname,omitempty"`
	Role      *models.Role          `json:"role,omitempty"`
	Status    *models.AccountStatus `json:"status,omitempty"`
}

// AdminService aggregates orders and users across all principals for the
// admin console. The mutation primitive is the owning principal's whole
// order array, overwritten per change.
type AdminService struct {
	users    UserStore
	mailer   Mailer
	notifier OrderNotifier
}

// NewAdminService creates an AdminService. mailer and notifier may be nil.
func NewAdminService(users UserStore, mailer Mailer, notifier OrderNotifier) *AdminService {
	return &AdminService{users: users, mailer: mailer, notifier: notifier}
}

// Orders flattens every principal's order history into one list, each row
// tagged with its owner.
func (s *AdminService) Orders(ctx context.Context) ([]AdminOrder, error) {
	users, err := s.users.Users(ctx)
	if err != nil {
		return nil, err
	}
	orders := []AdminOrder{}
	for _, u := range users {
		for _, o := range u.Orders {
			orders = append(orders, AdminOrder{
				UserID:    u.ID,
				UserName:  u.FullName(),
				UserEmail: u.Email,
				Order:     o,
			})
		}
	}
	return orders, nil
}

// UpdateOrderStatus transitions one order of one principal to status. Any
// transition between known statuses is allowed; unknown statuses are
// rejected before touching the store.
func (s *AdminService) UpdateOrderStatus(ctx context.Context, userID, orderID string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var changed models.Order
	updated, err := mutatePrincipal(ctx, s.users, userID,
		func(p *models.Principal) error {
			for i := range p.Orders {
				if p.Orders[i].ID == orderID {
					p.Orders[i].Status = status
					changed = p.Orders[i]
					return nil
				}
			}
			return ErrNotFound
		},
		func(p *models.Principal) map[string]interface{} {
			return map[string]interface{}{"order": p.Orders}
		},
	)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		go func(email, name string) {
			if err := s.mailer.SendOrderStatusUpdate(email, name, orderID, status); err != nil {
				log.Printf("failed to send status email to %s: %v", email, err)
			}
		}(updated.Email, updated.FullName())
	}
	if s.notifier != nil {
		s.notifier.NotifyOrder(OrderEvent{Type: "status_changed", UserID: userID, Order: changed})
	}
	return &changed, nil
}

// DeleteOrder removes one order from its owner's history.
func (s *AdminService) DeleteOrder(ctx context.Context, userID, orderID string) error {
	_, err := mutatePrincipal(ctx, s.users, userID,
		func(p *models.Principal) error {
			for i := range p.Orders {
				if p.Orders[i].ID == orderID {
					p.Orders = append(p.Orders[:i], p.Orders[i+1:]...)
					return nil
				}
			}
			return ErrNotFound
		},
		func(p *models.Principal) map[string]interface{} {
			return map[string]interface{}{"order": p.Orders}
		},
	)
	return err
}

// Users lists every principal with passwords stripped.
func (s *AdminService) Users(ctx context.Context) ([]models.Principal, error) {
	users, err := s.users.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// UpdateUser applies an admin edit to a principal's profile, role or status.
func (s *AdminService) UpdateUser(ctx context.Context, userID string, patch UserPatch) (*models.Principal, error) {
	fields := map[string]interface{}{}
	if patch.Firstname != nil {
		fields["firstname"] = *patch.Firstname
	}
	if patch.Lastname != nil {
		fields["lastname"] = *patch.Lastname
	}
	if patch.Role != nil {
		if *patch.Role != models.RoleUser && *patch.Role != models.RoleAdmin {
			return nil, ErrInvalidStatus
		}
		fields["role"] = *patch.Role
	}
	if patch.Status != nil {
		if *patch.Status != models.StatusActive && *patch.Status != models.StatusInactive {
			return nil, ErrInvalidStatus
		}
		fields["status"] = *patch.Status
	}

	updated, err := mutatePrincipal(ctx, s.users, userID,
		func(p *models.Principal) error { return nil },
		func(p *models.Principal) map[string]interface{} { return fields },
	)
	if err != nil {
		return nil, err
	}
	updated.Password = ""
	return updated, nil
}

// DeleteUser removes a principal. The last remaining admin account cannot be
// deleted, or the console would lock itself out.
func (s *AdminService) DeleteUser(ctx context.Context, userID string) error {
	target, err := s.users.UserByID(ctx, userID)
	if err != nil {
		if notFound(err) {
			return ErrNotFound
		}
		return err
	}

	if target.Role == models.RoleAdmin {
		users, err := s.users.Users(ctx)
		if err != nil {
			return err
		}
		admins := 0
		for _, u := range users {
			if u.Role == models.RoleAdmin {
				admins++
			}
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}

	if err := s.users.DeleteUser(ctx, userID); err != nil {
		if notFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// ExportOrdersXLSX writes the flattened order list as an Excel workbook.
func (s *AdminService) ExportOrdersXLSX(ctx context.Context, w io.Writer) error {
	orders, err := s.Orders(ctx)
	if err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return err
	}

	headers := []string{
		"OrderID", "Date", "Customer", "Email", "Items",
		"Subtotal", "Tax", "Shipping", "GrandTotal", "Method",
		"Status", "EstimatedDelivery", "City", "Country",
	}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID)
		row.AddCell().SetValue(o.Date.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(o.UserName)
		row.AddCell().SetValue(o.UserEmail)
		row.AddCell().SetValue(len(o.Items))
		row.AddCell().SetValue(o.Payment.Subtotal)
		row.AddCell().SetValue(o.Payment.Tax)
		row.AddCell().SetValue(o.Payment.Shipping)
		row.AddCell().SetValue(o.Payment.GrandTotal)
		row.AddCell().SetValue(o.Payment.Method)
		row.AddCell().SetValue(string(o.Status))
		row.AddCell().SetValue(o.EstimatedDelivery)
		row.AddCell().SetValue(o.Shipping.City)
		row.AddCell().SetValue(o.Shipping.Country)
	}

	return file.Write(w)
}
