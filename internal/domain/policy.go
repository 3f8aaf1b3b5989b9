package domain

// Policy is the authorization rule of one operation. The combinator of each
// rule is spelled out in Allow; the rules are not all the same shape.
type Policy struct {
	Name    string
	Message string
	Allow   func(u *User) bool
}

func (p Policy) Check(u *User) error {
	if u == nil || !p.Allow(u) {
		return NewForbiddenError("%s", p.Message)
	}
	return nil
}

var (
	// CanManageProducts is admin OR active: any active user passes, and so
	// does a deactivated admin.
	CanManageProducts = Policy{
		Name:    "manage_products",
		Message: "User does not have permission to manage product.",
		Allow: func(u *User) bool {
			return u.IsAdmin() || u.IsActive()
		},
	}

	CanUploadImage = Policy{
		Name:    "upload_image",
		Message: "User does not have permission to upload image.",
		Allow: func(u *User) bool {
			return u.IsAdmin() && u.IsActive()
		},
	}

	CanDeleteImage = Policy{
		Name:    "delete_image",
		Message: "User does not have permission to delete image.",
		Allow: func(u *User) bool {
			return u.IsAdmin() && u.IsActive()
		},
	}

	CanPlaceOrder = Policy{
		Name:    "place_order",
		Message: "User does not have permission to order.",
		Allow: func(u *User) bool {
			return u.IsCustomer() && u.IsActive()
		},
	}

	CanReadOrders = Policy{
		Name:    "read_orders",
		Message: "User does not have permission to see orders.",
		Allow: func(u *User) bool {
			return u.IsActive()
		},
	}

	CanAddOrderDetail = Policy{
		Name:    "add_order_detail",
		Message: "User does not have permission to create order detail.",
		Allow: func(u *User) bool {
			return u.IsActive() && !u.IsCustomer()
		},
	}

	CanPay = Policy{
		Name:    "pay",
		Message: "User does not have permission to pay.",
		Allow: func(u *User) bool {
			return u.IsCustomer() && u.IsActive()
		},
	}

	CanReadAuditLogs = Policy{
		Name:    "read_audit_logs",
		Message: "User does not have permission to see audit logs.",
		Allow: func(u *User) bool {
			return u.IsAdmin() && u.IsActive()
		},
	}
)
