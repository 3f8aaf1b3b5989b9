package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicies(t *testing.T) {
	activeAdmin := &User{Role: RoleAdmin, Status: StatusActive}
	inactiveAdmin := &User{Role: RoleAdmin, Status: StatusInactive}
	activeCustomer := &User{Role: "Customer", Status: StatusActive}
	inactiveCustomer := &User{Role: RoleCustomer, Status: StatusInactive}
	activeStaff := &User{Role: "designer", Status: StatusActive}

	tests := []struct {
		policy Policy
		allow  []*User
		deny   []*User
	}{
		{CanManageProducts, []*User{activeAdmin, inactiveAdmin, activeCustomer, activeStaff}, []*User{inactiveCustomer}},
		{CanUploadImage, []*User{activeAdmin}, []*User{inactiveAdmin, activeCustomer, activeStaff}},
		{CanDeleteImage, []*User{activeAdmin}, []*User{inactiveAdmin, activeStaff}},
		{CanPlaceOrder, []*User{activeCustomer}, []*User{activeAdmin, inactiveCustomer, activeStaff}},
		{CanPay, []*User{activeCustomer}, []*User{activeAdmin, inactiveCustomer}},
		{CanReadOrders, []*User{activeAdmin, activeCustomer, activeStaff}, []*User{inactiveAdmin, inactiveCustomer}},
		{CanAddOrderDetail, []*User{activeAdmin, activeStaff}, []*User{activeCustomer, inactiveAdmin}},
		{CanReadAuditLogs, []*User{activeAdmin}, []*User{inactiveAdmin, activeCustomer}},
	}

	for _, tt := range tests {
		t.Run(tt.policy.Name, func(t *testing.T) {
			for _, u := range tt.allow {
				assert.NoError(t, tt.policy.Check(u), "%s/%d", u.Role, u.Status)
			}
			for _, u := range tt.deny {
				err := tt.policy.Check(u)
				assert.ErrorIs(t, err, ErrForbidden, "%s/%d", u.Role, u.Status)
				assert.EqualError(t, err, tt.policy.Message)
			}
			assert.ErrorIs(t, tt.policy.Check(nil), ErrForbidden)
		})
	}
}
