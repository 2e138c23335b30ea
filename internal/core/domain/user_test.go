package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
)

func TestRolePermissions(t *testing.T) {
	assert.True(t, domain.RoleUser.HasPermission(domain.PermGetSelf))
	assert.True(t, domain.RoleUser.HasPermission(domain.PermManageSelf))
	assert.False(t, domain.RoleUser.HasPermission(domain.PermGetUsers))
	assert.False(t, domain.RoleUser.HasPermission(domain.PermManageUsers))

	assert.True(t, domain.RoleAdmin.HasPermission(domain.PermGetUsers))
	assert.True(t, domain.RoleAdmin.HasPermission(domain.PermManageUsers))
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, domain.RoleUser.IsValid())
	assert.True(t, domain.RoleAdmin.IsValid())
	assert.False(t, domain.Role("superuser").IsValid())
}
